// Package engine hosts the site in a terminal: it owns the tcell screen, feeds input into the
// background simulator and the contact form, ticks frames and presents the raster.
//
// The simulator and raster are touched only by the loop goroutine. Submissions run on their
// own goroutine and report back over a channel.
package engine

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/hearth/background"
	"github.com/lixenwraith/hearth/contact"
	"github.com/lixenwraith/hearth/core"
	"github.com/lixenwraith/hearth/parameter"
	"github.com/lixenwraith/hearth/render"
	"github.com/lixenwraith/hearth/status"
)

// Notifier is told about every finished submission; audio.SoundManager satisfies it
type Notifier interface {
	PlaySuccess()
	PlayFailure()
}

// Options wires an App
type Options struct {
	Screen     tcell.Screen
	Controller *contact.Controller
	Logo       *render.Image
	// Rand seeds the background; nil seeds from the clock
	Rand     background.Rand
	Notifier Notifier
	Metrics  *status.Registry

	ReseedOnResize bool
	ShowStatus     bool
}

// App is the terminal host loop
type App struct {
	screen     tcell.Screen
	raster     *render.Raster
	sim        *background.Simulator
	controller *contact.Controller
	notifier   Notifier
	metrics    *status.Registry

	pointer        pointerTracker
	reseedOnResize bool
	showStatus     bool

	sendCtx context.Context
	results chan contact.Result

	now         func() time.Time
	sampleStart time.Time
	sampleFrame uint64

	frames, nodes, links, hovered *atomic.Int64
	pointerIn                     *atomic.Int64
	sendsOK, sendsFailed          *atomic.Int64
	fps                           *status.AtomicFloat
}

// New creates an App sized to the screen; the screen must already be initialised
func New(opts Options) *App {
	cols, rows := opts.Screen.Size()
	raster := render.NewRaster(cols, rows)

	metrics := opts.Metrics
	if metrics == nil {
		metrics = status.NewRegistry()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	a := &App{
		screen:         opts.Screen,
		raster:         raster,
		sim:            background.New(raster, opts.Logo, rng),
		controller:     opts.Controller,
		notifier:       opts.Notifier,
		metrics:        metrics,
		reseedOnResize: opts.ReseedOnResize,
		showStatus:     opts.ShowStatus,
		sendCtx:        context.Background(),
		results:        make(chan contact.Result, 4),
		now:            time.Now,

		frames:      metrics.Ints.Get(status.KeyFrames),
		nodes:       metrics.Ints.Get(status.KeyNodes),
		links:       metrics.Ints.Get(status.KeyConnections),
		hovered:     metrics.Ints.Get(status.KeyHovered),
		pointerIn:   metrics.Ints.Get(status.KeyPointer),
		sendsOK:     metrics.Ints.Get(status.KeySendsOK),
		sendsFailed: metrics.Ints.Get(status.KeySendsFailed),
		fps:         metrics.Floats.Get(status.KeyFPS),
	}
	a.sampleStart = a.now()
	return a
}

// Simulator exposes the background simulator
func (a *App) Simulator() *background.Simulator {
	return a.sim
}

// errQuit ends the frame loop on a user quit
var errQuit = errors.New("quit")

// Run drives the background simulator's frame loop until ctx ends or the user quits
// Pointer input reaches the simulator over its event channel; keys, resizes and finished
// submissions are applied before each step, and the frame is drawn after it
func (a *App) Run(ctx context.Context) error {
	a.sendCtx = ctx

	pointers := make(chan background.PointerEvent, parameter.EventQueueSize)
	inputs := make(chan tcell.Event, parameter.EventQueueSize)
	quit := make(chan struct{})
	defer close(quit)

	core.Go(func() {
		a.pump(pointers, inputs, quit)
	})

	ticker := time.NewTicker(parameter.FrameUpdateInterval)
	defer ticker.Stop()

	a.sim.SetHooks(background.Hooks{
		BeforeStep: func() error { return a.drain(inputs) },
		AfterStep:  a.draw,
	})
	defer a.sim.SetHooks(background.Hooks{})

	err := a.sim.Run(ctx, ticker.C, pointers)
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

// pump polls the screen and routes pointer input apart from everything else
// It owns the pointer tracker while Run is active
func (a *App) pump(pointers chan<- background.PointerEvent, inputs chan<- tcell.Event, quit <-chan struct{}) {
	for {
		ev := a.screen.PollEvent()
		// nil after Fini
		if ev == nil {
			return
		}
		if pev, ok := a.pointer.translate(ev); ok {
			select {
			case pointers <- pev:
			case <-quit:
				return
			}
			continue
		}
		select {
		case inputs <- ev:
		case <-quit:
			return
		}
	}
}

// drain applies queued input and finished submissions
func (a *App) drain(inputs <-chan tcell.Event) error {
	for {
		select {
		case ev := <-inputs:
			if !a.handleInput(ev) {
				return errQuit
			}
		case res := <-a.results:
			a.handleResult(res)
		default:
			return nil
		}
	}
}

// HandleEvent applies one terminal event synchronously, false means quit
func (a *App) HandleEvent(ev tcell.Event) bool {
	if pev, ok := a.pointer.translate(ev); ok {
		a.sim.HandlePointer(pev)
		return true
	}
	return a.handleInput(ev)
}

func (a *App) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.resize()
	case *tcell.EventKey:
		return a.handleKey(ev)
	}
	return true
}

func (a *App) resize() {
	cols, rows := a.screen.Size()
	a.raster.Resize(cols, rows)
	a.sim.Resize(a.raster.Size())
	if a.reseedOnResize {
		a.sim.Reseed()
	}
	a.screen.Sync()
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	form := a.form()

	switch ev.Key() {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyF2:
		a.showStatus = !a.showStatus
		return true
	case tcell.KeyCtrlS:
		a.submit()
		return true
	}

	if form == nil {
		return true
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		form.Blur()
	case tcell.KeyTab, tcell.KeyDown:
		form.FocusNext()
	case tcell.KeyBacktab, tcell.KeyUp:
		form.FocusPrev()
	case tcell.KeyEnter:
		switch {
		case form.ButtonFocused():
			a.submit()
		case form.FocusedMultiline():
			form.InsertRune('\n')
		default:
			form.FocusNext()
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		form.Backspace()
	case tcell.KeyRune:
		form.InsertRune(ev.Rune())
	}
	return true
}

func (a *App) form() *contact.Form {
	if a.controller == nil {
		return nil
	}
	return a.controller.Form()
}

// submit sends the form off the loop goroutine
// The controller ignores the call while a previous send is in flight
func (a *App) submit() {
	form := a.form()
	if form == nil || form.Snapshot().Button.Disabled {
		return
	}
	ctx := a.sendCtx
	core.Go(func() {
		res := a.controller.Submit(ctx)
		if res.Outcome == contact.OutcomeNone {
			return
		}
		select {
		case a.results <- res:
		case <-ctx.Done():
		}
	})
}

func (a *App) handleResult(res contact.Result) {
	switch res.Outcome {
	case contact.OutcomeSuccess:
		a.sendsOK.Add(1)
		if a.notifier != nil {
			a.notifier.PlaySuccess()
		}
	case contact.OutcomeFailure:
		a.sendsFailed.Add(1)
		if a.notifier != nil {
			a.notifier.PlayFailure()
		}
	}
	log.Printf("Contact form send: %s", res.Outcome)
}

// Frame steps the simulation and redraws the screen outside Run
func (a *App) Frame() {
	a.sim.Step()
	a.draw()
}

// draw presents the raster, then the overlays
func (a *App) draw() {
	a.raster.Present(a.screen)

	cols, rows := a.raster.Cells()
	if form := a.form(); form != nil {
		drawForm(a.screen, form.Snapshot(), cols, rows)
	}

	a.record(a.sim.Stats())
	if a.showStatus {
		drawStatus(a.screen, a.metrics.Line(), cols, rows)
	}

	a.screen.Show()
}

func (a *App) record(stats background.Stats) {
	a.frames.Store(int64(stats.Frame))
	a.nodes.Store(int64(stats.Nodes))
	a.links.Store(int64(stats.Connections))
	a.hovered.Store(int64(stats.Hovered))
	if a.sim.Pointer().Present() {
		a.pointerIn.Store(1)
	} else {
		a.pointerIn.Store(0)
	}

	now := a.now()
	if elapsed := now.Sub(a.sampleStart); elapsed >= parameter.StatsSampleInterval {
		a.fps.Set(float64(stats.Frame-a.sampleFrame) / elapsed.Seconds())
		a.sampleStart = now
		a.sampleFrame = stats.Frame
	}
}
