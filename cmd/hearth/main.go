package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/hearth/audio"
	"github.com/lixenwraith/hearth/config"
	"github.com/lixenwraith/hearth/contact"
	"github.com/lixenwraith/hearth/core"
	"github.com/lixenwraith/hearth/engine"
	"github.com/lixenwraith/hearth/mailer"
	"github.com/lixenwraith/hearth/render"
	"github.com/lixenwraith/hearth/service"
	"github.com/lixenwraith/hearth/status"
)

var (
	configFlag = flag.String("config", "", "Path to config file (default: search $HEARTH_CONFIG, ./hearth.yaml, ~/.config/hearth)")
	debugFlag  = flag.Bool("debug", false, "Write debug log to logs/hearth.log")
	muteFlag   = flag.Bool("mute", false, "Disable notification tones")
	colorFlag  = flag.String("color", "auto", "Color mode: auto, truecolor, 256")
)

// newScreen creates the terminal screen
var newScreen = tcell.NewScreen

func main() {
	flag.Parse()
	os.Exit(run())
}

// run hosts the site and returns the exit code; every deferred cleanup runs before main exits
func run() int {
	// Panic Recovery: Ensure terminal is reset even if the site crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	cfg, cfgPath, err := loadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	if logFile := setupLogging(*debugFlag || cfg.Debug); logFile != nil {
		defer logFile.Close()
	}
	if cfgPath != "" {
		log.Printf("Config loaded from %s", cfgPath)
	} else {
		log.Printf("No config file found, using defaults")
	}

	applyColorMode(*colorFlag)

	// Services
	client := mailer.NewClient(mailer.WithEndpoint(cfg.Email.Endpoint))

	hub := service.NewHub()
	args := map[string][]any{
		audio.ServiceName: {*muteFlag || cfg.Audio.Muted},
	}
	if err := hub.Register(audio.NewService(audio.NewSoundManager())); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to register audio: %v\n", err)
		return 1
	}
	// Without a public key the mailer stays uninitialised and every send shows the error banner
	if cfg.Email.PublicKey != "" {
		if err := hub.Register(mailer.NewService(client)); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to register mailer: %v\n", err)
			return 1
		}
		args[mailer.ServiceName] = []any{cfg.Email.PublicKey}
	}
	if !cfg.MailReady() {
		log.Printf("Email public key, service ID or template ID not configured; contact form sends will fail")
	}

	if err := hub.InitAll(args); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize services: %v\n", err)
		return 1
	}
	if err := hub.StartAll(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start services: %v\n", err)
		return 1
	}
	defer func() {
		hub.StopAll()
		log.Printf("Services stopped")
	}()

	sounds := service.MustGet[*audio.Service](hub, audio.ServiceName)

	logo := render.NewImage(cfg.Background.LogoPath)
	logo.LoadAsync()

	// Initialize terminal
	screen, err := newScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		return 1
	}
	core.SetCrashScreen(screen)
	// Normal exit terminal cleanup
	defer func() {
		core.SetCrashScreen(nil)
		screen.Fini()
	}()

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()

	form := contact.NewForm(cfg.Form.SubmitLabel, contact.DefaultFields()...)
	form.SetSendingText(cfg.Form.SendingText)
	form.SetSuccessMessage(cfg.Form.SuccessMessage)

	controller := contact.NewController(form, client, contact.Settings{
		ServiceID:  cfg.Email.ServiceID,
		TemplateID: cfg.Email.TemplateID,
	})

	seed := cfg.Background.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	app := engine.New(engine.Options{
		Screen:         screen,
		Controller:     controller,
		Logo:           logo,
		Rand:           rand.New(rand.NewSource(seed)),
		Notifier:       sounds,
		Metrics:        status.NewRegistry(),
		ReseedOnResize: cfg.Background.ReseedOnResize,
		ShowStatus:     *debugFlag || cfg.Debug,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("Host loop ended: %v", err)
	}
	return 0
}

func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

// applyColorMode steers tcell's colour detection through its environment switches
func applyColorMode(mode string) {
	switch mode {
	case "256":
		os.Setenv("TCELL_TRUECOLOR", "disable")
	case "truecolor", "true", "24bit":
		os.Setenv("COLORTERM", "truecolor")
	}
}
