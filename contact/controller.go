// Package contact implements the contact form submission flow: disable the submit control,
// forward field data to an external sender, report the outcome in a banner and always restore
// the control afterwards.
package contact

import (
	"context"
	"log"
	"time"

	"github.com/lixenwraith/hearth/parameter"
)

// Sender is the external message-sending capability
type Sender interface {
	SendForm(ctx context.Context, serviceID, templateID string, params map[string]string) error
}

// Scheduler runs fn once after d; time.AfterFunc in production
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

// TimerScheduler schedules on the runtime timer
type TimerScheduler struct{}

func (TimerScheduler) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

// Outcome is the variant of a send result
type Outcome uint8

const (
	// OutcomeNone means no send happened (absent form or send already in flight)
	OutcomeNone Outcome = iota
	OutcomeSuccess
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	default:
		return "none"
	}
}

// Result of one submission; Err is set only for OutcomeFailure
type Result struct {
	Outcome Outcome
	Err     error
}

// Settings identify the sender route and timing
type Settings struct {
	ServiceID  string
	TemplateID string

	// HideDelay defaults to BannerHideDelay when zero
	HideDelay time.Duration
}

// Controller drives submissions for one form
type Controller struct {
	form      *Form
	sender    Sender
	scheduler Scheduler
	settings  Settings
}

// NewController wires a form to a sender
// A nil form yields a controller whose Submit does nothing
func NewController(form *Form, sender Sender, settings Settings) *Controller {
	if settings.HideDelay <= 0 {
		settings.HideDelay = parameter.BannerHideDelay
	}
	return &Controller{
		form:      form,
		sender:    sender,
		scheduler: TimerScheduler{},
		settings:  settings,
	}
}

// SetScheduler replaces the banner hide scheduler
func (c *Controller) SetScheduler(s Scheduler) {
	c.scheduler = s
}

// Form returns the controlled form, nil if absent
func (c *Controller) Form() *Form {
	return c.form
}

// Submit sends the form and blocks until the sender resolves
// The submit control is re-enabled and its content restored on every path
func (c *Controller) Submit(ctx context.Context) Result {
	f := c.form
	if f == nil {
		return Result{}
	}

	f.mu.Lock()
	if f.button.Disabled {
		f.mu.Unlock()
		return Result{}
	}
	original := f.button.Content
	sendingText := orDefault(f.button.SendingText, parameter.DefaultSendingText)
	successText := orDefault(f.successMessage, parameter.DefaultSuccessMessage)

	f.button.Disabled = true
	f.button.Content = sendingText
	params := f.valuesLocked()
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.button.Disabled = false
		f.button.Content = original
		f.mu.Unlock()
	}()

	if err := c.sender.SendForm(ctx, c.settings.ServiceID, c.settings.TemplateID, params); err != nil {
		log.Printf("FAILED... contact form send: %v", err)
		c.showFailure()
		return Result{Outcome: OutcomeFailure, Err: err}
	}

	c.showSuccess(successText)
	return Result{Outcome: OutcomeSuccess}
}

func (c *Controller) showSuccess(label string) {
	f := c.form
	f.mu.Lock()
	gen := f.showBannerLocked(BannerSuccess, parameter.SuccessGlyph+" "+label)
	f.resetLocked()
	f.mu.Unlock()

	c.scheduler.AfterFunc(c.settings.HideDelay, func() {
		f.hideBanner(gen)
	})
}

func (c *Controller) showFailure() {
	f := c.form
	f.mu.Lock()
	f.showBannerLocked(BannerError, parameter.FailureGlyph+" "+parameter.FailureMessage)
	f.mu.Unlock()
}

// showBannerLocked displays a banner and returns its generation
func (f *Form) showBannerLocked(kind BannerKind, text string) uint64 {
	f.banner.gen++
	f.banner.Kind = kind
	f.banner.Text = text
	f.banner.Visible = true
	return f.banner.gen
}

// hideBanner hides the banner if it is still the one shown at generation gen
func (f *Form) hideBanner(gen uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.banner.gen != gen {
		return
	}
	f.banner.Visible = false
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
