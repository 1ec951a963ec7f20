package contact

import (
	"sync"
	"unicode/utf8"
)

// Field is one named input of the form
type Field struct {
	Name      string
	Label     string
	Value     string
	Multiline bool
}

// Button is the submit control
// SendingText mirrors the data-sending-text attribute; empty means absent
type Button struct {
	Content     string
	Disabled    bool
	SendingText string
}

// BannerKind selects the banner styling
type BannerKind uint8

const (
	BannerNone BannerKind = iota
	BannerSuccess
	BannerError
)

func (k BannerKind) String() string {
	switch k {
	case BannerSuccess:
		return "success"
	case BannerError:
		return "error"
	default:
		return "none"
	}
}

// Banner is the status message shown under the form
type Banner struct {
	Kind    BannerKind
	Text    string
	Visible bool

	// gen increments on every show so a stale hide timer cannot hide a newer banner
	gen uint64
}

// Form holds field values and UI state shared between the input loop and a running submission
// SuccessMessage mirrors the data-success-message attribute; empty means absent
type Form struct {
	mu sync.RWMutex

	fields         []Field
	button         Button
	successMessage string
	banner         Banner

	// focus indexes fields; len(fields) is the submit button, -1 is nothing
	focus int
}

// NewForm creates a form with the given fields and submit label
func NewForm(submitLabel string, fields ...Field) *Form {
	return &Form{
		fields: append([]Field(nil), fields...),
		button: Button{Content: submitLabel},
	}
}

// DefaultFields are the inputs of the contact page
func DefaultFields() []Field {
	return []Field{
		{Name: "user_name", Label: "Name"},
		{Name: "user_email", Label: "Email"},
		{Name: "message", Label: "Message", Multiline: true},
	}
}

// SetSendingText sets the submit control's sending label attribute
func (f *Form) SetSendingText(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.button.SendingText = text
}

// SetSuccessMessage sets the form's success label attribute
func (f *Form) SetSuccessMessage(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.successMessage = text
}

// SetValue sets a field by name, returns false if no such field
func (f *Form) SetValue(name, value string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.fields {
		if f.fields[i].Name == name {
			f.fields[i].Value = value
			return true
		}
	}
	return false
}

// Values returns field data keyed by name
func (f *Form) Values() map[string]string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.valuesLocked()
}

func (f *Form) valuesLocked() map[string]string {
	values := make(map[string]string, len(f.fields))
	for _, fl := range f.fields {
		values[fl.Name] = fl.Value
	}
	return values
}

// Reset clears every field value
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLocked()
}

func (f *Form) resetLocked() {
	for i := range f.fields {
		f.fields[i].Value = ""
	}
}

// --- Focus and editing, driven by the input loop ---

// FocusNext moves focus forward, wrapping past the submit button
// From no focus it lands on the first field
func (f *Form) FocusNext() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.focus = (f.focus + 1) % (len(f.fields) + 1)
}

// FocusPrev moves focus backward; from no focus it lands on the button
func (f *Form) FocusPrev() {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := len(f.fields) + 1
	if f.focus < 0 {
		f.focus = n - 1
		return
	}
	f.focus = (f.focus - 1 + n) % n
}

// Blur drops focus; typed values are kept
func (f *Form) Blur() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.focus = -1
}

// fieldFocusedLocked reports whether focus is on an input field
func (f *Form) fieldFocusedLocked() bool {
	return f.focus >= 0 && f.focus < len(f.fields)
}

// ButtonFocused reports whether the submit button has focus
func (f *Form) ButtonFocused() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.focus == len(f.fields)
}

// FocusedMultiline reports whether the focused field accepts newlines
func (f *Form) FocusedMultiline() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.fieldFocusedLocked() && f.fields[f.focus].Multiline
}

// InsertRune appends to the focused field; ignored on the button or while sending
func (f *Form) InsertRune(r rune) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.fieldFocusedLocked() || f.button.Disabled {
		return
	}
	if r == '\n' && !f.fields[f.focus].Multiline {
		return
	}
	f.fields[f.focus].Value += string(r)
}

// Backspace removes the last rune of the focused field
func (f *Form) Backspace() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.fieldFocusedLocked() || f.button.Disabled {
		return
	}
	v := f.fields[f.focus].Value
	if v == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(v)
	f.fields[f.focus].Value = v[:len(v)-size]
}

// Snapshot is a consistent copy of the form for rendering
type Snapshot struct {
	Fields []Field
	Button Button
	Banner Banner
	Focus  int
}

// Snapshot copies the current state
func (f *Form) Snapshot() Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return Snapshot{
		Fields: append([]Field(nil), f.fields...),
		Button: f.button,
		Banner: f.banner,
		Focus:  f.focus,
	}
}
