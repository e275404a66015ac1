package notify

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/tacboard/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventBackground fires when the board background could not be loaded.
	EventBackground Event = "background"
	// EventSave fires when settings are written to the config file.
	EventSave Event = "save"
)

// Environment variables overriding the notification text.
const (
	EnvTitle          = "TACBOARD_NOTIFY_TITLE"
	EnvBackgroundText = "TACBOARD_NOTIFY_BACKGROUND_TEXT"
	EnvSaveText       = "TACBOARD_NOTIFY_SAVE_TEXT"
)

// EventPreference describes formatting for a notification event.
type EventPreference struct {
	Template string
}

// Preferences describes notification behaviour loaded from configuration.
type Preferences struct {
	Title  string
	Events map[Event]EventPreference
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "tacboard",
		Events: map[Event]EventPreference{
			EventBackground: {Template: "Background unavailable: %s"},
			EventSave:       {Template: "Saved %s"},
		},
	}
}

// LoadPreferences applies overrides from getenv. A nil getenv reads the
// process environment.
func LoadPreferences(getenv func(string) string) Preferences {
	if getenv == nil {
		getenv = os.Getenv
	}
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(getenv(EnvTitle)); v != "" {
		prefs.Title = v
	}
	apply := func(key string, event Event) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			p := prefs.Events[event]
			p.Template = v
			prefs.Events[event] = p
		}
	}
	apply(EnvBackgroundText, EventBackground)
	apply(EnvSaveText, EventSave)
	return prefs
}

// Sender delivers a formatted notification.
type Sender func(title, body string, opts platform.Options) error

// Notifier sends OS-level notifications for enabled events.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	send    Sender
}

// New creates a Notifier with every event disabled.
func New(prefs Preferences) *Notifier {
	cloned := Preferences{Title: prefs.Title, Events: make(map[Event]EventPreference, len(prefs.Events))}
	for k, v := range prefs.Events {
		cloned.Events[k] = v
	}
	return &Notifier{prefs: cloned, enabled: make(map[Event]bool), send: platform.Notify}
}

// WithSender replaces the platform delivery. Used by tests.
func (n *Notifier) WithSender(s Sender) *Notifier {
	n.send = s
	return n
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	if n.enabled == nil {
		n.enabled = make(map[Event]bool)
	}
	n.enabled[event] = enabled
}

// Enabled reports whether event will be delivered.
func (n *Notifier) Enabled(event Event) bool {
	if n == nil || n.enabled == nil {
		return false
	}
	return n.enabled[event]
}

// Background reports a background that failed to load.
func (n *Notifier) Background(ref string, err error) {
	if !n.Enabled(EventBackground) {
		return
	}
	detail := strings.TrimSpace(ref)
	if detail == "" {
		detail = "default map"
	}
	if err != nil {
		detail = fmt.Sprintf("%s (%v)", detail, err)
	}
	n.dispatch(EventBackground, detail)
}

// Save reports a written config file.
func (n *Notifier) Save(path string) {
	if !n.Enabled(EventSave) {
		return
	}
	detail := strings.TrimSpace(path)
	if abs, err := filepath.Abs(detail); err == nil && detail != "" {
		detail = abs
	}
	n.dispatch(EventSave, detail)
}

func (n *Notifier) dispatch(event Event, detail string) {
	template := strings.TrimSpace(n.prefs.Events[event].Template)
	if template == "" || n.send == nil {
		return
	}
	body := template
	if strings.Contains(template, "%") {
		body = fmt.Sprintf(template, detail)
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return
	}
	if err := n.send(n.prefs.Title, body, platform.Options{}); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}
