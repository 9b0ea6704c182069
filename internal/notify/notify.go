// Package notify reports finished exports, copies and refinements as
// desktop notifications.
package notify

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/maskbrush/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventExport fires when a masked export is written to disk.
	EventExport Event = "export"
	// EventCopy fires when an export is copied to the clipboard.
	EventCopy Event = "copy"
	// EventRefine fires when a refined result is applied.
	EventRefine Event = "refine"
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
		Title: "maskbrush",
		Events: map[Event]EventPreference{
			EventExport: {Template: "Saved mask to %s"},
			EventCopy:   {Template: "Copied %s to clipboard"},
			EventRefine: {Template: "Applied refinement to %s"},
		},
	}
}

// LoadPreferences reads configuration from environment variables.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("MASKBRUSH_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	apply := func(key string, event Event) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			eventPrefs := prefs.Events[event]
			eventPrefs.Template = v
			prefs.Events[event] = eventPrefs
		}
	}
	apply("MASKBRUSH_NOTIFY_EXPORT_TEXT", EventExport)
	apply("MASKBRUSH_NOTIFY_COPY_TEXT", EventCopy)
	apply("MASKBRUSH_NOTIFY_REFINE_TEXT", EventRefine)
	return prefs
}

// Sender delivers a notification. platform.Notify is used by default.
type Sender func(platform.Notification) error

// Notifier sends OS-level notifications based on the configured preferences.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	send    Sender
}

// New creates a new Notifier using the provided preferences.
func New(prefs Preferences) *Notifier {
	cloned := Preferences{Title: prefs.Title, Events: make(map[Event]EventPreference, len(prefs.Events))}
	for k, v := range prefs.Events {
		cloned.Events[k] = v
	}
	return &Notifier{prefs: cloned, enabled: make(map[Event]bool), send: platform.Notify}
}

// SetSender replaces the delivery function.
func (n *Notifier) SetSender(s Sender) {
	if n != nil && s != nil {
		n.send = s
	}
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

// Export announces a written export, showing the file as the icon when the
// platform supports it.
func (n *Notifier) Export(path string) {
	if !n.enabledFor(EventExport) {
		return
	}
	detail := strings.TrimSpace(path)
	msg := platform.Notification{Category: "transfer.complete"}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, statErr := os.Stat(abs); statErr == nil {
			msg.Image = abs
		}
	}
	n.dispatch(EventExport, detail, msg)
}

// Copy sends a clipboard notification.
func (n *Notifier) Copy(detail string) {
	if !n.enabledFor(EventCopy) {
		return
	}
	if strings.TrimSpace(detail) == "" {
		detail = "mask"
	}
	n.dispatch(EventCopy, detail, platform.Notification{Category: "transfer.complete"})
}

// Refine announces an applied refinement with a preview of the result.
func (n *Notifier) Refine(detail string, img image.Image) {
	if !n.enabledFor(EventRefine) {
		return
	}
	msg := platform.Notification{}
	if img != nil {
		if path, cleanup, err := createPreview(img); err != nil {
			log.Printf("notification preview: %v", err)
		} else {
			defer cleanup()
			msg.Image = path
		}
	}
	n.dispatch(EventRefine, detail, msg)
}

func (n *Notifier) enabledFor(event Event) bool {
	if n == nil || n.enabled == nil {
		return false
	}
	return n.enabled[event]
}

// dispatch fills msg's title and body from the event template and sends it.
func (n *Notifier) dispatch(event Event, detail string, msg platform.Notification) {
	template := strings.TrimSpace(n.template(event))
	if template == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(template, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	send := n.send
	if send == nil {
		send = platform.Notify
	}
	msg.Title, msg.Body = n.prefs.Title, body
	if err := send(msg); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

func (n *Notifier) template(event Event) string {
	if pref, ok := n.prefs.Events[event]; ok {
		return pref.Template
	}
	return ""
}

func createPreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "maskbrush-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("remove preview: %v", err)
		}
	}
	return path, cleanup, nil
}
