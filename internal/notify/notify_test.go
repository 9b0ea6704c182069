package notify

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/maskbrush/internal/platform"
)

func recorder(n *Notifier) *[]platform.Notification {
	var got []platform.Notification
	n.SetSender(func(msg platform.Notification) error {
		if msg.Image != "" {
			if _, err := os.Stat(msg.Image); err != nil {
				msg.Body += " (icon missing)"
			}
		}
		got = append(got, msg)
		return nil
	})
	return &got
}

func TestDisabledEventsAreSilent(t *testing.T) {
	n := New(DefaultPreferences())
	got := recorder(n)
	n.Export("out.png")
	n.Copy("")
	n.Refine("result 1", nil)
	if len(*got) != 0 {
		t.Fatalf("sent %d notifications while disabled", len(*got))
	}
}

func TestExportUsesAbsolutePathAsIcon(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mask.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	n := New(DefaultPreferences())
	n.Enable(EventExport, true)
	got := recorder(n)
	n.Export(path)
	if len(*got) != 1 {
		t.Fatalf("sent %d notifications, want 1", len(*got))
	}
	s := (*got)[0]
	if s.Title != "maskbrush" || !strings.Contains(s.Body, path) || s.Image != path || s.Category != "transfer.complete" {
		t.Fatalf("unexpected notification %+v", s)
	}
}

func TestCopyDefaultsDetail(t *testing.T) {
	n := New(DefaultPreferences())
	n.Enable(EventCopy, true)
	got := recorder(n)
	n.Copy("  ")
	if len(*got) != 1 || (*got)[0].Body != "Copied mask to clipboard" {
		t.Fatalf("unexpected notifications %+v", *got)
	}
}

func TestRefinePreviewIsCleanedUp(t *testing.T) {
	n := New(DefaultPreferences())
	n.Enable(EventRefine, true)
	got := recorder(n)
	n.Refine("result 2", image.NewRGBA(image.Rect(0, 0, 2, 2)))
	if len(*got) != 1 {
		t.Fatalf("sent %d notifications, want 1", len(*got))
	}
	s := (*got)[0]
	if s.Image == "" || strings.Contains(s.Body, "icon missing") {
		t.Fatalf("preview not available while sending: %+v", s)
	}
	if _, err := os.Stat(s.Image); !os.IsNotExist(err) {
		t.Fatalf("preview %s not removed", s.Image)
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("MASKBRUSH_NOTIFY_TITLE", "Masks")
	t.Setenv("MASKBRUSH_NOTIFY_COPY_TEXT", "Clipboard: %s")
	prefs := LoadPreferences()
	if prefs.Title != "Masks" || prefs.Events[EventCopy].Template != "Clipboard: %s" {
		t.Fatalf("unexpected preferences %+v", prefs)
	}
}
