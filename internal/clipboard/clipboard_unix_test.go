//go:build linux || freebsd || openbsd || netbsd || dragonfly

package clipboard

import (
	"errors"
	"sync"
	"testing"
)

func TestEnsureInitWithoutDisplay(t *testing.T) {
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")

	initOnce = sync.Once{}
	initErr = nil
	t.Cleanup(func() {
		initOnce = sync.Once{}
		initErr = nil
	})

	if err := WriteText("hello world"); !errors.Is(err, errNoDisplay) {
		t.Fatalf("expected errNoDisplay, got %v", err)
	}
	if _, _, err := ReadMask(); !errors.Is(err, errNoDisplay) {
		t.Fatalf("expected errNoDisplay from ReadMask, got %v", err)
	}
}

func TestWritePNGRejectsEmpty(t *testing.T) {
	if err := WritePNG(nil); err == nil {
		t.Fatal("expected error for empty data")
	}
}
