//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/example/maskbrush/internal/raster"
)

// requestTimeout bounds how long a read waits for the selection owner.
const requestTimeout = 2 * time.Second

var (
	initOnce     sync.Once
	initErr      error
	errNoDisplay = errors.New("clipboard requires an X11 display")
	board        *x11Clipboard
)

func ensureInit() error {
	initOnce.Do(func() {
		if os.Getenv("DISPLAY") == "" {
			initErr = errNoDisplay
			return
		}
		board, initErr = openX11Clipboard()
	})
	return initErr
}

// writePNG offers the image both as image/png and as a data URL so text-only
// targets such as browser inputs can paste the mask too.
func writePNG(data []byte) error {
	if err := ensureInit(); err != nil {
		return err
	}
	return board.offer(map[xproto.Atom][]byte{
		board.atoms.png:  data,
		board.atoms.utf8: []byte(raster.EncodeDataURL(data)),
	})
}

func readPNG() ([]byte, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	return board.convert(board.atoms.png)
}

func writeText(data []byte) error {
	if err := ensureInit(); err != nil {
		return err
	}
	return board.offer(map[xproto.Atom][]byte{board.atoms.utf8: data})
}

func readText() ([]byte, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	data, err := board.convert(board.atoms.utf8)
	if err != nil {
		return board.convert(xproto.AtomString)
	}
	return data, nil
}

// x11Clipboard owns the CLIPBOARD selection from a hidden window while an
// export is offered, and converts selections held by other clients on read.
type x11Clipboard struct {
	conn    *xgb.Conn
	window  xproto.Window
	atoms   atoms
	mu      sync.RWMutex
	offered map[xproto.Atom][]byte
}

type atoms struct {
	clipboard xproto.Atom
	targets   xproto.Atom
	utf8      xproto.Atom
	textPlain xproto.Atom
	png       xproto.Atom
	property  xproto.Atom
}

func openX11Clipboard() (*x11Clipboard, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	window, err := hiddenWindow(conn, xproto.EventMaskPropertyChange|xproto.EventMaskStructureNotify)
	if err != nil {
		conn.Close()
		return nil, err
	}
	a, err := internAtoms(conn)
	if err != nil {
		xproto.DestroyWindow(conn, window)
		conn.Close()
		return nil, err
	}
	c := &x11Clipboard{conn: conn, window: window, atoms: a}
	go c.serve()
	return c, nil
}

func hiddenWindow(conn *xgb.Conn, mask uint32) (xproto.Window, error) {
	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		return 0, err
	}
	err = xproto.CreateWindowChecked(conn, 0, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOnly, 0, xproto.CwEventMask, []uint32{mask}).Check()
	return window, err
}

func internAtoms(conn *xgb.Conn) (atoms, error) {
	names := []string{"CLIPBOARD", "TARGETS", "UTF8_STRING", "text/plain;charset=utf-8", "image/png", "MASKBRUSH_CLIPBOARD"}
	cookies := make([]xproto.InternAtomCookie, len(names))
	for i, name := range names {
		cookies[i] = xproto.InternAtom(conn, false, uint16(len(name)), name)
	}
	got := make([]xproto.Atom, len(names))
	for i, cookie := range cookies {
		reply, err := cookie.Reply()
		if err != nil {
			return atoms{}, fmt.Errorf("intern %s: %w", names[i], err)
		}
		got[i] = reply.Atom
	}
	return atoms{
		clipboard: got[0],
		targets:   got[1],
		utf8:      got[2],
		textPlain: got[3],
		png:       got[4],
		property:  got[5],
	}, nil
}

func (c *x11Clipboard) offer(targets map[xproto.Atom][]byte) error {
	offered := make(map[xproto.Atom][]byte, len(targets)+2)
	for target, data := range targets {
		offered[target] = append([]byte(nil), data...)
	}
	if text, ok := offered[c.atoms.utf8]; ok {
		offered[xproto.AtomString] = text
		offered[c.atoms.textPlain] = text
	}
	c.mu.Lock()
	c.offered = offered
	c.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(c.conn, c.window, c.atoms.clipboard, xproto.TimeCurrentTime).Check()
}

func (c *x11Clipboard) serve() {
	for {
		ev, err := c.conn.WaitForEvent()
		if err != nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			c.answer(e)
		case xproto.SelectionClearEvent:
			c.mu.Lock()
			c.offered = nil
			c.mu.Unlock()
		}
	}
}

// answer writes the requested target onto the requestor's property and
// notifies it. Unknown targets are refused with a None property.
func (c *x11Clipboard) answer(e xproto.SelectionRequestEvent) {
	property := e.Property
	if property == xproto.AtomNone {
		property = e.Target
	}

	c.mu.RLock()
	offered := c.offered
	c.mu.RUnlock()

	switch data, ok := offered[e.Target]; {
	case e.Target == c.atoms.targets:
		list := []xproto.Atom{c.atoms.targets}
		for target := range offered {
			list = append(list, target)
		}
		sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
		xproto.ChangeProperty(c.conn, xproto.PropModeReplace, e.Requestor, property, xproto.AtomAtom, 32, uint32(len(list)), atomsToBytes(list))
	case ok:
		typ := e.Target
		if typ == xproto.AtomString || typ == c.atoms.textPlain {
			typ = c.atoms.utf8
		}
		xproto.ChangeProperty(c.conn, xproto.PropModeReplace, e.Requestor, property, typ, 8, uint32(len(data)), data)
	default:
		property = xproto.AtomNone
	}

	notify := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  property,
	}
	_ = xproto.SendEvent(c.conn, false, e.Requestor, 0, string(notify.Bytes()))
}

// convert asks the current selection owner for target on a private
// connection, so reads never race the serve loop for events.
func (c *x11Clipboard) convert(target xproto.Atom) ([]byte, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	window, err := hiddenWindow(conn, xproto.EventMaskPropertyChange)
	if err != nil {
		return nil, err
	}
	defer xproto.DestroyWindow(conn, window)

	if err := xproto.ConvertSelectionChecked(conn, window, c.atoms.clipboard, target, c.atoms.property, xproto.TimeCurrentTime).Check(); err != nil {
		return nil, err
	}

	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		data, err := awaitSelection(conn, window, c.atoms.property)
		done <- result{data, err}
	}()
	select {
	case r := <-done:
		return r.data, r.err
	case <-time.After(requestTimeout):
		return nil, fmt.Errorf("clipboard owner did not answer within %s", requestTimeout)
	}
}

func awaitSelection(conn *xgb.Conn, window xproto.Window, property xproto.Atom) ([]byte, error) {
	for {
		ev, err := conn.WaitForEvent()
		if err != nil {
			return nil, err
		}
		e, ok := ev.(xproto.SelectionNotifyEvent)
		if !ok {
			continue
		}
		if e.Property == xproto.AtomNone {
			return nil, fmt.Errorf("clipboard target unavailable")
		}
		if e.Property != property {
			continue
		}
		reply, perr := xproto.GetProperty(conn, true, window, property, xproto.GetPropertyTypeAny, 0, (1<<31)-1).Reply()
		if perr != nil {
			return nil, perr
		}
		return append([]byte(nil), reply.Value...), nil
	}
}

func atomsToBytes(list []xproto.Atom) []byte {
	buf := make([]byte, len(list)*4)
	for i, atom := range list {
		xgb.Put32(buf[i*4:], uint32(atom))
	}
	return buf
}
