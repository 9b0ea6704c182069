package appstate

import (
	"unicode"

	"golang.org/x/mobile/event/key"
)

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// Action names bound to keys.
const (
	ActionDraw    = "draw"
	ActionErase   = "erase"
	ActionRestore = "restore"
	ActionShrink  = "shrink"
	ActionGrow    = "grow"
	ActionUndo    = "undo"
	ActionRedo    = "redo"
	ActionClear   = "clear"
	ActionSave    = "save"
	ActionCopy    = "copy"
	ActionPaste   = "paste"
	ActionApply   = "apply"
	ActionCancel  = "cancel"
	ActionQuit    = "quit"
)

// Keymap resolves key events to action names.
type Keymap map[KeyShortcut]string

func (m Keymap) bind(action string, keys ...KeyShortcut) {
	for _, k := range keys {
		m[k] = action
	}
}

// PaintKeymap returns the bindings of the mask painting window.
func PaintKeymap() Keymap {
	m := Keymap{}
	m.bind(ActionDraw, KeyShortcut{Rune: 'b'})
	m.bind(ActionErase, KeyShortcut{Rune: 'e'})
	m.bind(ActionShrink, KeyShortcut{Rune: '['})
	m.bind(ActionGrow, KeyShortcut{Rune: ']'})
	m.bind(ActionUndo, KeyShortcut{Rune: 'z', Modifiers: key.ModControl})
	m.bind(ActionRedo,
		KeyShortcut{Rune: 'y', Modifiers: key.ModControl},
		KeyShortcut{Rune: 'z', Modifiers: key.ModControl | key.ModShift},
	)
	m.bind(ActionClear, KeyShortcut{Code: key.CodeDeleteForward})
	m.bind(ActionSave, KeyShortcut{Rune: 's', Modifiers: key.ModControl})
	m.bind(ActionCopy, KeyShortcut{Rune: 'c', Modifiers: key.ModControl})
	m.bind(ActionPaste, KeyShortcut{Rune: 'v', Modifiers: key.ModControl})
	m.bind(ActionQuit, KeyShortcut{Rune: 'q'})
	return m
}

// RefineKeymap returns the bindings of the refinement window.
func RefineKeymap() Keymap {
	m := Keymap{}
	m.bind(ActionErase, KeyShortcut{Rune: 'e'})
	m.bind(ActionRestore, KeyShortcut{Rune: 'r'})
	m.bind(ActionShrink, KeyShortcut{Rune: '['})
	m.bind(ActionGrow, KeyShortcut{Rune: ']'})
	m.bind(ActionApply, KeyShortcut{Code: key.CodeReturnEnter})
	m.bind(ActionCancel, KeyShortcut{Code: key.CodeEscape})
	return m
}

var letterCodes = map[key.Code]rune{
	key.CodeB: 'b', key.CodeC: 'c', key.CodeE: 'e', key.CodeQ: 'q', key.CodeR: 'r',
	key.CodeS: 's', key.CodeV: 'v', key.CodeY: 'y', key.CodeZ: 'z',
	key.CodeLeftSquareBracket: '[', key.CodeRightSquareBracket: ']',
}

// Lookup returns the action bound to e. Shift is ignored for printable
// keys unless the binding names it, and the rune is recovered from the key
// code when a modifier suppressed it.
func (m Keymap) Lookup(e key.Event) (string, bool) {
	mods := e.Modifiers & (key.ModControl | key.ModShift | key.ModAlt | key.ModMeta)
	r := unicode.ToLower(e.Rune)
	if r <= 0 || unicode.IsControl(r) {
		r = letterCodes[e.Code]
	}
	if r > 0 {
		if a, ok := m[KeyShortcut{Rune: r, Modifiers: mods}]; ok {
			return a, true
		}
		if a, ok := m[KeyShortcut{Rune: r, Modifiers: mods &^ key.ModShift}]; ok {
			return a, true
		}
	}
	a, ok := m[KeyShortcut{Code: e.Code, Modifiers: mods}]
	return a, ok
}
