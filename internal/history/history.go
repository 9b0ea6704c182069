// Package history implements a linear undo log addressed by a cursor.
package history

// Log is an append-only sequence of committed items plus a cursor marking
// the last applied one. Items past the cursor are redo-pending and are
// dropped by the next Commit. The zero value is an empty log.
type Log[T any] struct {
	items  []T
	cursor int
	init   bool
}

// New returns an empty log.
func New[T any]() *Log[T] {
	return &Log[T]{cursor: -1, init: true}
}

func (l *Log[T]) ensure() {
	if !l.init {
		l.cursor = -1
		l.init = true
	}
}

// Commit truncates redo-pending items and appends item as the new head.
func (l *Log[T]) Commit(item T) {
	l.ensure()
	var zero T
	for i := l.cursor + 1; i < len(l.items); i++ {
		l.items[i] = zero
	}
	l.items = append(l.items[:l.cursor+1], item)
	l.cursor = len(l.items) - 1
}

// Undo steps the cursor back. It reports false when there is nothing to undo.
func (l *Log[T]) Undo() bool {
	if !l.CanUndo() {
		return false
	}
	l.cursor--
	return true
}

// Redo steps the cursor forward. It reports false when there is nothing to redo.
func (l *Log[T]) Redo() bool {
	if !l.CanRedo() {
		return false
	}
	l.cursor++
	return true
}

// Clear empties the log.
func (l *Log[T]) Clear() {
	l.items = nil
	l.cursor = -1
	l.init = true
}

// CanUndo reports whether an applied item exists.
func (l *Log[T]) CanUndo() bool {
	l.ensure()
	return l.cursor >= 0
}

// CanRedo reports whether a redo-pending item exists.
func (l *Log[T]) CanRedo() bool {
	l.ensure()
	return l.cursor < len(l.items)-1
}

// Cursor returns the index of the last applied item, -1 when none is.
func (l *Log[T]) Cursor() int {
	l.ensure()
	return l.cursor
}

// Len returns the number of items including redo-pending ones.
func (l *Log[T]) Len() int { return len(l.items) }

// Active returns the applied items in commit order. The slice aliases the
// log and must not be modified.
func (l *Log[T]) Active() []T {
	l.ensure()
	return l.items[:l.cursor+1]
}

// Current returns the item under the cursor.
func (l *Log[T]) Current() (T, bool) {
	l.ensure()
	if l.cursor < 0 {
		var zero T
		return zero, false
	}
	return l.items[l.cursor], true
}
