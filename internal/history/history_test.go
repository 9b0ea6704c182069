package history

import "testing"

func TestEmptyLog(t *testing.T) {
	l := New[string]()
	if l.CanUndo() || l.CanRedo() {
		t.Fatal("empty log should have nothing to undo or redo")
	}
	if l.Cursor() != -1 {
		t.Fatalf("cursor %d, want -1", l.Cursor())
	}
	if l.Undo() || l.Redo() {
		t.Fatal("undo/redo on empty log should be no-ops")
	}
	if _, ok := l.Current(); ok {
		t.Fatal("empty log has no current item")
	}
}

func TestZeroValueLog(t *testing.T) {
	var l Log[int]
	if l.Cursor() != -1 || l.CanUndo() {
		t.Fatal("zero log should start empty")
	}
	l.Commit(1)
	if l.Cursor() != 0 || len(l.Active()) != 1 {
		t.Fatalf("unexpected state cursor=%d active=%v", l.Cursor(), l.Active())
	}
}

func TestUndoRedo(t *testing.T) {
	l := New[int]()
	l.Commit(1)
	l.Commit(2)
	if !l.Undo() {
		t.Fatal("undo should succeed")
	}
	if got := l.Active(); len(got) != 1 || got[0] != 1 {
		t.Fatalf("active %v, want [1]", got)
	}
	if !l.CanRedo() {
		t.Fatal("expected redo to be available")
	}
	if !l.Redo() {
		t.Fatal("redo should succeed")
	}
	if got := l.Active(); len(got) != 2 {
		t.Fatalf("active %v, want [1 2]", got)
	}
	if l.Redo() {
		t.Fatal("redo at head should be a no-op")
	}
}

func TestUndoToEmpty(t *testing.T) {
	l := New[int]()
	l.Commit(1)
	l.Undo()
	if l.Cursor() != -1 || len(l.Active()) != 0 {
		t.Fatalf("expected empty active prefix, cursor=%d", l.Cursor())
	}
	if l.Undo() {
		t.Fatal("undo past the start should be a no-op")
	}
	if !l.CanRedo() {
		t.Fatal("expected redo to be available")
	}
}

func TestCommitTruncatesRedoTail(t *testing.T) {
	l := New[string]()
	l.Commit("a")
	l.Undo()
	l.Commit("c")
	if l.Len() != 1 {
		t.Fatalf("len %d, want 1", l.Len())
	}
	if l.CanRedo() || l.Redo() {
		t.Fatal("redo must be a no-op after a commit")
	}
	if cur, _ := l.Current(); cur != "c" {
		t.Fatalf("current %q, want c", cur)
	}
}

func TestClear(t *testing.T) {
	l := New[int]()
	l.Commit(1)
	l.Commit(2)
	l.Undo()
	l.Clear()
	if l.Len() != 0 || l.Cursor() != -1 || l.CanRedo() || l.CanUndo() {
		t.Fatalf("clear left state len=%d cursor=%d", l.Len(), l.Cursor())
	}
}
