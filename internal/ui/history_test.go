package ui

import (
	"testing"

	"github.com/piwi3910/cutplan/internal/model"
)

func projectWith(labels ...string) model.Project {
	p := model.NewProject()
	for _, l := range labels {
		p.Cuts = append(p.Cuts, model.Cut{ID: l, Label: l, Width: 100, Length: 50, Thickness: 18, Quantity: 1})
	}
	p.Sheets = append(p.Sheets, model.Sheet{ID: "s1", Label: "Board", Width: 1220, Length: 2440, Thickness: 18, Quantity: 1})
	return p
}

func TestNewHistory(t *testing.T) {
	h := NewHistory()
	if h.maxDepth != defaultMaxDepth {
		t.Errorf("expected maxDepth %d, got %d", defaultMaxDepth, h.maxDepth)
	}
	if h.CanUndo() || h.CanRedo() {
		t.Error("new history should have nothing to undo or redo")
	}
	if h.UndoLabel() != "" {
		t.Errorf("expected empty undo label, got %q", h.UndoLabel())
	}
}

func TestTakeSnapshotIsIndependent(t *testing.T) {
	p := projectWith("Side")
	snap := TakeSnapshot(p, "edit")

	p.Cuts[0].Label = "Changed"
	p.Sheets[0].Quantity = 9

	if snap.Cuts[0].Label != "Side" {
		t.Error("snapshot cuts should not follow project edits")
	}
	if snap.Sheets[0].Quantity != 1 {
		t.Error("snapshot sheets should not follow project edits")
	}
}

func TestRestoreDropsPlanAndNormalizesLists(t *testing.T) {
	p := projectWith("Side")
	p.Plan = &model.Plan{ID: "old"}

	Snapshot{}.Restore(&p)

	if p.Plan != nil {
		t.Error("restore should drop the stale plan")
	}
	if p.Cuts == nil || p.Sheets == nil {
		t.Error("restored lists should be empty, not nil")
	}
}

func TestClearCutsUndoRedo(t *testing.T) {
	h := NewHistory()
	p := projectWith("Side", "Shelf")

	h.Push(TakeSnapshot(p, "Clear Cuts"))
	p.ClearCuts()

	if h.UndoLabel() != "Clear Cuts" {
		t.Errorf("expected undo label 'Clear Cuts', got %q", h.UndoLabel())
	}

	prev, ok := h.Undo(TakeSnapshot(p, ""))
	if !ok {
		t.Fatal("undo should succeed")
	}
	prev.Restore(&p)
	if len(p.Cuts) != 2 {
		t.Fatalf("expected 2 cuts after undo, got %d", len(p.Cuts))
	}
	if !h.CanRedo() {
		t.Fatal("redo should be available after undo")
	}

	next, ok := h.Redo(TakeSnapshot(p, ""))
	if !ok {
		t.Fatal("redo should succeed")
	}
	next.Restore(&p)
	if len(p.Cuts) != 0 {
		t.Errorf("expected no cuts after redo, got %d", len(p.Cuts))
	}
	if !h.CanUndo() {
		t.Error("undo should be available again after redo")
	}
}

func TestPushClearsRedo(t *testing.T) {
	h := NewHistory()
	h.Push(TakeSnapshot(projectWith(), "a"))
	h.Undo(TakeSnapshot(projectWith("x"), ""))

	h.Push(TakeSnapshot(projectWith(), "b"))

	if h.CanRedo() {
		t.Error("a new edit should discard the redo stack")
	}
}

func TestMaxDepthDropsOldest(t *testing.T) {
	h := NewHistory()
	h.maxDepth = 3
	for _, l := range []string{"1", "2", "3", "4", "5"} {
		h.Push(Snapshot{Label: l})
	}

	if len(h.undo) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(h.undo))
	}
	if h.undo[0].Label != "3" {
		t.Errorf("expected oldest kept entry '3', got %q", h.undo[0].Label)
	}
}

func TestUndoRedoEmpty(t *testing.T) {
	h := NewHistory()
	if _, ok := h.Undo(Snapshot{}); ok {
		t.Error("undo on empty history should fail")
	}
	if _, ok := h.Redo(Snapshot{}); ok {
		t.Error("redo on empty history should fail")
	}
	if h.CanRedo() {
		t.Error("failed undo must not create a redo entry")
	}
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory()
	h.Push(Snapshot{Label: "a"})
	h.Undo(Snapshot{Label: "b"})
	h.Push(Snapshot{Label: "c"})

	h.Clear()

	if h.CanUndo() || h.CanRedo() {
		t.Error("after clear nothing should be undoable or redoable")
	}
}
