package ui

import (
	"slices"

	"github.com/piwi3910/cutplan/internal/model"
)

const defaultMaxDepth = 50

// Snapshot captures the cut and sheet lists at a point in time.
type Snapshot struct {
	Cuts   []model.Cut
	Sheets []model.Sheet
	Label  string // Name of the edit that follows, e.g. "Clear Cuts"
}

// TakeSnapshot copies the project lists so later edits do not leak into
// the history.
func TakeSnapshot(p model.Project, label string) Snapshot {
	return Snapshot{
		Cuts:   slices.Clone(p.Cuts),
		Sheets: slices.Clone(p.Sheets),
		Label:  label,
	}
}

// Restore writes the snapshot's lists back into p. The stored plan is
// dropped because it no longer matches the inputs.
func (s Snapshot) Restore(p *model.Project) {
	p.Cuts = slices.Clone(s.Cuts)
	p.Sheets = slices.Clone(s.Sheets)
	if p.Cuts == nil {
		p.Cuts = []model.Cut{}
	}
	if p.Sheets == nil {
		p.Sheets = []model.Sheet{}
	}
	p.Plan = nil
}

// History keeps bounded undo and redo stacks of snapshots.
type History struct {
	undo     []Snapshot
	redo     []Snapshot
	maxDepth int
}

func NewHistory() *History {
	return &History{maxDepth: defaultMaxDepth}
}

// Push records the state before an edit and discards the redo stack.
// The oldest entry is dropped once the stack exceeds its depth.
func (h *History) Push(s Snapshot) {
	h.undo = append(h.undo, s)
	if over := len(h.undo) - h.maxDepth; over > 0 {
		h.undo = slices.Delete(h.undo, 0, over)
	}
	h.redo = nil
}

// Undo returns the state before the last edit and keeps current for Redo.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	prev, ok := pop(&h.undo)
	if ok {
		h.redo = append(h.redo, current)
	}
	return prev, ok
}

// Redo returns the state an Undo stepped back from and keeps current for Undo.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	next, ok := pop(&h.redo)
	if ok {
		h.undo = append(h.undo, current)
	}
	return next, ok
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// UndoLabel names the edit Undo would revert, or "" when there is none.
func (h *History) UndoLabel() string {
	if len(h.undo) == 0 {
		return ""
	}
	return h.undo[len(h.undo)-1].Label
}

func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}

func pop(stack *[]Snapshot) (Snapshot, bool) {
	n := len(*stack)
	if n == 0 {
		return Snapshot{}, false
	}
	s := (*stack)[n-1]
	*stack = (*stack)[:n-1]
	return s, true
}
