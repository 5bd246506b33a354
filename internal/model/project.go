package model

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateLabel = errors.New("label already exists")
	ErrNotFound       = errors.New("not found")
)

// Project ties cuts, stock and settings together for save/load.
// Labels are unique within the cut list and within the sheet list.
type Project struct {
	Name     string      `json:"name"`
	Cuts     []Cut       `json:"cuts"`
	Sheets   []Sheet     `json:"sheets"`
	Settings CutSettings `json:"settings"`
	Plan     *Plan       `json:"plan,omitempty"`
}

func NewProject() Project {
	return Project{
		Name:     "Untitled",
		Cuts:     []Cut{},
		Sheets:   []Sheet{},
		Settings: DefaultSettings(),
	}
}

// AddCut validates and appends a cut. The label must not already be in use.
func (p *Project) AddCut(c Cut) error {
	if err := ValidateCut(c); err != nil {
		return err
	}
	if p.findCutByLabel(c.Label) >= 0 {
		return fmt.Errorf("cut %q: %w", c.Label, ErrDuplicateLabel)
	}
	p.Cuts = append(p.Cuts, c)
	return nil
}

// UpdateCut replaces the cut with the same ID.
func (p *Project) UpdateCut(c Cut) error {
	idx := p.findCutByID(c.ID)
	if idx < 0 {
		return fmt.Errorf("cut %s: %w", c.ID, ErrNotFound)
	}
	if err := ValidateCut(c); err != nil {
		return err
	}
	if other := p.findCutByLabel(c.Label); other >= 0 && other != idx {
		return fmt.Errorf("cut %q: %w", c.Label, ErrDuplicateLabel)
	}
	p.Cuts[idx] = c
	return nil
}

// RemoveCut deletes the cut with the given ID.
func (p *Project) RemoveCut(id string) error {
	idx := p.findCutByID(id)
	if idx < 0 {
		return fmt.Errorf("cut %s: %w", id, ErrNotFound)
	}
	p.Cuts = append(p.Cuts[:idx:idx], p.Cuts[idx+1:]...)
	return nil
}

// ClearCuts removes all cuts.
func (p *Project) ClearCuts() {
	p.Cuts = []Cut{}
}

// FindCut returns a pointer to the cut with the given ID, or nil.
func (p *Project) FindCut(id string) *Cut {
	if idx := p.findCutByID(id); idx >= 0 {
		return &p.Cuts[idx]
	}
	return nil
}

// AddSheet validates and appends a sheet. The label must not already be in use.
func (p *Project) AddSheet(s Sheet) error {
	if err := ValidateSheet(s); err != nil {
		return err
	}
	if p.findSheetByLabel(s.Label) >= 0 {
		return fmt.Errorf("sheet %q: %w", s.Label, ErrDuplicateLabel)
	}
	p.Sheets = append(p.Sheets, s)
	return nil
}

// UpdateSheet replaces the sheet with the same ID.
func (p *Project) UpdateSheet(s Sheet) error {
	idx := p.findSheetByID(s.ID)
	if idx < 0 {
		return fmt.Errorf("sheet %s: %w", s.ID, ErrNotFound)
	}
	if err := ValidateSheet(s); err != nil {
		return err
	}
	if other := p.findSheetByLabel(s.Label); other >= 0 && other != idx {
		return fmt.Errorf("sheet %q: %w", s.Label, ErrDuplicateLabel)
	}
	p.Sheets[idx] = s
	return nil
}

// RemoveSheet deletes the sheet with the given ID.
func (p *Project) RemoveSheet(id string) error {
	idx := p.findSheetByID(id)
	if idx < 0 {
		return fmt.Errorf("sheet %s: %w", id, ErrNotFound)
	}
	p.Sheets = append(p.Sheets[:idx:idx], p.Sheets[idx+1:]...)
	return nil
}

// FindSheet returns a pointer to the sheet with the given ID, or nil.
func (p *Project) FindSheet(id string) *Sheet {
	if idx := p.findSheetByID(id); idx >= 0 {
		return &p.Sheets[idx]
	}
	return nil
}

func (p *Project) findCutByID(id string) int {
	for i := range p.Cuts {
		if p.Cuts[i].ID == id {
			return i
		}
	}
	return -1
}

func (p *Project) findCutByLabel(label string) int {
	for i := range p.Cuts {
		if p.Cuts[i].Label == label {
			return i
		}
	}
	return -1
}

func (p *Project) findSheetByID(id string) int {
	for i := range p.Sheets {
		if p.Sheets[i].ID == id {
			return i
		}
	}
	return -1
}

func (p *Project) findSheetByLabel(label string) int {
	for i := range p.Sheets {
		if p.Sheets[i].Label == label {
			return i
		}
	}
	return -1
}
