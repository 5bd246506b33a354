package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Priority is the usage preference of a stock sheet. High-priority stock
// (offcuts, designated boards) is consumed before normal and low stock.
type Priority int

const (
	PriorityNormal Priority = iota // Zero value, default for new sheets
	PriorityHigh
	PriorityLow
)

// Rank returns the fixed ordering position of the priority: High=0, Normal=1, Low=2.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityLow:
		return 2
	default:
		return 1
	}
}

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityLow:
		return "low"
	default:
		return "normal"
	}
}

// ParsePriority converts a priority name to a Priority. Matching is
// case-insensitive and an empty string yields PriorityNormal.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "h":
		return PriorityHigh, nil
	case "normal", "n", "":
		return PriorityNormal, nil
	case "low", "l":
		return PriorityLow, nil
	default:
		return PriorityNormal, fmt.Errorf("unknown priority %q", s)
	}
}

// Priorities lists every priority in rank order.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityNormal, PriorityLow}
}

func (p Priority) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Priority) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePriority(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Cut is a requested rectangular piece, possibly needed several times.
type Cut struct {
	ID        string  `json:"id"`
	Label     string  `json:"label"`
	Width     float64 `json:"width"`     // mm
	Length    float64 `json:"length"`    // mm
	Thickness float64 `json:"thickness"` // mm
	Quantity  int     `json:"quantity"`
}

func NewCut(label string, w, l, thickness float64, qty int) Cut {
	return Cut{
		ID:        uuid.New().String()[:8],
		Label:     label,
		Width:     w,
		Length:    l,
		Thickness: thickness,
		Quantity:  qty,
	}
}

// Sheet is an available stock board, possibly in several identical copies.
type Sheet struct {
	ID        string   `json:"id"`
	Label     string   `json:"label"`
	Width     float64  `json:"width"`     // mm
	Length    float64  `json:"length"`    // mm
	Thickness float64  `json:"thickness"` // mm
	Priority  Priority `json:"priority"`
	Quantity  int      `json:"quantity"`
}

func NewSheet(label string, w, l, thickness float64, priority Priority, qty int) Sheet {
	return Sheet{
		ID:        uuid.New().String()[:8],
		Label:     label,
		Width:     w,
		Length:    l,
		Thickness: thickness,
		Priority:  priority,
		Quantity:  qty,
	}
}

// FreeRegion is an unoccupied axis-aligned rectangle of a sheet.
type FreeRegion struct {
	X      float64
	Y      float64
	Width  float64
	Length float64
}

func (r FreeRegion) Area() float64 {
	return r.Width * r.Length
}

// Piece is a single physical unit of a Cut. Quantity is always 1.
type Piece struct {
	ID        string  `json:"id"`
	Label     string  `json:"label"`
	Width     float64 `json:"width"`
	Length    float64 `json:"length"`
	Thickness float64 `json:"thickness"`
	Quantity  int     `json:"quantity"`
}

func (p Piece) Area() float64 {
	return p.Width * p.Length
}

// StockUnit is a single physical instance of a Sheet.
type StockUnit struct {
	ID        string   `json:"id"`
	SourceID  string   `json:"source_id"` // ID of the Sheet this unit was expanded from
	Label     string   `json:"label"`
	Width     float64  `json:"width"`
	Length    float64  `json:"length"`
	Thickness float64  `json:"thickness"`
	Priority  Priority `json:"priority"`
}

func (s StockUnit) Area() float64 {
	return s.Width * s.Length
}

// Placement is a piece positioned on a stock unit.
type Placement struct {
	Piece   Piece     `json:"piece"`
	Stock   StockUnit `json:"stock"`
	X       float64   `json:"x"`       // Top-left corner, mm from left edge
	Y       float64   `json:"y"`       // Top-left corner, mm from top edge
	Rotated bool      `json:"rotated"` // Width and length swapped
}

// PlacedWidth returns the footprint width on the sheet, considering rotation.
func (p Placement) PlacedWidth() float64 {
	if p.Rotated {
		return p.Piece.Length
	}
	return p.Piece.Width
}

// PlacedLength returns the footprint length on the sheet, considering rotation.
func (p Placement) PlacedLength() float64 {
	if p.Rotated {
		return p.Piece.Width
	}
	return p.Piece.Length
}

func (p Placement) Area() float64 {
	return p.Piece.Area()
}

// UnplacedReason classifies why a piece could not be placed.
type UnplacedReason int

const (
	ReasonInsufficientSpace   UnplacedReason = iota // Stock of that thickness exists but ran out of room
	ReasonNoMatchingThickness                       // No stock of that exact thickness exists
)

func (r UnplacedReason) String() string {
	switch r {
	case ReasonNoMatchingThickness:
		return "no_matching_thickness"
	default:
		return "insufficient_space"
	}
}

func (r UnplacedReason) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *UnplacedReason) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "no_matching_thickness":
		*r = ReasonNoMatchingThickness
	case "insufficient_space":
		*r = ReasonInsufficientSpace
	default:
		return fmt.Errorf("unknown unplaced reason %q", s)
	}
	return nil
}

// UnplacedPiece is a piece the optimizer could not put on any sheet.
type UnplacedPiece struct {
	Piece  Piece          `json:"piece"`
	Reason UnplacedReason `json:"reason"`
}

// Message returns a human-readable explanation of the reason.
func (u UnplacedPiece) Message() string {
	if u.Reason == ReasonNoMatchingThickness {
		return fmt.Sprintf("No stock sheet with %gmm thickness", u.Piece.Thickness)
	}
	return fmt.Sprintf("Insufficient space on available %gmm sheets", u.Piece.Thickness)
}

// OptimizeResult holds the outcome of one optimization run. Every expanded
// piece appears exactly once, either in Placements or in Unplaced.
type OptimizeResult struct {
	Placements []Placement     `json:"placements"`
	Unplaced   []UnplacedPiece `json:"unplaced"`
}

// PlacementsOn returns the placements made on the given stock unit, in order.
func (r OptimizeResult) PlacementsOn(stockID string) []Placement {
	var out []Placement
	for _, p := range r.Placements {
		if p.Stock.ID == stockID {
			out = append(out, p)
		}
	}
	return out
}
