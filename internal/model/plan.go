package model

import "time"

// Assignment is one cut positioned on one sheet in a cutting plan.
type Assignment struct {
	CutID      string  `json:"cut_id"`
	CutLabel   string  `json:"cut_label"`
	SheetID    string  `json:"sheet_id"`    // Source sheet record
	SheetLabel string  `json:"sheet_label"` // Instance label, e.g. "Birch #2"
	X          float64 `json:"x_position"`
	Y          float64 `json:"y_position"`
	Rotation   int     `json:"rotation"` // 0 or 90 degrees
	Sequence   int     `json:"sequence_number"`
	Width      float64 `json:"width"`
	Length     float64 `json:"length"`
	Thickness  float64 `json:"thickness"`
}

// Rotated reports whether the cut is turned 90 degrees on the sheet.
func (a Assignment) Rotated() bool {
	return a.Rotation == 90
}

// PlacedWidth returns the footprint width on the sheet.
func (a Assignment) PlacedWidth() float64 {
	if a.Rotated() {
		return a.Length
	}
	return a.Width
}

// PlacedLength returns the footprint length on the sheet.
func (a Assignment) PlacedLength() float64 {
	if a.Rotated() {
		return a.Width
	}
	return a.Length
}

// SheetPlan is the layout of a single stock unit.
type SheetPlan struct {
	SheetID     string       `json:"sheet_id"`
	InstanceID  string       `json:"instance_id"`
	SheetLabel  string       `json:"sheet_label"`
	Width       float64      `json:"sheet_width"`
	Length      float64      `json:"sheet_length"`
	Thickness   float64      `json:"sheet_thickness"`
	Assignments []Assignment `json:"assignments"`
	UsedArea    float64      `json:"used_area"`
	WasteArea   float64      `json:"waste_area"`
}

func (sp SheetPlan) TotalArea() float64 {
	return sp.Width * sp.Length
}

// Efficiency returns the used percentage of the sheet area.
func (sp SheetPlan) Efficiency() float64 {
	ta := sp.TotalArea()
	if ta == 0 {
		return 0
	}
	return (sp.UsedArea / ta) * 100.0
}

// UnplacedCut is a single cut unit that is missing from the plan.
type UnplacedCut struct {
	CutID     string         `json:"cut_id"`
	CutLabel  string         `json:"cut_label"`
	Width     float64        `json:"width"`
	Length    float64        `json:"length"`
	Thickness float64        `json:"thickness"`
	Reason    UnplacedReason `json:"reason"`
	Message   string         `json:"message"`
}

// UnusedSheet reports stock left untouched by a plan.
type UnusedSheet struct {
	SheetID   string   `json:"sheet_id"`
	Label     string   `json:"label"`
	Width     float64  `json:"width"`
	Length    float64  `json:"length"`
	Thickness float64  `json:"thickness"`
	Quantity  int      `json:"quantity"`
	Priority  Priority `json:"priority"`
}

// Plan is a complete cutting plan with waste accounting.
type Plan struct {
	ID         string        `json:"id"`
	CreatedAt  time.Time     `json:"created_at"`
	KerfWidth  float64       `json:"kerf_width"`
	SheetsUsed int           `json:"sheets_used"`
	TotalWaste float64       `json:"total_waste"`
	Sheets     []SheetPlan   `json:"sheet_plans"`
	Unplaced   []UnplacedCut `json:"unplaced_cuts"`
	Unused     []UnusedSheet `json:"unused_sheets"`
}

// TotalEfficiency returns overall material usage percentage across used sheets.
func (p Plan) TotalEfficiency() float64 {
	var used, total float64
	for _, s := range p.Sheets {
		used += s.UsedArea
		total += s.TotalArea()
	}
	if total == 0 {
		return 0
	}
	return (used / total) * 100.0
}

// AssignmentCount returns the number of placed cut units.
func (p Plan) AssignmentCount() int {
	n := 0
	for _, s := range p.Sheets {
		n += len(s.Assignments)
	}
	return n
}

// Complete reports whether every requested cut unit was placed.
func (p Plan) Complete() bool {
	return len(p.Unplaced) == 0
}
