package model

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Offcut represents a usable rectangular remnant left over after cutting.
type Offcut struct {
	ID         string  `json:"id"`
	SheetLabel string  `json:"sheet_label"` // Board the remnant was first cut from
	X          float64 `json:"x"`           // Position on the sheet (mm from left)
	Y          float64 `json:"y"`           // Position on the sheet (mm from top)
	Width      float64 `json:"width"`
	Length     float64 `json:"length"`
	Thickness  float64 `json:"thickness"`
}

func (o Offcut) Area() float64 {
	return o.Width * o.Length
}

// ToSheet converts an offcut into a high-priority sheet request so the
// remnant is consumed before fresh stock on the next run. The sheet keeps
// the offcut's ID so a plan can be traced back to the remnant it used.
func (o Offcut) ToSheet() Sheet {
	s := NewSheet(o.label(0), o.Width, o.Length, o.Thickness, PriorityHigh, 1)
	if o.ID != "" {
		s.ID = o.ID
	}
	return s
}

const offcutPrefix = "Offcut "

// offcutLabelPattern matches labels built by Offcut.label, with or without
// the duplicate counter TakeOffcuts appends.
var offcutLabelPattern = regexp.MustCompile(`^Offcut (.*) \d+x\d+(?: \(\d+\))?$`)

// sourceLabel returns the board label behind a sheet label, so remnants of
// remnants keep naming the original board instead of nesting prefixes.
func sourceLabel(label string) string {
	for {
		m := offcutLabelPattern.FindStringSubmatch(label)
		if m == nil {
			return label
		}
		label = m[1]
	}
}

// label builds the sheet label for the offcut. The board name is shortened
// so the result never exceeds MaxLabelLength characters; n > 1 appends a
// duplicate counter.
func (o Offcut) label(n int) string {
	suffix := fmt.Sprintf(" %.0fx%.0f", o.Width, o.Length)
	if n > 1 {
		suffix += fmt.Sprintf(" (%d)", n)
	}
	base := sourceLabel(o.SheetLabel)
	room := MaxLabelLength - utf8.RuneCountInString(offcutPrefix) - utf8.RuneCountInString(suffix)
	if room < 0 {
		room = 0
	}
	if utf8.RuneCountInString(base) > room {
		base = strings.TrimSpace(string([]rune(base)[:room]))
	}
	return offcutPrefix + base + suffix
}

// MinOffcutDimension is the minimum width or length (in mm) for a remnant
// to be considered a usable offcut. Remnants smaller than this are waste.
const MinOffcutDimension = 50.0

// MinOffcutArea is the minimum area (in sq mm) for a remnant to be considered usable.
const MinOffcutArea = 10000.0 // 100mm x 100mm equivalent

// DetectOffcuts finds the strip to the right of and the strip below all
// assignments of a sheet plan, keeping those large enough to reuse.
func DetectOffcuts(sp SheetPlan, kerf float64) []Offcut {
	sheetW := sp.Width
	sheetL := sp.Length
	source := sourceLabel(sp.SheetLabel)

	newOffcut := func(x, y, w, l float64) Offcut {
		return Offcut{
			ID:         uuid.New().String()[:8],
			SheetLabel: source,
			X:          x,
			Y:          y,
			Width:      w,
			Length:     l,
			Thickness:  sp.Thickness,
		}
	}

	if len(sp.Assignments) == 0 {
		return []Offcut{newOffcut(0, 0, sheetW, sheetL)}
	}

	var maxRight, maxBottom float64
	for _, a := range sp.Assignments {
		right := a.X + a.PlacedWidth() + kerf
		bottom := a.Y + a.PlacedLength() + kerf
		if right > maxRight {
			maxRight = right
		}
		if bottom > maxBottom {
			maxBottom = bottom
		}
	}

	usable := func(w, l float64) bool {
		return w >= MinOffcutDimension && l >= MinOffcutDimension && w*l >= MinOffcutArea
	}

	var offcuts []Offcut

	rightW := sheetW - maxRight
	if usable(rightW, sheetL) {
		offcuts = append(offcuts, newOffcut(maxRight, 0, rightW, sheetL))
	}

	// Bottom strip stops at the right edge of the parts to avoid overlapping the right strip
	bottomL := sheetL - maxBottom
	bottomW := math.Min(maxRight, sheetW)
	if usable(bottomW, bottomL) {
		offcuts = append(offcuts, newOffcut(0, maxBottom, bottomW, bottomL))
	}

	sort.Slice(offcuts, func(i, j int) bool {
		return offcuts[i].Area() > offcuts[j].Area()
	})
	return offcuts
}

// DetectAllOffcuts finds offcuts across every sheet of a plan.
func DetectAllOffcuts(plan Plan) []Offcut {
	var all []Offcut
	for _, sp := range plan.Sheets {
		all = append(all, DetectOffcuts(sp, plan.KerfWidth)...)
	}
	return all
}

// TotalOffcutArea returns the total area of all offcuts in square mm.
func TotalOffcutArea(offcuts []Offcut) float64 {
	var total float64
	for _, o := range offcuts {
		total += o.Area()
	}
	return total
}
