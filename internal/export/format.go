package export

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrEmptyPlan is returned when a plan has no used sheets to export.
var ErrEmptyPlan = errors.New("plan has no sheets to export")

// Options controls report presentation shared by the exporters.
type Options struct {
	Title    string       // Report heading, "Cutting Plan" when empty
	Language language.Tag // Number formatting locale, English when unset
}

func (o Options) title() string {
	if o.Title == "" {
		return "Cutting Plan"
	}
	return o.Title
}

func (o Options) numbers() numbers {
	tag := o.Language
	if tag == language.Und {
		tag = language.English
	}
	return numbers{p: message.NewPrinter(tag)}
}

// numbers formats quantities for reports using locale digit grouping.
type numbers struct {
	p *message.Printer
}

func (n numbers) area(mm2 float64) string {
	return n.p.Sprintf("%d mm²", int64(math.Round(mm2)))
}

func (n numbers) count(v int) string {
	return n.p.Sprintf("%d", v)
}

func (n numbers) percent(v float64) string {
	return n.p.Sprintf("%.1f%%", v)
}

func dims(w, l float64) string {
	return fmt.Sprintf("%.0f x %.0f mm", w, l)
}

// partColor represents an RGB color for a placed cut.
type partColor struct {
	R, G, B int
}

// partColors mirrors the color scheme used in the viewer's sheet canvas.
var partColors = []partColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// colorFor returns a stable color per cut ID so repeated units of the same
// cut share a color across sheets.
func colorFor(index map[string]int, cutID string) partColor {
	i, ok := index[cutID]
	if !ok {
		i = len(index)
		index[cutID] = i
	}
	return partColors[i%len(partColors)]
}
