package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// compactTheme tightens the default Fyne sizes so long cut lists and
// several sheet diagrams fit on screen. A zero variant follows the system.
type compactTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	follow  bool
}

func newCompactTheme() *compactTheme {
	return &compactTheme{base: theme.DefaultTheme(), follow: true}
}

// setDark pins the theme to the dark or light variant.
func (t *compactTheme) setDark(dark bool) {
	t.follow = false
	t.variant = theme.VariantLight
	if dark {
		t.variant = theme.VariantDark
	}
}

func (t *compactTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if !t.follow {
		variant = t.variant
	}
	return t.base.Color(name, variant)
}

func (t *compactTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *compactTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

func (t *compactTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	default:
		return t.base.Size(name)
	}
}
