package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

var (
	apexPrimary     = color.NRGBA{R: 0x8b, G: 0x5c, B: 0xf6, A: 0xff}
	apexDarkSurface = color.NRGBA{R: 0x0f, G: 0x11, B: 0x1a, A: 0xff}
)

// customTheme wraps the default theme with the configured font size and
// the Apex accent colour
type customTheme struct {
	baseFontSize float32
	baseTheme    fyne.Theme
	isDark       bool
}

func newCustomTheme(baseFontSize int, isDark bool) fyne.Theme {
	var base fyne.Theme
	if isDark {
		base = theme.DarkTheme()
	} else {
		base = theme.LightTheme()
	}

	return &customTheme{
		baseFontSize: float32(baseFontSize),
		baseTheme:    base,
		isDark:       isDark,
	}
}

func (t *customTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return apexPrimary
	case theme.ColorNameBackground:
		if t.isDark {
			return apexDarkSurface
		}
	case theme.ColorNameDisabled:
		// Disabled labels stay readable in the transcript
		return t.baseTheme.Color(theme.ColorNamePlaceHolder, variant)
	}
	return t.baseTheme.Color(name, variant)
}

func (t *customTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.baseTheme.Font(style)
}

func (t *customTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.baseTheme.Icon(name)
}

func (t *customTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return t.baseFontSize
	case theme.SizeNameHeadingText:
		return t.baseFontSize * 1.5
	case theme.SizeNameSubHeadingText:
		return t.baseFontSize * 1.2
	case theme.SizeNameCaptionText:
		return t.baseFontSize * 0.85
	default:
		return t.baseTheme.Size(name)
	}
}
