package app

import (
	"image/color"

	"colorose/pkg/colorutil"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// ColoroseTheme is a dark theme matching the panel palette.
type ColoroseTheme struct{}

var _ fyne.Theme = (*ColoroseTheme)(nil)

func (t *ColoroseTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground, theme.ColorNameOverlayBackground, theme.ColorNameMenuBackground:
		return colorutil.Background.NRGBA()
	case theme.ColorNameForeground:
		return colorutil.Foreground.NRGBA()
	case theme.ColorNameButton:
		return color.NRGBA{R: 0x2B, G: 0x31, B: 0x3F, A: 0xFF} // Slightly lighter than the panel
	case theme.ColorNameHover:
		return color.NRGBA{R: 0xDB, G: 0xD6, B: 0xC9, A: 0x20}
	default:
		return theme.DefaultTheme().Color(name, theme.VariantDark)
	}
}

func (t *ColoroseTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *ColoroseTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *ColoroseTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 15
	case theme.SizeNamePadding:
		return 3 // Compact overlay
	default:
		return theme.DefaultTheme().Size(name)
	}
}
