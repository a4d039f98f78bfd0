package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// paper and ink colours shared by the viewer chrome; the stroke preview
// itself is always black on white.
var (
	paperLight = color.RGBA{R: 250, G: 249, B: 245, A: 255}
	paperDark  = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	inkBlue    = color.RGBA{R: 33, G: 97, B: 140, A: 255}
	inkBlueDim = color.RGBA{R: 110, G: 160, B: 210, A: 255}
)

type SketchTheme struct{}

func NewTheme() fyne.Theme {
	return &SketchTheme{}
}

func (t *SketchTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	dark := variant == theme.VariantDark

	switch name {
	case theme.ColorNameBackground, theme.ColorNameHeaderBackground:
		if dark {
			return paperDark
		}
		return paperLight

	case theme.ColorNamePrimary:
		if dark {
			return inkBlueDim
		}
		return inkBlue

	case theme.ColorNameFocus, theme.ColorNameSelection:
		c := t.Color(theme.ColorNamePrimary, variant).(color.RGBA)
		c.A = 96
		return c

	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *SketchTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *SketchTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *SketchTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}
