package main

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"arcos/internal/render"
	"arcos/internal/vga"
)

// ConsoleTheme paints the window chrome in the console's own colours
type ConsoleTheme struct {
	fyne.Theme
	attr vga.Attribute
}

func NewConsoleTheme(attr vga.Attribute) *ConsoleTheme {
	return &ConsoleTheme{
		Theme: theme.DefaultTheme(),
		attr:  attr,
	}
}

func (t *ConsoleTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameForeground:
		return render.RGB(t.attr.FG)
	case theme.ColorNameBackground:
		return render.RGB(t.attr.BG)
	case theme.ColorNameSeparator:
		return render.RGB(vga.DarkGrey)
	case theme.ColorNamePrimary:
		return render.RGB(vga.LightCyan)
	}
	return t.Theme.Color(name, variant)
}

func (t *ConsoleTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(fyne.TextStyle{Monospace: true})
}
