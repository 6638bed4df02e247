package render

import (
	"image/color"
	"strconv"

	"arcos/internal/vga"
)

// Palette holds the default VGA DAC values for the 16 text-mode colours.
var Palette = [vga.NumColors]color.RGBA{
	vga.Black:        {0x00, 0x00, 0x00, 0xff},
	vga.Blue:         {0x00, 0x00, 0xaa, 0xff},
	vga.Green:        {0x00, 0xaa, 0x00, 0xff},
	vga.Cyan:         {0x00, 0xaa, 0xaa, 0xff},
	vga.Red:          {0xaa, 0x00, 0x00, 0xff},
	vga.Magenta:      {0xaa, 0x00, 0xaa, 0xff},
	vga.Brown:        {0xaa, 0x55, 0x00, 0xff},
	vga.LightGrey:    {0xaa, 0xaa, 0xaa, 0xff},
	vga.DarkGrey:     {0x55, 0x55, 0x55, 0xff},
	vga.LightBlue:    {0x55, 0x55, 0xff, 0xff},
	vga.LightGreen:   {0x55, 0xff, 0x55, 0xff},
	vga.LightCyan:    {0x55, 0xff, 0xff, 0xff},
	vga.LightRed:     {0xff, 0x55, 0x55, 0xff},
	vga.LightMagenta: {0xff, 0x55, 0xff, 0xff},
	vga.LightBrown:   {0xff, 0xff, 0x55, 0xff},
	vga.White:        {0xff, 0xff, 0xff, 0xff},
}

// ansiIndex maps VGA colour order (blue in bit 0) to ANSI order (red in bit 0).
var ansiIndex = [8]int{0, 4, 2, 6, 1, 5, 3, 7}

// RGB returns the palette colour for c.
func RGB(c vga.Color) color.RGBA {
	return Palette[c&0x0F]
}

// SGR returns the "fg;bg" select-graphic-rendition parameters for attr, using
// the aixterm bright ranges for the high-intensity colours.
func SGR(attr vga.Attribute) string {
	fg := ansiIndex[attr.FG&0x07]
	if attr.FG&0x08 != 0 {
		fg += 90
	} else {
		fg += 30
	}

	bg := ansiIndex[attr.BG&0x07]
	if attr.BG&0x08 != 0 {
		bg += 100
	} else {
		bg += 40
	}
	return strconv.Itoa(fg) + ";" + strconv.Itoa(bg)
}
