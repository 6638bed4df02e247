package render

import (
	"image"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"arcos/internal/vga"
)

// Cell size in pixels of the rendered snapshot, matching basicfont.Face7x13.
const (
	CellWidth  = 7
	CellHeight = 13
)

// Image rasterises snap with the 7x13 bitmap font. Each cell is filled with
// its background colour and the glyph drawn in its foreground colour. Glyphs
// the font lacks leave the cell background only.
func Image(snap vga.Snapshot) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, snap.Width*CellWidth, snap.Height*CellHeight))
	face := basicfont.Face7x13
	ascent := face.Metrics().Ascent

	for y := 0; y < snap.Height; y++ {
		for x := 0; x < snap.Width; x++ {
			cell := snap.At(x, y)
			rect := image.Rect(x*CellWidth, y*CellHeight, (x+1)*CellWidth, (y+1)*CellHeight)
			draw.Draw(img, rect, image.NewUniform(RGB(cell.Attr.BG)), image.Point{}, draw.Src)

			if cell.Char == ' ' || cell.Char == 0 {
				continue
			}
			d := font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(RGB(cell.Attr.FG)),
				Face: face,
				Dot:  fixed.Point26_6{X: fixed.I(x * CellWidth), Y: fixed.I(y*CellHeight) + ascent},
			}
			d.DrawString(string(RawGlyph(cell.Char)))
		}
	}
	return img
}

// WritePNG encodes the rasterised snapshot as PNG.
func WritePNG(w io.Writer, snap vga.Snapshot) error {
	return png.Encode(w, Image(snap))
}
