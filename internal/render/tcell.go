package render

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"arcos/internal/vga"
)

// TcellView shows snapshots on a full-screen terminal.
type TcellView struct {
	screen tcell.Screen
}

// NewTcellView wraps an initialised tcell screen.
func NewTcellView(screen tcell.Screen) *TcellView {
	return &TcellView{screen: screen}
}

// Style returns the tcell style for a cell attribute.
func Style(attr vga.Attribute) tcell.Style {
	fg, bg := RGB(attr.FG), RGB(attr.BG)
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(fg.R), int32(fg.G), int32(fg.B))).
		Background(tcell.NewRGBColor(int32(bg.R), int32(bg.G), int32(bg.B)))
}

// Draw copies snap onto the screen, clipped to the screen size, and places
// the hardware cursor.
func (v *TcellView) Draw(snap vga.Snapshot) {
	w, h := v.screen.Size()
	for y := 0; y < snap.Height && y < h; y++ {
		for x := 0; x < snap.Width && x < w; x++ {
			cell := snap.At(x, y)
			v.screen.SetContent(x, y, Glyph(cell.Char), nil, Style(cell.Attr))
		}
	}
	if snap.Cursor.X < w && snap.Cursor.Y < h {
		v.screen.ShowCursor(snap.Cursor.X, snap.Cursor.Y)
	} else {
		v.screen.HideCursor()
	}
	v.screen.Show()
}

// Run redraws source every interval until Esc, q or Ctrl-C is pressed or ctx
// is done. The caller owns the screen and calls Fini.
func (v *TcellView) Run(ctx context.Context, source func() vga.Snapshot, interval time.Duration) error {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	v.Draw(source())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					return nil
				}
			case *tcell.EventResize:
				v.screen.Clear()
				v.Draw(source())
			}

		case <-ticker.C:
			v.Draw(source())
		}
	}
}
