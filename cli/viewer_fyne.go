package main

import (
	"context"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"arcos/internal/render"
	"arcos/internal/vga"
)

// ConsoleGrid mirrors a text surface into a TextGrid
type ConsoleGrid struct {
	textGrid *widget.TextGrid
	source   func() vga.Snapshot
	stopChan chan struct{}

	// one shared style per attribute byte
	styles map[byte]*widget.CustomTextGridStyle
}

func NewConsoleGrid(source func() vga.Snapshot) *ConsoleGrid {
	g := &ConsoleGrid{
		textGrid: widget.NewTextGrid(),
		source:   source,
		stopChan: make(chan struct{}),
		styles:   make(map[byte]*widget.CustomTextGridStyle),
	}
	g.textGrid.ShowLineNumbers = false
	g.textGrid.ShowWhitespace = false
	g.Update(source())
	return g
}

// Update replaces every row of the grid with the snapshot contents.
// Must be called on the fyne goroutine.
func (g *ConsoleGrid) Update(snap vga.Snapshot) {
	g.textGrid.Rows = g.rows(snap)
	g.textGrid.Refresh()
}

func (g *ConsoleGrid) rows(snap vga.Snapshot) []widget.TextGridRow {
	rows := make([]widget.TextGridRow, snap.Height)
	for y := 0; y < snap.Height; y++ {
		cells := make([]widget.TextGridCell, snap.Width)
		for x := 0; x < snap.Width; x++ {
			cell := snap.At(x, y)
			attr := cell.Attr
			// Block cursor by swapping colours
			if snap.Cursor.X == x && snap.Cursor.Y == y {
				attr = vga.Attribute{FG: attr.BG, BG: attr.FG}
			}
			cells[x] = widget.TextGridCell{
				Rune:  render.Glyph(cell.Char),
				Style: g.style(attr),
			}
		}
		rows[y] = widget.TextGridRow{Cells: cells}
	}
	return rows
}

func (g *ConsoleGrid) style(attr vga.Attribute) *widget.CustomTextGridStyle {
	key := attr.Byte()
	if s, ok := g.styles[key]; ok {
		return s
	}
	s := &widget.CustomTextGridStyle{
		FGColor: render.RGB(attr.FG),
		BGColor: render.RGB(attr.BG),
	}
	g.styles[key] = s
	return s
}

// Start polls the source and redraws on the fyne goroutine
func (g *ConsoleGrid) Start(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				snap := g.source()
				fyne.Do(func() {
					g.Update(snap)
				})
			case <-g.stopChan:
				return
			}
		}
	}()
}

// Stop stops polling
func (g *ConsoleGrid) Stop() {
	select {
	case <-g.stopChan:
		// Already closed
	default:
		close(g.stopChan)
	}
}

// runFyneViewer opens a window on the surface and blocks until it is closed
// or ctx is done.
func runFyneViewer(ctx context.Context, title string, attr vga.Attribute, source func() vga.Snapshot, interval time.Duration) {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}

	myApp := app.New()
	myApp.Settings().SetTheme(NewConsoleTheme(attr))

	myWindow := myApp.NewWindow(title)

	grid := NewConsoleGrid(source)
	status := NewStatusBar(source)

	myWindow.SetContent(container.NewBorder(nil, status.Container(), nil, nil, grid.textGrid))

	snap := source()
	cell := fyne.MeasureText("M", theme.TextSize(), fyne.TextStyle{Monospace: true})
	myWindow.Resize(fyne.NewSize(cell.Width*float32(snap.Width)+16, cell.Height*float32(snap.Height+2)+16))

	grid.Start(interval)
	status.Start(time.Second)

	go func() {
		select {
		case <-ctx.Done():
			fyne.Do(myApp.Quit)
		case <-grid.stopChan:
		}
	}()

	log.Printf("Opened viewer window %q", title)
	myWindow.ShowAndRun()

	grid.Stop()
	status.Stop()
	log.Printf("Viewer window closed")
}
