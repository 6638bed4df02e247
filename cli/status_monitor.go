package main

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"arcos/internal/vga"
)

const clockFormat = "2006/01/02 15:04:05"

// StatusBar sits under the console grid: geometry, cursor and memory on the
// left, a clock on the right. Both halves refresh from one ticker.
type StatusBar struct {
	status *widget.Label
	clock  *widget.Label
	source func() vga.Snapshot

	stop     chan struct{}
	stopOnce sync.Once
}

func NewStatusBar(source func() vga.Snapshot) *StatusBar {
	sb := &StatusBar{
		status: widget.NewLabel(""),
		clock:  widget.NewLabel(""),
		source: source,
		stop:   make(chan struct{}),
	}
	sb.status.TextStyle = fyne.TextStyle{Monospace: true}
	sb.clock.TextStyle = fyne.TextStyle{Monospace: true}
	sb.apply(sb.texts(time.Now()))
	return sb
}

// Container lays the two labels out for the window's bottom border.
func (sb *StatusBar) Container() *fyne.Container {
	return container.NewBorder(nil, nil, sb.status, sb.clock)
}

// texts samples the console and the clock off the fyne goroutine.
func (sb *StatusBar) texts(now time.Time) [2]string {
	return [2]string{formatStatus(sb.source()), now.Format(clockFormat)}
}

func (sb *StatusBar) apply(t [2]string) {
	sb.status.SetText(t[0])
	sb.clock.SetText(t[1])
}

func (sb *StatusBar) Start(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case now := <-ticker.C:
				t := sb.texts(now)
				fyne.Do(func() { sb.apply(t) })
			case <-sb.stop:
				return
			}
		}
	}()
}

func (sb *StatusBar) Stop() {
	sb.stopOnce.Do(func() { close(sb.stop) })
}

func formatStatus(snap vga.Snapshot) string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return fmt.Sprintf("%dx%d | Cursor: %d,%d | Mem: %.1f MB",
		snap.Width, snap.Height,
		snap.Cursor.X, snap.Cursor.Y,
		float64(m.Alloc)/1024/1024,
	)
}
