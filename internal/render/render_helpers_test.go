package render

import (
	"testing"

	runewidth "github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/require"

	"arcos/internal/vga"
)

// bootedSnapshot returns a snapshot of a freshly initialised surface after
// writing each of the given strings.
func bootedSnapshot(t *testing.T, width, height int, writes ...string) vga.Snapshot {
	t.Helper()

	s, err := vga.NewMemorySurface(width, height)
	require.NoError(t, err)
	d, err := vga.NewDriver(s, vga.DefaultOptions(height))
	require.NoError(t, err)
	d.Initialize()

	for _, w := range writes {
		_, err := d.WriteString(w)
		require.NoError(t, err)
	}
	return d.Snapshot()
}

// narrowWidths forces single-column widths for ambiguous glyphs for the
// duration of the test.
func narrowWidths(t *testing.T) {
	saved := runewidth.DefaultCondition
	runewidth.DefaultCondition = &runewidth.Condition{EastAsianWidth: false}
	t.Cleanup(func() { runewidth.DefaultCondition = saved })
}
