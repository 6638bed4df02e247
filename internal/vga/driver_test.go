package vga

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDriver(t *testing.T, width, height int, mutate ...func(*Options)) (*Driver, *MemorySurface) {
	t.Helper()

	s, err := NewMemorySurface(width, height)
	require.NoError(t, err)

	opts := DefaultOptions(height)
	for _, m := range mutate {
		m(&opts)
	}

	d, err := NewDriver(s, opts)
	require.NoError(t, err)
	d.Initialize()
	return d, s
}

// fillRows paints row y with rows[y] repeated across the width.
func fillRows(t *testing.T, d *Driver, attr Attribute, rows ...byte) {
	t.Helper()
	for y, c := range rows {
		for x := 0; x < d.Width(); x++ {
			require.NoError(t, d.PutCell(c, attr, x, y))
		}
	}
}

func TestInitialize(t *testing.T) {
	d, s := newTestDriver(t, Width, Height)

	blank := Blank(DefaultAttribute).Pack()
	for i, w := range s.Words() {
		if w != blank {
			t.Fatalf("cell %d: got %#04x, want %#04x", i, w, blank)
		}
	}

	assert.Equal(t, Cursor{X: 0, Y: Height - 2}, d.Cursor())
	assert.Equal(t, DefaultAttribute, d.DefaultAttribute())
	assert.True(t, d.Initialized())
	assert.Equal(t, uint64(0), d.Scrolls())
}

func TestInitializeResetsState(t *testing.T) {
	d, s := newTestDriver(t, 4, 3)

	require.NoError(t, d.SetDefaultAttribute(Red, Blue))
	_, err := d.WriteString("abcdef")
	require.NoError(t, err)

	d.Initialize()
	assert.Equal(t, Cursor{X: 0, Y: 1}, d.Cursor())
	assert.Equal(t, DefaultAttribute, d.DefaultAttribute())
	assert.Equal(t, uint64(0), d.Scrolls())
	for _, w := range s.Words() {
		assert.Equal(t, Blank(DefaultAttribute).Pack(), w)
	}
}

func TestNewDriverValidation(t *testing.T) {
	s, err := NewMemorySurface(4, 3)
	require.NoError(t, err)

	_, err = NewDriver(s, Options{StartRow: 3})
	assert.ErrorIs(t, err, ErrOutOfBounds)

	_, err = NewDriver(s, Options{StartRow: 0, BannerRow: -1})
	assert.ErrorIs(t, err, ErrOutOfBounds)

	var be *BoundsError
	_, err = NewDriver(s, Options{StartRow: 7})
	require.True(t, errors.As(err, &be))
	assert.Equal(t, 7, be.Y)
}

func TestDefaultOptionsSmallSurfaces(t *testing.T) {
	assert.Equal(t, Options{StartRow: 23, BannerRow: 1}, DefaultOptions(25))
	assert.Equal(t, Options{StartRow: 0, BannerRow: 0}, DefaultOptions(1))
	assert.Equal(t, Options{StartRow: 0, BannerRow: 1}, DefaultOptions(2))
}

func TestNotInitialized(t *testing.T) {
	s, err := NewMemorySurface(4, 3)
	require.NoError(t, err)
	d, err := NewDriver(s, DefaultOptions(3))
	require.NoError(t, err)

	assert.False(t, d.Initialized())
	assert.ErrorIs(t, d.PutChar('x'), ErrNotInitialized)
	assert.ErrorIs(t, d.PutCell('x', DefaultAttribute, 0, 0), ErrNotInitialized)
	assert.ErrorIs(t, d.SetDefaultAttribute(Red, Black), ErrNotInitialized)
	// state errors win over argument errors
	assert.ErrorIs(t, d.SetDefaultAttribute(Color(NumColors), Black), ErrNotInitialized)
	assert.ErrorIs(t, d.PutCell('x', Attribute{FG: Color(NumColors)}, 0, 0), ErrNotInitialized)
	assert.ErrorIs(t, d.ShowBanner("hi"), ErrNotInitialized)

	n, err := d.Write([]byte("abc"))
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.Zero(t, n)

	_, err = d.WriteString("abc")
	assert.ErrorIs(t, err, ErrNotInitialized)

	for _, w := range s.Words() {
		assert.Zero(t, w, "surface must be untouched before Initialize")
	}
}

func TestPutCharAdvances(t *testing.T) {
	d, _ := newTestDriver(t, Width, Height)
	require.NoError(t, d.SetDefaultAttribute(LightBrown, Blue))

	before := d.Snapshot()
	require.NoError(t, d.PutChar('X'))
	after := d.Snapshot()

	assert.Equal(t, Cell{Char: 'X', Attr: MakeAttribute(LightBrown, Blue)}, after.At(0, Height-2))
	assert.Equal(t, Cursor{X: 1, Y: Height - 2}, after.Cursor)

	changed := 0
	for i := range before.Cells {
		if before.Cells[i] != after.Cells[i] {
			changed++
		}
	}
	assert.Equal(t, 1, changed)
	assert.Equal(t, uint64(0), d.Scrolls())
}

func TestWrapAtRightEdge(t *testing.T) {
	d, _ := newTestDriver(t, Width, Height)

	_, err := d.WriteString(strings.Repeat("w", Width-1))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), d.Scrolls())
	assert.Equal(t, Width-1, d.Cursor().X)

	require.NoError(t, d.PutChar('w'))
	assert.Equal(t, uint64(1), d.Scrolls())
	assert.Equal(t, Cursor{X: 0, Y: Height - 2}, d.Cursor())
}

func TestNewlineScrollsOnce(t *testing.T) {
	d, _ := newTestDriver(t, 10, 5)

	_, err := d.WriteString("abc")
	require.NoError(t, err)
	require.NoError(t, d.PutChar('\n'))

	assert.Equal(t, uint64(1), d.Scrolls())
	assert.Equal(t, Cursor{X: 0, Y: 3}, d.Cursor())
}

func TestNewlineAtLastColumnScrollsOnce(t *testing.T) {
	d, _ := newTestDriver(t, 4, 3)

	_, err := d.WriteString("abc\n")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), d.Scrolls())
	assert.Equal(t, Cursor{X: 0, Y: 1}, d.Cursor())
}

func TestScrollShiftsRows(t *testing.T) {
	red := MakeAttribute(Red, Black)
	green := MakeAttribute(Green, Black)

	tests := []struct {
		name      string
		mutate    func(*Options)
		wantRows  []string
		wantAttrs []Attribute
	}{
		{
			name:      "reference",
			mutate:    func(*Options) {},
			wantRows:  []string{"bbb", "ccc", "ccc"},
			wantAttrs: []Attribute{green, green, red},
		},
		{
			name:      "blank exposed row",
			mutate:    func(o *Options) { o.BlankExposedRow = true },
			wantRows:  []string{"bbb", "ccc", "   "},
			wantAttrs: []Attribute{green, green, green},
		},
		{
			name:      "keep attributes",
			mutate:    func(o *Options) { o.KeepAttributes = true },
			wantRows:  []string{"bbb", "ccc", "ccc"},
			wantAttrs: []Attribute{red, red, red},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := newTestDriver(t, 3, 3, tt.mutate)
			fillRows(t, d, red, 'a', 'b', 'c')
			require.NoError(t, d.SetDefaultAttribute(Green, Black))

			require.NoError(t, d.PutChar('\n'))

			snap := d.Snapshot()
			for y := 0; y < 3; y++ {
				assert.Equal(t, tt.wantRows[y], snap.Row(y), "row %d", y)
				for x := 0; x < 3; x++ {
					assert.Equal(t, tt.wantAttrs[y], snap.At(x, y).Attr, "cell (%d,%d)", x, y)
				}
			}
			assert.Equal(t, Cursor{X: 0, Y: 1}, snap.Cursor)
		})
	}
}

func TestScrollSingleRowSurface(t *testing.T) {
	d, _ := newTestDriver(t, 3, 1)

	_, err := d.WriteString("abcd")
	require.NoError(t, err)

	snap := d.Snapshot()
	assert.Equal(t, "dbc", snap.Row(0))
	assert.Equal(t, Cursor{X: 1, Y: 0}, snap.Cursor)
	assert.Equal(t, uint64(1), d.Scrolls())
}

func TestSetDefaultAttributeOnlyAffectsLaterWrites(t *testing.T) {
	d, _ := newTestDriver(t, 10, 5)

	_, err := d.WriteString("ab")
	require.NoError(t, err)
	require.NoError(t, d.SetDefaultAttribute(White, Red))
	_, err = d.WriteString("cd")
	require.NoError(t, err)

	snap := d.Snapshot()
	assert.Equal(t, DefaultAttribute, snap.At(0, 3).Attr)
	assert.Equal(t, DefaultAttribute, snap.At(1, 3).Attr)
	assert.Equal(t, MakeAttribute(White, Red), snap.At(2, 3).Attr)
	assert.Equal(t, MakeAttribute(White, Red), snap.At(3, 3).Attr)
	assert.Equal(t, DefaultAttribute, snap.At(9, 0).Attr)
}

func TestSetDefaultAttributeInvalid(t *testing.T) {
	d, _ := newTestDriver(t, 4, 3)

	assert.ErrorIs(t, d.SetDefaultAttribute(Color(16), Black), ErrInvalidColor)
	assert.ErrorIs(t, d.SetDefaultAttribute(White, Color(200)), ErrInvalidColor)
	assert.Equal(t, DefaultAttribute, d.DefaultAttribute())
}

func TestScenarioNewlineInString(t *testing.T) {
	d, _ := newTestDriver(t, 4, 3)

	n, err := d.WriteString("AB\nCD")
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	snap := d.Snapshot()
	assert.Equal(t, "AB  ", snap.Row(0), "first line scrolled up by the newline")
	assert.Equal(t, "CD  ", snap.Row(1))
	assert.Equal(t, "    ", snap.Row(2))
	assert.Equal(t, Cursor{X: 2, Y: 1}, snap.Cursor)
	assert.Equal(t, uint64(1), d.Scrolls())
}

func TestShowBanner(t *testing.T) {
	d, _ := newTestDriver(t, Width, Height)

	_, err := d.WriteString("abc")
	require.NoError(t, err)
	require.NoError(t, d.SetDefaultAttribute(LightGreen, Black))

	require.NoError(t, d.ShowBanner("HI"))

	snap := d.Snapshot()
	assert.Equal(t, Cell{Char: 'H', Attr: MakeAttribute(LightGreen, Black)}, snap.At(0, 1))
	assert.Equal(t, Cell{Char: 'I', Attr: MakeAttribute(LightGreen, Black)}, snap.At(1, 1))
	assert.Equal(t, Cursor{X: 0, Y: Height - 2}, snap.Cursor)
	assert.Equal(t, "abc", strings.TrimRight(snap.Row(Height-2), " "))
}

func TestShowBannerCustomRow(t *testing.T) {
	d, _ := newTestDriver(t, 10, 5, func(o *Options) { o.BannerRow = 4 })

	require.NoError(t, d.ShowBanner("top"))
	snap := d.Snapshot()
	assert.Equal(t, "top", snap.Lines()[4])
	assert.Equal(t, Cursor{X: 0, Y: 3}, snap.Cursor)
}

func TestPutCell(t *testing.T) {
	d, _ := newTestDriver(t, 4, 3)

	before := d.Snapshot()
	require.NoError(t, d.PutCell('#', MakeAttribute(Cyan, Magenta), 3, 2))
	after := d.Snapshot()

	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if x == 3 && y == 2 {
				assert.Equal(t, Cell{Char: '#', Attr: MakeAttribute(Cyan, Magenta)}, after.At(x, y))
				continue
			}
			assert.Equal(t, before.At(x, y), after.At(x, y))
		}
	}
	assert.Equal(t, before.Cursor, after.Cursor)
}

func TestPutCellOutOfBounds(t *testing.T) {
	d, s := newTestDriver(t, 4, 3)
	before := append([]uint16(nil), s.Words()...)

	coords := [][2]int{{4, 0}, {0, 3}, {-1, 0}, {0, -1}, {100, 100}}
	for _, c := range coords {
		err := d.PutCell('x', DefaultAttribute, c[0], c[1])
		assert.ErrorIs(t, err, ErrOutOfBounds)

		var be *BoundsError
		require.True(t, errors.As(err, &be))
		assert.Equal(t, c[0], be.X)
		assert.Equal(t, c[1], be.Y)
		assert.Equal(t, 4, be.Width)
		assert.Equal(t, 3, be.Height)
	}
	assert.Equal(t, before, s.Words())

	assert.ErrorIs(t, d.PutCell('x', MakeAttribute(Color(20), Black), 0, 0), ErrInvalidColor)
}

func TestWriteStringStopsAtNUL(t *testing.T) {
	d, _ := newTestDriver(t, 10, 3)

	n, err := d.WriteString("ok\x00ignored")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "ok", d.Snapshot().Lines()[1])
}

func TestDriverIsWriter(t *testing.T) {
	d, _ := newTestDriver(t, 10, 3)

	var w io.Writer = d
	n, err := io.Copy(w, bytes.NewBufferString("one\ntwo"))
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	lines := d.Snapshot().Lines()
	assert.Equal(t, "one", lines[0])
	assert.Equal(t, "two", lines[1])
}

func TestWriteMatchesPutChar(t *testing.T) {
	input := []byte("The quick brown fox\njumps over\n\nthe lazy dog, twice over the line end")

	bulk, _ := newTestDriver(t, 7, 4)
	_, err := bulk.Write(input)
	require.NoError(t, err)

	single, _ := newTestDriver(t, 7, 4)
	for _, c := range input {
		require.NoError(t, single.PutChar(c))
	}

	assert.Equal(t, single.Snapshot(), bulk.Snapshot())
	assert.Equal(t, single.Scrolls(), bulk.Scrolls())
}

func TestConcurrentWriters(t *testing.T) {
	d, _ := newTestDriver(t, 8, 4)
	line := []byte(strings.Repeat("z", 8))

	const writers = 16
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = d.Write(line)
			_ = d.Snapshot()
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(writers), d.Scrolls())
	assert.Equal(t, Cursor{X: 0, Y: 2}, d.Cursor())
}
