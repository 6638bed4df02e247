package vga

import (
	"fmt"
	"log"
	"strings"
	"sync"
)

// Options tune the driver's boundary behaviour.
type Options struct {
	// StartRow is the cursor row after Initialize.
	StartRow int
	// BannerRow is the row ShowBanner writes to.
	BannerRow int
	// BlankExposedRow fills the bottom row with blanks after a scroll. When
	// false the bottom row keeps whatever it held before the shift.
	BlankExposedRow bool
	// KeepAttributes makes scrolled cells keep their own attribute instead
	// of taking the current default attribute.
	KeepAttributes bool
}

// DefaultOptions returns the reference behaviour for a surface of the given
// height: the cursor starts one row above the bottom, the banner goes on row 1,
// scrolled rows are re-coloured and the bottom row is not blanked.
func DefaultOptions(height int) Options {
	start := height - 2
	if start < 0 {
		start = 0
	}
	banner := 1
	if banner >= height {
		banner = 0
	}
	return Options{
		StartRow:  start,
		BannerRow: banner,
	}
}

// Driver renders a character stream into a Surface. All methods are safe for
// concurrent use; they are serialised by a single mutex.
type Driver struct {
	mu sync.Mutex

	surface Surface
	width   int
	height  int
	opts    Options

	cursor      Cursor
	attr        Attribute
	initialized bool
	scrolls     uint64
}

// NewDriver binds a driver to surface. The surface is not touched until
// Initialize.
func NewDriver(surface Surface, opts Options) (*Driver, error) {
	w, h := surface.Width(), surface.Height()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGeometry, w, h)
	}
	if opts.StartRow < 0 || opts.StartRow >= h {
		return nil, fmt.Errorf("start row: %w", &BoundsError{X: 0, Y: opts.StartRow, Width: w, Height: h})
	}
	if opts.BannerRow < 0 || opts.BannerRow >= h {
		return nil, fmt.Errorf("banner row: %w", &BoundsError{X: 0, Y: opts.BannerRow, Width: w, Height: h})
	}

	return &Driver{
		surface: surface,
		width:   w,
		height:  h,
		opts:    opts,
		attr:    DefaultAttribute,
	}, nil
}

// Initialize blanks the whole surface in the default attribute and moves the
// cursor to column 0 of the start row.
func (d *Driver) Initialize() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.cursor = Cursor{X: 0, Y: d.opts.StartRow}
	d.attr = DefaultAttribute
	d.scrolls = 0

	blank := Blank(d.attr).Pack()
	for i := 0; i < d.width*d.height; i++ {
		d.surface.Store(i, blank)
	}
	d.initialized = true

	log.Printf("vga: initialized %dx%d surface, cursor at (%d,%d)", d.width, d.height, d.cursor.X, d.cursor.Y)
}

// SetDefaultAttribute sets the attribute used by subsequent writes. Cells
// already on the surface keep their colours.
func (d *Driver) SetDefaultAttribute(fg, bg Color) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.initialized {
		return ErrNotInitialized
	}
	if !fg.Valid() || !bg.Valid() {
		return fmt.Errorf("%w: %d/%d", ErrInvalidColor, fg, bg)
	}
	d.attr = Attribute{FG: fg, BG: bg}
	return nil
}

// PutCell writes one cell at (x, y) without moving the cursor.
func (d *Driver) PutCell(c byte, attr Attribute, x, y int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.initialized {
		return ErrNotInitialized
	}
	if !attr.FG.Valid() || !attr.BG.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidColor, attr)
	}
	return d.putCell(c, attr, x, y)
}

// PutChar writes one character at the cursor and advances it. A newline
// writes nothing and scrolls; filling the last column wraps exactly like a
// newline.
func (d *Driver) PutChar(c byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.initialized {
		return ErrNotInitialized
	}
	return d.putChar(c)
}

// Write feeds p through PutChar byte by byte.
func (d *Driver) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.initialized {
		return 0, ErrNotInitialized
	}
	return d.write(p)
}

// WriteString writes text up to its first NUL byte, or all of it when there
// is none.
func (d *Driver) WriteString(text string) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.initialized {
		return 0, ErrNotInitialized
	}
	return d.writeString(text)
}

// ShowBanner writes text on the banner row and then returns the cursor to
// column 0 of the row it was on. A partially written line is abandoned.
func (d *Driver) ShowBanner(text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.initialized {
		return ErrNotInitialized
	}

	old := d.cursor.Y
	d.cursor.Y = d.opts.BannerRow
	_, err := d.writeString(text)
	d.cursor.Y = old
	d.cursor.X = 0
	return err
}

// Cursor returns the current cursor position.
func (d *Driver) Cursor() Cursor {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cursor
}

// DefaultAttribute returns the attribute applied to new characters.
func (d *Driver) DefaultAttribute() Attribute {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.attr
}

// Initialized reports whether Initialize has run.
func (d *Driver) Initialized() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.initialized
}

// Scrolls returns how many scrolls have happened since Initialize.
func (d *Driver) Scrolls() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scrolls
}

func (d *Driver) Width() int  { return d.width }
func (d *Driver) Height() int { return d.height }

// Snapshot copies the surface together with the cursor.
func (d *Driver) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	snap := Capture(d.surface)
	snap.Cursor = d.cursor
	return snap
}

// === internal, caller holds mu ===

func (d *Driver) putCell(c byte, attr Attribute, x, y int) error {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return &BoundsError{X: x, Y: y, Width: d.width, Height: d.height}
	}
	d.surface.Store(y*d.width+x, Cell{Char: c, Attr: attr}.Pack())
	return nil
}

func (d *Driver) putChar(c byte) error {
	if c == '\n' {
		d.scroll()
		d.cursor.X = 0
		return nil
	}

	if err := d.putCell(c, d.attr, d.cursor.X, d.cursor.Y); err != nil {
		return err
	}
	d.cursor.X++
	if d.cursor.X == d.width {
		d.cursor.X = 0
		d.scroll()
	}
	return nil
}

func (d *Driver) write(p []byte) (int, error) {
	for i, c := range p {
		if err := d.putChar(c); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

func (d *Driver) writeString(text string) (int, error) {
	if i := strings.IndexByte(text, 0); i >= 0 {
		text = text[:i]
	}
	return d.write([]byte(text))
}

// scroll shifts every row up by one. Row 0 is discarded.
func (d *Driver) scroll() {
	for y := 1; y < d.height; y++ {
		src := y * d.width
		dst := (y - 1) * d.width
		for x := 0; x < d.width; x++ {
			cell := UnpackCell(d.surface.Load(src + x))
			if !d.opts.KeepAttributes {
				cell.Attr = d.attr
			}
			d.surface.Store(dst+x, cell.Pack())
		}
	}

	if d.opts.BlankExposedRow {
		blank := Blank(d.attr).Pack()
		last := (d.height - 1) * d.width
		for x := 0; x < d.width; x++ {
			d.surface.Store(last+x, blank)
		}
	}
	d.scrolls++
}
