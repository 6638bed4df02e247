package vga

import "fmt"

// Standard text-mode geometry.
const (
	Width  = 80
	Height = 25
)

// Surface is the grid of packed cell words the driver writes into. Cell (x, y)
// lives at index y*Width() + x. Implementations do not bounds-check; the
// driver does.
type Surface interface {
	Width() int
	Height() int
	Load(index int) uint16
	Store(index int, v uint16)
}

// MemorySurface is a heap-backed surface. It stands in for the hardware
// region in tests and in hosted runs that do not need to share the grid.
type MemorySurface struct {
	width  int
	height int
	cells  []uint16
}

// NewMemorySurface allocates a zeroed width x height surface.
func NewMemorySurface(width, height int) (*MemorySurface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGeometry, width, height)
	}
	return &MemorySurface{
		width:  width,
		height: height,
		cells:  make([]uint16, width*height),
	}, nil
}

func (s *MemorySurface) Width() int  { return s.width }
func (s *MemorySurface) Height() int { return s.height }

func (s *MemorySurface) Load(index int) uint16 {
	return s.cells[index]
}

func (s *MemorySurface) Store(index int, v uint16) {
	s.cells[index] = v
}

// Words returns the backing cell words. The slice aliases the surface.
func (s *MemorySurface) Words() []uint16 {
	return s.cells
}
