//go:build unix

package vga

import (
	"fmt"
	"log"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// MappedSurface is a surface backed by a shared memory mapping of a file.
// Writes are visible to every process mapping the same file as soon as they
// are stored, the way the hardware text buffer is.
type MappedSurface struct {
	width  int
	height int
	file   *os.File
	data   []byte
	cells  []uint16
}

// OpenMapped maps path as a width x height surface, creating the file or
// growing it as needed. Cell words are stored in host byte order.
func OpenMapped(path string, width, height int) (*MappedSurface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGeometry, width, height)
	}
	size := width * height * 2

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open surface file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat surface file: %w", err)
	}
	if info.Size() < int64(size) {
		if err := f.Truncate(int64(size)); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to size surface file: %w", err)
		}
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to map surface file: %w", err)
	}

	log.Printf("Mapped %dx%d surface from %s", width, height, path)

	return &MappedSurface{
		width:  width,
		height: height,
		file:   f,
		data:   data,
		cells:  unsafe.Slice((*uint16)(unsafe.Pointer(&data[0])), width*height),
	}, nil
}

func (s *MappedSurface) Width() int  { return s.width }
func (s *MappedSurface) Height() int { return s.height }

func (s *MappedSurface) Load(index int) uint16 {
	return s.cells[index]
}

func (s *MappedSurface) Store(index int, v uint16) {
	s.cells[index] = v
}

// Sync flushes the mapping to the backing file.
func (s *MappedSurface) Sync() error {
	return unix.Msync(s.data, unix.MS_SYNC)
}

// Close unmaps the surface and closes the file. The surface must not be used
// afterwards.
func (s *MappedSurface) Close() error {
	var errs []error
	if s.data != nil {
		if err := unix.Munmap(s.data); err != nil {
			errs = append(errs, err)
		}
		s.data = nil
		s.cells = nil
	}
	if s.file != nil {
		if err := s.file.Close(); err != nil {
			errs = append(errs, err)
		}
		s.file = nil
	}
	if len(errs) > 0 {
		return fmt.Errorf("failed to close surface: %v", errs)
	}
	return nil
}
