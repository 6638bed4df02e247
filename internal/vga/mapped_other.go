//go:build !unix

package vga

import "errors"

// MappedSurface is only available on unix hosts.
type MappedSurface struct {
	MemorySurface
}

// OpenMapped reports that shared mappings are not supported on this platform.
func OpenMapped(path string, width, height int) (*MappedSurface, error) {
	return nil, errors.New("mapped surfaces are not supported on this platform")
}

func (s *MappedSurface) Sync() error  { return nil }
func (s *MappedSurface) Close() error { return nil }
