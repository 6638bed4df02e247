//go:build windows

package render

import (
	"os"

	"golang.org/x/sys/windows"
)

// enableVT turns on escape-sequence processing for a Windows console handle.
func enableVT(f *os.File) {
	h := windows.Handle(f.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return
	}
	mode |= windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING | windows.ENABLE_PROCESSED_OUTPUT
	_ = windows.SetConsoleMode(h, mode)
}
