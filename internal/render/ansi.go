// ansi.go - dump a surface snapshot to a terminal or plain text stream
package render

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"arcos/internal/vga"
)

const (
	csi      = "\x1b["
	sgrReset = csi + "0m"
)

// WriteANSI writes every row of snap with colour escapes. A colour escape is
// emitted only where the attribute changes; each row ends with a reset and
// CRLF.
func WriteANSI(w io.Writer, snap vga.Snapshot) error {
	return writeANSI(w, snap, snap.Width)
}

func writeANSI(w io.Writer, snap vga.Snapshot, cols int) error {
	if cols > snap.Width || cols <= 0 {
		cols = snap.Width
	}

	bw := bufio.NewWriter(w)
	for y := 0; y < snap.Height; y++ {
		var last vga.Attribute
		first := true
		for x := 0; x < cols; x++ {
			cell := snap.At(x, y)
			if first || cell.Attr != last {
				bw.WriteString(csi + SGR(cell.Attr) + "m")
				last = cell.Attr
				first = false
			}
			bw.WriteRune(Glyph(cell.Char))
		}
		bw.WriteString(sgrReset + "\r\n")
	}
	return bw.Flush()
}

// WritePlain writes the glyphs of every row without colour, trailing spaces
// trimmed.
func WritePlain(w io.Writer, snap vga.Snapshot) error {
	bw := bufio.NewWriter(w)
	for y := 0; y < snap.Height; y++ {
		var line strings.Builder
		for x := 0; x < snap.Width; x++ {
			line.WriteRune(Glyph(snap.At(x, y).Char))
		}
		bw.WriteString(strings.TrimRight(line.String(), " "))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Present writes snap to f, in colour when f is a terminal and as plain text
// otherwise. Rows are clipped to the terminal width.
func Present(f *os.File, snap vga.Snapshot) error {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return WritePlain(f, snap)
	}

	enableVT(f)

	cols := snap.Width
	if c, _, err := term.GetSize(fd); err == nil && c > 0 && c < cols {
		cols = c
	}
	if err := writeANSI(f, snap, cols); err != nil {
		return fmt.Errorf("failed to write screen: %w", err)
	}
	return nil
}
