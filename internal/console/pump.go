package console

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
)

const pumpChunk = 4096

// Pump copies src into dst until EOF or until ctx is done. Carriage returns
// are dropped since the display only understands newlines. It returns the
// number of bytes read from src.
func Pump(ctx context.Context, dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, pumpChunk)
	var total int64

	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		n, err := src.Read(buf)
		if n > 0 {
			total += int64(n)
			chunk := stripCR(buf[:n])
			if _, werr := dst.Write(chunk); werr != nil {
				return total, fmt.Errorf("failed to write to console: %w", werr)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return total, nil
			}
			return total, err
		}
	}
}

func stripCR(p []byte) []byte {
	if bytes.IndexByte(p, '\r') < 0 {
		return p
	}
	out := p[:0]
	for _, c := range p {
		if c != '\r' {
			out = append(out, c)
		}
	}
	return out
}
