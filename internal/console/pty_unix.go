// pty_unix.go - run a child process on a pseudo terminal and feed its output
//go:build !windows

package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"syscall"

	"github.com/creack/pty"
)

// RunCommand starts argv on a pseudo terminal of cols x rows, copies
// everything it prints into dst and waits for it to exit. Cancelling ctx
// kills the child.
func RunCommand(ctx context.Context, dst io.Writer, cols, rows int, argv ...string) error {
	if len(argv) == 0 {
		return errors.New("no command given")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Env = append(os.Environ(),
		"TERM=dumb",
		fmt.Sprintf("COLUMNS=%d", cols),
		fmt.Sprintf("LINES=%d", rows),
	)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
	if err != nil {
		return fmt.Errorf("failed to start %s: %w", argv[0], err)
	}
	defer ptmx.Close()

	log.Printf("Started %s with PTY (%dx%d)", argv[0], cols, rows)

	_, perr := Pump(ctx, dst, ptmx)
	// Linux reports EIO on the master once the child side closes.
	if errors.Is(perr, syscall.EIO) {
		perr = nil
	}

	werr := cmd.Wait()
	if perr != nil {
		return perr
	}
	if werr != nil {
		return fmt.Errorf("%s exited: %w", argv[0], werr)
	}
	return nil
}
