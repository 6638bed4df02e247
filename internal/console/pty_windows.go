// pty_windows.go - Windows ConPTY variant of RunCommand
//go:build windows

package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"syscall"

	"github.com/ActiveState/termtest/conpty"
)

// RunCommand starts argv inside a ConPTY of cols x rows, copies everything it
// prints into dst and waits for it to exit. Cancelling ctx kills the child.
func RunCommand(ctx context.Context, dst io.Writer, cols, rows int, argv ...string) error {
	if len(argv) == 0 {
		return errors.New("no command given")
	}

	cpty, err := conpty.New(int16(cols), int16(rows))
	if err != nil {
		return fmt.Errorf("failed to create ConPTY: %v", err)
	}
	defer cpty.Close()

	env := append(os.Environ(),
		fmt.Sprintf("COLUMNS=%d", cols),
		fmt.Sprintf("LINES=%d", rows),
	)

	pid, _, err := cpty.Spawn(argv[0], argv[1:], &syscall.ProcAttr{Env: env})
	if err != nil {
		return fmt.Errorf("failed to spawn %s: %v", strings.Join(argv, " "), err)
	}

	process, err := os.FindProcess(int(pid))
	if err != nil {
		return fmt.Errorf("failed to find process: %v", err)
	}
	log.Printf("Started %s with ConPTY (PID: %d)", argv[0], pid)

	exited := make(chan error, 1)
	done := make(chan struct{})
	go func() {
		_, werr := process.Wait()
		close(done)
		cpty.OutPipe().Close()
		exited <- werr
	}()

	go func() {
		select {
		case <-ctx.Done():
			_ = process.Kill()
		case <-done:
		}
	}()

	if _, err := Pump(ctx, dst, cpty.OutPipe()); err != nil && !errors.Is(err, os.ErrClosed) {
		return err
	}
	return <-exited
}
