// Package toolchain drives the external compiler as a subprocess. Its entire
// contract with the toolchain is a command line, a working directory, an exit
// code, and the captured stdout/stderr streams; there is no other
// side-channel communication.
//
// The driver sets no timeout of its own: compilation is waited on
// synchronously, and callers needing bounded latency pass a context with a
// deadline or cancellation.
package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/vk/snakepack/internal/ctxlog"
)

// Invocation describes one toolchain subprocess run.
type Invocation struct {
	// Args is the full command line; Args[0] is the executable.
	Args []string
	// Dir is the working directory, normally the workspace root.
	Dir string
}

// Result holds the captured streams of a zero-exit invocation.
type Result struct {
	Stdout []byte
	Stderr []byte
}

// ExitError reports a toolchain process that exited non-zero. It carries the
// captured stderr verbatim for diagnosis. Compilation is deterministic, so
// the pipeline never retries a failed invocation.
type ExitError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("toolchain %q exited with code %d", e.Command, e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ":\n" + s
	}
	return msg
}

// Run executes the invocation and waits for it to finish. A non-zero exit
// returns a *ExitError; any other failure to run the process is returned
// wrapped. Success is exit code zero.
func Run(ctx context.Context, inv Invocation) (*Result, error) {
	if len(inv.Args) == 0 {
		return nil, errors.New("toolchain invocation has no command")
	}

	logger := ctxlog.FromContext(ctx)
	logger.Info("🔧 Invoking toolchain.", "command", inv.Args, "dir", inv.Dir)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, inv.Args[0], inv.Args[1:]...)
	cmd.Dir = inv.Dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &ExitError{
				Command:  inv.Args[0],
				ExitCode: exitErr.ExitCode(),
				Stderr:   stderr.String(),
			}
		}
		return nil, fmt.Errorf("run toolchain %q: %w", inv.Args[0], err)
	}

	logger.Debug("Toolchain finished.", "stdout_bytes", stdout.Len(), "stderr_bytes", stderr.Len())
	return &Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}, nil
}
