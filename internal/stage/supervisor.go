package stage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"syscall"

	"loom/internal/services"
)

// Handle references one running external process. It becomes invalid for
// further Wait calls once Wait has returned.
type Handle struct {
	role   string
	cmd    *exec.Cmd
	stderr *tailBuffer

	mu     sync.Mutex
	waited bool
	status ExitStatus
}

// Launch starts an external process from the given argument vector. The first
// element is the executable; it is resolved via PATH when not absolute.
func Launch(ctx context.Context, role string, argv []string) (*Handle, error) {
	if len(argv) == 0 {
		return nil, services.Wrap(services.ErrLaunch, role, "launch", "empty argument vector", nil)
	}

	binary, err := exec.LookPath(argv[0])
	if err != nil {
		return nil, services.Wrap(services.ErrLaunch, role, "launch",
			fmt.Sprintf("executable %q not found", argv[0]), err)
	}

	tail := newTailBuffer(4096)
	cmd := exec.CommandContext(ctx, binary, argv[1:]...) //nolint:gosec
	cmd.Stderr = tail
	cmd.Stdout = tail

	if err := cmd.Start(); err != nil {
		return nil, services.Wrap(services.ErrLaunch, role, "launch", "start process", err)
	}

	return &Handle{role: role, cmd: cmd, stderr: tail}, nil
}

// Role returns the logical stage name supplied at launch.
func (h *Handle) Role() string { return h.role }

// PID returns the operating-system process identifier.
func (h *Handle) PID() int {
	if h.cmd.Process == nil {
		return 0
	}
	return h.cmd.Process.Pid
}

// Wait blocks until the process terminates and returns its exit status.
// A signaled exit is reported as a status, not an error; Wait errors only on
// supervision problems (for example an I/O failure collecting the process).
func (h *Handle) Wait() (ExitStatus, error) {
	err := h.cmd.Wait()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.waited = true

	if err == nil {
		h.status = ExitStatus{Code: 0}
		return h.status, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		h.status = statusFromState(exitErr.ProcessState)
		return h.status, nil
	}
	return ExitStatus{Code: -1}, services.Wrap(services.ErrStageFailure, h.role, "wait", "collect process", err)
}

// Terminate requests graceful termination with SIGTERM. Calling it on a
// process that has already exited is a no-op.
func (h *Handle) Terminate() {
	h.mu.Lock()
	waited := h.waited
	h.mu.Unlock()
	if waited || h.cmd.Process == nil {
		return
	}
	if err := h.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			return
		}
		// The wait side reports the authoritative status; nothing to do here.
	}
}

// Output returns the tail of the process's combined stdout/stderr, used to
// annotate failure reports.
func (h *Handle) Output() string {
	return strings.TrimSpace(h.stderr.String())
}

func statusFromState(state *os.ProcessState) ExitStatus {
	if state == nil {
		return ExitStatus{Code: -1}
	}
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return ExitStatus{Code: -1, Signal: ws.Signal().String()}
	}
	return ExitStatus{Code: state.ExitCode()}
}
