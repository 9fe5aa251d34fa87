package worker

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"go.uber.org/zap"
)

// Handle owns a started worker process. The process is reaped in the
// background; Done is closed once it has exited.
type Handle struct {
	pid      int
	path     string
	process  *os.Process
	platform Platform

	done    chan struct{}
	exitErr error

	log *zap.Logger
}

func newHandle(path string, cmd *exec.Cmd, platform Platform, log *zap.Logger) *Handle {
	h := &Handle{
		pid:      cmd.Process.Pid,
		path:     path,
		process:  cmd.Process,
		platform: platform,
		done:     make(chan struct{}),
		log:      log.With(zap.Int("pid", cmd.Process.Pid)),
	}

	go func() {
		// block until the process exits
		h.exitErr = cmd.Wait()

		close(h.done)

		h.log.Debug("worker exited", zap.NamedError("exit", h.exitErr))
	}()

	return h
}

// Pid returns the process id of the worker.
func (h *Handle) Pid() int {
	return h.pid
}

// Path returns the candidate location the worker was started from.
func (h *Handle) Path() string {
	return h.path
}

// Done is closed once the worker process has exited.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// ExitErr returns the error reported by the process on exit. Only
// valid after Done is closed.
func (h *Handle) ExitErr() error {
	return h.exitErr
}

// Terminate requests the worker to stop. It does not wait for the
// process to exit. A process that already exited counts as terminated.
func (h *Handle) Terminate() error {
	select {
	case <-h.done:
		h.log.Debug("process already terminated")
		return nil
	default:
		// continue
	}

	h.log.Info("sending termination request")

	err := h.platform.Terminate(h.process)
	if err == nil || errors.Is(err, os.ErrProcessDone) {
		return nil
	}

	return fmt.Errorf("failed to terminate worker: %w", err)
}
