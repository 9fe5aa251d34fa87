package worker

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"go.uber.org/zap"
)

// Launcher starts the worker from the first candidate location that
// can be executed.
type Launcher struct {
	platform Platform
	start    func(*exec.Cmd) error
	log      *zap.Logger
}

func NewLauncher(platform Platform, log *zap.Logger) *Launcher {
	return &Launcher{
		platform: platform,
		start:    (*exec.Cmd).Start,
		log:      log.Named("launcher"),
	}
}

// Launch tries every candidate returned by Candidates in order and
// returns a handle to the first process that starts. No further
// candidates are tried after a successful start. If every candidate
// fails, the returned error is a *NotFoundError.
func (l *Launcher) Launch(ctx context.Context, config Config) (*Handle, error) {
	candidates := Candidates(config)
	errs := make([]error, 0, len(candidates))

	for _, candidate := range candidates {
		// exit early if the context is already cancelled
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("failed to launch worker: %w", err)
		}

		handle, err := l.spawn(candidate, config)
		if err != nil {
			l.log.Debug("candidate failed",
				zap.String("path", candidate),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("%s: %w", candidate, err))
			continue
		}

		l.log.Info("worker started",
			zap.String("path", candidate),
			zap.Int("pid", handle.Pid()),
		)

		return handle, nil
	}

	return nil, &NotFoundError{
		Binary:     config.Binary,
		Candidates: candidates,
		Errs:       errs,
	}
}

func (l *Launcher) spawn(candidate string, config Config) (*Handle, error) {
	cmd := exec.Command(candidate, config.StartArgs()...)

	// the worker writes straight to the host's streams
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	l.platform.ConfigureCmd(cmd)

	if err := l.start(cmd); err != nil {
		return nil, err
	}

	return newHandle(candidate, cmd, l.platform, l.log), nil
}
