package supervisor

import (
	"errors"
	"time"

	"github.com/guohuiyuan/music-dl-desktop/internal/execution/worker"
	"go.uber.org/zap"
)

// Terminator is implemented by anything that can be asked to stop.
type Terminator interface {
	Terminate() error
}

// ForceKiller forcibly ends every process running a binary.
type ForceKiller interface {
	ForceKill(binary string) error
}

// Outcome reports what happened during a shutdown. It is informational
// only, shutdown always completes.
type Outcome struct {
	// Graceful is true if the termination request succeeded
	Graceful bool

	// GracefulErr is the error returned by the termination request
	GracefulErr error

	// ForceAttempted is true if the force kill utility was invoked
	ForceAttempted bool

	// ForceErr is the error returned by the force kill utility
	ForceErr error
}

// Coordinator runs the shutdown sequence: request termination, fall back
// to a force kill if the request fails, then wait the settle delay.
type Coordinator struct {
	killer ForceKiller
	binary string
	delay  time.Duration
	sleep  SleepFn

	log *zap.Logger
}

func NewCoordinator(
	killer ForceKiller,
	binary string,
	delay time.Duration,
	sleep SleepFn,
	log *zap.Logger,
) *Coordinator {
	if sleep == nil {
		sleep = time.Sleep
	}

	return &Coordinator{
		killer: killer,
		binary: binary,
		delay:  delay,
		sleep:  sleep,
		log:    log.Named("shutdown"),
	}
}

// Shutdown blocks until the sequence has completed. Errors are logged
// and reported in the outcome, never returned.
func (c *Coordinator) Shutdown(t Terminator) Outcome {
	var outcome Outcome

	log := c.log.With(zap.String("binary", c.binary))

	log.Info("terminating worker")

	if err := t.Terminate(); err != nil {
		outcome.GracefulErr = err

		log.Warn("graceful termination failed", zap.Error(err))

		outcome.ForceErr = c.killer.ForceKill(c.binary)
		outcome.ForceAttempted = !errors.Is(outcome.ForceErr, worker.ErrForceKillUnsupported)

		switch {
		case !outcome.ForceAttempted:
			log.Debug("force kill unavailable on this platform")
		case outcome.ForceErr != nil:
			log.Warn("force kill failed", zap.Error(outcome.ForceErr))
		default:
			log.Info("force kill issued")
		}
	} else {
		outcome.Graceful = true
	}

	// give the OS time to reclaim the worker's resources
	c.sleep(c.delay)

	log.Info("worker terminated")

	return outcome
}
