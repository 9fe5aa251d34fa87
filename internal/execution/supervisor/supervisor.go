package supervisor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/guohuiyuan/music-dl-desktop/internal/execution/worker"
	"go.uber.org/zap"
)

var (
	ErrAlreadyStarted = errors.New("supervisor already started")
	ErrNotRunning     = errors.New("worker not running")
)

type Supervisor interface {
	// Start locates and starts the worker. It fails with an error
	// matching worker.ErrWorkerNotFound if no candidate could be started.
	Start(ctx context.Context) error

	// AwaitReady blocks for the configured startup delay. The worker is
	// assumed to be ready once it returns.
	AwaitReady() error

	// RequestShutdown terminates the worker and blocks until the
	// shutdown sequence completes. Calls made while the worker is not
	// running are ignored.
	RequestShutdown() Outcome

	// State returns the current lifecycle state.
	State() State

	// Pid returns the pid of the running worker, or 0.
	Pid() int

	// Path returns the location the worker was started from.
	Path() string

	// Endpoint returns the URL served by the worker.
	Endpoint() string
}

// Process is a started worker process.
type Process interface {
	Terminator

	Pid() int
	Path() string
}

// LaunchFn starts a worker process for the given config.
type LaunchFn func(context.Context, worker.Config) (Process, error)

// SleepFn blocks for the given duration.
type SleepFn func(time.Duration)

type Params struct {
	// Config is the worker configuration. It is validated by New.
	Config worker.Config

	// Platform provides the OS-specific spawn and kill behaviour.
	// Defaults to worker.NativePlatform().
	Platform worker.Platform

	// LaunchFn starts the worker. Defaults to a worker.Launcher
	// using Platform.
	LaunchFn LaunchFn

	// Sleep is used for the startup and settle delays.
	// Defaults to time.Sleep.
	Sleep SleepFn

	// Log is the logger to use for the supervisor
	Log *zap.Logger
}

type WorkerSupervisor struct {
	config      worker.Config
	launch      LaunchFn
	coordinator *Coordinator
	sleep       SleepFn

	stateLock sync.Mutex
	state     State
	process   Process
	path      string

	log *zap.Logger
}

var _ Supervisor = (*WorkerSupervisor)(nil)

func New(params Params) (*WorkerSupervisor, error) {
	if err := params.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid worker config: %w", err)
	}

	if params.Log == nil {
		params.Log = zap.NewNop()
	}

	if params.Platform == nil {
		params.Platform = worker.NativePlatform()
	}

	if params.Sleep == nil {
		params.Sleep = time.Sleep
	}

	if params.LaunchFn == nil {
		params.LaunchFn = defaultLaunchFn(params.Platform, params.Log)
	}

	log := params.Log.Named("supervisor")

	return &WorkerSupervisor{
		config: params.Config,
		launch: params.LaunchFn,
		coordinator: NewCoordinator(
			params.Platform,
			params.Config.Binary,
			params.Config.ShutdownDelay,
			params.Sleep,
			log,
		),
		sleep: params.Sleep,
		state: NotStarted,
		log:   log,
	}, nil
}

func (s *WorkerSupervisor) Start(ctx context.Context) error {
	s.stateLock.Lock()
	if s.state != NotStarted {
		s.stateLock.Unlock()
		return ErrAlreadyStarted
	}
	s.state = Starting
	s.stateLock.Unlock()

	s.log.Info("starting worker",
		zap.String("binary", s.config.Binary),
		zap.Strings("search_dirs", s.config.SearchDirs),
		zap.Strings("args", s.config.StartArgs()),
	)

	process, err := s.launch(ctx, s.config)

	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	if err != nil {
		// no handle is retained, the supervisor is done
		s.state = Terminated
		return err
	}

	s.process = process
	s.path = process.Path()
	s.state = Running

	return nil
}

func (s *WorkerSupervisor) AwaitReady() error {
	if state := s.State(); state != Running {
		return fmt.Errorf("%w: %s", ErrNotRunning, state)
	}

	s.log.Info("waiting for worker", zap.Duration("delay", s.config.StartupDelay))

	s.sleep(s.config.StartupDelay)

	return nil
}

func (s *WorkerSupervisor) RequestShutdown() Outcome {
	s.stateLock.Lock()
	if s.state != Running {
		state := s.state
		s.stateLock.Unlock()

		s.log.Debug("ignoring shutdown request", zap.Stringer("state", state))
		return Outcome{}
	}

	s.state = ShuttingDown
	process := s.process
	s.stateLock.Unlock()

	outcome := s.coordinator.Shutdown(process)

	s.stateLock.Lock()
	s.process = nil
	s.state = Terminated
	s.stateLock.Unlock()

	return outcome
}

func (s *WorkerSupervisor) State() State {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	return s.state
}

func (s *WorkerSupervisor) Pid() int {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	if s.process == nil {
		return 0
	}

	return s.process.Pid()
}

func (s *WorkerSupervisor) Path() string {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	return s.path
}

func (s *WorkerSupervisor) Endpoint() string {
	return s.config.Endpoint()
}

func defaultLaunchFn(platform worker.Platform, log *zap.Logger) LaunchFn {
	launcher := worker.NewLauncher(platform, log)

	return func(ctx context.Context, config worker.Config) (Process, error) {
		handle, err := launcher.Launch(ctx, config)
		if err != nil {
			return nil, err
		}

		return handle, nil
	}
}
