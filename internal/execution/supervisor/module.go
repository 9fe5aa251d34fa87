package supervisor

import (
	"context"

	"github.com/guohuiyuan/music-dl-desktop/internal/execution/worker"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// LifecycleParams defines the dependencies for a lifecycle-managed supervisor.
type LifecycleParams struct {
	fx.In

	// Config is the worker configuration
	Config worker.Config

	// Platform overrides the native platform
	Platform worker.Platform `optional:"true"`

	// LaunchFn overrides the default launcher
	LaunchFn LaunchFn `optional:"true"`

	// Sleep overrides time.Sleep for the startup and settle delays
	Sleep SleepFn `optional:"true"`

	// Log is the logger to use for the supervisor
	Log *zap.Logger
}

// NewLifecycleSupervisor creates a supervisor that starts the worker and
// waits for it to become ready when the application starts, and shuts it
// down when the application stops.
func NewLifecycleSupervisor(params LifecycleParams, lc fx.Lifecycle) (Supervisor, error) {
	s, err := New(Params{
		Config:   params.Config,
		Platform: params.Platform,
		LaunchFn: params.LaunchFn,
		Sleep:    params.Sleep,
		Log:      params.Log,
	})
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := s.Start(ctx); err != nil {
				return err
			}

			return s.AwaitReady()
		},
		OnStop: func(context.Context) error {
			// shutdown is best-effort and always runs to completion
			s.RequestShutdown()
			return nil
		},
	})

	return s, nil
}

// Module provides a lifecycle-managed supervisor for the given config.
func Module(config worker.Config) fx.Option {
	return fx.Module(
		"supervisor",
		// provide worker config
		fx.Supply(config),
		// provide supervisor
		fx.Provide(NewLifecycleSupervisor),
	)
}
