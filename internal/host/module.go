package host

import (
	"context"
	"time"

	"github.com/guohuiyuan/music-dl-desktop/internal/control"
	"github.com/guohuiyuan/music-dl-desktop/internal/execution/supervisor"
	"github.com/guohuiyuan/music-dl-desktop/internal/execution/worker"
	"github.com/guohuiyuan/music-dl-desktop/internal/server"
	"github.com/guohuiyuan/music-dl-desktop/util/logging"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// hookTimeout bounds the lifecycle hooks on top of the configured delays.
const hookTimeout = 15 * time.Second

type Config struct {
	// Worker is the configuration of the supervised worker
	Worker worker.Config

	// Control is the configuration of the control server
	Control server.HttpConfig
}

// Module wires the worker supervisor into the application lifecycle.
// The worker is started and awaited before anything user-facing starts,
// and shut down when the application receives its stop signal.
func Module(config Config) fx.Option {
	options := []fx.Option{
		// rename logger for module
		logging.DecorateLogger("host"),
		// provide supervisor
		supervisor.Module(config.Worker),
		// announce the endpoint once the worker is ready
		fx.Invoke(announceEndpoint),
	}

	if config.Control.Enabled {
		options = append(options,
			// provide control handlers
			control.Module(),
			// provide control server
			server.Module(config.Control),
		)
	}

	return fx.Options(
		fx.StartTimeout(config.Worker.StartupDelay+hookTimeout),
		fx.StopTimeout(config.Worker.ShutdownDelay+hookTimeout),
		fx.Module("host", options...),
	)
}

func announceEndpoint(s supervisor.Supervisor, lc fx.Lifecycle, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			log.Info("worker ready",
				zap.String("endpoint", s.Endpoint()),
				zap.String("path", s.Path()),
				zap.Int("pid", s.Pid()),
			)
			return nil
		},
	})
}
