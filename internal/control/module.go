package control

import (
	"github.com/guohuiyuan/music-dl-desktop/internal/execution/supervisor"
	"github.com/guohuiyuan/music-dl-desktop/internal/server"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module mounts the control endpoints on the control server.
func Module() fx.Option {
	return fx.Module(
		"control",
		fx.Provide(
			func(s supervisor.Supervisor) server.HttpHandlerResult {
				return server.AsHttpHandler("GET /{$}", NewOpenHandler(s))
			},
			func(s supervisor.Supervisor) server.HttpHandlerResult {
				return server.AsHttpHandler("GET /status", NewStatusHandler(s))
			},
			func(shutdowner fx.Shutdowner, log *zap.Logger) server.HttpHandlerResult {
				shutdown := func() error {
					return shutdowner.Shutdown()
				}

				return server.AsHttpHandler("POST /shutdown", NewShutdownHandler(shutdown, log.Named("control")))
			},
		),
	)
}
