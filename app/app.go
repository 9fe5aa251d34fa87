package app

import (
	"github.com/guohuiyuan/music-dl-desktop/config"
	"github.com/guohuiyuan/music-dl-desktop/internal/host"
	"github.com/guohuiyuan/music-dl-desktop/internal/shell"
	"github.com/guohuiyuan/music-dl-desktop/util/conf"
	"github.com/guohuiyuan/music-dl-desktop/util/logging"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
)

// New creates the shell hosting the worker supervisor, using the logger
// and config stored in the cli context.
func New(ctx *cli.Context) (*shell.Shell, fx.Option, error) {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return nil, nil, err
	}

	config, err := conf.GetConfigFromContext[config.Config](ctx.Context)
	if err != nil {
		return nil, nil, err
	}

	sharedModule := fx.Module(
		"shared",
		// provide global config
		fx.Supply(config),
	)

	hostModule := host.Module(host.Config{
		Worker:  config.Worker,
		Control: config.Control,
	})

	return shell.New(log, sharedModule), hostModule, nil
}
