package cmd

import (
	"errors"

	"github.com/guohuiyuan/music-dl-desktop/app"
	"github.com/guohuiyuan/music-dl-desktop/internal/execution/worker"
	"github.com/guohuiyuan/music-dl-desktop/util/conf"
	"github.com/urfave/cli/v2"
)

func runAction(ctx *cli.Context) error {
	shell, hostModule, err := app.New(ctx)
	if err != nil {
		return err
	}

	return shell.Run(ctx.Context, hostModule)
}

// diagnostic returns the message shown to the operator for a failed run.
func diagnostic(err error) string {
	var notFound *worker.NotFoundError
	if errors.As(err, &notFound) {
		return notFound.Error()
	}

	return err.Error()
}

var runCmd = &cli.Command{
	Name:   "run",
	Usage:  "Start the worker and wait for a shutdown signal. This is the default command.",
	Flags:  workerFlags(),
	Before: runBefore,
	Action: runAction,
}

// runBefore parses the config again, now including the flags given
// after the command name.
func runBefore(ctx *cli.Context) error {
	cfg, err := parseConfig(ctx)
	if err != nil {
		return err
	}

	ctx.Context = conf.ContextWithConfig(ctx.Context, cfg)

	return nil
}

func init() {
	rootApp.Commands = append(rootApp.Commands, runCmd)
}
