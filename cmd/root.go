package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/guohuiyuan/music-dl-desktop/config"
	"github.com/guohuiyuan/music-dl-desktop/internal/shell"
	"github.com/guohuiyuan/music-dl-desktop/util/conf"
	"github.com/guohuiyuan/music-dl-desktop/util/logging"
	"github.com/urfave/cli/v2"
)

var (
	appName  = "music-dl-desktop"
	appUsage = `Desktop host for the music-dl web server. Locates the music-dl
binary, starts it in web mode and stops it again on exit.`
	rootApp = &cli.App{
		Name:            appName,
		Usage:           appUsage,
		HideHelpCommand: true,
		Flags: append([]cli.Flag{
			// general flags
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "set the log level. Options: debug, info, warn, error, panic, fatal.",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "set the log format. Options: production, development.",
				EnvVars: []string{"LOG_FORMAT"},
			},
			&cli.PathFlag{
				Name:    "config",
				Usage:   "load configuration from a json or .env file.",
				EnvVars: []string{"DESKTOP_CONFIG"},
			},
		}, workerFlags()...),
		Before: func(ctx *cli.Context) error {
			cfg, err := parseConfig(ctx)
			if err != nil {
				return err
			}

			// create the logger
			log, err := logging.New(appName, cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}

			// inject logger and config into cli context
			ctx.Context = logging.ContextWithLogger(ctx.Context, log)
			ctx.Context = conf.ContextWithConfig(ctx.Context, cfg)

			return nil
		},
		After: func(ctx *cli.Context) error {
			log, err := logging.LoggerFromContext(ctx.Context)
			if err != nil {
				return err
			}

			_ = log.Sync()

			return nil
		},
		Action: runAction,
	}

	// cliMap maps flag names to config keys
	cliMap = map[string]string{
		"binary":         "worker.binary",
		"search-dir":     "worker.search_dirs",
		"port":           "worker.port",
		"url-path":       "worker.url_path",
		"startup-delay":  "worker.startup_delay",
		"shutdown-delay": "worker.shutdown_delay",
		"control":        "control.enabled",
		"control-host":   "control.host",
		"control-port":   "control.port",
	}
)

// workerFlags returns the worker and control flags. They are accepted
// both before and after the command name, so each call returns new
// flag instances.
func workerFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "binary",
			Usage:    "the base name of the worker executable.",
			Category: "worker",
		},
		&cli.StringSliceFlag{
			Name:     "search-dir",
			Usage:    "a directory to search for the worker, in order. Repeatable.",
			Category: "worker",
		},
		&cli.IntFlag{
			Name:     "port",
			Aliases:  []string{"p"},
			Usage:    "the port the worker listens on.",
			Category: "worker",
		},
		&cli.StringFlag{
			Name:     "url-path",
			Usage:    "the path of the worker's web ui.",
			Category: "worker",
		},
		&cli.DurationFlag{
			Name:     "startup-delay",
			Usage:    "how long to wait for the worker to become ready.",
			Category: "worker",
		},
		&cli.DurationFlag{
			Name:     "shutdown-delay",
			Usage:    "how long to wait after stopping the worker.",
			Category: "worker",
		},
		// control flags
		&cli.BoolFlag{
			Name:     "control",
			Usage:    "serve the local control endpoints.",
			Category: "control",
		},
		&cli.StringFlag{
			Name:     "control-host",
			Usage:    "the host the control server listens on.",
			Category: "control",
		},
		&cli.IntFlag{
			Name:     "control-port",
			Usage:    "the port the control server listens on.",
			Category: "control",
		},
	}
}

// parseConfig loads the config from defaults, file, env and the flags
// set anywhere in the context lineage.
func parseConfig(ctx *cli.Context) (config.Config, error) {
	cfg, err := conf.Parse[config.Config](conf.ParseOptions{
		Cli:       ctx,
		CliMap:    cliMap,
		Defaults:  config.DefaultConfig,
		EnvPrefix: config.EnvPrefix,
		FileName:  ctx.Path("config"),
	})
	if err != nil {
		return cfg, err
	}

	if err := cfg.Worker.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid worker config: %w", err)
	}

	return cfg, nil
}

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:               "version",
		Usage:              "print the version",
		DisableDefaultText: true,
	}
}

type ExecuteParams struct {
	Version  string
	Compiled time.Time
}

// Execute runs the cli and returns the process exit code.
func Execute(params ExecuteParams) int {
	rootApp.Version = params.Version
	rootApp.Compiled = params.Compiled

	return run(context.Background(), os.Args)
}

func run(ctx context.Context, args []string) int {
	err := rootApp.RunContext(ctx, args)

	code := shell.ExitCode(err)

	// if app exited without error, return
	if code == 0 {
		return 0
	}

	if !isFailure(err) {
		return code
	}

	sentry.CaptureException(err)

	errWriter := rootApp.ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}

	fmt.Fprintf(errWriter, "exit error: %s\n", diagnostic(err))

	return code
}

// isFailure reports whether err should be reported. An ExitError
// without a cause only carries the exit code the shell chose.
func isFailure(err error) bool {
	if err == nil || !shell.IsExitError(err) {
		return err != nil
	}

	var exitErr *shell.ExitError
	errors.As(err, &exitErr)

	return exitErr.Err != nil
}
