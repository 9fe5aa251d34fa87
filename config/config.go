package config

import (
	"github.com/guohuiyuan/music-dl-desktop/internal/execution/worker"
	"github.com/guohuiyuan/music-dl-desktop/internal/server"
	"github.com/guohuiyuan/music-dl-desktop/util/conf"
	"github.com/guohuiyuan/music-dl-desktop/util/logging"
)

// EnvPrefix is the prefix of env vars read into the config,
// e.g. DESKTOP_WORKER__PORT sets worker.port.
const EnvPrefix = "DESKTOP_"

type Config struct {
	// LogLevel is the log level for the application
	LogLevel string `conf:"log_level"`

	// LogFormat is the log format for the application
	LogFormat string `conf:"log_format"`

	// Worker is the configuration of the supervised worker
	Worker worker.Config `conf:"worker"`

	// Control is the configuration of the local control server
	Control server.HttpConfig `conf:"control"`
}

// DefaultConfig holds the default values for every config key.
var DefaultConfig = conf.Combine(
	conf.DefaultConfig{
		"log_level":  "info",
		"log_format": logging.FormatProduction,
	},
	conf.MergeDefaults("worker", conf.DefaultConfig{
		"binary":         worker.DefaultBinary,
		"search_dirs":    worker.DefaultSearchDirs,
		"port":           worker.DefaultPort,
		"url_path":       worker.DefaultURLPath,
		"startup_delay":  worker.DefaultStartupDelay,
		"shutdown_delay": worker.DefaultShutdownDelay,
		"args":           worker.DefaultArgs,
	}),
	conf.MergeDefaults("control", conf.DefaultConfig{
		"enabled": false,
		"host":    "localhost",
		"port":    37778,
		"h2c":     false,
	}),
)
