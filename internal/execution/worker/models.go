package worker

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrWorkerNotFound       = errors.New("worker not found")
	ErrForceKillUnsupported = errors.New("force kill not supported on this platform")
	ErrInvalidBinary        = errors.New("invalid worker binary")
	ErrInvalidPort          = errors.New("invalid worker port")
	ErrInvalidDelay         = errors.New("invalid delay")
)

// DefaultSearchDirs lists the directories searched for the worker binary,
// most specific first. The environment's PATH is consulted last.
var DefaultSearchDirs = []string{".", "..", "../..", "../../.."}

// DefaultArgs are passed to the worker ahead of the port flag.
var DefaultArgs = []string{"web", "--no-browser"}

const (
	DefaultPort          = 37777
	DefaultURLPath       = "/music"
	DefaultStartupDelay  = 2000 * time.Millisecond
	DefaultShutdownDelay = 500 * time.Millisecond
)

type Config struct {
	// Binary is the base name of the worker executable
	Binary string `conf:"binary"`

	// SearchDirs are the directories searched for Binary, in order
	SearchDirs []string `conf:"search_dirs"`

	// Port is the port the worker listens on
	Port int `conf:"port"`

	// URLPath is appended to the worker address to form the endpoint
	URLPath string `conf:"url_path"`

	// StartupDelay is how long to wait before the worker is assumed ready
	StartupDelay time.Duration `conf:"startup_delay"`

	// ShutdownDelay is how long to wait after termination before exiting
	ShutdownDelay time.Duration `conf:"shutdown_delay"`

	// Args are the arguments passed to the worker ahead of the port flag
	Args []string `conf:"args"`
}

// DefaultConfig returns the configuration of the bundled music-dl worker.
func DefaultConfig() Config {
	return Config{
		Binary:        DefaultBinary,
		SearchDirs:    append([]string(nil), DefaultSearchDirs...),
		Port:          DefaultPort,
		URLPath:       DefaultURLPath,
		StartupDelay:  DefaultStartupDelay,
		ShutdownDelay: DefaultShutdownDelay,
		Args:          append([]string(nil), DefaultArgs...),
	}
}

// StartArgs returns the full argument list for the worker process.
func (c Config) StartArgs() []string {
	args := make([]string, 0, len(c.Args)+2)
	args = append(args, c.Args...)
	return append(args, "-p", strconv.Itoa(c.Port))
}

// Endpoint returns the URL the host surface connects to once the
// worker is ready. The parts are concatenated without encoding.
func (c Config) Endpoint() string {
	return "http://localhost:" + strconv.Itoa(c.Port) + c.URLPath
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Binary) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidBinary)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Port)
	}

	if c.StartupDelay < 0 {
		return fmt.Errorf("%w: startup delay %s", ErrInvalidDelay, c.StartupDelay)
	}

	if c.ShutdownDelay < 0 {
		return fmt.Errorf("%w: shutdown delay %s", ErrInvalidDelay, c.ShutdownDelay)
	}

	return nil
}

// NotFoundError is returned when no candidate location could be started.
type NotFoundError struct {
	// Binary is the base name that was searched for
	Binary string

	// Candidates are the locations that were tried, in order
	Candidates []string

	// Errs holds the spawn error of each candidate
	Errs []error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf(
		"failed to start worker: looked for %q in %s",
		e.Binary,
		strings.Join(e.Candidates, ", "),
	)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrWorkerNotFound
}

func (e *NotFoundError) Unwrap() []error {
	return e.Errs
}
