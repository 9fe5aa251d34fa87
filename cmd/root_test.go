package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/guohuiyuan/music-dl-desktop/internal/shell"
	"github.com/guohuiyuan/music-dl-desktop/util/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap/zapcore"
)

const missingBinary = "music-dl-desktop-missing-worker"

// runWithOutput runs the root app quietly and returns the exit code,
// stdout and stderr.
func runWithOutput(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	var out, errOut bytes.Buffer

	writer, errWriter := rootApp.Writer, rootApp.ErrWriter
	rootApp.Writer, rootApp.ErrWriter = &out, &errOut
	t.Cleanup(func() {
		rootApp.Writer, rootApp.ErrWriter = writer, errWriter
	})

	code := run(context.Background(), append([]string{appName, "--log-level", "error"}, args...))

	return code, out.String(), errOut.String()
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	file := filepath.Join(t.TempDir(), "desktop.json")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))

	return file
}

func TestEndpoint_Defaults(t *testing.T) {
	code, out, _ := runWithOutput(t, "endpoint")

	assert.Equal(t, 0, code)
	assert.Equal(t, "http://localhost:37777/music\n", out)
}

func TestEndpoint_FlagsOverrideDefaults(t *testing.T) {
	code, out, _ := runWithOutput(t, "--port", "40000", "--url-path", "/library", "endpoint")

	assert.Equal(t, 0, code)
	assert.Equal(t, "http://localhost:40000/library\n", out)
}

func TestEndpoint_ConfigFile(t *testing.T) {
	file := writeConfig(t, `{"worker": {"port": 41000}}`)

	code, out, _ := runWithOutput(t, "--config", file, "endpoint")

	assert.Equal(t, 0, code)
	assert.Equal(t, "http://localhost:41000/music\n", out)
}

func TestRoot_InvalidPortFails(t *testing.T) {
	code, _, _ := runWithOutput(t, "--port", "70000", "endpoint")

	assert.Equal(t, 1, code)
}

func TestLocate_ListsCandidatesInOrder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, missingBinary), []byte("#!/bin/sh\n"), 0o755))

	code, out, _ := runWithOutput(t,
		"--binary", missingBinary,
		"--search-dir", "/does/not/exist",
		"--search-dir", dir,
		"locate",
	)

	assert.Equal(t, 0, code)
	assert.Equal(t,
		"/does/not/exist/"+missingBinary+"\tmissing\n"+
			dir+"/"+missingBinary+"\tfound "+dir+"/"+missingBinary+"\n"+
			missingBinary+"\tmissing\n",
		out,
	)
}

func TestLocate_NothingFoundFails(t *testing.T) {
	code, _, _ := runWithOutput(t,
		"--binary", missingBinary,
		"--search-dir", t.TempDir(),
		"locate",
	)

	assert.Equal(t, 1, code)
}

func TestRun_WorkerNotFoundAborts(t *testing.T) {
	dir := t.TempDir()

	code, _, errOut := runWithOutput(t,
		"--binary", missingBinary,
		"--search-dir", dir,
		"--search-dir", "/nowhere",
		"--startup-delay", "0s",
		"--shutdown-delay", "0s",
	)

	assert.Equal(t, 1, code)
	assert.Equal(t,
		`exit error: failed to start worker: looked for "`+missingBinary+`" in `+
			dir+"/"+missingBinary+", /nowhere/"+missingBinary+", "+missingBinary+"\n",
		errOut,
	)
}

func TestRun_AcceptsWorkerFlagsAfterCommand(t *testing.T) {
	code, _, errOut := runWithOutput(t,
		"run",
		"--binary", missingBinary,
		"--search-dir", "/nowhere",
		"--port", "40000",
		"--startup-delay", "0s",
	)

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut,
		`looked for "`+missingBinary+`" in /nowhere/`+missingBinary+", "+missingBinary+"\n")
}

func TestRun_CommandFlagsOverrideRootFlags(t *testing.T) {
	code, _, errOut := runWithOutput(t,
		"--binary", missingBinary,
		"--search-dir", "/root-dir",
		"run",
		"--search-dir", "/run-dir",
	)

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut,
		`looked for "`+missingBinary+`" in /run-dir/`+missingBinary+", "+missingBinary+"\n")
}

func TestRun_InvalidPortAfterCommandFails(t *testing.T) {
	code, _, errOut := runWithOutput(t, "run", "-p", "70000")

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "invalid worker config")
}

func TestRoot_LoggerUsesConfiguredLevel(t *testing.T) {
	capture := func(t *testing.T, args ...string) zapcore.Level {
		t.Helper()

		var level zapcore.Level
		app := &cli.App{
			Name:   appName,
			Flags:  rootApp.Flags,
			Before: rootApp.Before,
			Action: func(ctx *cli.Context) error {
				log, err := logging.LoggerFromContext(ctx.Context)
				if err != nil {
					return err
				}
				level = log.Level()
				return nil
			},
		}

		require.NoError(t, app.Run(append([]string{appName}, args...)))

		return level
	}

	t.Run("config file", func(t *testing.T) {
		file := writeConfig(t, `{"log_level": "debug"}`)
		assert.Equal(t, zapcore.DebugLevel, capture(t, "--config", file))
	})

	t.Run("env", func(t *testing.T) {
		t.Setenv("DESKTOP_LOG_LEVEL", "warn")
		assert.Equal(t, zapcore.WarnLevel, capture(t))
	})

	t.Run("flag wins", func(t *testing.T) {
		t.Setenv("DESKTOP_LOG_LEVEL", "warn")
		assert.Equal(t, zapcore.ErrorLevel, capture(t, "--log-level", "error"))
	})
}

func TestIsFailure(t *testing.T) {
	assert.False(t, isFailure(nil))
	assert.False(t, isFailure(shell.NewExitError(2)))
	assert.True(t, isFailure(shell.NewFailedExitError(assert.AnError)))
	assert.True(t, isFailure(assert.AnError))
}

func TestDiagnostic_NamesBinaryAndSearchedLocations(t *testing.T) {
	code, _, _ := runWithOutput(t, "--binary", missingBinary, "--search-dir", "/nowhere", "locate")
	require.Equal(t, 1, code)

	err := rootApp.RunContext(context.Background(), []string{
		appName, "--log-level", "error", "--binary", missingBinary, "--search-dir", "/nowhere", "locate",
	})
	require.Error(t, err)

	assert.Equal(t,
		`failed to start worker: looked for "`+missingBinary+`" in /nowhere/`+missingBinary+`, `+missingBinary,
		diagnostic(err),
	)
}
