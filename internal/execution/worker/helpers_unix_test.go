//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package worker

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// testBinary is unlikely to exist on PATH, so the bare-name candidate fails.
const testBinary = "music-dl-desktop-test-worker"

type fakePlatform struct {
	configured   []string
	terminated   int
	terminateErr error
}

func (p *fakePlatform) ConfigureCmd(cmd *exec.Cmd) {
	p.configured = append(p.configured, cmd.Args[0])
}

func (p *fakePlatform) Terminate(process *os.Process) error {
	p.terminated++
	if p.terminateErr != nil {
		return p.terminateErr
	}

	return process.Kill()
}

func (p *fakePlatform) ForceKill(string) error {
	return ErrForceKillUnsupported
}

func writeWorker(t *testing.T, dir, body string) string {
	t.Helper()

	path := filepath.Join(dir, testBinary)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))

	return path
}

func chdir(t *testing.T, dir string) {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)

	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})
}

// recordStarts wraps the launcher's start func and records every
// attempted executable.
func recordStarts(l *Launcher) *[]string {
	attempts := []string{}
	start := l.start
	l.start = func(cmd *exec.Cmd) error {
		attempts = append(attempts, cmd.Args[0])
		return start(cmd)
	}

	return &attempts
}

func killHandle(t *testing.T, h *Handle) {
	t.Cleanup(func() {
		_ = h.process.Kill()
		<-h.Done()
	})
}
