//go:build !(aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris || windows)

package worker

import (
	"os"
	"os/exec"
)

type nativePlatform struct{}

func (nativePlatform) ConfigureCmd(*exec.Cmd) {}

func (nativePlatform) Terminate(process *os.Process) error {
	return process.Kill()
}

func (nativePlatform) ForceKill(string) error {
	return ErrForceKillUnsupported
}
