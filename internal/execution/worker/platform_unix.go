//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package worker

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

type nativePlatform struct{}

func (nativePlatform) ConfigureCmd(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
}

func (nativePlatform) Terminate(process *os.Process) error {
	var err error
	if pgid, pgidErr := syscall.Getpgid(process.Pid); pgidErr == nil {
		// Negative pid sends signal to all in process group
		err = syscall.Kill(-pgid, syscall.SIGTERM)
	} else {
		err = process.Signal(syscall.SIGTERM)
	}

	if errors.Is(err, syscall.ESRCH) {
		return os.ErrProcessDone
	}

	return err
}

func (nativePlatform) ForceKill(string) error {
	return ErrForceKillUnsupported
}
