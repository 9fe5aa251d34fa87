package worker

import (
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

const forceKillTool = "taskkill"

type nativePlatform struct{}

func (nativePlatform) ConfigureCmd(cmd *exec.Cmd) {
	hideConsole(cmd)
}

func (nativePlatform) Terminate(process *os.Process) error {
	// Windows has no SIGTERM, TerminateProcess is the only request available.
	return process.Kill()
}

func (nativePlatform) ForceKill(binary string) error {
	cmd := exec.Command(forceKillTool, "/F", "/IM", binary)
	hideConsole(cmd)

	return cmd.Run()
}

func hideConsole(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.CREATE_NO_WINDOW,
	}
}
