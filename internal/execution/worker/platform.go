package worker

import (
	"os"
	"os/exec"
)

// Platform captures the OS-specific parts of spawning and stopping
// the worker process.
type Platform interface {
	// ConfigureCmd applies spawn attributes to the command before it starts.
	ConfigureCmd(cmd *exec.Cmd)

	// Terminate asks the process to stop.
	Terminate(process *os.Process) error

	// ForceKill forcibly ends every process running the named binary.
	// Platforms without a suitable utility return ErrForceKillUnsupported.
	ForceKill(binary string) error
}

// NativePlatform returns the Platform for the operating system the
// program was built for.
func NativePlatform() Platform {
	return nativePlatform{}
}
