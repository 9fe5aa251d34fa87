package util

import (
	"github.com/shirou/gopsutil/process"
)

// IsProcessAlive reports whether a process with the given pid exists.
func IsProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}

	exists, err := process.PidExists(int32(pid))
	if err != nil {
		// if an error occured, return false
		return false
	}

	return exists
}
