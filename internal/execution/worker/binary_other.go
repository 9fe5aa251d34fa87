//go:build !windows

package worker

// DefaultBinary is the base name of the worker executable.
const DefaultBinary = "music-dl"
