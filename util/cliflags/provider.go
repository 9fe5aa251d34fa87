// Package cliflags implements a koanf.Provider that takes a
// cli.Context and provides its flags to koanf.
package cliflags

import (
	"errors"
	"fmt"

	"github.com/knadh/koanf/maps"
	"github.com/urfave/cli/v2"
)

// CLIFlags implements a raw map[string]any provider.
type CLIFlags struct {
	mp map[string]any
}

// Provider returns a CLI Provider that takes a CLI context. Only flags
// that were explicitly set are provided, so flag defaults never shadow
// values from lower config layers. Flags of every command in the
// lineage are read, a flag set on a subcommand overrides the same flag
// set on its parent.
// If a delim is provided, it indicates that the keys are flat
// and the map needs to be unflatted by delim.
func Provider(ctx *cli.Context, delim string, cb func(string) string) *CLIFlags {
	// create a map to store the flag values
	mp := make(map[string]any)

	lineage := ctx.Lineage()

	// walk from the root to the current command
	for i := len(lineage) - 1; i >= 0; i-- {
		c := lineage[i]

		var flags []cli.Flag
		switch {
		case c.Command != nil:
			flags = c.Command.VisibleFlags()
		case c.App != nil:
			flags = c.App.VisibleFlags()
		}

		// store the values of the flags set on this command,
		// transforming the flag names if a callback is provided
		for _, flag := range flags {
			flagName := flag.Names()[0]
			if !c.IsSet(flagName) {
				continue
			}

			value, err := getFlagValue(c, flag)
			if err != nil {
				continue
			}

			var mapName = flagName
			if cb != nil {
				mapName = cb(flagName)
			}
			mp[mapName] = value
		}
	}

	// unflatten the map if a delimiter is provided
	// this can happen when `cb` returns a nested key
	if delim != "" {
		mp = maps.Unflatten(mp, delim)
	}

	return &CLIFlags{mp: mp}
}

// ReadBytes is not supported by the cliflags provider.
func (e *CLIFlags) ReadBytes() ([]byte, error) {
	return nil, errors.New("cli provider does not support this method")
}

// Read returns the loaded map[string]any.
func (e *CLIFlags) Read() (map[string]any, error) {
	return e.mp, nil
}

func getFlagValue(ctx *cli.Context, flag cli.Flag) (any, error) {
	name := flag.Names()[0]

	switch flag.(type) {
	case *cli.StringFlag:
		return ctx.String(name), nil
	case *cli.StringSliceFlag:
		return ctx.StringSlice(name), nil
	case *cli.PathFlag:
		return ctx.Path(name), nil
	case *cli.IntFlag:
		return ctx.Int(name), nil
	case *cli.IntSliceFlag:
		return ctx.IntSlice(name), nil
	case *cli.Int64Flag:
		return ctx.Int64(name), nil
	case *cli.Int64SliceFlag:
		return ctx.Int64Slice(name), nil
	case *cli.UintFlag:
		return ctx.Uint(name), nil
	case *cli.BoolFlag:
		return ctx.Bool(name), nil
	case *cli.Float64Flag:
		return ctx.Float64(name), nil
	case *cli.Float64SliceFlag:
		return ctx.Float64Slice(name), nil
	case *cli.DurationFlag:
		return ctx.Duration(name), nil
	}

	return nil, fmt.Errorf("unsupported flag type %T", flag)
}
