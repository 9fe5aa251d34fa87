package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/guohuiyuan/music-dl-desktop/config"
	"github.com/guohuiyuan/music-dl-desktop/internal/execution/worker"
	"github.com/guohuiyuan/music-dl-desktop/util/conf"
	"github.com/urfave/cli/v2"
)

var (
	locateCmdDescription = `The locate command prints every location searched for the
worker binary, in the order they are tried, and whether an
executable exists there. The bare binary name is resolved
through PATH.`
	locateCmd = &cli.Command{
		Name:        "locate",
		Usage:       "List the locations searched for the worker.",
		Description: locateCmdDescription,
		Action:      locateAction,
	}
)

func locateAction(ctx *cli.Context) error {
	cfg, err := conf.GetConfigFromContext[config.Config](ctx.Context)
	if err != nil {
		return err
	}

	found := false
	for _, candidate := range worker.Candidates(cfg.Worker) {
		status := "missing"
		if resolved, ok := resolveCandidate(candidate); ok {
			status = "found " + resolved
			found = true
		}

		fmt.Fprintf(ctx.App.Writer, "%s\t%s\n", candidate, status)
	}

	if !found {
		return &worker.NotFoundError{
			Binary:     cfg.Worker.Binary,
			Candidates: worker.Candidates(cfg.Worker),
		}
	}

	return nil
}

// resolveCandidate reports where a candidate would be executed from.
func resolveCandidate(candidate string) (string, bool) {
	if !strings.Contains(candidate, "/") {
		path, err := exec.LookPath(candidate)
		if err != nil && !errors.Is(err, exec.ErrDot) {
			return "", false
		}
		return path, true
	}

	info, err := os.Stat(candidate)
	if err != nil || info.IsDir() {
		return "", false
	}

	return candidate, true
}

func init() {
	rootApp.Commands = append(rootApp.Commands, locateCmd)
}
