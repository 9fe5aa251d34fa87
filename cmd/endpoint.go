package cmd

import (
	"fmt"

	"github.com/guohuiyuan/music-dl-desktop/config"
	"github.com/guohuiyuan/music-dl-desktop/util/conf"
	"github.com/urfave/cli/v2"
)

var endpointCmd = &cli.Command{
	Name:   "endpoint",
	Usage:  "Print the URL the worker serves its web ui on.",
	Action: endpointAction,
}

func endpointAction(ctx *cli.Context) error {
	cfg, err := conf.GetConfigFromContext[config.Config](ctx.Context)
	if err != nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, cfg.Worker.Endpoint())

	return nil
}

func init() {
	rootApp.Commands = append(rootApp.Commands, endpointCmd)
}
