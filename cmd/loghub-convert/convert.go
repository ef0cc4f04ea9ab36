package main

import (
	"context"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/PSeitz/loghub-dataset-converter/internal/runner"
)

var convertCommand = &cli.Command{
	Name:  "convert",
	Usage: "Convert every archive in a directory into per-dataset log files",
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name:      "dir",
			UsageText: "The directory to scan for archives (defaults to the current directory)",
		},
	},
	Action: func(ctx context.Context, command *cli.Command) error {
		dir := command.StringArg("dir")
		if dir == "" {
			dir = "."
		}
		return runConvert(ctx, dir)
	},
}

func runConvert(ctx context.Context, dir string) error {
	logger := getLogger(ctx)
	logger.Info("scanning for dataset archives", zap.String("dir", dir))

	r := runner.New(afero.NewOsFs(), logger.Named("runner"))
	return r.Run(ctx, dir)
}
