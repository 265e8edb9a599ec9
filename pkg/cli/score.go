package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/report"
	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/serializer"
)

func scoreCmd() *cli.Command {
	return &cli.Command{
		Name:  "score",
		Usage: "Print the optimization score and recommendation",
		Description: `Prints the optimization score, its rationale, and the recommended
build mode. Reads an existing artifact with --input, otherwise runs a
fresh detection without publishing.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "read an existing artifact instead of probing",
			},
			formatFlag,
			debugFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			setupLogging(cmd.Bool("debug"))

			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			var rep *report.Report
			if input := cmd.String("input"); input != "" {
				rep = &report.Report{}
				if err := serializer.ReadFile(input, rep); err != nil {
					return fmt.Errorf("failed to load artifact from %q: %w", input, err)
				}
				slog.Debug("loaded artifact", "path", input, "kind", rep.Kind)
			} else {
				rep, err = runDetection(ctx, false)
				if err != nil {
					return err
				}
			}

			w := serializer.NewStdoutWriter(outFormat)
			return w.Serialize(ctx, rep.Recommendation)
		},
	}
}
