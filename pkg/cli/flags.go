package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/serializer"
)

func flagsCmd() *cli.Command {
	return &cli.Command{
		Name:  "flags",
		Usage: "Print the derived build configuration",
		Description: `Prints only the compiler flags and build variables derived from the
detected capabilities. With --portable the configuration carries no
host-specific flags.`,
		Flags: []cli.Flag{formatFlag, portableFlag, debugFlag},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			setupLogging(cmd.Bool("debug"))

			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			rep, err := runDetection(ctx, cmd.Bool("portable"))
			if err != nil {
				return err
			}

			w := serializer.NewStdoutWriter(outFormat)
			return w.Serialize(ctx, rep.BuildConfig)
		},
	}
}
