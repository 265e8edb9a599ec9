// Package cli wires the detection pipeline into the vmware-hwdetect
// command-line tool.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/serializer"
)

// version is the detector version stamped into artifacts.
const version = "1.0.0"

var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Value:   serializer.DefaultArtifactPath,
		Usage:   "artifact output path ('-' for stdout)",
		Sources: cli.EnvVars(serializer.EnvArtifactPath),
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   string(serializer.FormatJSON),
		Usage:   "output format (json, yaml)",
	}

	portableFlag = &cli.BoolFlag{
		Name:  "portable",
		Usage: "generate the portable lowest-common-denominator build configuration",
	}

	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "enable debug logging",
	}
)

// New builds the root command.
func New() *cli.Command {
	return &cli.Command{
		Name:  "vmware-hwdetect",
		Usage: "Probe host hardware and derive VMware kernel module build flags",
		Description: `Probes CPU, virtualization, storage, memory, and GPU capabilities,
scores the host's optimization potential, and publishes a build
configuration artifact consumed by the module build step.`,
		Commands: []*cli.Command{
			detectCmd(),
			scoreCmd(),
			flagsCmd(),
			versionCmd(),
		},
	}
}

// setupLogging configures slog on stderr; debug raises the level.
func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the detector version",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, err := os.Stdout.WriteString(version + "\n")
			return err
		},
	}
}
