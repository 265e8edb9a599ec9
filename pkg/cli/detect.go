package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/buildcfg"
	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/detector"
	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/report"
	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/scoring"
	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/serializer"
)

func detectCmd() *cli.Command {
	return &cli.Command{
		Name:  "detect",
		Usage: "Probe the host and publish the build configuration artifact",
		Description: `Runs all hardware probes, scores the host, and writes the detection
artifact for the module build step. Probes degrade gracefully: missing
tools or insufficient privilege mark attributes as unknown and the run
still completes. With --portable the build configuration carries no
host-specific flags regardless of the detected hardware.`,
		Flags: []cli.Flag{outputFlag, formatFlag, portableFlag, debugFlag},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			setupLogging(cmd.Bool("debug"))

			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			outPath := cmd.String("output")
			if err := validatePublishFormat(outFormat, outPath); err != nil {
				return err
			}

			rep, err := runDetection(ctx, cmd.Bool("portable"))
			if err != nil {
				return err
			}

			if outPath == serializer.StdoutPath {
				w := serializer.NewStdoutWriter(outFormat)
				return w.Serialize(ctx, rep)
			}

			sink := &serializer.FileSink{Path: outPath}
			published, err := sink.Publish(ctx, rep)
			if err != nil {
				return fmt.Errorf("failed to publish artifact: %w", err)
			}

			printSummary(os.Stdout, rep, published)
			return nil
		},
	}
}

// runDetection executes the full pipeline. In portable mode the flag
// generator receives the constant placeholder model instead of the
// detected one; the detected capabilities and score are still reported.
func runDetection(ctx context.Context, portable bool) (*report.Report, error) {
	det := &detector.Detector{Version: version}
	model, err := det.Detect(ctx)
	if err != nil {
		return nil, fmt.Errorf("hardware detection failed: %w", err)
	}

	weights := scoring.DefaultWeights()
	score := scoring.Score(model, weights)
	rec := scoring.Recommend(score)

	var cfg buildcfg.Configuration
	if portable {
		slog.Debug("portable mode: generating lowest-common-denominator configuration")
		cfg = buildcfg.Portable()
	} else {
		cfg = buildcfg.Generate(model, score)
	}

	return report.New(model, score, rec, cfg), nil
}
