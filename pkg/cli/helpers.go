package cli

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/urfave/cli/v3"

	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/serializer"
)

// parseOutputFormat validates the --format flag, suggesting the closest
// supported format on a typo.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	raw := strings.ToLower(strings.TrimSpace(cmd.String("format")))
	f := serializer.Format(raw)
	if !f.IsUnknown() {
		return f, nil
	}

	if suggestion := closestFormat(raw); suggestion != "" {
		return "", fmt.Errorf("unsupported format %q, did you mean %q?", raw, suggestion)
	}
	return "", fmt.Errorf("unsupported format %q, supported formats: %s",
		raw, strings.Join(serializer.SupportedFormats(), ", "))
}

// validatePublishFormat rejects format/output combinations the artifact
// contract cannot honor: the published file is always JSON, so non-JSON
// formats are valid only for stdout output.
func validatePublishFormat(format serializer.Format, outputPath string) error {
	if outputPath == serializer.StdoutPath || format == serializer.FormatJSON {
		return nil
	}
	return fmt.Errorf("format %q is only supported with --output -; the published artifact is always json", format)
}

// closestFormat returns the supported format within edit distance 2 of in,
// or "" when nothing is close enough to be a plausible typo.
func closestFormat(in string) string {
	best := ""
	bestDist := 3
	for _, candidate := range serializer.SupportedFormats() {
		if d := levenshtein.ComputeDistance(in, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}
