package cli

import (
	"fmt"
	"io"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/capability"
	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/report"
)

// printSummary writes a short human-readable digest after the artifact has
// been published. The artifact itself carries the full detail.
func printSummary(w io.Writer, rep *report.Report, publishedPath string) {
	fmt.Fprintf(w, "Optimization score: %d/100\n", rep.Score)
	fmt.Fprintf(w, "Recommended mode:   %s\n",
		cases.Title(language.English).String(rep.Recommendation.Tier.String()))

	if model, ok := rep.Capabilities.CPU.Str(capability.KeyModelName); ok {
		fmt.Fprintf(w, "CPU:                %s\n", model)
	}
	if tech, ok := rep.Capabilities.Virtualization.Str(capability.KeyVirtTechnology); ok {
		fmt.Fprintf(w, "Virtualization:     %s\n", tech)
	}
	if n, ok := rep.Capabilities.Storage.Int(capability.KeyNVMeCount); ok {
		fmt.Fprintf(w, "NVMe devices:       %d\n", n)
	}
	if ram, ok := rep.Capabilities.Memory.Float(capability.KeyTotalRAMGB); ok {
		fmt.Fprintf(w, "Total RAM:          %.1f GB\n", ram)
	}
	// Vendor strings are canonical acronyms (NVIDIA, AMD); print them as
	// recorded.
	if vendor, ok := rep.Capabilities.GPU.Str(capability.KeyGPUVendor); ok {
		if gpuModel, ok := rep.Capabilities.GPU.Str(capability.KeyGPUModel); ok {
			fmt.Fprintf(w, "GPU:                %s %s\n", vendor, gpuModel)
		} else {
			fmt.Fprintf(w, "GPU:                %s\n", vendor)
		}
	}

	if len(rep.Recommendation.Reasons) > 1 {
		fmt.Fprintln(w, "Rationale:")
		for _, reason := range rep.Recommendation.Reasons[1:] {
			fmt.Fprintf(w, "  - %s\n", reason)
		}
	}

	if n := len(rep.ProbeFailures); n > 0 {
		fmt.Fprintf(w, "Probe failures:     %d (attributes degraded to unknown)\n", n)
	}

	fmt.Fprintf(w, "Artifact:           %s\n", publishedPath)
}
