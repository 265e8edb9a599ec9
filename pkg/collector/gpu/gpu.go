// Package gpu probes discrete GPUs through vendor tooling: nvidia-smi
// first, then lspci plus rocm-smi for AMD parts. All tools are optional;
// when none can run, GPU presence stays unknown rather than false.
package gpu

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/capability"
	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/collector/run"
)

// Vendor labels for the GPU record.
const (
	VendorNVIDIA = "NVIDIA"
	VendorAMD    = "AMD"
)

// Collector probes the GPU category.
type Collector struct {
	// DRMPath is normally /sys/class/drm; used for PCIe link introspection.
	DRMPath string

	// Runner executes nvidia-smi, lspci, rocm-smi, and modinfo.
	Runner run.Runner
}

// Probe detects a discrete GPU. A definite "no GPU" requires lspci to have
// run; a missing tool chain leaves presence unknown.
func (c *Collector) Probe(ctx context.Context) (capability.Record, []capability.ProbeFailure) {
	rec := capability.Record{}
	var failures []capability.ProbeFailure

	fail := func(attr, reason string) {
		failures = append(failures, capability.ProbeFailure{
			Category:  capability.CategoryGPU,
			Attribute: attr,
			Reason:    reason,
		})
	}

	if c.probeNVIDIA(ctx, rec, fail) {
		return rec, failures
	}

	found, scanned := c.probeAMD(ctx, rec, fail)
	if found {
		return rec, failures
	}

	if scanned {
		// lspci ran and reported no discrete GPU: definite absence.
		rec[capability.KeyGPUPresent] = capability.Bool(false)
	} else {
		fail(capability.KeyGPUPresent, "no gpu tooling available")
	}

	return rec, failures
}

// probeNVIDIA queries nvidia-smi. Returns true when an NVIDIA GPU was found.
func (c *Collector) probeNVIDIA(ctx context.Context, rec capability.Record, fail func(attr, reason string)) bool {
	out, err := c.Runner.Run(ctx, "nvidia-smi",
		"--query-gpu=name,memory.total,driver_version", "--format=csv,noheader")
	if err != nil {
		if !errors.Is(err, run.ErrToolUnavailable) {
			fail(capability.KeyGPUVendor, run.Reason(err))
		}
		slog.Debug("nvidia-smi unavailable", "error", err)
		return false
	}

	line, _, _ := strings.Cut(out, "\n")
	parts := strings.Split(line, ",")
	if len(parts) < 3 {
		fail(capability.KeyGPUModel, "unexpected nvidia-smi output: "+line)
		return false
	}

	rec[capability.KeyGPUPresent] = capability.Bool(true)
	rec[capability.KeyGPUVendor] = capability.Str(VendorNVIDIA)
	rec[capability.KeyGPUModel] = capability.Str(strings.TrimSpace(parts[0]))
	rec[capability.KeyGPUDriverVersion] = capability.Str(strings.TrimSpace(parts[2]))
	rec[capability.KeyGPUSupportsVGPU] = capability.Bool(true)

	if m := regexp.MustCompile(`(\d+)`).FindStringSubmatch(parts[1]); m != nil {
		if mib, err := strconv.ParseFloat(m[1], 64); err == nil {
			rec[capability.KeyGPUVRAMGB] = capability.Float(roundTenth(mib / 1024))
		}
	}

	c.probePCIeLink(rec)
	return true
}

var amdModelRe = regexp.MustCompile(`\[AMD/ATI\]\s+([^\[\(]+)`)

// probeAMD scans lspci for an AMD GPU, enriching with rocm-smi and modinfo.
// found reports whether a GPU was identified; scanned reports whether lspci
// produced usable output at all.
func (c *Collector) probeAMD(ctx context.Context, rec capability.Record, fail func(attr, reason string)) (found, scanned bool) {
	out, err := c.Runner.Run(ctx, "lspci", "-v")
	if err != nil {
		fail(capability.KeyGPUPresent, run.Reason(err))
		return false, false
	}

	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, "VGA") && !strings.Contains(line, "Display") {
			continue
		}
		if !strings.Contains(line, "AMD") && !strings.Contains(line, "Radeon") {
			continue
		}

		model := ""
		if m := amdModelRe.FindStringSubmatch(line); m != nil {
			model = strings.TrimSpace(m[1])
		} else if _, after, ok := strings.Cut(line, ": "); ok {
			model = strings.TrimSpace(after)
		}
		if model == "" {
			continue
		}

		rec[capability.KeyGPUPresent] = capability.Bool(true)
		rec[capability.KeyGPUVendor] = capability.Str(VendorAMD)
		rec[capability.KeyGPUModel] = capability.Str(model)

		c.probeROCm(ctx, rec)
		c.probeAMDDriver(ctx, rec)
		c.probePCIeLink(rec)
		return true, true
	}

	return false, true
}

var rocmVRAMRe = regexp.MustCompile(`(\d+)\s*MB`)

func (c *Collector) probeROCm(ctx context.Context, rec capability.Record) {
	out, err := c.Runner.Run(ctx, "rocm-smi", "--showmeminfo", "vram")
	if err != nil {
		return
	}
	if m := rocmVRAMRe.FindStringSubmatch(out); m != nil {
		if mib, err := strconv.ParseFloat(m[1], 64); err == nil {
			rec[capability.KeyGPUVRAMGB] = capability.Float(roundTenth(mib / 1024))
		}
	}
	rec[capability.KeyGPUSupportsVGPU] = capability.Bool(true)
}

func (c *Collector) probeAMDDriver(ctx context.Context, rec capability.Record) {
	out, err := c.Runner.Run(ctx, "modinfo", "amdgpu")
	if err != nil {
		return
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "version:") {
			rec[capability.KeyGPUDriverVersion] = capability.Str(strings.TrimSpace(strings.TrimPrefix(line, "version:")))
			return
		}
	}
}

// probePCIeLink reads the first DRM card's link configuration from sysfs.
func (c *Collector) probePCIeLink(rec capability.Record) {
	cards, err := filepath.Glob(filepath.Join(c.DRMPath, "card*"))
	if err != nil {
		return
	}

	for _, card := range cards {
		dev := filepath.Join(card, "device")

		gen := 0
		if speed, err := readString(filepath.Join(dev, "current_link_speed")); err == nil {
			switch {
			case strings.Contains(speed, "32"):
				gen = 5
			case strings.Contains(speed, "16"):
				gen = 4
			case strings.Contains(speed, "8"):
				gen = 3
			case strings.Contains(speed, "5"):
				gen = 2
			}
		}
		lanes := 0
		if width, err := readString(filepath.Join(dev, "current_link_width")); err == nil {
			if m := regexp.MustCompile(`x?(\d+)`).FindStringSubmatch(width); m != nil {
				lanes, _ = strconv.Atoi(m[1])
			}
		}

		if gen > 0 {
			rec[capability.KeyGPUPCIeGen] = capability.Int(int64(gen))
		}
		if lanes > 0 {
			rec[capability.KeyGPUPCIeLanes] = capability.Int(int64(lanes))
		}
		if gen > 0 || lanes > 0 {
			return
		}
	}
}

func readString(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func roundTenth(f float64) float64 {
	return float64(int64(f*10+0.5)) / 10
}
