// Package storage enumerates block devices under /sys/block with a focus
// on NVMe: PCIe link generation and width, theoretical bandwidth, and
// queue configuration. Per-device attributes use the device name as a key
// prefix so the record stays flat.
package storage

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/capability"
)

const sectorSize = 512

// Collector probes the storage category.
type Collector struct {
	// SysBlockPath is the block device root, normally /sys/block.
	SysBlockPath string
}

// Probe enumerates block devices. An unreadable sysfs leaves the category
// unknown; a partially readable device degrades only its own attributes.
func (c *Collector) Probe(ctx context.Context) (capability.Record, []capability.ProbeFailure) {
	rec := capability.Record{}
	var failures []capability.ProbeFailure

	fail := func(attr, reason string) {
		failures = append(failures, capability.ProbeFailure{
			Category:  capability.CategoryStorage,
			Attribute: attr,
			Reason:    reason,
		})
	}

	entries, err := os.ReadDir(c.SysBlockPath)
	if err != nil {
		fail(capability.KeyNVMeCount, "failed to read block devices: "+err.Error())
		slog.Warn("sysfs block enumeration failed, storage unknown", "error", err)
		return rec, failures
	}

	if err := ctx.Err(); err != nil {
		fail(capability.KeyNVMeCount, err.Error())
		return rec, failures
	}

	nvmeCount := 0
	otherBlock := false
	for _, entry := range entries {
		name := entry.Name()
		switch {
		case isNVMeNamespace(name):
			nvmeCount++
			c.probeNVMe(name, rec, fail)
		case strings.HasPrefix(name, "sd") || strings.HasPrefix(name, "vd"):
			otherBlock = true
		}
	}

	rec[capability.KeyNVMeCount] = capability.Int(int64(nvmeCount))
	rec[capability.KeyHasNVMe] = capability.Bool(nvmeCount > 0)
	rec[capability.KeyHasBlockStorage] = capability.Bool(nvmeCount > 0 || otherBlock)
	if nvmeCount > 0 {
		// Bandwidth figures are computed from the link configuration,
		// never measured.
		rec[capability.KeyBandwidthEstimated] = capability.Bool(true)
	}

	return rec, failures
}

// probeNVMe fills per-device attributes, prefixed with the device name.
func (c *Collector) probeNVMe(name string, rec capability.Record, fail func(attr, reason string)) {
	devRoot := filepath.Join(c.SysBlockPath, name)

	if sectors, err := readInt(filepath.Join(devRoot, "size")); err == nil {
		sizeGB := float64(sectors*sectorSize) / (1 << 30)
		rec[name+".size_gb"] = capability.Float(roundTenth(sizeGB))
	} else {
		fail(name+".size_gb", err.Error())
	}

	if model, err := readString(filepath.Join(devRoot, "device", "model")); err == nil {
		rec[name+".model"] = capability.Str(model)
	}

	gen, lanes := 0, 0
	if speed, err := readString(filepath.Join(devRoot, "device", "current_link_speed")); err == nil {
		gen = generationFromLinkSpeed(speed)
	}
	if width, err := readString(filepath.Join(devRoot, "device", "current_link_width")); err == nil {
		lanes = lanesFromLinkWidth(width)
	}
	if gen > 0 {
		rec[name+".pcie_generation"] = capability.Int(int64(gen))
	}
	if lanes > 0 {
		rec[name+".pcie_lanes"] = capability.Int(int64(lanes))
	}
	if bw := TheoreticalBandwidthMBs(gen, lanes); bw > 0 {
		rec[name+".max_bandwidth_mb_s"] = capability.Int(bw)
	} else if gen == 0 || lanes == 0 {
		fail(name+".max_bandwidth_mb_s", "pcie link speed or width not exposed")
	}

	if depth, err := readInt(filepath.Join(devRoot, "queue", "nr_requests")); err == nil {
		rec[name+".queue_depth"] = capability.Int(depth)
	}
}

// isNVMeNamespace matches namespace block devices like nvme0n1 but not
// partitions like nvme0n1p1 or controllers like nvme0.
func isNVMeNamespace(name string) bool {
	if !strings.HasPrefix(name, "nvme") {
		return false
	}
	rest := strings.TrimPrefix(name, "nvme")
	n := strings.IndexByte(rest, 'n')
	if n <= 0 {
		return false
	}
	return allDigits(rest[:n]) && allDigits(rest[n+1:])
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func readString(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func readInt(path string) (int64, error) {
	s, err := readString(path)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(s, 10, 64)
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func roundTenth(f float64) float64 {
	return float64(int64(f*10+0.5)) / 10
}
