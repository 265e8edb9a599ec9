// Package memory probes system memory: totals via gopsutil, huge page
// support from sysfs, NUMA topology, and best-effort DDR type and speed
// from dmidecode (which usually needs root).
package memory

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/mem"

	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/capability"
	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/collector/run"
)

const (
	hugepages2MDir = "hugepages-2048kB"
	hugepages1GDir = "hugepages-1048576kB"
)

// Collector probes the memory category.
type Collector struct {
	// HugepagesPath is normally /sys/kernel/mm/hugepages.
	HugepagesPath string

	// NUMANodePath is normally /sys/devices/system/node.
	NUMANodePath string

	// Runner executes dmidecode.
	Runner run.Runner
}

// Probe gathers memory facts. Each source degrades independently.
func (c *Collector) Probe(ctx context.Context) (capability.Record, []capability.ProbeFailure) {
	rec := capability.Record{}
	var failures []capability.ProbeFailure

	fail := func(attr, reason string) {
		failures = append(failures, capability.ProbeFailure{
			Category:  capability.CategoryMemory,
			Attribute: attr,
			Reason:    reason,
		})
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		rec[capability.KeyTotalRAMGB] = capability.Float(roundTenth(float64(vm.Total) / (1 << 30)))
		rec[capability.KeyAvailableRAMGB] = capability.Float(roundTenth(float64(vm.Available) / (1 << 30)))
	} else {
		fail(capability.KeyTotalRAMGB, "virtual memory stats: "+err.Error())
		slog.Warn("memory totals unavailable", "error", err)
	}

	c.probeHugepages(rec, fail)
	c.probeNUMA(rec, fail)
	c.probeDMI(ctx, rec, fail)
	c.estimateBandwidth(rec)

	return rec, failures
}

func (c *Collector) probeHugepages(rec capability.Record, fail func(attr, reason string)) {
	sizes := []struct {
		dir           string
		supportedAttr string
		countAttr     string
	}{
		{hugepages2MDir, capability.KeyHugepages2MSupported, capability.KeyHugepages2MCount},
		{hugepages1GDir, capability.KeyHugepages1GSupported, capability.KeyHugepages1GCount},
	}

	for _, size := range sizes {
		dir := filepath.Join(c.HugepagesPath, size.dir)
		_, err := os.Stat(dir)
		switch {
		case err == nil:
			rec[size.supportedAttr] = capability.Bool(true)
			if n, err := readInt(filepath.Join(dir, "nr_hugepages")); err == nil {
				rec[size.countAttr] = capability.Int(n)
			}
		case os.IsNotExist(err):
			rec[size.supportedAttr] = capability.Bool(false)
		default:
			fail(size.supportedAttr, err.Error())
		}
	}
}

func (c *Collector) probeNUMA(rec capability.Record, fail func(attr, reason string)) {
	entries, err := os.ReadDir(c.NUMANodePath)
	if err != nil {
		if os.IsNotExist(err) {
			// Kernel built without NUMA support: a single flat node.
			rec[capability.KeyNUMANodes] = capability.Int(1)
			rec[capability.KeyNUMAEnabled] = capability.Bool(false)
			return
		}
		fail(capability.KeyNUMANodes, err.Error())
		return
	}

	nodes := 0
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, "node") && allDigits(strings.TrimPrefix(name, "node")) {
			nodes++
		}
	}
	if nodes == 0 {
		nodes = 1
	}
	rec[capability.KeyNUMANodes] = capability.Int(int64(nodes))
	rec[capability.KeyNUMAEnabled] = capability.Bool(nodes > 1)
}

var (
	dmiTypeRe  = regexp.MustCompile(`Type:\s*(DDR\S*)`)
	dmiSpeedRe = regexp.MustCompile(`Speed:\s*(\d+)\s*M[TH]/?z?`)
)

// probeDMI extracts DDR type and speed from dmidecode. dmidecode needs
// root and is frequently absent, so failure here is the common case.
func (c *Collector) probeDMI(ctx context.Context, rec capability.Record, fail func(attr, reason string)) {
	out, err := c.Runner.Run(ctx, "dmidecode", "-t", "memory")
	if err != nil {
		fail(capability.KeyMemoryType, run.Reason(err))
		return
	}

	if m := dmiTypeRe.FindStringSubmatch(out); m != nil {
		rec[capability.KeyMemoryType] = capability.Str(m[1])
	}
	if m := dmiSpeedRe.FindStringSubmatch(out); m != nil {
		if speed, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			rec[capability.KeyMemorySpeedMHz] = capability.Int(speed)
		}
	}
}

// estimateBandwidth derives a rough theoretical memory bandwidth from the
// detected speed and a channel-count heuristic. Skipped when the speed is
// unknown so the estimate is never fabricated.
func (c *Collector) estimateBandwidth(rec capability.Record) {
	speed, ok := rec.Int(capability.KeyMemorySpeedMHz)
	if !ok {
		return
	}

	channels := int64(2)
	if total, ok := rec.Float(capability.KeyTotalRAMGB); ok && total >= 32 {
		channels = 4
	}
	rec[capability.KeyMemoryChannels] = capability.Int(channels)
	rec[capability.KeyMemBandwidthGBs] = capability.Float(roundTenth(float64(speed*channels*8) / 1000))
}

func readInt(path string) (int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
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

func roundTenth(f float64) float64 {
	return float64(int64(f*10+0.5)) / 10
}
