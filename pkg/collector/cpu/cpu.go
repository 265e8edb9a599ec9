// Package cpu probes CPU identity, topology, and instruction-set features.
// Feature bits come from /proc/cpuinfo; topology and cache sizes come from
// lscpu with a gopsutil fallback when the tool is missing.
package cpu

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	gpcpu "github.com/shirou/gopsutil/v3/cpu"

	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/capability"
	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/collector/run"
)

// featureKeys maps record attribute names to cpuinfo flag names.
// Once cpuinfo has been read successfully, every feature is definite:
// present means true, absent means false.
var featureKeys = map[string]string{
	capability.KeyHasSSE42:      "sse4_2",
	capability.KeyHasAVX:        "avx",
	capability.KeyHasAVX2:       "avx2",
	capability.KeyHasAVX512F:    "avx512f",
	capability.KeyHasAVX512DQ:   "avx512dq",
	capability.KeyHasAVX512BW:   "avx512bw",
	capability.KeyHasAVX512VL:   "avx512vl",
	capability.KeyHasFMA:        "fma",
	capability.KeyHasAESNI:      "aes",
	capability.KeyHasSHANI:      "sha_ni",
	capability.KeyHasRDRAND:     "rdrand",
	capability.KeyHasRDSEED:     "rdseed",
	capability.KeyHasVMX:        "vmx",
	capability.KeyHasSVM:        "svm",
	capability.KeyHasBMI1:       "bmi1",
	capability.KeyHasBMI2:       "bmi2",
	capability.KeyHasADX:        "adx",
	capability.KeyHasCLFLUSHOPT: "clflushopt",
	capability.KeyHasCLWB:       "clwb",
}

// Collector probes the CPU category.
type Collector struct {
	// CPUInfoPath is the cpuinfo file to parse, normally /proc/cpuinfo.
	CPUInfoPath string

	// Runner executes lscpu.
	Runner run.Runner
}

// Probe gathers CPU facts. A missing cpuinfo leaves the whole category
// unknown; a missing lscpu degrades only topology and cache attributes.
func (c *Collector) Probe(ctx context.Context) (capability.Record, []capability.ProbeFailure) {
	rec := capability.Record{}
	var failures []capability.ProbeFailure

	fail := func(attr, reason string) {
		failures = append(failures, capability.ProbeFailure{
			Category:  capability.CategoryCPU,
			Attribute: attr,
			Reason:    reason,
		})
	}

	info, err := ReadInfo(c.CPUInfoPath)
	if err != nil {
		fail("flags", err.Error())
		slog.Warn("cpuinfo unavailable, cpu features unknown", "error", err)
	} else {
		rec[capability.KeyModelName] = capability.Str(info.ModelName)
		for attr, flag := range featureKeys {
			rec[attr] = capability.Bool(info.HasFlag(flag))
		}
		// TSX shows up as either the tsx or hle flag depending on kernel.
		rec[capability.KeyHasTSX] = capability.Bool(info.HasFlag("tsx") || info.HasFlag("hle"))

		gen, uarch := Generation(info.ModelName)
		rec[capability.KeyCPUGeneration] = capability.Str(gen)
		rec[capability.KeyMicroarchitecture] = capability.Str(uarch)
	}

	lscpu, err := c.Runner.Run(ctx, "lscpu")
	if err != nil {
		fail("topology", run.Reason(err))
		slog.Debug("lscpu unavailable, falling back to gopsutil counts", "error", err)
		c.probeCountsFallback(rec, fail)
	} else {
		c.parseLscpu(lscpu, rec, info)
	}

	return rec, failures
}

// parseLscpu fills topology, cache, and frequency attributes from lscpu output.
func (c *Collector) parseLscpu(out string, rec capability.Record, info *Info) {
	data := make(map[string]string)
	for _, line := range strings.Split(out, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		data[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	if arch, ok := data["Architecture"]; ok {
		rec[capability.KeyArchitecture] = capability.Str(arch)
	}

	coresPerSocket := atoi(data["Core(s) per socket"])
	sockets := atoi(data["Socket(s)"])
	if coresPerSocket > 0 && sockets > 0 {
		rec[capability.KeyCores] = capability.Int(int64(coresPerSocket * sockets))
	}
	if threads := atoi(data["CPU(s)"]); threads > 0 {
		rec[capability.KeyThreads] = capability.Int(int64(threads))
	}

	if mhz := atof(data["CPU max MHz"]); mhz > 0 {
		rec[capability.KeyMaxFreqMHz] = capability.Float(mhz)
	} else if info != nil && info.CurrentMHz > 0 {
		rec[capability.KeyMaxFreqMHz] = capability.Float(info.CurrentMHz)
	}
	if mhz := atof(data["CPU min MHz"]); mhz > 0 {
		rec[capability.KeyBaseFreqMHz] = capability.Float(mhz)
	}

	caches := map[string]string{
		capability.KeyCacheL1D: "L1d cache",
		capability.KeyCacheL1I: "L1i cache",
		capability.KeyCacheL2:  "L2 cache",
		capability.KeyCacheL3:  "L3 cache",
	}
	for attr, key := range caches {
		if v, ok := data[key]; ok {
			rec[attr] = capability.Str(v)
		}
	}
}

// probeCountsFallback fills core and thread counts from gopsutil when
// lscpu is unavailable.
func (c *Collector) probeCountsFallback(rec capability.Record, fail func(attr, reason string)) {
	if physical, err := gpcpu.Counts(false); err == nil && physical > 0 {
		rec[capability.KeyCores] = capability.Int(int64(physical))
	} else if err != nil {
		fail(capability.KeyCores, "physical core count: "+err.Error())
	}
	if logical, err := gpcpu.Counts(true); err == nil && logical > 0 {
		rec[capability.KeyThreads] = capability.Int(int64(logical))
	} else if err != nil {
		fail(capability.KeyThreads, "logical cpu count: "+err.Error())
	}
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func atof(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
