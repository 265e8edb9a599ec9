// Package virt probes hardware-assisted virtualization capabilities.
// Everything derives from CPU feature bits: VT-x (vmx) with EPT/VPID on
// Intel, AMD-V (svm) with NPT on AMD. The per-generation overhead numbers
// are estimates, not measurements.
package virt

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/capability"
	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/collector/cpu"
)

// Technology labels for the virtualization record.
const (
	TechnologyIntelVTx = "Intel VT-x"
	TechnologyAMDV     = "AMD-V"
	TechnologyNone     = "None"
)

// Collector probes the virtualization category.
type Collector struct {
	// CPUInfoPath is the cpuinfo file to parse, normally /proc/cpuinfo.
	// The file is read independently of the CPU collector so the two
	// probes share no state.
	CPUInfoPath string
}

// Probe derives virtualization capabilities from the CPU flag set.
func (c *Collector) Probe(ctx context.Context) (capability.Record, []capability.ProbeFailure) {
	info, err := cpu.ReadInfo(c.CPUInfoPath)
	if err != nil {
		slog.Warn("cpuinfo unavailable, virtualization capabilities unknown", "error", err)
		return capability.Record{}, []capability.ProbeFailure{{
			Category:  capability.CategoryVirtualization,
			Attribute: capability.KeyVirtEnabled,
			Reason:    err.Error(),
		}}
	}

	switch {
	case info.HasFlag("vmx"):
		return c.probeIntel(info), nil
	case info.HasFlag("svm"):
		return c.probeAMD(info), nil
	default:
		return capability.Record{
			capability.KeyVirtTechnology:     capability.Str(TechnologyNone),
			capability.KeyVirtEnabled:        capability.Bool(false),
			capability.KeyEPTSupported:       capability.Bool(false),
			capability.KeyNPTSupported:       capability.Bool(false),
			capability.KeyVPIDSupported:      capability.Bool(false),
			capability.KeyVMSwitchOverheadNs: capability.Int(1000),
			capability.KeyMemOverheadPercent: capability.Float(10.0),
		}, nil
	}
}

func (c *Collector) probeIntel(info *cpu.Info) capability.Record {
	hasEPT := info.HasFlag("ept")

	overheadNs, memOverhead := generationOverhead(info.ModelName)

	return capability.Record{
		capability.KeyVirtTechnology:     capability.Str(TechnologyIntelVTx),
		capability.KeyVirtEnabled:        capability.Bool(true),
		capability.KeyEPTSupported:       capability.Bool(hasEPT),
		capability.KeyVPIDSupported:      capability.Bool(info.HasFlag("vpid")),
		capability.KeyEPT1GBPages:        capability.Bool(hasEPT && info.HasFlag("pdpe1gb")),
		capability.KeyEPT2MBPages:        capability.Bool(hasEPT),
		capability.KeyEPTADBits:          capability.Bool(info.HasFlag("ept_ad")),
		capability.KeyUnrestrictedGuest:  capability.Bool(info.HasFlag("unrestricted_guest") || hasEPT),
		capability.KeyPostedInterrupts:   capability.Bool(info.HasFlag("posted_intr")),
		capability.KeyVMFuncSupported:    capability.Bool(info.HasFlag("vmfunc")),
		capability.KeyNPTSupported:       capability.Bool(false),
		capability.KeyDecodeAssists:      capability.Bool(false),
		capability.KeyFlushByASID:        capability.Bool(false),
		capability.KeyVMSwitchOverheadNs: capability.Int(overheadNs),
		capability.KeyMemOverheadPercent: capability.Float(memOverhead),
	}
}

func (c *Collector) probeAMD(info *cpu.Info) capability.Record {
	return capability.Record{
		capability.KeyVirtTechnology:     capability.Str(TechnologyAMDV),
		capability.KeyVirtEnabled:        capability.Bool(true),
		capability.KeyEPTSupported:       capability.Bool(false),
		capability.KeyVPIDSupported:      capability.Bool(false),
		capability.KeyEPT1GBPages:        capability.Bool(false),
		capability.KeyEPT2MBPages:        capability.Bool(false),
		capability.KeyEPTADBits:          capability.Bool(false),
		capability.KeyUnrestrictedGuest:  capability.Bool(false),
		capability.KeyPostedInterrupts:   capability.Bool(false),
		capability.KeyVMFuncSupported:    capability.Bool(false),
		capability.KeyNPTSupported:       capability.Bool(info.HasFlag("npt")),
		capability.KeyDecodeAssists:      capability.Bool(info.HasFlag("decode_assists")),
		capability.KeyFlushByASID:        capability.Bool(info.HasFlag("flush_by_asid")),
		capability.KeyVMSwitchOverheadNs: capability.Int(250),
		capability.KeyMemOverheadPercent: capability.Float(3.0),
	}
}

// generationOverhead estimates VM-exit latency and EPT memory overhead
// from the CPU generation. Newer cores have measurably cheaper exits.
func generationOverhead(modelName string) (overheadNs int64, memOverheadPercent float64) {
	gen, _ := cpu.Generation(modelName)
	switch {
	case contains(gen, "11th Gen", "12th Gen", "13th Gen", "14th Gen"):
		return 150, 2.0
	case contains(gen, "10th Gen"):
		return 200, 3.0
	default:
		return 300, 5.0
	}
}

func contains(s string, fragments ...string) bool {
	for _, frag := range fragments {
		if strings.Contains(s, frag) {
			return true
		}
	}
	return false
}
