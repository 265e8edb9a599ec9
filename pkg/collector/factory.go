package collector

import (
	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/collector/cpu"
	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/collector/gpu"
	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/collector/memory"
	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/collector/run"
	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/collector/storage"
	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/collector/virt"
)

// Factory creates collectors with their dependencies.
// This interface enables dependency injection for testing.
type Factory interface {
	CreateCPUCollector() Collector
	CreateVirtualizationCollector() Collector
	CreateStorageCollector() Collector
	CreateMemoryCollector() Collector
	CreateGPUCollector() Collector
}

// DefaultFactory creates collectors that probe the live host.
type DefaultFactory struct {
	// Runner executes external tools. If nil, a timeout-bounded exec runner is used.
	Runner run.Runner

	// ProcRoot and SysRoot allow tests to point collectors at fixture trees.
	// Empty means /proc and /sys.
	ProcRoot string
	SysRoot  string
}

// NewDefaultFactory creates a factory with production defaults.
func NewDefaultFactory() *DefaultFactory {
	return &DefaultFactory{
		Runner:   &run.ExecRunner{},
		ProcRoot: "/proc",
		SysRoot:  "/sys",
	}
}

func (f *DefaultFactory) runner() run.Runner {
	if f.Runner == nil {
		return &run.ExecRunner{}
	}
	return f.Runner
}

func (f *DefaultFactory) procRoot() string {
	if f.ProcRoot == "" {
		return "/proc"
	}
	return f.ProcRoot
}

func (f *DefaultFactory) sysRoot() string {
	if f.SysRoot == "" {
		return "/sys"
	}
	return f.SysRoot
}

// CreateCPUCollector creates a CPU feature and topology collector.
func (f *DefaultFactory) CreateCPUCollector() Collector {
	return &cpu.Collector{
		CPUInfoPath: f.procRoot() + "/cpuinfo",
		Runner:      f.runner(),
	}
}

// CreateVirtualizationCollector creates a VT-x/AMD-V capability collector.
func (f *DefaultFactory) CreateVirtualizationCollector() Collector {
	return &virt.Collector{
		CPUInfoPath: f.procRoot() + "/cpuinfo",
	}
}

// CreateStorageCollector creates an NVMe/block device collector.
func (f *DefaultFactory) CreateStorageCollector() Collector {
	return &storage.Collector{
		SysBlockPath: f.sysRoot() + "/block",
	}
}

// CreateMemoryCollector creates a memory and NUMA topology collector.
func (f *DefaultFactory) CreateMemoryCollector() Collector {
	return &memory.Collector{
		HugepagesPath: f.sysRoot() + "/kernel/mm/hugepages",
		NUMANodePath:  f.sysRoot() + "/devices/system/node",
		Runner:        f.runner(),
	}
}

// CreateGPUCollector creates a GPU collector backed by vendor tooling.
func (f *DefaultFactory) CreateGPUCollector() Collector {
	return &gpu.Collector{
		DRMPath: f.sysRoot() + "/class/drm",
		Runner:  f.runner(),
	}
}
