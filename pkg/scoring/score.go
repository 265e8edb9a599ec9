// Package scoring converts a capability model into a 0-100 optimization
// score with an auditable rationale, and maps the score to a build-mode
// recommendation. Everything here is pure: no I/O, no hidden state, and
// identical inputs always produce identical outputs.
package scoring

import (
	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/capability"
)

// Contribution is one scored reason. The rationale list is part of the
// contract: the wizard surfaces it verbatim to the user.
type Contribution struct {
	Reason string `json:"reason" yaml:"reason"`
	Points int    `json:"points" yaml:"points"`
}

// OptimizationScore is the clamped 0-100 score with its rationale,
// fully derived from a capability model.
type OptimizationScore struct {
	Value         int            `json:"value" yaml:"value"`
	Contributions []Contribution `json:"contributions" yaml:"contributions"`
}

// Score computes the optimization score for a model. Only definitively
// detected capabilities contribute; unknown attributes never add points.
// Contributions are emitted in fixed rule order so repeated calls over the
// same model are byte-identical.
func Score(m *capability.Model, w Weights) OptimizationScore {
	var contribs []Contribution
	total := 0
	add := func(reason string, points int) {
		if points == 0 {
			return
		}
		contribs = append(contribs, Contribution{Reason: reason, Points: points})
		total += points
	}

	cpu := m.CPU
	switch {
	case cpu.IsTrue(capability.KeyHasAVX512F):
		add("AVX-512 vector extensions", w.AVX512)
	case cpu.IsTrue(capability.KeyHasAVX2):
		add("AVX2 vector extensions", w.AVX2)
	case cpu.IsTrue(capability.KeyHasAVX):
		add("AVX vector extensions", w.AVX)
	}

	if cpu.IsTrue(capability.KeyHasAESNI) {
		add("AES-NI hardware crypto", w.AESNI)
	}
	if cpu.IsTrue(capability.KeyHasBMI1) && cpu.IsTrue(capability.KeyHasBMI2) {
		add("BMI1+BMI2 bit manipulation", w.BMI)
	}
	if cores, ok := cpu.Int(capability.KeyCores); ok {
		switch {
		case cores >= 8:
			add("8+ physical cores", w.ManyCores)
		case cores >= 4:
			add("4+ physical cores", w.SomeCores)
		}
	}

	virt := m.Virtualization
	switch {
	case virt.IsTrue(capability.KeyEPTSupported) || virt.IsTrue(capability.KeyNPTSupported):
		add("second-level address translation (EPT/NPT)", w.SLATVirtualization)
	case virt.IsTrue(capability.KeyVirtEnabled):
		add("hardware-assisted virtualization", w.BasicVirtualization)
	}
	if virt.IsTrue(capability.KeyVPIDSupported) {
		add("VPID tagged TLB", w.VPID)
	}
	if virt.IsTrue(capability.KeyEPT1GBPages) {
		add("1 GB EPT pages", w.EPT1GPages)
	}

	st := m.Storage
	if n, ok := st.Int(capability.KeyNVMeCount); ok && n >= 1 {
		add("NVMe-backed storage", w.NVMe)
	} else if st.IsTrue(capability.KeyHasBlockStorage) {
		add("non-NVMe block storage", w.NonNVMeStorage)
	}

	mem := m.Memory
	if ram, ok := mem.Float(capability.KeyTotalRAMGB); ok && ram >= 32 {
		add("32 GB+ system memory", w.LargeRAM)
	}
	if mem.IsTrue(capability.KeyHugepages1GSupported) {
		add("1 GB huge page support", w.HugePages1GB)
	}

	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}

	return OptimizationScore{Value: total, Contributions: contribs}
}
