// Package buildcfg derives the compiler and make configuration consumed by
// the module build step. Generation is pure and deterministic, and it never
// speculates: a host-specific flag is emitted only for a capability that was
// definitively detected, never for one that is unknown.
package buildcfg

import (
	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/capability"
	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/scoring"
)

// AggressiveScoreThreshold is the minimum optimization score for the
// aggressive optimization level.
const AggressiveScoreThreshold = 50

// Optimization levels.
const (
	LevelAggressive = "-O3"
	LevelStandard   = "-O2"
)

// Make variable names consumed by the module Makefiles.
const (
	VarOptimize        = "VMWARE_OPTIMIZE"
	VarVTxEPT          = "HAS_VTX_EPT"
	VarVPID            = "HAS_VPID"
	VarAVX512          = "HAS_AVX512"
	VarAVX2            = "HAS_AVX2"
	VarAESNI           = "HAS_AES_NI"
	VarEnableHugepages = "ENABLE_HUGEPAGES"
)

// Configuration is the build configuration handed to the external build
// step. Field names are a stable contract with the installer script.
type Configuration struct {
	OptimizationLevel string          `json:"optimization_level" yaml:"optimization_level"`
	ArchitectureFlags []string        `json:"architecture_flags" yaml:"architecture_flags"`
	FeatureFlags      []string        `json:"feature_flags" yaml:"feature_flags"`
	LinkerFlags       []string        `json:"linker_flags" yaml:"linker_flags"`
	BuildVariables    map[string]bool `json:"build_variables" yaml:"build_variables"`
}

// Generate derives the build configuration from a capability model and its
// score. Pure function: no I/O, deterministic output ordering.
func Generate(m *capability.Model, score scoring.OptimizationScore) Configuration {
	cfg := Configuration{
		OptimizationLevel: LevelStandard,
		ArchitectureFlags: []string{},
		FeatureFlags:      []string{},
		LinkerFlags:       []string{},
	}

	if score.Value >= AggressiveScoreThreshold {
		cfg.OptimizationLevel = LevelAggressive
	}

	cpu := m.CPU

	switch {
	case cpu.IsTrue(capability.KeyHasAVX512F):
		cfg.ArchitectureFlags = append(cfg.ArchitectureFlags,
			"-march=native", "-mtune=native", "-mavx512f")
		if cpu.IsTrue(capability.KeyHasAVX512DQ) {
			cfg.ArchitectureFlags = append(cfg.ArchitectureFlags, "-mavx512dq")
		}
		if cpu.IsTrue(capability.KeyHasFMA) {
			cfg.ArchitectureFlags = append(cfg.ArchitectureFlags, "-mfma")
		}
	case cpu.IsTrue(capability.KeyHasAVX2):
		cfg.ArchitectureFlags = append(cfg.ArchitectureFlags,
			"-march=native", "-mtune=native", "-mavx2")
		if cpu.IsTrue(capability.KeyHasFMA) {
			cfg.ArchitectureFlags = append(cfg.ArchitectureFlags, "-mfma")
		}
	default:
		cfg.ArchitectureFlags = append(cfg.ArchitectureFlags, "-mtune=generic")
	}

	if cpu.IsTrue(capability.KeyHasAESNI) {
		cfg.FeatureFlags = append(cfg.FeatureFlags, "-maes")
	}
	if cpu.IsTrue(capability.KeyHasBMI1) {
		cfg.FeatureFlags = append(cfg.FeatureFlags, "-mbmi")
	}
	if cpu.IsTrue(capability.KeyHasBMI2) {
		cfg.FeatureFlags = append(cfg.FeatureFlags, "-mbmi2")
	}
	if cpu.IsTrue(capability.KeyHasSHANI) {
		cfg.FeatureFlags = append(cfg.FeatureFlags, "-msha")
	}

	// Generic optimization block, independent of detected capabilities.
	cfg.FeatureFlags = append(cfg.FeatureFlags,
		"-funroll-loops",
		"-fomit-frame-pointer",
		"-fno-strict-aliasing",
		"-fno-common",
	)

	if cores, ok := cpu.Int(capability.KeyCores); ok && cores >= 4 {
		cfg.FeatureFlags = append(cfg.FeatureFlags, "-flto")
		cfg.LinkerFlags = append(cfg.LinkerFlags, "-flto")
	}

	virt := m.Virtualization
	mem := m.Memory

	// Build variables mirror definitively detected capabilities 1:1;
	// unknown maps to false, never to true.
	cfg.BuildVariables = map[string]bool{
		VarOptimize:        cpu.IsTrue(capability.KeyHasAVX2) || cpu.IsTrue(capability.KeyHasAVX512F),
		VarVTxEPT:          virt.IsTrue(capability.KeyEPTSupported),
		VarVPID:            virt.IsTrue(capability.KeyVPIDSupported),
		VarAVX512:          cpu.IsTrue(capability.KeyHasAVX512F),
		VarAVX2:            cpu.IsTrue(capability.KeyHasAVX2),
		VarAESNI:           cpu.IsTrue(capability.KeyHasAESNI),
		VarEnableHugepages: mem.IsTrue(capability.KeyHugepages1GSupported),
	}

	return cfg
}

// Portable returns the lowest-common-denominator configuration, generated
// from the constant placeholder model. It carries no host-specific flags
// and is the guaranteed fallback for degraded or user-overridden runs.
func Portable() Configuration {
	return Generate(capability.PortableModel(), scoring.OptimizationScore{})
}
