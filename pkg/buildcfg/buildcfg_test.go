package buildcfg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/capability"
	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/scoring"
)

func modelWith(records map[capability.Category]capability.Record) *capability.Model {
	return capability.NewModel(records, capability.Meta{})
}

func allFlags(cfg Configuration) []string {
	var out []string
	out = append(out, cfg.ArchitectureFlags...)
	out = append(out, cfg.FeatureFlags...)
	out = append(out, cfg.LinkerFlags...)
	return out
}

func TestGenerate_NoSpeculativeFlags(t *testing.T) {
	// Every host-specific flag must trace back to a definitively true
	// capability. An all-unknown model gets only the generic block.
	cfg := Generate(capability.PortableModel(), scoring.OptimizationScore{})

	for _, f := range allFlags(cfg) {
		assert.NotContains(t, f, "avx", "speculative flag %q", f)
		assert.NotContains(t, f, "native", "speculative flag %q", f)
	}
	assert.Equal(t, []string{"-mtune=generic"}, cfg.ArchitectureFlags)
	assert.Empty(t, cfg.LinkerFlags)

	for name, v := range cfg.BuildVariables {
		assert.False(t, v, "variable %s set without detection", name)
	}
}

func TestGenerate_UnknownNeverEnablesVariables(t *testing.T) {
	m := modelWith(map[capability.Category]capability.Record{
		capability.CategoryCPU: {
			capability.KeyHasAVX2: capability.Unknown(),
		},
		capability.CategoryVirtualization: {
			capability.KeyEPTSupported: capability.Unknown(),
		},
	})
	cfg := Generate(m, scoring.OptimizationScore{})

	assert.False(t, cfg.BuildVariables[VarAVX2])
	assert.False(t, cfg.BuildVariables[VarVTxEPT])
	assert.False(t, cfg.BuildVariables[VarOptimize])
}

func TestGenerate_AVX512Tier(t *testing.T) {
	m := modelWith(map[capability.Category]capability.Record{
		capability.CategoryCPU: {
			capability.KeyHasAVX512F:  capability.Bool(true),
			capability.KeyHasAVX512DQ: capability.Bool(true),
			capability.KeyHasFMA:      capability.Bool(true),
		},
	})
	cfg := Generate(m, scoring.OptimizationScore{})

	assert.Equal(t, []string{
		"-march=native", "-mtune=native", "-mavx512f", "-mavx512dq", "-mfma",
	}, cfg.ArchitectureFlags)
	assert.True(t, cfg.BuildVariables[VarAVX512])
	assert.True(t, cfg.BuildVariables[VarOptimize])
}

func TestGenerate_AVX512SubfeaturesGated(t *testing.T) {
	// avx512f alone must not drag in -mavx512dq or -mfma.
	m := modelWith(map[capability.Category]capability.Record{
		capability.CategoryCPU: {
			capability.KeyHasAVX512F: capability.Bool(true),
		},
	})
	cfg := Generate(m, scoring.OptimizationScore{})

	assert.Equal(t, []string{"-march=native", "-mtune=native", "-mavx512f"}, cfg.ArchitectureFlags)
}

func TestGenerate_AVX2Tier(t *testing.T) {
	m := modelWith(map[capability.Category]capability.Record{
		capability.CategoryCPU: {
			capability.KeyHasAVX2: capability.Bool(true),
			capability.KeyHasFMA:  capability.Bool(true),
		},
	})
	cfg := Generate(m, scoring.OptimizationScore{})

	assert.Equal(t, []string{"-march=native", "-mtune=native", "-mavx2", "-mfma"}, cfg.ArchitectureFlags)
	assert.True(t, cfg.BuildVariables[VarAVX2])
	assert.False(t, cfg.BuildVariables[VarAVX512])
}

func TestGenerate_OptimizationLevelFollowsScore(t *testing.T) {
	m := capability.PortableModel()

	assert.Equal(t, LevelStandard,
		Generate(m, scoring.OptimizationScore{Value: AggressiveScoreThreshold - 1}).OptimizationLevel)
	assert.Equal(t, LevelAggressive,
		Generate(m, scoring.OptimizationScore{Value: AggressiveScoreThreshold}).OptimizationLevel)
}

func TestGenerate_LTORequiresFourCores(t *testing.T) {
	few := modelWith(map[capability.Category]capability.Record{
		capability.CategoryCPU: {capability.KeyCores: capability.Int(2)},
	})
	cfg := Generate(few, scoring.OptimizationScore{})
	assert.NotContains(t, cfg.FeatureFlags, "-flto")
	assert.Empty(t, cfg.LinkerFlags)

	many := modelWith(map[capability.Category]capability.Record{
		capability.CategoryCPU: {capability.KeyCores: capability.Int(4)},
	})
	cfg = Generate(many, scoring.OptimizationScore{})
	assert.Contains(t, cfg.FeatureFlags, "-flto")
	assert.Equal(t, []string{"-flto"}, cfg.LinkerFlags)
}

func TestGenerate_FeatureFlagsGated(t *testing.T) {
	m := modelWith(map[capability.Category]capability.Record{
		capability.CategoryCPU: {
			capability.KeyHasAESNI: capability.Bool(true),
			capability.KeyHasBMI1:  capability.Bool(true),
			capability.KeyHasBMI2:  capability.Bool(false),
		},
	})
	cfg := Generate(m, scoring.OptimizationScore{})

	assert.Contains(t, cfg.FeatureFlags, "-maes")
	assert.Contains(t, cfg.FeatureFlags, "-mbmi")
	assert.NotContains(t, cfg.FeatureFlags, "-mbmi2")
	assert.NotContains(t, cfg.FeatureFlags, "-msha")
}

func TestGenerate_GenericBlockAlwaysPresent(t *testing.T) {
	cfg := Generate(capability.PortableModel(), scoring.OptimizationScore{})
	joined := strings.Join(cfg.FeatureFlags, " ")
	for _, f := range []string{"-funroll-loops", "-fomit-frame-pointer", "-fno-strict-aliasing", "-fno-common"} {
		assert.Contains(t, joined, f)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	m := modelWith(map[capability.Category]capability.Record{
		capability.CategoryCPU: {
			capability.KeyHasAVX2:  capability.Bool(true),
			capability.KeyHasAESNI: capability.Bool(true),
			capability.KeyCores:    capability.Int(8),
		},
		capability.CategoryVirtualization: {
			capability.KeyEPTSupported: capability.Bool(true),
		},
	})
	score := scoring.OptimizationScore{Value: 60}

	first := Generate(m, score)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Generate(m, score))
	}
}

func TestPortable_MatchesAllUnknownGeneration(t *testing.T) {
	require.Equal(t, Generate(capability.PortableModel(), scoring.OptimizationScore{}), Portable())
}
