package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/buildcfg"
	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/capability"
	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/scoring"
)

func sampleModel() *capability.Model {
	return capability.NewModel(map[capability.Category]capability.Record{
		capability.CategoryCPU: {
			capability.KeyHasAVX2: capability.Bool(true),
			capability.KeyCores:   capability.Int(8),
		},
		capability.CategoryVirtualization: {
			capability.KeyEPTSupported: capability.Bool(true),
		},
	}, capability.Meta{
		DetectedAt:      time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		DetectorVersion: "1.0.0",
		RunID:           "run-123",
	})
}

func buildReport() *Report {
	model := sampleModel()
	score := scoring.Score(model, scoring.DefaultWeights())
	rec := scoring.Recommend(score)
	cfg := buildcfg.Generate(model, score)
	return New(model, score, rec, cfg)
}

func TestNew_StampsHeaderAndMetadata(t *testing.T) {
	rep := buildReport()

	assert.Equal(t, Kind, rep.Kind)
	assert.Contains(t, rep.APIVersion, "vmware-host.dev")
	assert.Equal(t, "run-123", rep.Metadata["run-id"])
	assert.Equal(t, "1.0.0", rep.Metadata["detector-version"])
	assert.Equal(t, "2026-08-01T12:00:00Z", rep.Metadata["detected-at"])
}

func TestReport_StableJSONFieldNames(t *testing.T) {
	// The JSON shape is the contract with the wizard and the build script.
	data, err := json.Marshal(buildReport())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	for _, field := range []string{
		"kind", "apiVersion", "metadata",
		"capabilities", "score", "recommendation", "build_config", "probe_failures",
	} {
		assert.Contains(t, raw, field)
	}

	caps, ok := raw["capabilities"].(map[string]any)
	require.True(t, ok)
	for _, cat := range []string{"cpu", "virtualization", "storage", "memory", "gpu"} {
		assert.Contains(t, caps, cat)
	}

	cfg, ok := raw["build_config"].(map[string]any)
	require.True(t, ok)
	for _, field := range []string{
		"optimization_level", "architecture_flags", "feature_flags", "linker_flags", "build_variables",
	} {
		assert.Contains(t, cfg, field)
	}
}

func TestNew_EmptyFailuresSerializeAsEmptyList(t *testing.T) {
	rep := buildReport()
	require.NotNil(t, rep.ProbeFailures)

	data, err := json.Marshal(rep)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"probe_failures":[]`)
}

func TestReport_JSONRoundTrip(t *testing.T) {
	rep := buildReport()

	data, err := json.Marshal(rep)
	require.NoError(t, err)

	var got Report
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, rep.Score, got.Score)
	assert.Equal(t, rep.Recommendation.Tier, got.Recommendation.Tier)
	assert.True(t, got.Capabilities.CPU.IsTrue(capability.KeyHasAVX2))
}
