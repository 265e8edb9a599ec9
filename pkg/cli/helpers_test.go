package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/buildcfg"
	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/capability"
	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/report"
	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/scoring"
	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/serializer"
)

func TestClosestFormat(t *testing.T) {
	assert.Equal(t, "json", closestFormat("josn"))
	assert.Equal(t, "yaml", closestFormat("yml"))
	assert.Equal(t, "yaml", closestFormat("yamll"))
	assert.Equal(t, "", closestFormat("protobuf"))
}

func TestValidatePublishFormat(t *testing.T) {
	assert.NoError(t, validatePublishFormat(serializer.FormatJSON, serializer.DefaultArtifactPath))
	assert.NoError(t, validatePublishFormat(serializer.FormatJSON, serializer.StdoutPath))
	assert.NoError(t, validatePublishFormat(serializer.FormatYAML, serializer.StdoutPath))

	// A published artifact file is always json; yaml must not be dropped
	// silently.
	err := validatePublishFormat(serializer.FormatYAML, "/tmp/report.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "yaml")
}

func TestPrintSummary(t *testing.T) {
	model := capability.NewModel(map[capability.Category]capability.Record{
		capability.CategoryCPU: {
			capability.KeyModelName:  capability.Str("11th Gen Intel(R) Core(TM) i7-11700K"),
			capability.KeyHasAVX512F: capability.Bool(true),
		},
		capability.CategoryVirtualization: {
			capability.KeyVirtTechnology: capability.Str("Intel VT-x"),
			capability.KeyEPTSupported:   capability.Bool(true),
		},
		capability.CategoryStorage: {
			capability.KeyNVMeCount: capability.Int(2),
		},
		capability.CategoryMemory: {
			capability.KeyTotalRAMGB: capability.Float(64),
		},
		capability.CategoryGPU: {
			capability.KeyGPUVendor: capability.Str("NVIDIA"),
			capability.KeyGPUModel:  capability.Str("GeForce RTX 4090"),
		},
	}, capability.Meta{})

	score := scoring.Score(model, scoring.DefaultWeights())
	rec := scoring.Recommend(score)
	rep := report.New(model, score, rec, buildcfg.Generate(model, score))

	var buf bytes.Buffer
	printSummary(&buf, rep, "/tmp/vmware_hw_capabilities.json")
	out := buf.String()

	assert.Contains(t, out, "Optimization score: ")
	assert.Contains(t, out, "Recommended mode:   Optimized")
	assert.Contains(t, out, "i7-11700K")
	assert.Contains(t, out, "Intel VT-x")
	assert.Contains(t, out, "NVMe devices:       2")
	assert.Contains(t, out, "64.0 GB")
	assert.Contains(t, out, "NVIDIA GeForce RTX 4090")
	assert.Contains(t, out, "/tmp/vmware_hw_capabilities.json")

	// No probe failures, no failure line.
	require.False(t, strings.Contains(out, "Probe failures"))
}
