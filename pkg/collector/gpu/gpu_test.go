package gpu

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/capability"
	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/collector/run"
)

type fakeRunner struct {
	output map[string]string
}

func (f *fakeRunner) Run(_ context.Context, name string, _ ...string) (string, error) {
	if out, ok := f.output[name]; ok {
		return out, nil
	}
	return "", run.ErrToolUnavailable
}

func TestProbe_NVIDIA(t *testing.T) {
	c := &Collector{
		DRMPath: t.TempDir(),
		Runner: &fakeRunner{output: map[string]string{
			"nvidia-smi": "NVIDIA GeForce RTX 4090, 24564 MiB, 550.54.14\n",
		}},
	}

	rec, failures := c.Probe(context.Background())
	assert.Empty(t, failures)

	assert.True(t, rec.IsTrue(capability.KeyGPUPresent))
	vendor, _ := rec.Str(capability.KeyGPUVendor)
	assert.Equal(t, VendorNVIDIA, vendor)
	model, _ := rec.Str(capability.KeyGPUModel)
	assert.Equal(t, "NVIDIA GeForce RTX 4090", model)
	driver, _ := rec.Str(capability.KeyGPUDriverVersion)
	assert.Equal(t, "550.54.14", driver)

	vram, ok := rec.Float(capability.KeyGPUVRAMGB)
	require.True(t, ok)
	assert.InDelta(t, 24.0, vram, 0.1)
}

func TestProbe_AMDViaLspci(t *testing.T) {
	c := &Collector{
		DRMPath: t.TempDir(),
		Runner: &fakeRunner{output: map[string]string{
			"lspci":    "0a:00.0 VGA compatible controller: Advanced Micro Devices, Inc. [AMD/ATI] Navi 31 [Radeon RX 7900 XTX] (rev c8)\n",
			"rocm-smi": "GPU[0] : VRAM Total Memory (B): 25753026560\nGPU[0] : vram 24560 MB\n",
			"modinfo":  "filename: /lib/modules/amdgpu.ko\nversion:        6.7.0\n",
		}},
	}

	rec, _ := c.Probe(context.Background())

	assert.True(t, rec.IsTrue(capability.KeyGPUPresent))
	vendor, _ := rec.Str(capability.KeyGPUVendor)
	assert.Equal(t, VendorAMD, vendor)
	model, _ := rec.Str(capability.KeyGPUModel)
	assert.Equal(t, "Navi 31", model)
	driver, _ := rec.Str(capability.KeyGPUDriverVersion)
	assert.Equal(t, "6.7.0", driver)
}

func TestProbe_NoGPUIsDefiniteWhenLspciRan(t *testing.T) {
	c := &Collector{
		DRMPath: t.TempDir(),
		Runner: &fakeRunner{output: map[string]string{
			"lspci": "00:1f.6 Ethernet controller: Intel Corporation Ethernet Connection\n",
		}},
	}

	rec, failures := c.Probe(context.Background())
	assert.Empty(t, failures)

	present := rec.Get(capability.KeyGPUPresent)
	assert.False(t, present.IsUnknown())
	assert.False(t, present.IsTrue())
}

func TestProbe_NoToolingLeavesPresenceUnknown(t *testing.T) {
	c := &Collector{DRMPath: t.TempDir(), Runner: &fakeRunner{}}

	rec, failures := c.Probe(context.Background())

	assert.True(t, rec.Get(capability.KeyGPUPresent).IsUnknown(),
		"absence of tooling must not be reported as absence of hardware")
	require.NotEmpty(t, failures)
	assert.Equal(t, capability.KeyGPUPresent, failures[len(failures)-1].Attribute)
}

func TestProbe_MalformedNvidiaSmiFallsThrough(t *testing.T) {
	c := &Collector{
		DRMPath: t.TempDir(),
		Runner: &fakeRunner{output: map[string]string{
			"nvidia-smi": "garbage\n",
			"lspci":      "no gpus here\n",
		}},
	}

	rec, failures := c.Probe(context.Background())

	present := rec.Get(capability.KeyGPUPresent)
	assert.False(t, present.IsTrue())

	var malformed bool
	for _, f := range failures {
		if f.Attribute == capability.KeyGPUModel {
			malformed = true
		}
	}
	assert.True(t, malformed)
}
