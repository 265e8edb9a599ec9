package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/capability"
	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/collector/run"
)

const dmidecodeFixture = `# dmidecode 3.5
Handle 0x003A, DMI type 17, 84 bytes
Memory Device
	Size: 32 GB
	Type: DDR4
	Speed: 3200 MT/s
	Manufacturer: Corsair
`

type fakeRunner struct {
	output map[string]string
	err    map[string]error
}

func (f *fakeRunner) Run(_ context.Context, name string, _ ...string) (string, error) {
	if err, ok := f.err[name]; ok {
		return "", err
	}
	if out, ok := f.output[name]; ok {
		return out, nil
	}
	return "", run.ErrToolUnavailable
}

func hugepagesTree(t *testing.T, dirs map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for dir, count := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, dir, "nr_hugepages"), []byte(count+"\n"), 0o644))
	}
	return root
}

func numaTree(t *testing.T, nodes ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, n := range nodes {
		require.NoError(t, os.MkdirAll(filepath.Join(root, n), 0o755))
	}
	return root
}

func TestProbe_Hugepages(t *testing.T) {
	c := &Collector{
		HugepagesPath: hugepagesTree(t, map[string]string{
			hugepages2MDir: "128",
			hugepages1GDir: "4",
		}),
		NUMANodePath: numaTree(t, "node0"),
		Runner:       &fakeRunner{},
	}

	rec, _ := c.Probe(context.Background())

	assert.True(t, rec.IsTrue(capability.KeyHugepages2MSupported))
	assert.True(t, rec.IsTrue(capability.KeyHugepages1GSupported))

	n2m, _ := rec.Int(capability.KeyHugepages2MCount)
	assert.Equal(t, int64(128), n2m)
	n1g, _ := rec.Int(capability.KeyHugepages1GCount)
	assert.Equal(t, int64(4), n1g)
}

func TestProbe_HugepagesAbsentIsDefinitivelyFalse(t *testing.T) {
	c := &Collector{
		HugepagesPath: hugepagesTree(t, map[string]string{hugepages2MDir: "0"}),
		NUMANodePath:  numaTree(t, "node0"),
		Runner:        &fakeRunner{},
	}

	rec, _ := c.Probe(context.Background())

	onegb := rec.Get(capability.KeyHugepages1GSupported)
	assert.False(t, onegb.IsUnknown(), "a readable hugepages dir gives a definite answer")
	assert.False(t, onegb.IsTrue())
}

func TestProbe_NUMA(t *testing.T) {
	c := &Collector{
		HugepagesPath: t.TempDir(),
		NUMANodePath:  numaTree(t, "node0", "node1", "cpu0", "has_cpu"),
		Runner:        &fakeRunner{},
	}

	rec, _ := c.Probe(context.Background())

	nodes, _ := rec.Int(capability.KeyNUMANodes)
	assert.Equal(t, int64(2), nodes)
	assert.True(t, rec.IsTrue(capability.KeyNUMAEnabled))
}

func TestProbe_NUMAUnsupportedKernel(t *testing.T) {
	c := &Collector{
		HugepagesPath: t.TempDir(),
		NUMANodePath:  filepath.Join(t.TempDir(), "missing"),
		Runner:        &fakeRunner{},
	}

	rec, _ := c.Probe(context.Background())

	nodes, _ := rec.Int(capability.KeyNUMANodes)
	assert.Equal(t, int64(1), nodes)
	assert.False(t, rec.IsTrue(capability.KeyNUMAEnabled))
}

func TestProbe_DMI(t *testing.T) {
	c := &Collector{
		HugepagesPath: t.TempDir(),
		NUMANodePath:  numaTree(t, "node0"),
		Runner:        &fakeRunner{output: map[string]string{"dmidecode": dmidecodeFixture}},
	}

	rec, _ := c.Probe(context.Background())

	typ, ok := rec.Str(capability.KeyMemoryType)
	require.True(t, ok)
	assert.Equal(t, "DDR4", typ)

	speed, ok := rec.Int(capability.KeyMemorySpeedMHz)
	require.True(t, ok)
	assert.Equal(t, int64(3200), speed)

	// Bandwidth estimate only materializes once the speed is known.
	_, ok = rec.Float(capability.KeyMemBandwidthGBs)
	assert.True(t, ok)
}

func TestProbe_DMIMissingDegradesGracefully(t *testing.T) {
	c := &Collector{
		HugepagesPath: t.TempDir(),
		NUMANodePath:  numaTree(t, "node0"),
		Runner:        &fakeRunner{err: map[string]error{"dmidecode": run.ErrToolUnavailable}},
	}

	rec, failures := c.Probe(context.Background())

	assert.True(t, rec.Get(capability.KeyMemoryType).IsUnknown())
	assert.True(t, rec.Get(capability.KeyMemBandwidthGBs).IsUnknown(),
		"bandwidth must never be fabricated without a detected speed")

	var found bool
	for _, f := range failures {
		if f.Attribute == capability.KeyMemoryType {
			found = true
		}
	}
	assert.True(t, found)
}
