package collector

import (
	"context"

	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/capability"
)

// Collector probes one hardware category. Implementations gather facts from
// OS-exposed files and best-effort external tools.
//
// Probe never aborts the run: anything that cannot be determined is left out
// of the record (reading as unknown) and reported as a ProbeFailure. A
// Collector must not share mutable state with other collectors.
type Collector interface {
	Probe(ctx context.Context) (capability.Record, []capability.ProbeFailure)
}
