// Package detector coordinates the five probe collectors and assembles the
// immutable capability model. Collectors run in parallel; a failing or even
// panicking collector degrades only its own category.
package detector

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/capability"
	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/collector"
)

// Detector probes the host and builds a capability model.
type Detector struct {
	// Version is the detector version recorded in the model.
	Version string

	// Factory is the collector factory to use. If nil, the default factory is used.
	Factory collector.Factory
}

// Detect runs all collectors and assembles the model. It returns an error
// only when the context is canceled; every probe-level problem is absorbed
// into the model as a ProbeFailure. An unexpected panic inside a collector
// is converted into a ProbeFailure and a fully unknown category.
func (d *Detector) Detect(ctx context.Context) (*capability.Model, error) {
	factory := d.Factory
	if factory == nil {
		factory = collector.NewDefaultFactory()
	}

	slog.Debug("starting hardware detection", "version", d.Version)

	start := time.Now()
	defer func() {
		detectionDuration.Observe(time.Since(start).Seconds())
	}()

	probes := []struct {
		category capability.Category
		create   func() collector.Collector
	}{
		{capability.CategoryCPU, factory.CreateCPUCollector},
		{capability.CategoryVirtualization, factory.CreateVirtualizationCollector},
		{capability.CategoryStorage, factory.CreateStorageCollector},
		{capability.CategoryMemory, factory.CreateMemoryCollector},
		{capability.CategoryGPU, factory.CreateGPUCollector},
	}

	var mu sync.Mutex
	records := make(map[capability.Category]capability.Record, len(probes))
	var failures []capability.ProbeFailure

	// The derived group context is canceled as soon as Wait returns, so it
	// is only handed to the probes; caller cancellation is checked on the
	// parent context afterwards.
	g, gctx := errgroup.WithContext(ctx)
	for _, p := range probes {
		g.Go(func() error {
			probeStart := time.Now()
			defer func() {
				probeDuration.WithLabelValues(p.category.String()).Observe(time.Since(probeStart).Seconds())
				if r := recover(); r != nil {
					slog.Error("collector panicked, category degraded to unknown",
						"category", p.category.String(), "panic", fmt.Sprint(r))
					mu.Lock()
					records[p.category] = capability.Record{}
					failures = append(failures, capability.ProbeFailure{
						Category:  p.category,
						Attribute: "*",
						Reason:    fmt.Sprintf("unexpected collector fault: %v", r),
					})
					mu.Unlock()
				}
			}()

			slog.Debug("probing category", "category", p.category.String())
			rec, fs := p.create().Probe(gctx)

			mu.Lock()
			records[p.category] = rec
			failures = append(failures, fs...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		detectionTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		detectionTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("detection canceled: %w", err)
	}

	model := capability.NewModel(records, capability.Meta{
		DetectedAt:      time.Now().UTC(),
		DetectorVersion: d.Version,
		RunID:           uuid.NewString(),
		Failures:        failures,
	})

	detectionTotal.WithLabelValues("success").Inc()
	probeFailureCount.Set(float64(len(model.Failures)))

	slog.Debug("hardware detection complete",
		"run_id", model.RunID,
		"probe_failures", len(model.Failures),
	)

	return model, nil
}
