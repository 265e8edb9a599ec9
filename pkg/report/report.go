// Package report defines the output artifact: the serialized contract
// between the detector, the interactive wizard, and the shell build step.
// Field names are stable; consumers validate presence and fall back to a
// portable build on any mismatch.
package report

import (
	"time"

	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/buildcfg"
	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/capability"
	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/header"
	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/scoring"
)

// Kind is the artifact kind recorded in the header.
const Kind = "HardwareReport"

// Capabilities groups the five category records under their stable names.
type Capabilities struct {
	CPU            capability.Record `json:"cpu" yaml:"cpu"`
	Virtualization capability.Record `json:"virtualization" yaml:"virtualization"`
	Storage        capability.Record `json:"storage" yaml:"storage"`
	Memory         capability.Record `json:"memory" yaml:"memory"`
	GPU            capability.Record `json:"gpu" yaml:"gpu"`
}

// Report is the complete detection artifact.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	Capabilities   Capabilities               `json:"capabilities" yaml:"capabilities"`
	Score          int                        `json:"score" yaml:"score"`
	Recommendation scoring.Recommendation     `json:"recommendation" yaml:"recommendation"`
	BuildConfig    buildcfg.Configuration     `json:"build_config" yaml:"build_config"`
	ProbeFailures  []capability.ProbeFailure  `json:"probe_failures" yaml:"probe_failures"`
}

// New assembles a Report from the pipeline outputs and stamps the header.
func New(model *capability.Model, score scoring.OptimizationScore, rec scoring.Recommendation, cfg buildcfg.Configuration) *Report {
	opts := []header.Option{header.WithKind(Kind)}
	if model.RunID != "" {
		opts = append(opts, header.WithMetadata("run-id", model.RunID))
	}
	if model.DetectorVersion != "" {
		opts = append(opts, header.WithMetadata("detector-version", model.DetectorVersion))
	}
	if !model.DetectedAt.IsZero() {
		opts = append(opts, header.WithMetadata("detected-at", model.DetectedAt.Format(time.RFC3339)))
	}

	r := &Report{
		Header: *header.New(opts...),
		Capabilities: Capabilities{
			CPU:            model.CPU,
			Virtualization: model.Virtualization,
			Storage:        model.Storage,
			Memory:         model.Memory,
			GPU:            model.GPU,
		},
		Score:          score.Value,
		Recommendation: rec,
		BuildConfig:    cfg,
		ProbeFailures:  model.Failures,
	}
	if r.ProbeFailures == nil {
		r.ProbeFailures = []capability.ProbeFailure{}
	}

	return r
}
