package capability

import (
	"sort"
	"time"
)

// Category identifies one of the five probed hardware categories.
type Category string

const (
	CategoryCPU            Category = "cpu"
	CategoryVirtualization Category = "virtualization"
	CategoryStorage        Category = "storage"
	CategoryMemory         Category = "memory"
	CategoryGPU            Category = "gpu"
)

// Categories returns all probe categories in canonical order.
func Categories() []Category {
	return []Category{
		CategoryCPU,
		CategoryVirtualization,
		CategoryStorage,
		CategoryMemory,
		CategoryGPU,
	}
}

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	switch c {
	case CategoryCPU, CategoryVirtualization, CategoryStorage, CategoryMemory, CategoryGPU:
		return true
	}
	return false
}

// String returns the category name.
func (c Category) String() string { return string(c) }

// ProbeFailure describes an expected, recoverable inability to determine one
// attribute. Failures are surfaced as data in the output artifact, never as
// process errors.
type ProbeFailure struct {
	Category  Category `json:"category" yaml:"category"`
	Attribute string   `json:"attribute" yaml:"attribute"`
	Reason    string   `json:"reason" yaml:"reason"`
}

// Meta carries detection metadata attached to a Model.
type Meta struct {
	DetectedAt      time.Time
	DetectorVersion string
	RunID           string
	Failures        []ProbeFailure
}

// Model is the normalized snapshot of everything detected about the host.
// It is built once per invocation; the constructor copies all records and
// callers must treat the model as read-only after construction.
type Model struct {
	CPU            Record `json:"cpu" yaml:"cpu"`
	Virtualization Record `json:"virtualization" yaml:"virtualization"`
	Storage        Record `json:"storage" yaml:"storage"`
	Memory         Record `json:"memory" yaml:"memory"`
	GPU            Record `json:"gpu" yaml:"gpu"`

	DetectedAt      time.Time      `json:"detected_at" yaml:"detected_at"`
	DetectorVersion string         `json:"detector_version" yaml:"detector_version"`
	RunID           string         `json:"run_id" yaml:"run_id"`
	Failures        []ProbeFailure `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// NewModel assembles a Model from per-category records and metadata.
// Records are copied; missing categories materialize as empty records,
// never as nil, so a failed probe still yields a complete model.
// Failures are sorted for deterministic output.
func NewModel(records map[Category]Record, meta Meta) *Model {
	failures := make([]ProbeFailure, len(meta.Failures))
	copy(failures, meta.Failures)
	sort.Slice(failures, func(i, j int) bool {
		if failures[i].Category != failures[j].Category {
			return failures[i].Category < failures[j].Category
		}
		if failures[i].Attribute != failures[j].Attribute {
			return failures[i].Attribute < failures[j].Attribute
		}
		return failures[i].Reason < failures[j].Reason
	})

	return &Model{
		CPU:             records[CategoryCPU].Clone(),
		Virtualization:  records[CategoryVirtualization].Clone(),
		Storage:         records[CategoryStorage].Clone(),
		Memory:          records[CategoryMemory].Clone(),
		GPU:             records[CategoryGPU].Clone(),
		DetectedAt:      meta.DetectedAt,
		DetectorVersion: meta.DetectorVersion,
		RunID:           meta.RunID,
		Failures:        failures,
	}
}

// Record returns a copy of the record for the given category.
func (m *Model) Record(cat Category) Record {
	switch cat {
	case CategoryCPU:
		return m.CPU.Clone()
	case CategoryVirtualization:
		return m.Virtualization.Clone()
	case CategoryStorage:
		return m.Storage.Clone()
	case CategoryMemory:
		return m.Memory.Clone()
	case CategoryGPU:
		return m.GPU.Clone()
	}
	return Record{}
}

// PortableModel returns the lowest-common-denominator model used for
// portable builds: every attribute in every category is unknown, so the
// flag generator can never emit a host-specific flag from it.
func PortableModel() *Model {
	return &Model{
		CPU:            Record{},
		Virtualization: Record{},
		Storage:        Record{},
		Memory:         Record{},
		GPU:            Record{},
	}
}
