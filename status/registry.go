package status

import (
	"fmt"
	"sync/atomic"
)

// Metric keys written by the simulation driver
const (
	KeyPieces      = "scene.pieces"
	KeyPlaced      = "scene.placed"
	KeyAssigned    = "scene.assigned"
	KeyDancing     = "scene.dancing"
	KeyDanceDegs   = "scene.dance_degs"
	KeyPhase       = "scene.phase"
	KeyPasses      = "scheduler.passes"
	KeyAssignments = "scheduler.assignments"
	KeyFrames      = "engine.frames"
	KeyScatters    = "engine.scatters"
	KeyPaused      = "engine.paused"
	KeyDropped     = "events.dropped"
)

// Registry is the metrics facade shared by the simulation and the renderer
// Writers cache pointers once and then store to the atomics directly
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns the number of metrics across all kinds
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Entry is one formatted metric
type Entry struct {
	Key   string
	Value string
}

// Snapshot formats every metric, grouped by kind and sorted by key within a kind
func (r *Registry) Snapshot() []Entry {
	out := make([]Entry, 0, r.TotalCount())
	r.Strings.Range(func(k string, v *AtomicString) {
		out = append(out, Entry{k, v.Load()})
	})
	r.Ints.Range(func(k string, v *atomic.Int64) {
		out = append(out, Entry{k, fmt.Sprintf("%d", v.Load())})
	})
	r.Floats.Range(func(k string, v *AtomicFloat) {
		out = append(out, Entry{k, fmt.Sprintf("%.1f", v.Get())})
	})
	r.Bools.Range(func(k string, v *atomic.Bool) {
		out = append(out, Entry{k, fmt.Sprintf("%t", v.Load())})
	})
	return out
}
