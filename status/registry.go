// Package status holds lock-free session counters shared by the terminal core.
package status

import (
	"log"
	"strconv"
	"sync/atomic"
)

// Registry is the central metrics facade.
// Components cache pointers when wired; hot paths write directly to atomics.
type Registry struct {
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Snapshot returns every metric formatted as text, keyed by name
func (r *Registry) Snapshot() map[string]string {
	out := make(map[string]string, r.TotalCount())
	r.Ints.Range(func(key string, v *atomic.Int64) {
		out[key] = strconv.FormatInt(v.Load(), 10)
	})
	r.Floats.Range(func(key string, v *AtomicFloat) {
		out[key] = strconv.FormatFloat(v.Get(), 'f', 3, 64)
	})
	r.Strings.Range(func(key string, v *AtomicString) {
		out[key] = v.Load()
	})
	return out
}

// Log writes one line per metric to the standard logger
func (r *Registry) Log() {
	r.Ints.Range(func(key string, v *atomic.Int64) {
		log.Printf("status: %s=%d", key, v.Load())
	})
	r.Floats.Range(func(key string, v *AtomicFloat) {
		log.Printf("status: %s=%.3f", key, v.Get())
	})
	r.Strings.Range(func(key string, v *AtomicString) {
		log.Printf("status: %s=%q", key, v.Load())
	})
}
