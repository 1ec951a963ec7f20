// Package status holds runtime counters written by the frame loop and submission goroutines
// and read by the status line.
package status

import (
	"fmt"
	"math"
	"strings"
	"sync/atomic"
)

// Metric keys
const (
	KeyFrames      = "frames"
	KeyFPS         = "fps"
	KeyNodes       = "nodes"
	KeyConnections = "links"
	KeyHovered     = "hovered"
	KeyPointer     = "pointer"
	KeySendsOK     = "sends.ok"
	KeySendsFailed = "sends.failed"
)

// AtomicFloat provides atomic float64 operations using bit conversion
// Zero value is ready to use (represents 0.0)
type AtomicFloat struct {
	bits atomic.Uint64
}

// Set stores a float64 value atomically
func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

// Get loads the float64 value atomically
func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Registry is the central metrics facade
// Writers cache pointers once; hot loops write directly to atomics
type Registry struct {
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// Line renders every metric as "key=value" pairs in sorted key order
func (r *Registry) Line() string {
	var parts []string
	r.Ints.Range(func(key string, v *atomic.Int64) {
		parts = append(parts, fmt.Sprintf("%s=%d", key, v.Load()))
	})
	r.Floats.Range(func(key string, v *AtomicFloat) {
		parts = append(parts, fmt.Sprintf("%s=%.1f", key, v.Get()))
	})
	return strings.Join(parts, "  ")
}
