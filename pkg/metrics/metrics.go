// Package metrics exposes aggregate execution counters for the universal
// machine as Prometheus instruments. It is strictly observability: it
// never records per-instruction state or register contents, so enabling
// it does not turn the VM into a debugger or tracer.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the instruments a running VM updates. A nil *Collector
// is valid and every method on it is a no-op, so the engine can carry an
// always-present pointer without branching on "is metrics enabled" at
// every instruction.
type Collector struct {
	instructions   prometheus.Counter
	segmentsLive   prometheus.Gauge
	faultsByKind   *prometheus.CounterVec
	registry       *prometheus.Registry
}

// New builds a Collector registered against a fresh registry, so multiple
// VM instances in the same process (as in tests) never collide on metric
// names.
func New() *Collector {
	reg := prometheus.NewRegistry()
	c := &Collector{
		instructions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "um_instructions_executed_total",
			Help: "Total number of instructions dispatched by the execution engine.",
		}),
		segmentsLive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "um_segments_mapped",
			Help: "Number of segments currently mapped, including segment 0.",
		}),
		faultsByKind: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "um_fatal_conditions_total",
			Help: "Fatal conditions encountered, labeled by kind.",
		}, []string{"kind"}),
		registry: reg,
	}
	reg.MustRegister(c.instructions, c.segmentsLive, c.faultsByKind)
	return c
}

func (c *Collector) InstructionExecuted() {
	if c == nil {
		return
	}
	c.instructions.Inc()
}

func (c *Collector) SetSegmentsLive(n int) {
	if c == nil {
		return
	}
	c.segmentsLive.Set(float64(n))
}

func (c *Collector) FatalCondition(kind string) {
	if c == nil {
		return
	}
	c.faultsByKind.WithLabelValues(kind).Inc()
}

// Handler returns the promhttp handler for this collector's registry, or
// nil if c is nil.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return nil
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
