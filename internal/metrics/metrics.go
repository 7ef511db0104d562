package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "numkit"

// Status label values.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Metrics owns a private Prometheus registry, so several instances (one per
// test, say) never collide on registration.
type Metrics struct {
	registry *prometheus.Registry

	operations   *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	active       prometheus.Gauge
	resultBits   *prometheus.GaugeVec
	mismatches   prometheus.Counter
	heapInUse    prometheus.GaugeFunc
	memCollector *MemoryCollector
}

// New creates a Metrics instance with Go runtime collectors registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry:     reg,
		memCollector: NewMemoryCollector(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Operations run, by operation, algorithm and status.",
		}, []string{"op", "algo", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Wall-clock duration of operations.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 10, 9),
		}, []string{"op", "algo"}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_calculations",
			Help:      "Calculations currently running.",
		}),
		resultBits: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "fibonacci_result_bits",
			Help:      "Bit length of the last Fibonacci result per algorithm.",
		}, []string{"algo"}),
		mismatches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "result_mismatches_total",
			Help:      "Comparisons in which algorithms disagreed.",
		}),
	}
	m.heapInUse = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "heap_alloc_bytes",
		Help:      "Heap bytes in use at scrape time.",
	}, func() float64 { return float64(m.memCollector.Snapshot().HeapAlloc) })

	reg.MustRegister(
		m.operations, m.duration, m.active, m.resultBits, m.mismatches, m.heapInUse,
		collectors.NewGoCollector(),
	)
	return m
}

// ObserveOperation records one finished operation.
func (m *Metrics) ObserveOperation(op, algo string, d time.Duration, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusFailure
	}
	m.operations.WithLabelValues(op, algo, status).Inc()
	m.duration.WithLabelValues(op, algo).Observe(d.Seconds())
}

// SetResultBits records the bit length of a Fibonacci result.
func (m *Metrics) SetResultBits(algo string, bits int) {
	m.resultBits.WithLabelValues(algo).Set(float64(bits))
}

// IncMismatch counts a comparison in which results disagreed.
func (m *Metrics) IncMismatch() { m.mismatches.Inc() }

// IncrementActive and DecrementActive bracket a running calculation.
func (m *Metrics) IncrementActive() { m.active.Inc() }
func (m *Metrics) DecrementActive() { m.active.Dec() }

// Registry exposes the underlying registry, e.g. for testutil.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// WriteTextfile writes the registry in the text exposition format to path,
// atomically, for node_exporter's textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
