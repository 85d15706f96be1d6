// Package metrics counts the work of a collection run. The values are
// written in the text format of the node exporter textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cfgfacts"

// Results of one device.
const (
	Parsed  = "parsed"
	Failed  = "failed"
	Skipped = "skipped"
)

// Metrics is safe for concurrent use. All methods of a nil *Metrics do
// nothing.
type Metrics struct {
	registry   *prometheus.Registry
	devices    *prometheus.CounterVec
	interfaces *prometheus.CounterVec
	addresses  *prometheus.CounterVec
	duration   prometheus.Histogram
	lastRun    prometheus.Gauge
}

func New() *Metrics {
	r := prometheus.NewRegistry()
	m := &Metrics{
		registry: r,
		devices: newCounterVec(r, "devices_total",
			"Configuration backups processed.", "vendor", "result"),
		interfaces: newCounterVec(r, "interfaces_total",
			"Interfaces found in configuration backups.", "vendor"),
		addresses: newCounterVec(r, "addresses_total",
			"Addresses found in configuration backups.", "vendor"),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "parse_duration_seconds",
			Help:      "Time to read and parse one configuration backup.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Time when the last collection finished.",
		}),
	}
	r.MustRegister(m.duration, m.lastRun)
	return m
}

func newCounterVec(r *prometheus.Registry, name, help string, labels ...string) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, labels)
	r.MustRegister(c)
	return c
}

// Device counts one device of vendor with result Parsed, Failed or
// Skipped.
func (m *Metrics) Device(vendor, result string) {
	if m == nil {
		return
	}
	m.devices.WithLabelValues(vendor, result).Inc()
}

// Found adds the interfaces and addresses of one device.
func (m *Metrics) Found(vendor string, intfs, addrs int) {
	if m == nil {
		return
	}
	m.interfaces.WithLabelValues(vendor).Add(float64(intfs))
	m.addresses.WithLabelValues(vendor).Add(float64(addrs))
}

func (m *Metrics) Observe(d time.Duration) {
	if m == nil {
		return
	}
	m.duration.Observe(d.Seconds())
}

// Finished marks the end of a collection run at time t.
func (m *Metrics) Finished(t time.Time) {
	if m == nil {
		return
	}
	m.lastRun.Set(float64(t.Unix()))
}

// WriteTextfile writes all metrics to file path. The file is replaced
// atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}

// Registry returns the registry holding all metrics.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
