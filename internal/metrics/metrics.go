// Package metrics holds the Prometheus collectors describing touch runs.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fabric"

// Result label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Collector groups the touch metrics.
type Collector struct {
	Touches     *prometheus.CounterVec
	Failures    *prometheus.CounterVec
	Duration    prometheus.Histogram
	LastSuccess prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		Touches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "touch_total",
			Help:      "Number of touch runs by result.",
		}, []string{"result"}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "touch_failures_total",
			Help:      "Number of failed touch runs by the step that failed.",
		}, []string{"op"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "touch_duration_seconds",
			Help:      "Time spent opening, mapping, populating and unmapping the device.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "touch_last_success_timestamp_seconds",
			Help:      "Unix time of the last successful touch.",
		}),
	}
	var errs []error
	for _, col := range []prometheus.Collector{c.Touches, c.Failures, c.Duration, c.LastSuccess} {
		if err := reg.Register(col); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return c, nil
}

// ObserveSuccess records a successful run that took d.
func (c *Collector) ObserveSuccess(d time.Duration, now time.Time) {
	c.Touches.WithLabelValues(ResultSuccess).Inc()
	c.Duration.Observe(d.Seconds())
	c.LastSuccess.Set(float64(now.UnixNano()) / 1e9)
}

// OpOther is the op label used when the failed step is unknown.
const OpOther = "other"

// ObserveFailure records a run that failed at op. An empty op is recorded as
// OpOther.
func (c *Collector) ObserveFailure(op string, d time.Duration) {
	if op == "" {
		op = OpOther
	}
	c.Touches.WithLabelValues(ResultFailure).Inc()
	c.Failures.WithLabelValues(op).Inc()
	c.Duration.Observe(d.Seconds())
}

// WriteTextfile writes everything g gathers to path in the text exposition
// format, for the node exporter's textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
