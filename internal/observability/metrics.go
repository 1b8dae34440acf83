package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultOK    = "ok"
	ResultError = "error"
)

var (
	registerOnce sync.Once

	compilerRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bragi",
			Subsystem: "compiler",
			Name:      "runs_total",
			Help:      "Total schema compiler invocations.",
		},
		[]string{"language", "result"},
	)
	compilerDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bragi",
			Subsystem: "compiler",
			Name:      "run_duration_seconds",
			Help:      "Schema compiler run duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"language", "result"},
	)
	messagesInspected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bragi",
			Subsystem: "codec",
			Name:      "messages_inspected_total",
			Help:      "Messages read by bragictl peek and dump.",
		},
		[]string{"op", "result"},
	)
	bytesInspected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bragi",
			Subsystem: "codec",
			Name:      "bytes_inspected_total",
			Help:      "Head and tail bytes read by bragictl peek and dump.",
		},
		[]string{"part"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(compilerRuns, compilerDuration, messagesInspected, bytesInspected)
	})
}

func resultLabel(success bool) string {
	if success {
		return ResultOK
	}
	return ResultError
}

func RecordCompilerRun(language string, duration time.Duration, success bool) {
	RegisterMetrics()
	result := resultLabel(success)
	compilerRuns.WithLabelValues(language, result).Inc()
	compilerDuration.WithLabelValues(language, result).Observe(duration.Seconds())
}

func RecordInspect(op string, headBytes, tailBytes int, success bool) {
	RegisterMetrics()
	messagesInspected.WithLabelValues(op, resultLabel(success)).Inc()
	bytesInspected.WithLabelValues("head").Add(float64(headBytes))
	bytesInspected.WithLabelValues("tail").Add(float64(tailBytes))
}

// WriteTextfile dumps the default registry in the node_exporter textfile
// format so one-shot CLI runs can still be scraped.
func WriteTextfile(path string) error {
	RegisterMetrics()
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
