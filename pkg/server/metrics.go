package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "scripic"

// OutcomeSuccess は成功したワークフローの outcome ラベルです。
// 失敗時は ErrorKind の文字列（safety_blocked など）が入ります。
const OutcomeSuccess = "success"

// Metrics はワークフロー単位の Prometheus 指標です。
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics は指標を reg に登録します。
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "workflow",
				Name:      "requests_total",
				Help:      "Total number of workflow executions by outcome",
			},
			[]string{"workflow", "outcome"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "workflow",
				Name:      "duration_seconds",
				Help:      "Workflow execution duration in seconds",
				Buckets:   []float64{.25, .5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"workflow"},
		),
	}
}

// Observe は1回の実行結果を記録します。
func (m *Metrics) Observe(workflow, outcome string, elapsed time.Duration) {
	m.requests.WithLabelValues(workflow, outcome).Inc()
	m.duration.WithLabelValues(workflow).Observe(elapsed.Seconds())
}
