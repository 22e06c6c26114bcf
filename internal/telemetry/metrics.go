package telemetry

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mungebits/internal/logging"
	"mungebits/mungebit"
)

var (
	stepRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mungebits",
		Name:      "step_runs_total",
		Help:      "Pipeline step executions by phase and outcome.",
	}, []string{"step", "phase", "outcome"})

	stepDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mungebits",
		Name:      "step_duration_seconds",
		Help:      "Wall time of pipeline step executions.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
	}, []string{"step", "phase"})

	streamMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mungebits",
		Name:      "stream_messages_total",
		Help:      "Streamed records by outcome.",
	}, []string{"outcome"})
)

// ObserveStep records one step execution. phase is "run" when the step
// chose its own phase.
func ObserveStep(step, phase string, elapsed time.Duration, err error) {
	stepRuns.WithLabelValues(step, phase, outcome(err)).Inc()
	stepDuration.WithLabelValues(step, phase).Observe(elapsed.Seconds())
}

func ObserveMessage(outcome string) {
	streamMessages.WithLabelValues(outcome).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, mungebit.ErrUntrainedInvocation), errors.Is(err, mungebit.ErrAlreadyTrained):
		return "state_error"
	default:
		return "error"
	}
}

// Expose serves /metrics on port in the background.
func Expose(port int) {
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(fmt.Sprintf(":%d", port), mux); err != nil {
			logging.For("telemetry").Error("metrics listener stopped", "port", port, "err", err)
		}
	}()
}
