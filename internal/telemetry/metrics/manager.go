package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests            *prometheus.CounterVec
	CounterHandleRequestPanic  *prometheus.CounterVec
	CounterRateLimitedRequests prometheus.Counter
	CounterLogsSaved           prometheus.Counter
	CounterLogsPersistFailures prometheus.Counter
	CounterLogsLoadFailures    prometheus.Counter
	CounterCompletionToggles   *prometheus.CounterVec
	CounterDaysStarted         prometheus.Counter
	CounterRestTimersCompleted prometheus.Counter

	// gauges
	GaugeRequests        prometheus.Gauge
	GaugeLifeSignal      prometheus.Gauge
	GaugeLogs            prometheus.Gauge
	GaugePhaseCompletion prometheus.Gauge

	// histograms
	HistogramRequestDuration *prometheus.HistogramVec
	HistPersistDuration      prometheus.Histogram
}

func NewTestManager() *Manager {
	return NewManager("hybridpro", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("hybridpro", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterHandleRequestPanic := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics, per route",
	}, []string{"route"})
	counterRateLimitedRequests := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "rate_limited_requests",
		Help:      "The total number of rate limited requests",
	})
	counterLogsSaved := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "exercise_logs_saved",
		Help:      "The total number of saved exercise logs",
	})
	counterLogsPersistFailures := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "exercise_logs_persist_failures",
		Help:      "Number of failed writes of the exercise log history",
	})
	counterLogsLoadFailures := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "exercise_logs_load_failures",
		Help:      "Number of failed reads of the exercise log history",
	})
	counterCompletionToggles := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "completion_toggles",
		Help:      "Number of exercise completion toggles",
	}, []string{"phase", "completed"})
	counterDaysStarted := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "days_started",
		Help:      "Number of started workout days",
	})
	counterRestTimersCompleted := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "rest_timers_completed",
		Help:      "Number of rest timers that counted down to zero",
	})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of requests served",
	})
	gaugeLifeSignal := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "life_signal",
		Help:      "Shows whether the service is alive",
	})
	gaugeLogs := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "exercise_logs",
		Help:      "Number of exercise logs held in memory",
	})
	gaugePhaseCompletion := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "phase_completion_percent",
		Help:      "Completion percentage of the active phase",
	})

	histogramRequestDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "Histogram of response time for requests in seconds",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"route", "method", "status_code"})
	histPersistDuration := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "exercise_logs_persist_duration_seconds",
		Help:      "Duration of a single write of the exercise log history",
		Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
	})

	return &Manager{
		CounterRequests:            counterRequests,
		CounterHandleRequestPanic:  counterHandleRequestPanic,
		CounterRateLimitedRequests: counterRateLimitedRequests,
		CounterLogsSaved:           counterLogsSaved,
		CounterLogsPersistFailures: counterLogsPersistFailures,
		CounterLogsLoadFailures:    counterLogsLoadFailures,
		CounterCompletionToggles:   counterCompletionToggles,
		CounterDaysStarted:         counterDaysStarted,
		CounterRestTimersCompleted: counterRestTimersCompleted,
		GaugeRequests:              gaugeRequests,
		GaugeLifeSignal:            gaugeLifeSignal,
		GaugeLogs:                  gaugeLogs,
		GaugePhaseCompletion:       gaugePhaseCompletion,
		HistogramRequestDuration:   histogramRequestDuration,
		HistPersistDuration:        histPersistDuration,
	}
}
