package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/hybridpro/internal/telemetry/metrics"
)

func TestNewManager_RegistersOnGivenRegistry(t *testing.T) {
	m, reg := metrics.NewTestManagerAndRegistry()

	m.CounterLogsSaved.Inc()
	m.CounterLogsSaved.Inc()
	m.CounterCompletionToggles.With(prometheus.Labels{"phase": "main", "completed": "true"}).Inc()
	m.GaugePhaseCompletion.Set(40)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.CounterLogsSaved))
	assert.Equal(t, float64(40), testutil.ToFloat64(m.GaugePhaseCompletion))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := familyNames(families)
	assert.True(t, names["hybridpro_test_server_exercise_logs_saved"])
	assert.True(t, names["hybridpro_test_server_completion_toggles"])
	assert.True(t, names["hybridpro_test_server_phase_completion_percent"])
}

func TestNewManager_SeparateRegistries(t *testing.T) {
	// registering twice on separate registries must not panic
	assert.NotPanics(t, func() {
		metrics.NewTestManager()
		metrics.NewTestManager()
	})
}

func TestSetupPrometheus(t *testing.T) {
	extra := prometheus.NewCounter(prometheus.CounterOpts{Name: "extra_total", Help: "extra"})
	reg := metrics.SetupPrometheus(extra)
	extra.Inc()

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.True(t, familyNames(families)["extra_total"])
}

func familyNames(families []*dto.MetricFamily) map[string]bool {
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	return names
}
