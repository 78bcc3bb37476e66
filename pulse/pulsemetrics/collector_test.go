package pulsemetrics_test

import (
	"strings"
	"testing"

	"github.com/delaneyj/pulse/pulse"
	"github.com/delaneyj/pulse/pulse/pulsemetrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	rs := pulse.CreateReactiveSystem(nil)
	count := pulse.Signal(rs, 0)
	_, err := pulse.Effect(rs, func() error {
		count.Value()
		return nil
	})
	require.NoError(t, err)
	count.SetValue(1)
	count.SetValue(2)

	c := pulsemetrics.NewCollector(rs, "test", nil)
	assert.Equal(t, 8, testutil.CollectAndCount(c))

	expected := `
# HELP test_pulse_effect_runs_total Effect body executions, setup runs included.
# TYPE test_pulse_effect_runs_total counter
test_pulse_effect_runs_total 3
# HELP test_pulse_flushes_total Completed effect queue drains.
# TYPE test_pulse_flushes_total counter
test_pulse_flushes_total 2
# HELP test_pulse_nodes Nodes currently linked into the dependency graph.
# TYPE test_pulse_nodes gauge
test_pulse_nodes 2
# HELP test_pulse_pending_effects Effects waiting in the flush queue.
# TYPE test_pulse_pending_effects gauge
test_pulse_pending_effects 0
`
	err = testutil.CollectAndCompare(c, strings.NewReader(expected),
		"test_pulse_effect_runs_total",
		"test_pulse_flushes_total",
		"test_pulse_nodes",
		"test_pulse_pending_effects",
	)
	assert.NoError(t, err)
}

func TestCollectorRegisters(t *testing.T) {
	rs := pulse.CreateReactiveSystem(nil)
	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(pulsemetrics.NewCollector(rs, "app", prometheus.Labels{"system": "ui"})))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 8)
	for _, mf := range families {
		assert.True(t, strings.HasPrefix(mf.GetName(), "app_pulse_"), mf.GetName())
	}
}
