package pulse_test

import (
	"testing"

	"github.com/delaneyj/pulse/pulse"
	"github.com/stretchr/testify/assert"
)

// newSystem fails the test on any effect re-run error.
func newSystem(t *testing.T, opts ...pulse.Option) *pulse.ReactiveSystem {
	t.Helper()
	return pulse.CreateReactiveSystem(func(from pulse.Node, err error) {
		assert.FailNow(t, err.Error())
	}, opts...)
}

// mustEffect creates an effect whose setup must succeed.
func mustEffect(t *testing.T, rs *pulse.ReactiveSystem, fn pulse.ErrFn, opts ...pulse.NodeOption) pulse.Dispose {
	t.Helper()
	stop, err := pulse.Effect(rs, fn, opts...)
	if err != nil {
		assert.FailNow(t, err.Error())
	}
	return stop
}
