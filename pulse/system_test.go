package pulse_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/delaneyj/pulse/pulse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeNames(t *testing.T) {
	rs := newSystem(t)
	s := pulse.Signal(rs, 0)
	c := pulse.Computed(rs, func(int) int { return 0 }, pulse.WithName("zero"))

	assert.Equal(t, "signal#1", s.Name())
	assert.Equal(t, pulse.NodeID(1), s.ID())
	assert.Equal(t, "zero", c.Name())
	assert.Equal(t, pulse.NodeID(2), c.ID())
}

func TestVersionTracksChanges(t *testing.T) {
	rs := newSystem(t)
	s := pulse.Signal(rs, 1)
	parity := pulse.Computed(rs, func(bool) bool { return s.Value()%2 == 0 })

	assert.Zero(t, s.Version())
	assert.False(t, parity.Value())
	assert.Equal(t, uint64(1), parity.Version())

	s.SetValue(1)
	assert.Zero(t, s.Version())
	s.SetValue(3)
	assert.Equal(t, uint64(1), s.Version())
	assert.False(t, parity.Value())
	assert.Equal(t, uint64(1), parity.Version())

	s.SetValue(4)
	assert.True(t, parity.Value())
	assert.Equal(t, uint64(2), parity.Version())
}

func TestIndependentSystemsDoNotInterfere(t *testing.T) {
	rs1 := newSystem(t)
	rs2 := newSystem(t)
	a := pulse.Signal(rs1, 0)
	b := pulse.Signal(rs2, 0)

	runs := 0
	mustEffect(t, rs2, func() error {
		runs++
		b.Value()
		// rs1 has no running subscriber, so this read is untracked
		a.Value()
		return nil
	})

	a.SetValue(1)
	assert.Equal(t, 1, runs)
	b.SetValue(1)
	assert.Equal(t, 2, runs)
	assert.Zero(t, a.SubscriberCount())
}

func TestStats(t *testing.T) {
	rs := newSystem(t)
	s := pulse.Signal(rs, 0)
	c := pulse.Computed(rs, func(int) int { return s.Value() + 1 })
	stop := mustEffect(t, rs, func() error {
		c.Value()
		return nil
	})

	s.SetValue(1)
	s.SetValue(2)

	stats := rs.Stats()
	assert.Equal(t, int64(3), stats.Nodes)
	assert.Zero(t, stats.PendingEffects)
	assert.Equal(t, uint64(3), stats.EffectRuns)
	assert.Equal(t, uint64(3), stats.Recomputes)
	assert.Equal(t, uint64(2), stats.Flushes)
	assert.Equal(t, uint64(2), stats.FlushPasses)

	stop()
	assert.Zero(t, rs.Stats().Nodes)
}

func TestFlushPassesAreLoggedAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	rs := newSystem(t, pulse.WithLogger(logger))

	s := pulse.Signal(rs, 0)
	mustEffect(t, rs, func() error {
		s.Value()
		return nil
	})
	s.SetValue(1)

	require.Equal(t, 1, strings.Count(buf.String(), "flush pass"))
	assert.Contains(t, buf.String(), "effects=1")
}

func TestWithMaxFlushPassesIgnoresNonPositive(t *testing.T) {
	rs := newSystem(t, pulse.WithMaxFlushPasses(0))
	a := pulse.Signal(rs, 0)
	b := pulse.Signal(rs, 0)

	// a two-step chain needs two passes
	mustEffect(t, rs, func() error {
		b.SetValue(a.Value())
		return nil
	})
	got := 0
	mustEffect(t, rs, func() error {
		got = b.Value()
		return nil
	})
	assert.NotPanics(t, func() { a.SetValue(7) })
	assert.Equal(t, 7, got)
}

func TestOneOffComputedsAreNotRetained(t *testing.T) {
	rs := newSystem(t)
	s := pulse.Signal(rs, 1)

	for i := 0; i < 1000; i++ {
		i := i
		c := pulse.Computed(rs, func(int) int { return s.Value() + i })
		require.Equal(t, 1+i, c.Value())
		require.Equal(t, 1+i, c.Peek())
	}
	assert.Zero(t, rs.Stats().Nodes)
	assert.Zero(t, s.SubscriberCount())

	// unobserved computeds still see later writes
	calls := 0
	double := pulse.Computed(rs, func(int) int {
		calls++
		return s.Value() * 2
	})
	assert.Equal(t, 2, double.Value())
	assert.Equal(t, 2, double.Value())
	assert.Equal(t, 1, calls)
	s.SetValue(5)
	assert.Equal(t, 10, double.Value())
	assert.Equal(t, 2, calls)
	assert.Zero(t, s.SubscriberCount())

	// and attach once an effect reads them
	got := 0
	stop := mustEffect(t, rs, func() error {
		got = double.Value()
		return nil
	})
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, s.SubscriberCount())
	assert.Equal(t, 1, double.SubscriberCount())
	assert.Equal(t, int64(3), rs.Stats().Nodes)

	s.SetValue(6)
	assert.Equal(t, 12, got)
	assert.Equal(t, 3, calls)

	stop()
	assert.Zero(t, rs.Stats().Nodes)
	assert.Zero(t, s.SubscriberCount())

	s.SetValue(7)
	assert.Equal(t, 14, double.Value())
	assert.Equal(t, 4, calls)
}

func TestUnobservedComputedChainValidatesThroughVersions(t *testing.T) {
	rs := newSystem(t)

	//  A -> B -> C, none observed
	a := pulse.Signal(rs, 1)
	bCalls, cCalls := 0, 0
	b := pulse.Computed(rs, func(int) int {
		bCalls++
		return a.Value() % 2
	})
	c := pulse.Computed(rs, func(int) int {
		cCalls++
		return b.Value() + 100
	})

	assert.Equal(t, 101, c.Value())
	a.SetValue(3)
	// B recomputes to the same parity so C keeps its cache
	assert.Equal(t, 101, c.Value())
	assert.Equal(t, 2, bCalls)
	assert.Equal(t, 1, cCalls)

	a.SetValue(4)
	assert.Equal(t, 100, c.Value())
	assert.Equal(t, 3, bCalls)
	assert.Equal(t, 2, cCalls)
	assert.Zero(t, rs.Stats().Nodes)
}
