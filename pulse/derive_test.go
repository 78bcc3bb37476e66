package pulse_test

import (
	"fmt"
	"testing"

	"github.com/delaneyj/pulse/pulse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerive(t *testing.T) {
	rs := newSystem(t)
	first := pulse.Signal(rs, "Ada")
	last := pulse.Signal(rs, "Lovelace")
	age := pulse.Signal(rs, 36)

	full := pulse.Derive2(rs, first, last, func(f, l string) string {
		return f + " " + l
	})
	label := pulse.Derive2(rs, full, age, func(name string, age int) string {
		return fmt.Sprintf("%s (%d)", name, age)
	}, pulse.WithName("label"))
	shout := pulse.Derive1(rs, label, func(s string) int { return len(s) })

	assert.Equal(t, "Ada Lovelace (36)", label.Value())
	assert.Equal(t, 17, shout.Value())
	assert.Equal(t, "label", label.Name())

	last.SetValue("Byron")
	assert.Equal(t, "Ada Byron (36)", label.Value())
}

func TestWatch(t *testing.T) {
	rs := newSystem(t)
	a := pulse.Signal(rs, 1)
	b := pulse.Signal(rs, 2)
	c := pulse.Signal(rs, 3)
	d := pulse.Signal(rs, 4)

	sums := []int{}
	stop, err := pulse.Watch4(rs, a, b, c, d, func(a, b, c, d int) error {
		sums = append(sums, a+b+c+d)
		return nil
	})
	require.NoError(t, err)

	rs.Batch(func() {
		a.SetValue(10)
		d.SetValue(40)
	})
	stop()
	b.SetValue(20)
	assert.Equal(t, []int{10, 55}, sums)
}

func TestDerive3AndWatch3(t *testing.T) {
	rs := newSystem(t)
	x := pulse.Signal(rs, 1)
	y := pulse.Signal(rs, 2)
	z := pulse.Signal(rs, 3)
	vol := pulse.Derive3(rs, x, y, z, func(x, y, z int) int { return x * y * z })

	got := 0
	_, err := pulse.Watch3(rs, x, y, vol, func(x, y, v int) error {
		got = v
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 6, got)

	z.SetValue(10)
	assert.Equal(t, 20, got)
}
