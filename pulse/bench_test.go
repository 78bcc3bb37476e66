package pulse_test

import (
	"fmt"
	"testing"

	"github.com/delaneyj/pulse/pulse"
)

func BenchmarkPropagate(b *testing.B) {
	for _, w := range []int{1, 10, 100} {
		for _, h := range []int{1, 10, 100} {
			b.Run(fmt.Sprintf("%dx%d", w, h), func(b *testing.B) {
				rs := pulse.CreateReactiveSystem(func(from pulse.Node, err error) {
					b.Fatal(err)
				})
				src := pulse.Signal(rs, 1)
				for i := 0; i < w; i++ {
					var last pulse.Readable[int] = src
					for j := 0; j < h; j++ {
						prev := last
						last = pulse.Computed(rs, func(int) int {
							return prev.Value() + 1
						})
					}
					if _, err := pulse.Watch1(rs, last, func(int) error { return nil }); err != nil {
						b.Fatal(err)
					}
				}

				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					src.SetValue(src.Peek() + 1)
				}
			})
		}
	}
}

func BenchmarkBatchedWrites(b *testing.B) {
	rs := pulse.CreateReactiveSystem(nil)
	sources := make([]*pulse.WriteableSignal[int], 64)
	for i := range sources {
		sources[i] = pulse.Signal(rs, 0)
	}
	sum := pulse.Computed(rs, func(int) int {
		total := 0
		for _, s := range sources {
			total += s.Value()
		}
		return total
	})
	_, err := pulse.Effect(rs, func() error {
		sum.Value()
		return nil
	})
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rs.Batch(func() {
			for _, s := range sources {
				s.Update(func(v int) int { return v + 1 })
			}
		})
	}
}

func BenchmarkCutoff(b *testing.B) {
	rs := pulse.CreateReactiveSystem(nil)
	src := pulse.Signal(rs, 0)
	parity := pulse.Computed(rs, func(int) int { return src.Value() & 1 })
	for i := 0; i < 100; i++ {
		if _, err := pulse.Watch1(rs, parity, func(int) error { return nil }); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// +2 keeps parity unchanged, so no watcher body runs
		src.SetValue(src.Peek() + 2)
	}
}
