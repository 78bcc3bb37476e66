package main

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/delaneyj/pulse/pulse"
)

type graphTestConfig struct {
	name           string  // friendly name for the test, should be unique
	width          int64   // width of dependency graph to construct
	totalLayers    int64   // depth of dependency graph to construct
	staticFraction float64 // fraction of nodes that always read all their sources
	nSources       int64   // number of sources each node reads
	readFraction   float64 // fraction of leaves read after every write
	iterations     int64
}

func (cfg graphTestConfig) title() string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("%dx%d %d sources", cfg.width, cfg.totalLayers, cfg.nSources))
	if cfg.staticFraction < 1 {
		sb.WriteString(" dynamic")
	}
	if cfg.readFraction < 1 {
		sb.WriteString(fmt.Sprintf(" read %0.2f%%", 100*cfg.readFraction))
	}
	return sb.String()
}

type graph struct {
	rs      *pulse.ReactiveSystem
	sources []*pulse.WriteableSignal[int]
	layers  [][]*pulse.ReadonlySignal[int]
}

func makeGraph(cfg graphTestConfig, counter *int64) *graph {
	rs := pulse.CreateReactiveSystem(nil)
	sources := make([]*pulse.WriteableSignal[int], cfg.width)
	prevRow := make([]pulse.Readable[int], cfg.width)
	for i := range sources {
		sources[i] = pulse.Signal(rs, i)
		prevRow[i] = sources[i]
	}

	random := rand.New(rand.NewSource(0))
	g := &graph{rs: rs, sources: sources}
	for l := int64(0); l < cfg.totalLayers-1; l++ {
		row := makeRow(rs, prevRow, cfg, counter, random)
		g.layers = append(g.layers, row)
		prevRow = make([]pulse.Readable[int], len(row))
		for i, c := range row {
			prevRow[i] = c
		}
	}
	return g
}

func makeRow(rs *pulse.ReactiveSystem, sources []pulse.Readable[int], cfg graphTestConfig, counter *int64, random *rand.Rand) []*pulse.ReadonlySignal[int] {
	row := make([]*pulse.ReadonlySignal[int], len(sources))
	for myDex := range sources {
		mySources := make([]pulse.Readable[int], 0, cfg.nSources)
		for sourceDex := 0; sourceDex < int(cfg.nSources); sourceDex++ {
			mySources = append(mySources, sources[(myDex+sourceDex)%len(sources)])
		}

		if random.Float64() < cfg.staticFraction {
			row[myDex] = pulse.Computed(rs, func(int) int {
				*counter++
				sum := 0
				for _, source := range mySources {
					sum += source.Value()
				}
				return sum
			})
			continue
		}

		first := mySources[0]
		tail := mySources[1:]
		row[myDex] = pulse.Computed(rs, func(int) int {
			*counter++
			sum := first.Value()
			shouldDrop := sum&0x1 > 0
			dropDex := 0
			if len(tail) > 0 {
				dropDex = sum % len(tail)
			}
			for i := 0; i < len(tail); i++ {
				if shouldDrop && i == dropDex {
					continue
				}
				sum += tail[i].Value()
			}
			return sum
		})
	}
	return row
}

// run writes one source per iteration and reads a fixed random subset of the
// leaves. It returns the final leaf sum and an xxhash of every leaf value
// read along the way.
func (g *graph) run(iterations int64, readFraction float64) (int, uint64) {
	random := rand.New(rand.NewSource(0))
	leaves := g.layers[len(g.layers)-1]
	skipCount := int(math.Round(float64(len(leaves)) * (1 - readFraction)))
	readLeaves := removeElems(leaves, skipCount, random)

	digest := xxhash.New()
	buf := make([]byte, 0, 8*len(readLeaves))
	for i := 0; i < int(iterations); i++ {
		g.rs.Batch(func() {
			sourceDex := i % len(g.sources)
			g.sources[sourceDex].SetValue(i + sourceDex)
		})

		buf = buf[:0]
		for _, leaf := range readLeaves {
			buf = appendInt(buf, leaf.Value())
		}
		digest.Write(buf)
	}

	sum := 0
	for _, leaf := range readLeaves {
		sum += leaf.Value()
	}
	return sum, digest.Sum64()
}

func removeElems[T any](src []T, rmCount int, random *rand.Rand) []T {
	out := make([]T, len(src))
	copy(out, src)
	for i := 0; i < rmCount; i++ {
		rmDex := random.Intn(len(out))
		out[rmDex] = out[len(out)-1]
		out = out[:len(out)-1]
	}
	return out
}
