package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/delaneyj/pulse/internal/clilog"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

const (
	repeatsKey = "repeats"
	onlyKey    = "only"
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark_graph",
		Usage: "Run layered dynamic dependency graphs and report update throughput",
		Flags: append([]cli.Flag{
			&cli.IntFlag{
				Name:  repeatsKey,
				Usage: "Timed runs per config, the fastest is reported",
				Value: 5,
			},
			&cli.StringFlag{
				Name:  onlyKey,
				Usage: "Only run configs whose name contains this",
			},
		}, clilog.Flags()...),
		Action: clilog.Run(os.Stderr, run),
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

var perfTestCfgs = []graphTestConfig{
	{
		name:           "simple component",
		width:          10,
		staticFraction: 1,
		nSources:       2,
		totalLayers:    5,
		readFraction:   0.2,
		iterations:     600000,
	},
	{
		name:           "dynamic component",
		width:          10,
		totalLayers:    10,
		staticFraction: 0.75,
		nSources:       6,
		readFraction:   0.2,
		iterations:     15000,
	},
	{
		name:           "large web app",
		width:          1000,
		totalLayers:    12,
		staticFraction: 0.95,
		nSources:       4,
		readFraction:   1,
		iterations:     7000,
	},
	{
		name:           "wide dense",
		width:          1000,
		totalLayers:    5,
		staticFraction: 1,
		nSources:       25,
		readFraction:   1,
		iterations:     3000,
	},
	{
		name:           "deep",
		width:          5,
		totalLayers:    500,
		staticFraction: 1,
		nSources:       3,
		readFraction:   1,
		iterations:     500,
	},
	{
		name:           "very dynamic",
		width:          100,
		totalLayers:    15,
		staticFraction: 0.5,
		nSources:       6,
		readFraction:   1,
		iterations:     2000,
	},
}

type results struct {
	sum         int
	fingerprint uint64
	count       int64
	duration    time.Duration
}

func run(ctx context.Context, cmd *cli.Command, logger *slog.Logger) error {
	repeats := int(cmd.Int(repeatsKey))
	if repeats < 1 {
		return fmt.Errorf("repeats must be at least 1, got %d", repeats)
	}
	only := cmd.String(onlyKey)

	logger.Info("starting graph benchmark, please wait")
	defer logger.Info("finished graph benchmark")

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"size", "nSources", "read%", "static%",
		"nTimes", "test", "time", "recomputes",
		"updateRate", "fingerprint", "title",
	})

	for _, cfg := range perfTestCfgs {
		if only != "" && !strings.Contains(cfg.name, only) {
			continue
		}
		best, err := runConfig(ctx, cfg, repeats, logger)
		if err != nil {
			return err
		}

		updateRate := float64(best.count) / (float64(best.duration) / float64(time.Millisecond))
		table.Append([]string{
			fmt.Sprintf("%dx%d", cfg.width, cfg.totalLayers),
			fmt.Sprint(cfg.nSources),
			fmt.Sprint(cfg.readFraction),
			fmt.Sprint(cfg.staticFraction),
			humanize.Comma(cfg.iterations),
			cfg.name,
			fmt.Sprint(best.duration),
			humanize.Comma(best.count),
			humanize.Comma(int64(updateRate)),
			fmt.Sprintf("%016x", best.fingerprint),
			cfg.title(),
		})
	}
	table.Render()
	return nil
}

// runConfig builds the graph once, warms it up and keeps the fastest of
// repeats runs. Every run after the warmup starts from the same source
// values, so all of them must read identical leaves.
func runConfig(ctx context.Context, cfg graphTestConfig, repeats int, logger *slog.Logger) (*results, error) {
	logger = logger.With("config", cfg.name)
	logger.Info("running config")

	counter := new(int64)
	g := makeGraph(cfg, counter)
	g.run(cfg.iterations, cfg.readFraction)

	best := &results{duration: time.Hour}
	var want uint64
	for i := 0; i < repeats; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		*counter = 0
		start := time.Now()
		sum, fp := g.run(cfg.iterations, cfg.readFraction)
		duration := time.Since(start)
		logger.Debug("run done", "repeat", i+1, "of", repeats, "sum", sum, "count", *counter, "took", duration)

		if i == 0 {
			want = fp
		} else if fp != want {
			return nil, fmt.Errorf("%s: run %d read fingerprint %016x, first run read %016x", cfg.name, i+1, fp, want)
		}
		if duration < best.duration {
			best = &results{sum: sum, fingerprint: fp, count: *counter, duration: duration}
		}
	}
	return best, nil
}

func appendInt(b []byte, v int) []byte {
	return binary.LittleEndian.AppendUint64(b, uint64(v))
}
