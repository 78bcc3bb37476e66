package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/pulse/internal/clilog"
	"github.com/delaneyj/pulse/pulse"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

const (
	itersKey   = "iters"
	profileKey = "cpuprofile"
	widthsKey  = "max-width"
	heightsKey = "max-height"
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Measure write propagation through W chains of H computeds, each ending in an effect",
		Flags: append([]cli.Flag{
			&cli.IntFlag{
				Name:  itersKey,
				Usage: "Writes measured per shape",
				Value: 100,
			},
			&cli.IntFlag{
				Name:  widthsKey,
				Usage: "Largest chain count, shapes grow by powers of ten",
				Value: 1_000,
			},
			&cli.IntFlag{
				Name:  heightsKey,
				Usage: "Largest chain length, shapes grow by powers of ten",
				Value: 1_000,
			},
			&cli.StringFlag{
				Name:  profileKey,
				Usage: "Write a CPU profile here",
				Value: "default.pgo",
			},
		}, clilog.Flags()...),
		Action: clilog.Run(os.Stderr, run),
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command, logger *slog.Logger) error {
	if path := cmd.String(profileKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("starting profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	cfg := propagateConfig{
		widths:  powersOfTen(int(cmd.Int(widthsKey))),
		heights: powersOfTen(int(cmd.Int(heightsKey))),
		iters:   int(cmd.Int(itersKey)),
		logger:  logger,
	}
	if cfg.iters < 1 {
		return fmt.Errorf("iters must be at least 1, got %d", cfg.iters)
	}

	logger.Info("warming up")
	if _, err := benchmarkPropagate(cfg); err != nil {
		return err
	}
	tbl, err := benchmarkPropagate(cfg)
	if err != nil {
		return err
	}
	tbl.Render()
	return nil
}

type propagateConfig struct {
	widths, heights []int
	iters           int
	logger          *slog.Logger
}

func powersOfTen(max int) []int {
	out := []int{}
	for n := 1; n <= max; n *= 10 {
		out = append(out, n)
	}
	return out
}

func addOne(v int) int {
	return v + 1
}

func benchmarkPropagate(cfg propagateConfig) (table.Writer, error) {
	tbl := table.NewWriter()
	tbl.SetTitle("pulse")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max", "effect runs"})

	for _, w := range cfg.widths {
		for _, h := range cfg.heights {
			tach := tachymeter.New(&tachymeter.Config{Size: cfg.iters})

			rs := pulse.CreateReactiveSystem(func(from pulse.Node, err error) {
				cfg.logger.Error("effect failed", "node", from.Name(), "err", err)
			}, pulse.WithLogger(cfg.logger))
			src := pulse.Signal(rs, 1)
			for i := 0; i < w; i++ {
				var last pulse.Readable[int] = src
				for j := 0; j < h; j++ {
					last = pulse.Derive1(rs, last, addOne)
				}
				if _, err := pulse.Watch1(rs, last, func(int) error { return nil }); err != nil {
					return nil, fmt.Errorf("propagate %d * %d: %w", w, h, err)
				}
			}

			before := rs.Stats().EffectRuns
			for i := 0; i < cfg.iters; i++ {
				start := time.Now()
				src.Update(addOne)
				tach.AddTime(time.Since(start))
			}
			runs := rs.Stats().EffectRuns - before

			calc := tach.Calc()
			tbl.AppendRow(table.Row{
				fmt.Sprintf("propagate: %d * %d", w, h),
				calc.Time.Avg,
				calc.Time.Min,
				calc.Time.P75,
				calc.Time.P99,
				calc.Time.Max,
				runs,
			})
			cfg.logger.Debug("shape done", "width", w, "height", h, "avg", calc.Time.Avg)
		}
	}
	return tbl, nil
}
