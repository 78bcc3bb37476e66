package main

import (
	"context"
	"fmt"
	"go/format"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/delaneyj/pulse/cmd/codegen/templates"
	"github.com/delaneyj/pulse/internal/clilog"
	"github.com/urfave/cli/v3"
)

const (
	genericParamCountKey = "count"
	outputKey            = "out"
)

func main() {
	cmd := &cli.Command{
		Name:  "generate",
		Usage: "Generate fixed-arity Derive/Watch helpers for pulse",
		Flags: append([]cli.Flag{
			&cli.IntFlag{
				Name:  genericParamCountKey,
				Usage: "Number of generic parameters to generate",
				Value: 4,
			},
			&cli.StringFlag{
				Name:  outputKey,
				Usage: "File to write",
				Value: "pulse/derive_generated.go",
			},
		}, clilog.Flags()...),
		Action: clilog.Run(os.Stderr, generate),
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, cmd *cli.Command, logger *slog.Logger) error {
	start := time.Now()
	logger.Info("codegen started")
	defer func() {
		logger.Info("codegen finished", "took", time.Since(start))
	}()

	count := int(cmd.Int(genericParamCountKey))
	if count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", count)
	}
	out := cmd.String(outputKey)
	logger.Debug("generating", "arity", count, "out", out)

	contents, err := format.Source([]byte(templates.DeriveGen(count)))
	if err != nil {
		return fmt.Errorf("formatting generated code: %w", err)
	}
	return os.WriteFile(out, contents, 0644)
}
