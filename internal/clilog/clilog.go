// Package clilog builds the logger shared by the pulse command line tools.
package clilog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
	"github.com/urfave/cli/v3"
)

const (
	debugKey   = "debug"
	logFileKey = "log-file"
)

// Flags are appended to every command that logs through New.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  debugKey,
			Usage: "Log at debug level, including every flush pass",
		},
		&cli.StringFlag{
			Name:  logFileKey,
			Usage: "Also write JSON log records to this file",
		},
	}
}

// New fans records out to a text handler on w and, when --log-file is set,
// a JSON handler on that file. The returned close func releases the file.
func New(cmd *cli.Command, w io.Writer) (*slog.Logger, func() error, error) {
	level := new(slog.LevelVar)
	if cmd.Bool(debugKey) {
		level.Set(slog.LevelDebug)
	}
	opts := &slog.HandlerOptions{Level: level}

	handlers := []slog.Handler{slog.NewTextHandler(w, opts)}
	closer := func() error { return nil }

	if path := cmd.String(logFileKey); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, opts))
		closer = f.Close
	}

	logger := slog.New(slogmulti.Fanout(handlers...)).With("cmd", cmd.Name)
	return logger, closer, nil
}

// Run wraps a command action so it receives a configured logger.
func Run(w io.Writer, action func(ctx context.Context, cmd *cli.Command, logger *slog.Logger) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		logger, closer, err := New(cmd, w)
		if err != nil {
			return err
		}
		defer closer()
		return action(ctx, cmd, logger)
	}
}
