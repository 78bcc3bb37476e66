package main

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPowersOfTen(t *testing.T) {
	assert.Equal(t, []int{1}, powersOfTen(1))
	assert.Equal(t, []int{1, 10, 100}, powersOfTen(500))
	assert.Empty(t, powersOfTen(0))
}

func TestBenchmarkPropagate(t *testing.T) {
	cfg := propagateConfig{
		widths:  []int{1, 10},
		heights: []int{1, 10},
		iters:   5,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	tbl, err := benchmarkPropagate(cfg)
	require.NoError(t, err)
	assert.Equal(t, 4, tbl.Length())
}
