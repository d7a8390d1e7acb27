package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/olivierh59500/particle-life-engine/internal/life"
	"github.com/olivierh59500/particle-life-engine/internal/logging"
)

func newEngine(t *testing.T) *life.Engine {
	t.Helper()
	p := life.DefaultParams()
	p.ParticleCount = 200
	p.Seed = 3
	e := life.NewEngine(life.WithWorkers(2))
	if err := e.Reset(p); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	return e
}

func TestRunReports(t *testing.T) {
	var buf bytes.Buffer
	e := newEngine(t)

	res, err := run(context.Background(), e, 25, 10, logging.New(&buf, logging.LevelInfo))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.Ticks != 25 || e.Snapshot().Tick() != 25 {
		t.Errorf("ran %d ticks, engine at %d, want 25", res.Ticks, e.Snapshot().Tick())
	}
	if n := strings.Count(buf.String(), "ms/tick"); n != 2 {
		t.Errorf("got %d progress reports, want 2:\n%s", n, buf.String())
	}
	if res.Worst > res.Elapsed {
		t.Errorf("worst tick %v longer than total %v", res.Worst, res.Elapsed)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := run(ctx, newEngine(t), 100, 0, logging.New(&bytes.Buffer{}, logging.LevelInfo))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if res.Ticks != 0 {
		t.Errorf("ran %d ticks after cancel", res.Ticks)
	}
}

func TestRunWithoutReset(t *testing.T) {
	_, err := run(context.Background(), life.NewEngine(), 1, 0, logging.New(&bytes.Buffer{}, logging.LevelInfo))
	if !errors.Is(err, life.ErrNotReset) {
		t.Errorf("expected ErrNotReset, got %v", err)
	}
}

func TestResultRates(t *testing.T) {
	if (result{}).TPS() != 0 || (result{}).MSPT() != 0 {
		t.Error("empty result should report zero rates")
	}
}
