// Command particle-bench steps a simulation without a window and reports
// throughput. It takes the same options as particle-life.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/olivierh59500/particle-life-engine/internal/config"
	"github.com/olivierh59500/particle-life-engine/internal/life"
	"github.com/olivierh59500/particle-life-engine/internal/logging"
)

func main() {
	cfg, err := config.Load(os.Args[0], os.Args[1:], os.Getenv, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	log := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatalf("configuration: %v", err)
	}

	// Signal handling
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine := life.NewEngine(life.WithWorkers(cfg.Workers), life.WithLogger(log))
	if err := engine.Reset(cfg.Params); err != nil {
		log.Fatalf("%v", err)
	}

	res, err := run(ctx, engine, cfg.Ticks, cfg.ReportEvery, log)
	if err != nil {
		log.Errorf("stopped: %v", err)
	}

	p := engine.Params()
	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Particles:   %d (%d types, boundary %s, seed %d)\n", p.ParticleCount, p.TypeCount, p.Boundary, p.Seed)
	fmt.Printf("Workers:     %d\n", engine.Workers())
	fmt.Printf("Ticks:       %d in %v\n", res.Ticks, res.Elapsed.Round(time.Millisecond))
	fmt.Printf("Avg TPS:     %.1f\n", res.TPS())
	fmt.Printf("Avg MSPT:    %.3f\n", res.MSPT())
	fmt.Printf("Worst MSPT:  %.3f\n", float64(res.Worst.Microseconds())/1000)
	fmt.Printf("Mean speed:  %.3f\n", engine.Stats().MeanSpeed)

	if err != nil {
		os.Exit(1)
	}
}

// result accumulates tick timings
type result struct {
	Ticks   int
	Elapsed time.Duration
	Worst   time.Duration
}

func (r result) TPS() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Ticks) / r.Elapsed.Seconds()
}

func (r result) MSPT() float64 {
	if r.Ticks == 0 {
		return 0
	}
	return r.Elapsed.Seconds() * 1000 / float64(r.Ticks)
}

// run ticks the engine up to ticks times, logging progress every reportEvery
// ticks, until ctx is cancelled or a tick fails
func run(ctx context.Context, engine *life.Engine, ticks, reportEvery int, log *logging.Logger) (result, error) {
	var res result
	var window time.Duration
	for res.Ticks < ticks {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := engine.Tick(); err != nil {
			return res, err
		}
		d := engine.TickDuration()
		res.Ticks++
		res.Elapsed += d
		res.Worst = max(res.Worst, d)
		window += d

		if reportEvery > 0 && res.Ticks%reportEvery == 0 {
			s := engine.Stats()
			log.Infof("tick %d: %.3f ms/tick, %d buckets, mean speed %.3f",
				s.Tick, window.Seconds()*1000/float64(reportEvery), s.Buckets, s.MeanSpeed)
			window = 0
		}
	}
	return res, nil
}
