// Command particle-life opens a window on a live particle-life simulation.
// Every option can be given as a flag or a PLIFE_* environment variable, see
// -help.
package main

import (
	"errors"
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

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

	engine := life.NewEngine(life.WithWorkers(cfg.Workers), life.WithLogger(log))
	if err := engine.Reset(cfg.Params); err != nil {
		log.Fatalf("%v", err)
	}
	log.Infof("%d workers", engine.Workers())

	game := NewGame(engine, log, cfg.Width, cfg.Height)

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("Particle Life")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("%v", err)
	}
}
