package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/overworld/logging"
	"github.com/milk9111/overworld/prefabs"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to a config.yaml (defaults to the embedded one)")
	logLevel := flag.String("log-level", "", "override the configured log level (debug, info, warn, error)")
	debug := flag.Bool("debug", false, "draw collision boxes and interaction zones")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	cfg, err := prefabs.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *debug {
		cfg.Debug.Boxes, cfg.Debug.Zones = true, true
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.TickRate)

	game, err := NewGame(cfg, log)
	if err != nil {
		log.Fatal("start game", zap.Error(err))
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		log.Error("game exited", zap.Error(err))
		os.Exit(1)
	}
}
