package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/navgrid/config"
	"github.com/milk9111/navgrid/logging"
	"github.com/milk9111/navgrid/prefabs"
	"github.com/milk9111/navgrid/sim"
)

func main() {
	configFile := flag.String("config", "", "config file (YAML)")
	sceneName := flag.String("scene", "", "scene name in prefabs/scenes or a path, overrides config")
	watch := flag.Bool("watch", false, "reload scenes and scripts when they change on disk")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	if *sceneName != "" {
		cfg.Scene = *sceneName
	}
	cfg.Watch = cfg.Watch || *watch

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	spec, err := prefabs.LoadScene(cfg.Scene)
	if err != nil {
		log.Fatal(err)
	}
	s, err := sim.New(cfg, spec, logger)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("navgrid - " + spec.Name)
	ebiten.SetTPS(int(cfg.TickRate))

	game, err := NewGame(s, cfg, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
