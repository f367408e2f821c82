package main

import (
	"errors"
	"flag"
	"io/fs"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/seasons/config"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the game configuration")
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", "level name in levels/ (basename; .json or .tmx)")
	seasonLength := flag.Float64("season-length", 0, "override the season length in seconds for every timer")
	materialsDir := flag.String("materials", "", "directory of material specs overriding the embedded ones")
	watch := flag.Bool("watch", false, "reload materials when files in the materials directory change")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = config.Default()
	} else if err != nil {
		log.Fatal(err)
	}
	if *levelName != "" {
		cfg.Level = *levelName
	}
	if *materialsDir != "" {
		cfg.Materials.Dir = *materialsDir
	}
	if *watch {
		cfg.Materials.Watch = true
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Display.ScreenWidth, cfg.Display.ScreenHeight)
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)

	game, err := NewGame(cfg, *seasonLength, *debug)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
