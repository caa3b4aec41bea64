package main

import (
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg, err := LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	if cfg.BaseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("climbing")
	ebiten.SetTPS(cfg.TPS)

	game, err := NewGame(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	// Look input reads relative mouse motion.
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
