package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/modelviewer/prefabs"
)

func main() {
	debug := flag.Bool("debug", false, "show per-clip animation weights")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	watch := flag.Bool("watch", true, "reload prefabs/viewer.yaml when it changes on disk")
	flag.Parse()

	viewer, err := prefabs.LoadViewerSpec()
	if err != nil {
		log.Fatal(err)
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(viewer.Window.Width, viewer.Window.Height)
	ebiten.SetWindowTitle(viewer.Window.Title)
	ebiten.SetTPS(viewer.Window.TPS)

	game, err := NewGame(viewer, *debug, *watch)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
