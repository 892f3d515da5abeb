package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "draw collision boxes and physics readouts")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", "level name in levels/ (basename, .yaml optional)")
	script := flag.String("script", "", "drive the player with an autopilot script (e.g. runner)")
	record := flag.String("record", "", "write the input replay to this file on exit")
	replayPath := flag.String("replay", "", "play back a recorded replay file")
	watch := flag.Bool("watch", false, "reload the level when its file in levels/ changes")
	mute := flag.Bool("mute", false, "disable sound effects")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("platformer")

	game, err := NewGame(Options{
		Level:  *levelName,
		Script: *script,
		Record: *record,
		Replay: *replayPath,
		Watch:  *watch,
		Debug:  *debug,
		Mute:   *mute,
	})
	if err != nil {
		log.Fatal(err)
	}

	runErr := ebiten.RunGame(game)
	if err := game.Close(); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if runErr != nil && runErr != ebiten.Termination {
		log.Fatal(runErr)
	}
}
