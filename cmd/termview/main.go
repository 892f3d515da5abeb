// Command termview plays a level in the terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/sim"
)

// Terminals report key presses but not releases, so a direction is held
// until its auto-repeat stops arriving.
const holdWindow = 180 * time.Millisecond

type view struct {
	screen  tcell.Screen
	session *sim.Session
	loop    *sim.Loop
	sound   *sound

	held      sim.Command
	heldUntil time.Time
	jump      bool
	reset     bool
}

func (v *view) handleInput(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			v.hold(sim.CommandLeft, now)
		case tcell.KeyRight:
			v.hold(sim.CommandRight, now)
		case tcell.KeyUp:
			v.jump = true
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'a', 'h':
				v.hold(sim.CommandLeft, now)
			case 'd', 'l':
				v.hold(sim.CommandRight, now)
			case ' ', 'w', 'k':
				v.jump = true
			case 'r':
				v.reset = true
			case 'q':
				return false
			}
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *view) hold(cmd sim.Command, now time.Time) {
	v.held = cmd
	v.heldUntil = now.Add(holdWindow)
}

// step feeds the frame's commands to the session and advances the loop.
func (v *view) step(now time.Time, elapsed time.Duration) {
	if v.held != sim.CommandStop && now.After(v.heldUntil) {
		v.held = sim.CommandStop
	}
	v.session.Apply(v.held)
	if v.jump {
		v.session.Apply(sim.CommandJump)
		v.jump = false
	}
	if v.reset {
		v.session.Apply(sim.CommandReset)
		v.held = sim.CommandStop
		v.reset = false
	}
	v.loop.Advance(elapsed)
}

func (v *view) onTick(snap sim.Snapshot, events []sim.Event) {
	for _, ev := range events {
		v.sound.event(ev.Kind)
	}
}

func (v *view) draw() {
	cols, rows := v.screen.Size()
	if cols <= 0 || rows <= 0 {
		return
	}
	rasterize(v.session.Snapshot(), v.session.Level(), cols, rows).blit(v.screen)
	v.screen.Show()
}

func (v *view) run() {
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !v.handleInput(ev, time.Now()) {
				return
			}
		case now := <-ticker.C:
			v.step(now, now.Sub(last))
			last = now
			v.draw()
		}
	}
}

func main() {
	levelName := flag.String("level", "", "level name in levels/ (basename, .yaml optional)")
	mute := flag.Bool("mute", false, "disable sound effects")
	logPath := flag.String("log", "", "write logs to this file instead of discarding them")
	flag.Parse()

	// The terminal belongs to tcell while running.
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	name := *levelName
	if name == "" {
		name = levels.DefaultLevel
	}
	lvl, err := levels.LoadLevel(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	session, err := sim.NewSession(lvl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	v := &view{
		screen:  screen,
		session: session,
		loop:    sim.NewLoop(session),
		sound:   newSound(!*mute),
		held:    sim.CommandStop,
	}
	v.loop.OnTick = v.onTick
	defer func() {
		v.sound.close()
		screen.Fini()
		snap := session.Snapshot()
		fmt.Printf("score %d, coins %d/%d, tick %d\n", snap.Score, snap.CollectedCoins(), len(snap.Coins), snap.Tick)
	}()

	v.run()
}
