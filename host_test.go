package main

import (
	"reflect"
	"testing"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/replay"
	"github.com/milk9111/platformer/sim"
)

func TestCommandsFor(t *testing.T) {
	cases := []struct {
		name  string
		moveX float64
		jump  bool
		reset bool
		want  []sim.Command
	}{
		{"idle", 0, false, false, []sim.Command{sim.CommandStop}},
		{"left_jump", -1, true, false, []sim.Command{sim.CommandLeft, sim.CommandJump}},
		{"stick_right", 0.4, false, false, []sim.Command{sim.CommandRight}},
		{"reset", 0, false, true, []sim.Command{sim.CommandStop, sim.CommandReset}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := commandsFor(c.moveX, c.jump, c.reset); !reflect.DeepEqual(got, c.want) {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestCameraFollow(t *testing.T) {
	const world = 1600.0

	c := &Camera{}
	c.Snap(50, world)
	if c.X != 0 {
		t.Fatalf("expected camera pinned to left edge, got %v", c.X)
	}

	c.Snap(world, world)
	if want := world - common.BaseWidth; c.X != want {
		t.Fatalf("expected camera pinned to right edge %v, got %v", want, c.X)
	}

	c = &Camera{}
	target := 900.0
	goal := target - common.BaseWidth/2
	prev := c.X
	for i := 0; i < 200; i++ {
		c.Follow(target, world)
		if c.X < prev || c.X > goal {
			t.Fatalf("step %d: camera %v not easing toward %v", i, c.X, goal)
		}
		prev = c.X
	}
	if goal-c.X > 0.01 {
		t.Fatalf("expected camera to settle near %v, got %v", goal, c.X)
	}
}

func TestParallaxWraps(t *testing.T) {
	c := &Camera{X: 1234}
	for _, factor := range []float64{0, 0.2, 0.5, 1} {
		off := c.Parallax(factor, 300)
		if off > 0 || off <= -300 {
			t.Fatalf("factor %v: offset %v outside (-300, 0]", factor, off)
		}
	}
	if got := c.Parallax(0.5, 0); got != 0 {
		t.Fatalf("expected zero offset for empty period, got %v", got)
	}
}

func TestResultTitle(t *testing.T) {
	if got := resultTitle(sim.Snapshot{LevelComplete: true}); got != "Level Complete!" {
		t.Fatalf("unexpected title %q", got)
	}
	if got := resultTitle(sim.Snapshot{GameOver: true}); got != "Game Over" {
		t.Fatalf("unexpected title %q", got)
	}
	if got := resultTitle(sim.Snapshot{}); got != "" {
		t.Fatalf("expected no title for a running session, got %q", got)
	}
}

func TestPlayAgainStopsPlayback(t *testing.T) {
	lvl, err := levels.Default()
	if err != nil {
		t.Fatalf("levels.Default: %v", err)
	}
	s, err := sim.NewSession(lvl)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	rec := replay.Log{Level: lvl.Name, Ticks: 10, Entries: []replay.Entry{{Tick: 0, Command: sim.CommandRight, Repeat: 9}}}
	g := &Game{session: s, input: NewInput(), playback: replay.NewPlayback(rec)}

	for i := 0; i < 3; i++ {
		cmds, err := g.commands()
		if err != nil {
			t.Fatalf("commands: %v", err)
		}
		if want := []sim.Command{sim.CommandRight}; !reflect.DeepEqual(cmds, want) {
			t.Fatalf("frame %d: expected %v, got %v", i, want, cmds)
		}
		s.Tick()
	}

	g.requestPlayAgain()
	cmds, err := g.commands()
	if err != nil {
		t.Fatalf("commands: %v", err)
	}
	if g.playback != nil {
		t.Fatalf("expected playback stopped after Play Again")
	}
	if want := []sim.Command{sim.CommandStop, sim.CommandReset}; !reflect.DeepEqual(cmds, want) {
		t.Fatalf("expected input commands then reset %v, got %v", want, cmds)
	}
	if s.Player.Position != lvl.Spawn {
		t.Fatalf("expected player back at spawn, got %v", s.Player.Position)
	}
}
