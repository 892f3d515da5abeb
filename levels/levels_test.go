package levels

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/milk9111/platformer/sim"
)

func loadDefault(t *testing.T) sim.Level {
	t.Helper()
	lvl, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	return lvl
}

func newSession(t *testing.T, lvl sim.Level) *sim.Session {
	t.Helper()
	s, err := sim.NewSession(lvl)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func TestDefaultLevelTable(t *testing.T) {
	lvl := loadDefault(t)

	if lvl.Name != "level1" {
		t.Fatalf("expected name level1, got %q", lvl.Name)
	}
	if lvl.Width != 1540 || lvl.EnemyBound != 1560 || lvl.MaxFallY != 320 || lvl.GoalX != 1500 {
		t.Fatalf("unexpected bounds: width=%v enemy=%v fall=%v goal=%v", lvl.Width, lvl.EnemyBound, lvl.MaxFallY, lvl.GoalX)
	}
	if lvl.Spawn != (sim.Vector2{X: 50, Y: 270}) {
		t.Fatalf("unexpected spawn %v", lvl.Spawn)
	}

	wantPlatforms := []sim.Rect{
		{X: 0, Y: 350, Width: 300, Height: 50},
		{X: 350, Y: 250, Width: 200, Height: 50},
		{X: 600, Y: 300, Width: 150, Height: 50},
		{X: 800, Y: 200, Width: 250, Height: 50},
		{X: 1100, Y: 250, Width: 200, Height: 50},
		{X: 1350, Y: 300, Width: 200, Height: 50},
	}
	if !reflect.DeepEqual(lvl.Platforms, wantPlatforms) {
		t.Fatalf("platforms mismatch:\nwant %v\ngot  %v", wantPlatforms, lvl.Platforms)
	}

	wantEnemies := []sim.EnemySpawn{
		{Rect: sim.Rect{X: 400, Y: 230, Width: 40, Height: 40}, Direction: 1},
		{Rect: sim.Rect{X: 850, Y: 180, Width: 40, Height: 40}, Direction: -1},
		{Rect: sim.Rect{X: 1200, Y: 230, Width: 40, Height: 40}, Direction: 1},
	}
	if !reflect.DeepEqual(lvl.Enemies, wantEnemies) {
		t.Fatalf("enemies mismatch:\nwant %v\ngot  %v", wantEnemies, lvl.Enemies)
	}

	wantCoins := []sim.Vector2{{X: 200, Y: 300}, {X: 500, Y: 200}, {X: 750, Y: 250}, {X: 1000, Y: 150}, {X: 1300, Y: 200}}
	if !reflect.DeepEqual(lvl.Coins, wantCoins) {
		t.Fatalf("coins mismatch:\nwant %v\ngot  %v", wantCoins, lvl.Coins)
	}
	wantPowerUps := []sim.Vector2{{X: 600, Y: 250}, {X: 1100, Y: 200}}
	if !reflect.DeepEqual(lvl.PowerUps, wantPowerUps) {
		t.Fatalf("power-ups mismatch:\nwant %v\ngot  %v", wantPowerUps, lvl.PowerUps)
	}

	if lvl.Tuning != sim.DefaultTuning() {
		t.Fatalf("expected shipped tuning to match defaults, got %+v", lvl.Tuning)
	}
}

func TestSpecRoundTrip(t *testing.T) {
	lvl := loadDefault(t)
	if got := FromLevel(lvl).ToLevel(); !reflect.DeepEqual(got, lvl) {
		t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", lvl, got)
	}
}

func TestParseKeepsTuningDefaults(t *testing.T) {
	spec, err := Parse([]byte("width: 100\ntuning:\n  gravity: 1.5\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := sim.DefaultTuning()
	want.Gravity = 1.5
	if got := sim.Tuning(spec.Tuning); got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestLoadLevelErrors(t *testing.T) {
	dir := t.TempDir()
	old := DiskDir
	DiskDir = dir
	t.Cleanup(func() { DiskDir = old })

	write := func(name, body string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	write("broken.yaml", "platforms: [[")
	write("flat.yaml", "width: 100\nenemy_bound: 100\nmax_fall_y: 100\nplatforms:\n  - {x: 0, y: 0, width: 10, height: 0}\n")

	t.Run("missing", func(t *testing.T) {
		_, err := LoadLevel("nope.yaml")
		if err == nil || !strings.Contains(err.Error(), "levels: load nope.yaml") {
			t.Fatalf("expected load error, got %v", err)
		}
	})
	t.Run("bad_yaml", func(t *testing.T) {
		_, err := LoadLevel("broken.yaml")
		if err == nil || !strings.Contains(err.Error(), "levels: unmarshal broken.yaml") {
			t.Fatalf("expected unmarshal error, got %v", err)
		}
	})
	t.Run("non_finite", func(t *testing.T) {
		data, err := LevelsFS.ReadFile(DefaultLevel)
		if err != nil {
			t.Fatalf("read embedded: %v", err)
		}
		for _, edit := range [][2]string{
			{"gravity: 0.6", "gravity: .nan"},
			{"width: 1540", "width: .nan"},
			{"goal_x: 1500", "goal_x: .nan"},
		} {
			body := strings.Replace(string(data), edit[0], edit[1], 1)
			write("nan.yaml", body)
			if _, err := LoadLevel("nan"); !errors.Is(err, sim.ErrInvalidLevel) {
				t.Fatalf("%s: expected ErrInvalidLevel, got %v", edit[1], err)
			}
		}
	})
	t.Run("invalid", func(t *testing.T) {
		_, err := LoadLevel("flat")
		if !errors.Is(err, sim.ErrInvalidLevel) {
			t.Fatalf("expected ErrInvalidLevel, got %v", err)
		}
	})
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	old := DiskDir
	DiskDir = dir
	t.Cleanup(func() { DiskDir = old })

	data, err := LevelsFS.ReadFile(DefaultLevel)
	if err != nil {
		t.Fatalf("read embedded: %v", err)
	}
	edited := strings.Replace(string(data), "goal_x: 1500", "goal_x: 900", 1)
	if err := os.WriteFile(filepath.Join(dir, DefaultLevel), []byte(edited), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}

	lvl, err := LoadLevel("levels/level1")
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}
	if lvl.GoalX != 900 {
		t.Fatalf("expected disk override goal 900, got %v", lvl.GoalX)
	}
	if _, ok := ModTime(DefaultLevel); !ok {
		t.Fatalf("expected mod time for disk level")
	}
	if names := Names(); !reflect.DeepEqual(names, []string{DefaultLevel}) {
		t.Fatalf("expected embedded names [%s], got %v", DefaultLevel, names)
	}
}

func TestScenarioRestingOnSpawn(t *testing.T) {
	s := newSession(t, loadDefault(t))
	for i := 0; i < 3; i++ {
		snap := s.Tick()
		if snap.Player.Position != (sim.Vector2{X: 50, Y: 270}) {
			t.Fatalf("tick %d: expected player to stay at spawn, got %v", i+1, snap.Player.Position)
		}
		if !snap.Player.Grounded {
			t.Fatalf("tick %d: expected grounded", i+1)
		}
	}
}

func TestScenarioWalkRight(t *testing.T) {
	s := newSession(t, loadDefault(t))
	speed := s.Tuning().MoveSpeed
	s.SetIntent(sim.Right)

	prev := s.Player.Position.X
	for !s.Terminal() {
		snap := s.Tick()
		if got := snap.Player.Position.X; math.Abs(got-(prev+speed)) > 1e-9 {
			t.Fatalf("tick %d: expected x %v, got %v", snap.Tick, prev+speed, got)
		}
		prev = snap.Player.Position.X
		if snap.Tick > 1000 {
			t.Fatalf("walk never finished")
		}
	}
	if s.GameOver {
		t.Fatalf("expected the low route to avoid every enemy")
	}

	t.Run("clamped_without_goal", func(t *testing.T) {
		lvl := loadDefault(t)
		lvl.GoalX = math.Inf(1)
		s := newSession(t, lvl)
		s.SetIntent(sim.Right)
		for i := 0; i < 400; i++ {
			s.Tick()
		}
		if s.Player.Position.X != lvl.Width {
			t.Fatalf("expected clamp at %v, got %v", lvl.Width, s.Player.Position.X)
		}
	})
}

func TestScenarioLevelComplete(t *testing.T) {
	s := newSession(t, loadDefault(t))
	s.SetIntent(sim.Right)
	for i := 0; i < 1000 && !s.LevelComplete; i++ {
		s.Tick()
	}
	if !s.LevelComplete || s.GameOver {
		t.Fatalf("expected level complete, got complete=%v over=%v", s.LevelComplete, s.GameOver)
	}
	if s.Player.Position.X < s.Level().GoalX {
		t.Fatalf("expected x past goal, got %v", s.Player.Position.X)
	}

	frozen := s.Snapshot()
	for i := 0; i < 30; i++ {
		s.SetIntent(sim.Left)
		s.RequestJump()
		s.Tick()
	}
	if got := s.Snapshot(); !reflect.DeepEqual(frozen, got) {
		t.Fatalf("completed session changed:\nbefore %+v\nafter  %+v", frozen, got)
	}
}

func TestScenarioEnemyContact(t *testing.T) {
	s := newSession(t, loadDefault(t))
	s.Player.Position = sim.Vector2{X: 380, Y: 220}
	s.Player.Grounded = false

	snap := s.Tick()
	if !snap.GameOver {
		t.Fatalf("expected game over on contact tick %d", snap.Tick)
	}
	if snap.Tick != 1 {
		t.Fatalf("expected contact on tick 1, got %d", snap.Tick)
	}
}

func TestWatcherReportsLevelWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	target := filepath.Join(dir, "level2.yaml")
	if err := os.WriteFile(target, []byte("width: 1"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case name := <-w.Events:
		if name != target {
			t.Fatalf("expected event for %s, got %s", target, name)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for level event")
	}
}
