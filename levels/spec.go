package levels

import (
	"fmt"

	"github.com/milk9111/platformer/sim"
	"gopkg.in/yaml.v3"
)

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type RectSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type EnemySpec struct {
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Direction int     `yaml:"direction"`
}

// TuningSpec keys that are absent keep their sim.DefaultTuning value.
type TuningSpec struct {
	TickRate             int     `yaml:"tick_rate"`
	Gravity              float64 `yaml:"gravity"`
	JumpForce            float64 `yaml:"jump_force"`
	MoveSpeed            float64 `yaml:"move_speed"`
	AirControl           float64 `yaml:"air_control"`
	TerminalFallSpeed    float64 `yaml:"terminal_fall_speed"`
	PlayerWidth          float64 `yaml:"player_width"`
	PlayerHeight         float64 `yaml:"player_height"`
	PickupRadius         float64 `yaml:"pickup_radius"`
	CoinReward           int     `yaml:"coin_reward"`
	InvincibilitySeconds float64 `yaml:"invincibility_seconds"`
	EnemySpeed           float64 `yaml:"enemy_speed"`
	GroundGraceTicks     int     `yaml:"ground_grace_ticks"`
}

type LevelSpec struct {
	Name       string      `yaml:"name"`
	Width      float64     `yaml:"width"`
	EnemyBound float64     `yaml:"enemy_bound"`
	MaxFallY   float64     `yaml:"max_fall_y"`
	GoalX      float64     `yaml:"goal_x"`
	Spawn      PointSpec   `yaml:"spawn"`
	Platforms  []RectSpec  `yaml:"platforms"`
	Enemies    []EnemySpec `yaml:"enemies"`
	Coins      []PointSpec `yaml:"coins"`
	PowerUps   []PointSpec `yaml:"power_ups"`
	Tuning     TuningSpec  `yaml:"tuning"`
}

func tuningSpec(t sim.Tuning) TuningSpec {
	return TuningSpec(t)
}

// Parse decodes a level document. The result is not validated.
func Parse(data []byte) (LevelSpec, error) {
	spec := LevelSpec{Tuning: tuningSpec(sim.DefaultTuning())}
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return LevelSpec{}, err
	}
	return spec, nil
}

// ToLevel converts the spec into the simulation's level table.
func (s LevelSpec) ToLevel() sim.Level {
	lvl := sim.Level{
		Name:       s.Name,
		Width:      s.Width,
		EnemyBound: s.EnemyBound,
		MaxFallY:   s.MaxFallY,
		GoalX:      s.GoalX,
		Spawn:      s.Spawn.vector(),
		Tuning:     sim.Tuning(s.Tuning),
	}
	for _, p := range s.Platforms {
		lvl.Platforms = append(lvl.Platforms, p.rect())
	}
	for _, e := range s.Enemies {
		lvl.Enemies = append(lvl.Enemies, sim.EnemySpawn{
			Rect:      sim.Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height},
			Direction: e.Direction,
		})
	}
	for _, c := range s.Coins {
		lvl.Coins = append(lvl.Coins, c.vector())
	}
	for _, p := range s.PowerUps {
		lvl.PowerUps = append(lvl.PowerUps, p.vector())
	}
	return lvl
}

// FromLevel is the inverse of ToLevel.
func FromLevel(lvl sim.Level) LevelSpec {
	spec := LevelSpec{
		Name:       lvl.Name,
		Width:      lvl.Width,
		EnemyBound: lvl.EnemyBound,
		MaxFallY:   lvl.MaxFallY,
		GoalX:      lvl.GoalX,
		Spawn:      PointSpec{X: lvl.Spawn.X, Y: lvl.Spawn.Y},
		Tuning:     tuningSpec(lvl.Tuning),
	}
	for _, p := range lvl.Platforms {
		spec.Platforms = append(spec.Platforms, RectSpec(p))
	}
	for _, e := range lvl.Enemies {
		spec.Enemies = append(spec.Enemies, EnemySpec{
			X: e.Rect.X, Y: e.Rect.Y, Width: e.Rect.Width, Height: e.Rect.Height,
			Direction: e.Direction,
		})
	}
	for _, c := range lvl.Coins {
		spec.Coins = append(spec.Coins, PointSpec{X: c.X, Y: c.Y})
	}
	for _, p := range lvl.PowerUps {
		spec.PowerUps = append(spec.PowerUps, PointSpec{X: p.X, Y: p.Y})
	}
	return spec
}

func (p PointSpec) vector() sim.Vector2 { return sim.Vector2{X: p.X, Y: p.Y} }

func (r RectSpec) rect() sim.Rect { return sim.Rect(r) }

// LoadLevel reads, decodes and validates the named level.
func LoadLevel(name string) (sim.Level, error) {
	data, err := Load(name)
	if err != nil {
		return sim.Level{}, fmt.Errorf("levels: load %s: %w", name, err)
	}
	spec, err := Parse(data)
	if err != nil {
		return sim.Level{}, fmt.Errorf("levels: unmarshal %s: %w", name, err)
	}
	lvl := spec.ToLevel()
	if lvl.Name == "" {
		lvl.Name = trimExt(cleanLevelPath(name))
	}
	if err := lvl.Validate(); err != nil {
		return sim.Level{}, fmt.Errorf("levels: %s: %w", name, err)
	}
	return lvl, nil
}

// Default loads the shipped level.
func Default() (sim.Level, error) {
	return LoadLevel(DefaultLevel)
}
