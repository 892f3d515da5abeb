package sim

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidLevel = errors.New("sim: invalid level")

// Tuning holds the physics and gameplay constants of a level.
type Tuning struct {
	TickRate             int
	Gravity              float64
	JumpForce            float64
	MoveSpeed            float64
	AirControl           float64
	TerminalFallSpeed    float64
	PlayerWidth          float64
	PlayerHeight         float64
	PickupRadius         float64
	CoinReward           int
	InvincibilitySeconds float64
	EnemySpeed           float64
	GroundGraceTicks     int
}

// DefaultTuning returns the tuned gameplay constants the shipped level uses.
func DefaultTuning() Tuning {
	return Tuning{
		TickRate:             60,
		Gravity:              0.6,
		JumpForce:            12,
		MoveSpeed:            5,
		AirControl:           0.7,
		TerminalFallSpeed:    10,
		PlayerWidth:          60,
		PlayerHeight:         80,
		PickupRadius:         40,
		CoinReward:           10,
		InvincibilitySeconds: 5,
		EnemySpeed:           1,
		GroundGraceTicks:     -1,
	}
}

// InvincibilityTicks converts the invincibility duration to whole ticks.
func (t Tuning) InvincibilityTicks() int {
	return int(math.Round(t.InvincibilitySeconds * float64(t.TickRate)))
}

type EnemySpawn struct {
	Rect      Rect
	Direction int
}

// Level is the static layout a session is built from. Platforms are shared
// read-only; every other table is copied into the session on load and reset.
type Level struct {
	Name       string
	Width      float64
	EnemyBound float64
	MaxFallY   float64
	GoalX      float64
	Spawn      Vector2
	Platforms  []Rect
	Enemies    []EnemySpawn
	Coins      []Vector2
	PowerUps   []Vector2
	Tuning     Tuning
}

// MaxTickRate bounds the tick rate so a tick always lasts a whole number of
// nanoseconds.
const MaxTickRate = 1000

// Validate reports the first structural problem with the level. Every
// coordinate and tuning value must be finite; GoalX may be +Inf for a level
// without a goal.
func (l Level) Validate() error {
	if !finiteF(l.Width, l.EnemyBound, l.MaxFallY) || l.Width <= 0 || l.EnemyBound <= 0 || l.MaxFallY <= 0 {
		return fmt.Errorf("%w: bounds must be positive and finite (width=%v enemy_bound=%v max_fall_y=%v)", ErrInvalidLevel, l.Width, l.EnemyBound, l.MaxFallY)
	}
	if math.IsNaN(l.GoalX) || math.IsInf(l.GoalX, -1) {
		return fmt.Errorf("%w: goal x %v", ErrInvalidLevel, l.GoalX)
	}
	if !finite(l.Spawn) {
		return fmt.Errorf("%w: spawn is not finite", ErrInvalidLevel)
	}
	for i, p := range l.Platforms {
		if !validRect(p) {
			return fmt.Errorf("%w: platform %d needs a finite positive size, got %+v", ErrInvalidLevel, i, p)
		}
	}
	for i, e := range l.Enemies {
		if !validRect(e.Rect) {
			return fmt.Errorf("%w: enemy %d needs a finite positive size, got %+v", ErrInvalidLevel, i, e.Rect)
		}
		if e.Direction != -1 && e.Direction != 1 {
			return fmt.Errorf("%w: enemy %d direction %d, want -1 or 1", ErrInvalidLevel, i, e.Direction)
		}
	}
	for i, c := range l.Coins {
		if !finite(c) {
			return fmt.Errorf("%w: coin %d is not finite", ErrInvalidLevel, i)
		}
	}
	for i, pu := range l.PowerUps {
		if !finite(pu) {
			return fmt.Errorf("%w: power-up %d is not finite", ErrInvalidLevel, i)
		}
	}

	t := l.Tuning
	switch {
	case t.TickRate <= 0 || t.TickRate > MaxTickRate:
		return fmt.Errorf("%w: tick rate %d, want 1..%d", ErrInvalidLevel, t.TickRate, MaxTickRate)
	case !finiteF(t.Gravity, t.JumpForce, t.MoveSpeed, t.AirControl, t.TerminalFallSpeed,
		t.PlayerWidth, t.PlayerHeight, t.PickupRadius, t.InvincibilitySeconds, t.EnemySpeed):
		return fmt.Errorf("%w: tuning has a non-finite value %+v", ErrInvalidLevel, t)
	case t.PlayerWidth <= 0 || t.PlayerHeight <= 0:
		return fmt.Errorf("%w: player size %vx%v", ErrInvalidLevel, t.PlayerWidth, t.PlayerHeight)
	case t.AirControl < 0 || t.AirControl >= 1:
		return fmt.Errorf("%w: air control %v, want [0, 1)", ErrInvalidLevel, t.AirControl)
	case t.TerminalFallSpeed <= 0:
		return fmt.Errorf("%w: terminal fall speed %v", ErrInvalidLevel, t.TerminalFallSpeed)
	case t.PickupRadius <= 0:
		return fmt.Errorf("%w: pickup radius %v", ErrInvalidLevel, t.PickupRadius)
	case t.CoinReward < 0:
		return fmt.Errorf("%w: coin reward %d", ErrInvalidLevel, t.CoinReward)
	case t.InvincibilitySeconds < 0:
		return fmt.Errorf("%w: invincibility %vs", ErrInvalidLevel, t.InvincibilitySeconds)
	}
	return nil
}

func validRect(r Rect) bool {
	return finiteF(r.X, r.Y, r.Width, r.Height) && r.Width > 0 && r.Height > 0
}
