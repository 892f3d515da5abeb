package sim

// Player is the single controllable actor of a session.
type Player struct {
	Position    Vector2
	Velocity    Vector2
	Grounded    bool
	Walking     bool
	FacingRight bool
	Invincible  bool
	// InvincibleTicks is the number of ticks left before Invincible clears.
	InvincibleTicks int

	intent   float64
	airborne int
}

// Bounds returns the player's collision box at its current position.
func (p Player) Bounds(t Tuning) Rect {
	return Rect{X: p.Position.X, Y: p.Position.Y, Width: t.PlayerWidth, Height: t.PlayerHeight}
}

// Enemy patrols horizontally between 0 and the level's enemy bound.
type Enemy struct {
	Rect      Rect `yaml:"rect"`
	Direction int  `yaml:"direction"`
}

// Pickup is a coin or power-up. Collected never reverts outside a reset.
type Pickup struct {
	Position  Vector2 `yaml:"position"`
	Collected bool    `yaml:"collected"`
}

func newEnemies(spawns []EnemySpawn) []Enemy {
	out := make([]Enemy, len(spawns))
	for i, s := range spawns {
		out[i] = Enemy{Rect: s.Rect, Direction: s.Direction}
	}
	return out
}

func newPickups(positions []Vector2) []Pickup {
	out := make([]Pickup, len(positions))
	for i, p := range positions {
		out[i] = Pickup{Position: p}
	}
	return out
}
