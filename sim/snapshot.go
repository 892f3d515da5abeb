package sim

// PlayerState is the published view of the player.
type PlayerState struct {
	Position        Vector2 `yaml:"position"`
	Velocity        Vector2 `yaml:"velocity"`
	Grounded        bool    `yaml:"grounded"`
	Walking         bool    `yaml:"walking"`
	FacingRight     bool    `yaml:"facing_right"`
	Invincible      bool    `yaml:"invincible"`
	InvincibleTicks int     `yaml:"invincible_ticks"`
}

// Snapshot is a detached copy of everything renderers and UI consume.
type Snapshot struct {
	Tick          uint64      `yaml:"tick"`
	Player        PlayerState `yaml:"player"`
	Enemies       []Enemy     `yaml:"enemies"`
	Coins         []Pickup    `yaml:"coins"`
	PowerUps      []Pickup    `yaml:"power_ups"`
	Score         int         `yaml:"score"`
	GameOver      bool        `yaml:"game_over"`
	LevelComplete bool        `yaml:"level_complete"`
}

// Terminal reports whether the snapshot was taken from a frozen session.
func (s Snapshot) Terminal() bool {
	return s.GameOver || s.LevelComplete
}

// CollectedCoins counts the coins picked up so far.
func (s Snapshot) CollectedCoins() int {
	n := 0
	for _, c := range s.Coins {
		if c.Collected {
			n++
		}
	}
	return n
}

// Snapshot copies the current session state.
func (s *Session) Snapshot() Snapshot {
	p := s.Player
	return Snapshot{
		Tick: s.Ticks,
		Player: PlayerState{
			Position:        p.Position,
			Velocity:        p.Velocity,
			Grounded:        p.Grounded,
			Walking:         p.Walking,
			FacingRight:     p.FacingRight,
			Invincible:      p.Invincible,
			InvincibleTicks: p.InvincibleTicks,
		},
		Enemies:       append([]Enemy(nil), s.Enemies...),
		Coins:         append([]Pickup(nil), s.Coins...),
		PowerUps:      append([]Pickup(nil), s.PowerUps...),
		Score:         s.Score,
		GameOver:      s.GameOver,
		LevelComplete: s.LevelComplete,
	}
}
