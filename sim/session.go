package sim

// Session owns all mutable simulation state for one run through a level.
// It is not safe for concurrent use; hosts serialize ticks and commands.
type Session struct {
	level     Level
	tuning    Tuning
	scheduler *Scheduler
	events    EventQueue
	published bool

	Player   Player
	Enemies  []Enemy
	Coins    []Pickup
	PowerUps []Pickup

	Score         int
	GameOver      bool
	LevelComplete bool
	// Ticks counts the non-frozen ticks since the last reset.
	Ticks uint64
}

// Option configures a session at construction.
type Option func(*Session)

// WithSystems appends systems after the default pipeline. They run last in
// every non-frozen tick and see the tick's final state.
func WithSystems(systems ...System) Option {
	return func(s *Session) {
		for _, sys := range systems {
			s.scheduler.Add(sys)
		}
	}
}

// NewSession validates level and places every entity at its load position.
func NewSession(level Level, opts ...Option) (*Session, error) {
	if err := level.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		level:     level,
		tuning:    level.Tuning,
		scheduler: DefaultScheduler(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.init()
	return s, nil
}

// Systems returns the tick pipeline in run order.
func (s *Session) Systems() []System { return s.scheduler.Systems() }

func (s *Session) init() {
	s.Player = Player{
		Position:    s.level.Spawn,
		Grounded:    true,
		FacingRight: true,
	}
	s.Enemies = newEnemies(s.level.Enemies)
	s.Coins = newPickups(s.level.Coins)
	s.PowerUps = newPickups(s.level.PowerUps)
	s.Score = 0
	s.GameOver = false
	s.LevelComplete = false
	s.Ticks = 0
}

// Reset reinitializes every entity and flag to level-load defaults.
func (s *Session) Reset() {
	s.events.flush()
	s.published = false
	s.init()
	s.emit(EventReset, -1)
}

// Level returns the level the session was built from.
func (s *Session) Level() Level { return s.level }

// Tuning returns the active gameplay constants.
func (s *Session) Tuning() Tuning { return s.tuning }

// Terminal reports whether the session is frozen by game over or level
// completion.
func (s *Session) Terminal() bool {
	return s.GameOver || s.LevelComplete
}

// Tick advances the simulation one fixed step and returns the published
// state. A terminal session is left untouched.
func (s *Session) Tick() Snapshot {
	s.beginBatch()
	defer func() { s.published = true }()
	if s.Terminal() {
		return s.Snapshot()
	}
	s.Ticks++
	s.scheduler.Update(s)
	return s.Snapshot()
}

// Events returns the events raised by the last tick and by any commands
// issued between it and the tick before.
func (s *Session) Events() []Event {
	return s.events.Items()
}

// beginBatch drops the events already published by the previous tick.
func (s *Session) beginBatch() {
	if s.published {
		s.events.flush()
		s.published = false
	}
}

func (s *Session) emit(kind EventKind, index int) {
	s.beginBatch()
	s.events.Push(Event{Kind: kind, Tick: s.Ticks, Index: index})
}

func (s *Session) endGame(enemy int) {
	if s.Terminal() {
		return
	}
	s.GameOver = true
	s.emit(EventGameOver, enemy)
}

func (s *Session) completeLevel() {
	if s.Terminal() {
		return
	}
	s.LevelComplete = true
	s.emit(EventLevelComplete, -1)
}
