package sim

// System is one stage of the tick pipeline.
type System interface {
	Update(s *Session)
}

// Scheduler runs systems in insertion order.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{systems: copied}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(sess *Session) {
	for _, system := range s.systems {
		system.Update(sess)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}

// DefaultScheduler returns the pipeline in the order hazards depend on:
// the player moves and is checked before enemies move.
func DefaultScheduler() *Scheduler {
	return NewScheduler(
		NewInvincibilitySystem(),
		NewPhysicsSystem(),
		NewPickupSystem(),
		NewHazardSystem(),
		NewGoalSystem(),
		NewClampSystem(),
		NewPatrolSystem(),
	)
}
