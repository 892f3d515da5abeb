package sim

// GoalSystem completes the level once the player crosses the goal line.
type GoalSystem struct{}

func NewGoalSystem() *GoalSystem { return &GoalSystem{} }

func (gs *GoalSystem) Update(s *Session) {
	if s == nil || s.Terminal() {
		return
	}
	if s.Player.Position.X >= s.level.GoalX {
		s.completeLevel()
	}
}
