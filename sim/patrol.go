package sim

// PatrolSystem walks every enemy back and forth across the level. Enemies
// ignore platforms and gravity.
type PatrolSystem struct{}

func NewPatrolSystem() *PatrolSystem { return &PatrolSystem{} }

func (ps *PatrolSystem) Update(s *Session) {
	if s == nil {
		return
	}
	speed := s.tuning.EnemySpeed
	bound := s.level.EnemyBound
	for i := range s.Enemies {
		e := &s.Enemies[i]
		e.Rect.X += float64(e.Direction) * speed
		if e.Rect.X <= 0 || e.Rect.X >= bound {
			e.Direction = -e.Direction
		}
	}
}
