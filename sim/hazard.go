package sim

// HazardSystem ends the game when the player touches an enemy while not
// invincible. There are no lives; the first contact wins.
type HazardSystem struct{}

func NewHazardSystem() *HazardSystem { return &HazardSystem{} }

func (hs *HazardSystem) Update(s *Session) {
	if s == nil || s.Player.Invincible || s.Terminal() {
		return
	}
	box := s.Player.Bounds(s.tuning)
	for i, enemy := range s.Enemies {
		if box.Overlaps(enemy.Rect) {
			s.endGame(i)
			return
		}
	}
}
