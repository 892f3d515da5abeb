package sim

// InvincibilitySystem counts down the power-up window and clears it on
// expiry, before hazards are checked for the tick.
type InvincibilitySystem struct{}

func NewInvincibilitySystem() *InvincibilitySystem { return &InvincibilitySystem{} }

func (is *InvincibilitySystem) Update(s *Session) {
	if s == nil {
		return
	}
	p := &s.Player
	if !p.Invincible {
		return
	}
	if p.InvincibleTicks > 0 {
		p.InvincibleTicks--
	}
	if p.InvincibleTicks == 0 {
		p.Invincible = false
		s.emit(EventInvincibilityExpired, -1)
	}
}
