package sim

// PickupSystem collects coins and power-ups near the player's top-left
// corner. Proximity is tested per axis, not as a box overlap.
type PickupSystem struct{}

func NewPickupSystem() *PickupSystem { return &PickupSystem{} }

func (ps *PickupSystem) Update(s *Session) {
	if s == nil {
		return
	}
	t := s.tuning
	p := &s.Player

	for i := range s.Coins {
		coin := &s.Coins[i]
		if coin.Collected || !Near(p.Position, coin.Position, t.PickupRadius) {
			continue
		}
		coin.Collected = true
		s.Score += t.CoinReward
		s.emit(EventCoinCollected, i)
	}

	for i := range s.PowerUps {
		pu := &s.PowerUps[i]
		if pu.Collected || !Near(p.Position, pu.Position, t.PickupRadius) {
			continue
		}
		pu.Collected = true
		p.Invincible = true
		p.InvincibleTicks = t.InvincibilityTicks()
		s.emit(EventPowerUpCollected, i)
	}
}
