package sim

import "math"

// PhysicsSystem integrates the player and resolves platform landings. It
// leaves the position unclamped so later checks see where the player
// actually moved this tick.
type PhysicsSystem struct{}

func NewPhysicsSystem() *PhysicsSystem { return &PhysicsSystem{} }

func (ps *PhysicsSystem) Update(s *Session) {
	if s == nil {
		return
	}
	t := s.tuning
	p := &s.Player

	next := p.Position.Add(Vector2{X: p.intent, Y: p.Velocity.Y})
	mustFinite("player position", next)

	body := Rect{X: next.X, Y: next.Y, Width: t.PlayerWidth, Height: t.PlayerHeight}
	landed := false
	for _, platform := range s.level.Platforms {
		if body.LandsOn(platform) {
			next.Y = platform.Y - t.PlayerHeight
			landed = true
			break
		}
	}

	p.Position = next
	p.Velocity.X = p.intent

	if landed {
		p.Velocity.Y = 0
		p.airborne = 0
		if !p.Grounded {
			p.Grounded = true
			s.emit(EventLanded, -1)
		}
		return
	}

	p.Velocity.Y = math.Min(p.Velocity.Y+t.Gravity, t.TerminalFallSpeed)
	mustFinite("player velocity", p.Velocity)

	p.airborne++
	if t.GroundGraceTicks >= 0 && p.airborne > t.GroundGraceTicks {
		p.Grounded = false
	}
}

// ClampSystem keeps the player inside the level's horizontal bounds and
// above the world floor.
type ClampSystem struct{}

func NewClampSystem() *ClampSystem { return &ClampSystem{} }

func (cs *ClampSystem) Update(s *Session) {
	if s == nil {
		return
	}
	p := &s.Player
	p.Position.X = clamp(p.Position.X, 0, s.level.Width)
	p.Position.Y = clamp(p.Position.Y, 0, s.level.MaxFallY)
}
