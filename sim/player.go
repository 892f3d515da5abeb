package sim

import "fmt"

type Direction int

const (
	Left  Direction = -1
	Right Direction = 1
)

// SetIntent records horizontal movement for the coming ticks. The speed is
// fixed at the time of the call, reduced while airborne.
func (s *Session) SetIntent(dir Direction) {
	if s.Terminal() {
		return
	}
	if dir != Left && dir != Right {
		return
	}
	p := &s.Player
	speed := s.tuning.MoveSpeed
	if !p.Grounded {
		speed *= s.tuning.AirControl
	}
	p.FacingRight = dir == Right
	p.Walking = true
	p.intent = float64(dir) * speed
}

// ClearIntent stops horizontal movement.
func (s *Session) ClearIntent() {
	if s.Terminal() {
		return
	}
	s.Player.Walking = false
	s.Player.intent = 0
}

// RequestJump launches the player if grounded. There is no air jump.
func (s *Session) RequestJump() {
	if s.Terminal() {
		return
	}
	p := &s.Player
	if !p.Grounded {
		return
	}
	p.Velocity.Y = -s.tuning.JumpForce
	p.Grounded = false
	s.emit(EventJumped, -1)
}

// Command is an input a host, replay or script feeds into a session.
type Command string

const (
	CommandLeft  Command = "left"
	CommandRight Command = "right"
	CommandStop  Command = "stop"
	CommandJump  Command = "jump"
	CommandReset Command = "reset"
)

// ParseCommand validates a command name.
func ParseCommand(name string) (Command, error) {
	switch c := Command(name); c {
	case CommandLeft, CommandRight, CommandStop, CommandJump, CommandReset:
		return c, nil
	}
	return "", fmt.Errorf("sim: unknown command %q", name)
}

// Apply dispatches cmd to the matching session operation. Unknown commands
// are ignored.
func (s *Session) Apply(cmd Command) {
	switch cmd {
	case CommandLeft:
		s.SetIntent(Left)
	case CommandRight:
		s.SetIntent(Right)
	case CommandStop:
		s.ClearIntent()
	case CommandJump:
		s.RequestJump()
	case CommandReset:
		s.Reset()
	}
}
