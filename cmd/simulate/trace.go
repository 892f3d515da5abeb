package main

import (
	"log"

	"github.com/milk9111/platformer/sim"
)

// traceSystem logs the player every n ticks. It runs after the default
// pipeline so it sees where the tick left the player.
type traceSystem struct {
	every  uint64
	logger *log.Logger
}

func newTraceSystem(every int, logger *log.Logger) *traceSystem {
	return &traceSystem{every: uint64(every), logger: logger}
}

func (ts *traceSystem) Update(s *sim.Session) {
	if ts.every == 0 || s.Ticks%ts.every != 0 {
		return
	}
	p := s.Player
	ts.logger.Printf("tick %d: pos (%.1f, %.1f) vel (%.1f, %.1f) grounded=%v score=%d",
		s.Ticks, p.Position.X, p.Position.Y, p.Velocity.X, p.Velocity.Y, p.Grounded, s.Score)
}
