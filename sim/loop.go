package sim

import "time"

// maxFrame caps elapsed time per Advance to avoid a spiral of death after a
// stall.
const maxFrame = 250 * time.Millisecond

// Loop drives a session at its fixed tick rate from a variable frame clock.
type Loop struct {
	session     *Session
	step        time.Duration
	accumulator time.Duration

	// OnTick, if set, receives each tick's snapshot and events.
	OnTick func(Snapshot, []Event)
}

// NewLoop creates a fixed-step driver for s using the level tick rate.
func NewLoop(s *Session) *Loop {
	return &Loop{
		session: s,
		step:    time.Second / time.Duration(s.tuning.TickRate),
	}
}

// Step returns the fixed tick duration.
func (l *Loop) Step() time.Duration { return l.step }

// Advance accumulates elapsed wall time and runs as many whole ticks as fit.
// It returns the number of ticks run.
func (l *Loop) Advance(elapsed time.Duration) int {
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > maxFrame {
		elapsed = maxFrame
	}
	l.accumulator += elapsed

	ticks := 0
	for l.accumulator >= l.step {
		snap := l.session.Tick()
		if l.OnTick != nil {
			l.OnTick(snap, l.session.Events())
		}
		l.accumulator -= l.step
		ticks++
	}
	return ticks
}

// Alpha returns how far the loop is into the next tick, for interpolation.
func (l *Loop) Alpha() float64 {
	return float64(l.accumulator) / float64(l.step)
}
