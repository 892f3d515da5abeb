package sim

// EventKind identifies something that happened during a tick.
type EventKind string

const (
	EventJumped               EventKind = "jumped"
	EventLanded               EventKind = "landed"
	EventCoinCollected        EventKind = "coin"
	EventPowerUpCollected     EventKind = "power_up"
	EventInvincibilityExpired EventKind = "invincibility_expired"
	EventGameOver             EventKind = "game_over"
	EventLevelComplete        EventKind = "level_complete"
	EventReset                EventKind = "reset"
)

// Event is published to hosts after a tick or command. Index refers to the
// coin, power-up or enemy involved, or -1.
type Event struct {
	Kind  EventKind
	Tick  uint64
	Index int
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Items returns a copy of the queued events.
func (q *EventQueue) Items() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	return append([]Event(nil), q.items...)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = q.items[:0]
}
