package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const EventSeasonChanged = "season_changed"

// SeasonChangedEvent is pushed whenever a season timer broadcasts.
type SeasonChangedEvent struct {
	Entity Entity
	Season string
	Value  float32
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

// Peek returns the queued events without clearing them.
func (q *EventQueue) Peek() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
