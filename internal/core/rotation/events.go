package rotation

import "time"

// State represents the current rotation mode.
type State string

const (
	StateIdle    State = "idle"
	StateReady   State = "ready"
	StateRunning State = "running"
	StatePaused  State = "paused"
	StateClosed  State = "closed"
)

// ItemState is the visual marking of a single item.
type ItemState int

const (
	ItemInactive ItemState = iota
	ItemActive
	ItemLeaving
)

// String returns the marking name.
func (state ItemState) String() string {
	switch state {
	case ItemActive:
		return "active"
	case ItemLeaving:
		return "leaving"
	default:
		return "inactive"
	}
}

// EventType defines the type of rotation event.
type EventType string

const (
	EventTransition  EventType = "transition"
	EventStateChange EventType = "state_change"
	EventTimerReset  EventType = "timer_reset"
)

// Event represents a rotation update for observers.
type Event struct {
	Type     EventType
	Rotation string
	State    State
	Index    int
	Previous int
	Manual   bool
	At       time.Time
}
