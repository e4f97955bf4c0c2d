package connection

import "fmt"

// State is the lifecycle state of the single tunnel slot.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateDisconnecting
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateDisconnecting:
		return "disconnecting"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// busy reports whether a mutating operation owns the slot.
func (s State) busy() bool {
	return s == StateConnecting || s == StateDisconnecting
}
