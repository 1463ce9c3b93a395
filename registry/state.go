package registry

// State tracks the registry's position in its lifecycle. Transitions
// run strictly forward: Uninitialized to Ready via Initialize, Ready
// to ShuttingDown to Terminated via Shutdown.
type State int

const (
	StateUninitialized State = iota
	StateReady
	StateShuttingDown
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateShuttingDown:
		return "shutting_down"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}
