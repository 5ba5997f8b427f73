package engine

// State represents the lifecycle state of the supervisor.
type State string

const (
	StateStopped  State = "stopped"
	StateStarting State = "starting"
	StateWaiting  State = "waiting_for_engine"
	StateReady    State = "ready"
	StateFailed   State = "failed"
)

// Snapshot is a read-only projection of the supervisor state.
type Snapshot struct {
	State State
	Err   string
}
