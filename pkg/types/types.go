package types

import "time"

// Event is a single broadcast record. Events are immutable once published;
// subscribers and the history endpoint see the exact record that was stored.
type Event struct {
	// Unique event ID (ULID). Empty for synthetic stream records
	// such as connection acks and keep-alive pings.
	ID string `json:"id,omitempty" example:"01J8ZQ6H4R8Y2K3M4N5P6Q7R8S"`
	// Event type, e.g. extraction_start, readiness_ready, container_stop.
	Type string `json:"type" example:"extraction_start"`
	// Structured payload of scalar values.
	Data map[string]any `json:"data"`
	// Publish time.
	Timestamp time.Time `json:"timestamp"`
}

// ContainerStatus describes one engine container as reported by the runtime.
type ContainerStatus struct {
	// Raw container state, e.g. running, exited.
	// example: running
	Status string `json:"status" example:"running"`
	// True when the container is in the running state.
	// example: true
	Healthy bool `json:"healthy" example:"true"`
}

// ContainerHealth aggregates the health of all engine containers.
type ContainerHealth struct {
	// True when every container is running and at least one exists.
	// example: true
	Healthy bool `json:"healthy" example:"true"`
	// Per-container statuses keyed by container name.
	Containers map[string]ContainerStatus `json:"containers"`
	// Human-readable note, e.g. when no containers are found.
	Message string `json:"message,omitempty"`
	// Error text when the container runtime itself could not be queried.
	Error string `json:"error,omitempty"`
}
