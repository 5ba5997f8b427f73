package types

// HistoryResponse is returned by GET /events/history.
type HistoryResponse struct {
	// Recorded events, oldest first, at most the requested limit.
	Events []Event `json:"events"`
	// Number of events in this response.
	// example: 50
	Count int `json:"count" example:"50"`
	// Total number of events ever recorded, including evicted ones.
	// example: 1582
	Total uint64 `json:"total" example:"1582"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Service name.
	// example: extractd
	Service string `json:"service" example:"extractd"`
	// Service version.
	// example: 1.0.0
	Version string `json:"version" example:"1.0.0"`
	// Supervisor state (stopped, starting, waiting_for_engine, ready, failed).
	// example: ready
	State string `json:"state" example:"ready"`
	// Base URL of the extraction engine.
	// example: http://localhost:8070
	EngineURL string `json:"engine_url" example:"http://localhost:8070"`
	// Result of a live engine liveness probe.
	// example: true
	EngineReady bool `json:"engine_api_ready" example:"true"`
	// Container runtime health.
	Containers ContainerHealth `json:"containers"`
	// True when an external status reporter is configured.
	// example: false
	StatusReporting bool `json:"status_reporting" example:"false"`
	// Number of live event subscribers.
	// example: 2
	Subscribers int `json:"subscribers" example:"2"`
	// Total number of events recorded since startup.
	// example: 1582
	EventsTotal uint64 `json:"events_total" example:"1582"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
	// Last lifecycle error observed by the supervisor (if any).
	LastError string `json:"last_error,omitempty"`
}

// HealthResponse is returned by GET /health. On an unhealthy service the
// same shape is returned with HTTP 503 and status "unhealthy".
type HealthResponse struct {
	// Overall health, healthy or unhealthy.
	// example: healthy
	Status string `json:"status" example:"healthy"`
	// Container runtime health.
	Containers ContainerHealth `json:"containers"`
	// Result of a live engine liveness probe.
	// example: true
	EngineAPI bool `json:"engine_api" example:"true"`
}

// RestartResponse is returned by POST /engine/restart. The restart itself
// always completes; engine_ready reports whether the engine came back
// within the bounded wait.
type RestartResponse struct {
	// Always "restarted" once the stop/start cycle ran.
	// example: restarted
	Status string `json:"status" example:"restarted"`
	// True when the engine answered its liveness probe after the restart.
	// example: true
	EngineReady bool `json:"engine_ready" example:"true"`
}

// LogsResponse maps container names to their log tail.
type LogsResponse map[string]string

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: engine not ready
	Error string `json:"error" example:"engine not ready"`
	// HTTP status code.
	// example: 503
	Code int `json:"code" example:"503"`
}
