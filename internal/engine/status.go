package engine

import (
	"context"
	"time"

	"extractd/pkg/types"
)

// containerHealth queries the runner; external engines report a synthetic
// healthy aggregate so unified health degrades to the liveness probe.
func (s *Supervisor) containerHealth(ctx context.Context) types.ContainerHealth {
	if s.cfg.External {
		return types.ContainerHealth{
			Healthy:    true,
			Containers: map[string]types.ContainerStatus{},
			Message:    "external engine, containers not managed",
		}
	}
	return s.runner.Health(ctx)
}

// Status builds the detailed status response for /status.
func (s *Supervisor) Status(ctx context.Context) types.StatusResponse {
	snap := s.Snapshot()
	return types.StatusResponse{
		Service:         s.cfg.ServiceName,
		Version:         s.cfg.Version,
		State:           string(snap.State),
		EngineURL:       s.cfg.EngineURL,
		EngineReady:     s.prober.Ready(ctx),
		Containers:      s.containerHealth(ctx),
		StatusReporting: s.reporting,
		Subscribers:     s.bus.SubscriberCount(),
		EventsTotal:     s.bus.Total(),
		UptimeSeconds:   int64(time.Since(s.startTime).Seconds()),
		ServerTimeUnix:  time.Now().Unix(),
		LastError:       snap.Err,
	}
}

// Health reports unified health: running containers plus a live probe.
func (s *Supervisor) Health(ctx context.Context) (types.HealthResponse, bool) {
	containers := s.containerHealth(ctx)
	ready := s.prober.Ready(ctx)
	healthy := containers.Healthy && ready
	status := "healthy"
	if !healthy {
		status = "unhealthy"
	}
	return types.HealthResponse{Status: status, Containers: containers, EngineAPI: ready}, healthy
}

// Logs returns container log tails. lines <= 0 takes the default.
func (s *Supervisor) Logs(ctx context.Context, lines int) (types.LogsResponse, error) {
	if s.cfg.External {
		return nil, ErrUnmanagedEngine()
	}
	if lines <= 0 {
		lines = defaultLogLines
	}
	logs, err := s.runner.Logs(ctx, lines)
	if err != nil {
		return nil, err
	}
	return types.LogsResponse(logs), nil
}
