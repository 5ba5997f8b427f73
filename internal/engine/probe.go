package engine

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"
)

// livenessPath is the engine endpoint polled for readiness.
const livenessPath = "/api/isalive"

// probeTimeout bounds a single liveness probe.
const probeTimeout = 5 * time.Second

// Prober reports whether the extraction engine is ready to accept work.
// Implementations must treat every failure mode as "not ready".
type Prober interface {
	Ready(ctx context.Context) bool
}

// HTTPProbe checks the engine liveness endpoint. Ready means HTTP 200 with a
// body of exactly "true"; anything else, including transport errors and
// timeouts, is not ready.
type HTTPProbe struct {
	url     string
	timeout time.Duration
	client  *http.Client
}

func NewHTTPProbe(engineURL string) *HTTPProbe {
	// Client Timeout stays 0: the per-probe context carries the deadline.
	return &HTTPProbe{
		url:     strings.TrimRight(engineURL, "/") + livenessPath,
		timeout: probeTimeout,
		client:  &http.Client{Timeout: 0},
	}
}

func (p *HTTPProbe) Ready(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64))
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(body)) == "true"
}
