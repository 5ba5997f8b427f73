package extractctl

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"extractd/pkg/types"
)

// apiClient is a small typed client for the extractd HTTP API.
type apiClient struct {
	base string
	hc   *http.Client
}

func newClient(cfg *Config) *apiClient {
	return &apiClient{
		base: strings.TrimRight(cfg.Server, "/"),
		// Timeout guards one-shot calls; streaming brings its own client.
		hc: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *apiClient) getJSON(ctx context.Context, path string, v any) error {
	resp, err := c.do(ctx, http.MethodGet, path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeJSON(resp, v)
}

func (c *apiClient) postJSON(ctx context.Context, path string, v any) error {
	resp, err := c.do(ctx, http.MethodPost, path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeJSON(resp, v)
}

// getJSONStatus decodes the response body regardless of HTTP status and
// returns the status code. Endpoints like /health answer 503 with a full
// payload worth showing.
func (c *apiClient) getJSONStatus(ctx context.Context, path string, v any) (int, error) {
	resp, err := c.do(ctx, http.MethodGet, path)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return resp.StatusCode, fmt.Errorf("server: status %d", resp.StatusCode)
	}
	return resp.StatusCode, nil
}

func (c *apiClient) getText(ctx context.Context, path string) (string, int, error) {
	resp, err := c.do(ctx, http.MethodGet, path)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	return string(body), resp.StatusCode, err
}

func (c *apiClient) do(ctx context.Context, method, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, nil)
	if err != nil {
		return nil, err
	}
	debug("%s %s", method, req.URL)
	return c.hc.Do(req)
}

// decodeJSON reads a JSON body, translating error payloads into errors.
func decodeJSON(resp *http.Response, v any) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr types.ErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("server: %s", apiErr.Error)
		}
		return fmt.Errorf("server: status %d", resp.StatusCode)
	}
	if v == nil {
		return nil
	}
	return json.Unmarshal(body, v)
}

// tailEvents streams /events/stream frames to fn until the context ends or
// the server closes the session. Keep-alive pings are skipped.
func (c *apiClient) tailEvents(ctx context.Context, replay int, fn func(types.Event)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/events/stream?replay=%d", c.base, replay), nil)
	if err != nil {
		return err
	}
	hc := &http.Client{}
	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server: status %d", resp.StatusCode)
	}
	sc := bufio.NewScanner(resp.Body)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var ev types.Event
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev); err != nil {
			warn("bad frame: %v", err)
			continue
		}
		if ev.Type == "ping" {
			continue
		}
		fn(ev)
	}
	if ctx.Err() != nil {
		// canceled by the user
		return nil
	}
	return sc.Err()
}
