package extractctl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"extractd/pkg/types"
)

// newFakeServer serves the subset of the extractd API the CLI talks to.
func newFakeServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(types.StatusResponse{
			Service:     "extractd",
			Version:     "1.0.0",
			State:       "ready",
			EngineURL:   "http://localhost:8070",
			EngineReady: true,
			Containers: types.ContainerHealth{
				Healthy:    true,
				Containers: map[string]types.ContainerStatus{"grobid": {Status: "running", Healthy: true}},
			},
		})
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(types.HealthResponse{Status: "healthy", EngineAPI: true})
	})
	mux.HandleFunc("/engine/logs", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(types.LogsResponse{"grobid": "line one\nline two\n"})
	})
	mux.HandleFunc("/engine/restart", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(types.RestartResponse{Status: "restarted", EngineReady: true})
	})
	mux.HandleFunc("/events/history", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(types.HistoryResponse{
			Events: []types.Event{
				{ID: "01J8ZQ6H4R8Y2K3M4N5P6Q7R8S", Type: "extraction_start", Timestamp: time.Now().UTC()},
				{ID: "01J8ZQ6H4R8Y2K3M4N5P6Q7R8T", Type: "extraction_success", Timestamp: time.Now().UTC()},
			},
			Count: 2,
			Total: 7,
		})
	})
	mux.HandleFunc("/api/isalive", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprint(w, "true")
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// runCommand executes the command tree against srv and captures its output.
func runCommand(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()
	root := buildRootCmdWith(&Config{Server: srv.URL, LogLvl: "info", Timeout: 5 * time.Second})
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestMainWithArgs_Help_Exit0(t *testing.T) {
	if code := MainWithArgs([]string{"--help"}); code != 0 {
		t.Fatalf("help expected 0, got %d", code)
	}
}

func TestMainWithArgs_UnknownCommand_Exit1(t *testing.T) {
	if code := MainWithArgs([]string{"wat"}); code != 1 {
		t.Fatalf("unknown command expected 1, got %d", code)
	}
}

func TestMainWithArgs_EventsWithoutSubcommand_Exit1(t *testing.T) {
	if code := MainWithArgs([]string{"events"}); code != 1 {
		t.Fatalf("bare events expected 1, got %d", code)
	}
}

func TestMainWithArgs_StatusUsesServerFlag(t *testing.T) {
	srv := newFakeServer(t)
	if code := MainWithArgs([]string{"--server", srv.URL, "status"}); code != 0 {
		t.Fatalf("status expected 0, got %d", code)
	}
}

func TestMainWithArgs_ServerFromEnv(t *testing.T) {
	srv := newFakeServer(t)
	t.Setenv("EXTRACTCTL_SERVER", srv.URL)
	if code := MainWithArgs([]string{"probe"}); code != 0 {
		t.Fatalf("probe expected 0, got %d", code)
	}
}

func TestMainWithArgs_UnhealthyExit1(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(types.HealthResponse{Status: "unhealthy"})
	}))
	defer srv.Close()
	if code := MainWithArgs([]string{"--server", srv.URL, "health"}); code != 1 {
		t.Fatalf("unhealthy expected 1, got %d", code)
	}
}

func TestStatusCommand_RendersSummary(t *testing.T) {
	srv := newFakeServer(t)
	out, err := runCommand(t, srv, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	for _, want := range []string{"service:        extractd 1.0.0", "state:          ready", "grobid"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestHealthCommand_HealthyExitsClean(t *testing.T) {
	srv := newFakeServer(t)
	out, err := runCommand(t, srv, "health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if !strings.Contains(out, "status:     healthy") {
		t.Fatalf("missing health line:\n%s", out)
	}
}

func TestRestartCommand_ReportsReadiness(t *testing.T) {
	srv := newFakeServer(t)
	out, err := runCommand(t, srv, "restart")
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if !strings.Contains(out, "restarted (engine_ready=true)") {
		t.Fatalf("unexpected restart output:\n%s", out)
	}
}

func TestLogsCommand_SingleContainer(t *testing.T) {
	srv := newFakeServer(t)
	out, err := runCommand(t, srv, "logs", "grobid", "--lines", "2")
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	if !strings.Contains(out, "line one") || strings.Contains(out, "== grobid ==") {
		t.Fatalf("single-container output wrong:\n%s", out)
	}
}

func TestLogsCommand_AllContainersWithHeaders(t *testing.T) {
	srv := newFakeServer(t)
	out, err := runCommand(t, srv, "logs")
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	if !strings.Contains(out, "== grobid ==") || !strings.Contains(out, "line two") {
		t.Fatalf("all-container output wrong:\n%s", out)
	}
}

func TestLogsCommand_UnknownContainer(t *testing.T) {
	srv := newFakeServer(t)
	_, err := runCommand(t, srv, "logs", "nope")
	if err == nil || !strings.Contains(err.Error(), "no logs for container") {
		t.Fatalf("expected unknown-container error, got %v", err)
	}
}

func TestEventsHistoryCommand_PrintsEvents(t *testing.T) {
	srv := newFakeServer(t)
	out, err := runCommand(t, srv, "events", "history", "--limit", "2")
	if err != nil {
		t.Fatalf("events history: %v", err)
	}
	if !strings.Contains(out, "extraction_start") || !strings.Contains(out, "2 of 7 recorded events") {
		t.Fatalf("history output wrong:\n%s", out)
	}
}

func TestProbeCommand_EngineDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "engine unreachable")
	}))
	defer srv.Close()
	_, err := runCommand(t, srv, "probe")
	if err == nil || !strings.Contains(err.Error(), "not alive") {
		t.Fatalf("expected probe failure, got %v", err)
	}
}
