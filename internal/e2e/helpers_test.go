package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"extractd/internal/engine"
	"extractd/internal/events"
	"extractd/internal/httpapi"
	"extractd/pkg/types"
)

// fakeEngine emulates the extraction engine HTTP API. Liveness is switchable
// so tests can walk the full startup and restart paths.
type fakeEngine struct {
	srv   *httptest.Server
	alive atomic.Bool

	mu            sync.Mutex
	processStatus int
	processBody   string
	processCalls  int
	lastForm      map[string]string
}

func newFakeEngine(t *testing.T) *fakeEngine {
	t.Helper()
	fe := &fakeEngine{
		processStatus: http.StatusOK,
		processBody:   `<TEI xmlns="http://www.tei-c.org/ns/1.0"/>`,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/isalive", func(w http.ResponseWriter, r *http.Request) {
		if !fe.alive.Load() {
			http.Error(w, "service unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		io.WriteString(w, "true")
	})
	mux.HandleFunc("/api/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		io.WriteString(w, "0.8.2")
	})
	process := func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		fe.mu.Lock()
		fe.processCalls++
		fe.lastForm = map[string]string{}
		for k, vs := range r.MultipartForm.Value {
			if len(vs) > 0 {
				fe.lastForm[k] = vs[0]
			}
		}
		status, body := fe.processStatus, fe.processBody
		fe.mu.Unlock()
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}
	mux.HandleFunc("/api/processFulltextDocument", process)
	mux.HandleFunc("/api/processHeaderDocument", process)
	mux.HandleFunc("/api/processReferences", process)
	fe.srv = httptest.NewServer(mux)
	t.Cleanup(fe.srv.Close)
	return fe
}

func (fe *fakeEngine) setVerdict(status int, body string) {
	fe.mu.Lock()
	fe.processStatus, fe.processBody = status, body
	fe.mu.Unlock()
}

func (fe *fakeEngine) form() map[string]string {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	out := make(map[string]string, len(fe.lastForm))
	for k, v := range fe.lastForm {
		out[k] = v
	}
	return out
}

func (fe *fakeEngine) calls() int {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.processCalls
}

// fakeRunner stands in for docker compose. Start brings the fake engine
// online and Stop takes it down, unless detached is set, in which case the
// commands succeed without affecting the engine.
type fakeRunner struct {
	eng      *fakeEngine
	detached bool

	mu     sync.Mutex
	starts int
	stops  int
}

func (r *fakeRunner) Start(ctx context.Context) error {
	r.mu.Lock()
	r.starts++
	r.mu.Unlock()
	if !r.detached {
		r.eng.alive.Store(true)
	}
	return nil
}

func (r *fakeRunner) Stop(ctx context.Context) error {
	r.mu.Lock()
	r.stops++
	r.mu.Unlock()
	if !r.detached {
		r.eng.alive.Store(false)
	}
	return nil
}

func (r *fakeRunner) Health(ctx context.Context) types.ContainerHealth {
	status := types.ContainerStatus{Status: "exited"}
	if r.eng.alive.Load() {
		status = types.ContainerStatus{Status: "running", Healthy: true}
	}
	return types.ContainerHealth{
		Healthy:    status.Healthy,
		Containers: map[string]types.ContainerStatus{"grobid": status},
	}
}

func (r *fakeRunner) Logs(ctx context.Context, lines int) (map[string]string, error) {
	return map[string]string{"grobid": "INFO  main: grobid service ready\n"}, nil
}

func (r *fakeRunner) counts() (starts, stops int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.starts, r.stops
}

// stack wires the full service against a fake engine the way cmd/extractd does.
type stack struct {
	srv    *httptest.Server
	sup    *engine.Supervisor
	bus    *events.Broadcaster
	eng    *fakeEngine
	runner *fakeRunner
}

func newStack(t *testing.T) *stack { return newStackWith(t, 100, false) }

func newStackWith(t *testing.T, startupPolls int, detached bool) *stack {
	t.Helper()
	fe := newFakeEngine(t)
	bus := events.New()
	runner := &fakeRunner{eng: fe, detached: detached}
	sup := engine.NewSupervisor(engine.Config{
		EngineURL:     fe.srv.URL,
		ComposeFile:   "docker/compose.yml",
		ProbeInterval: 10 * time.Millisecond,
		StartupPolls:  startupPolls,
		RestartPolls:  100,
		RestartPause:  time.Millisecond,
	}, bus, runner, engine.NewHTTPProbe(fe.srv.URL), engine.NopReporter{})
	srv := httptest.NewServer(httpapi.NewMux(sup, bus, engine.NewClient(fe.srv.URL)))
	t.Cleanup(srv.Close)
	return &stack{srv: srv, sup: sup, bus: bus, eng: fe, runner: runner}
}

// start runs the supervisor to readiness the way main does at boot.
func (s *stack) start(t *testing.T) {
	t.Helper()
	if err := s.sup.EnsureStarted(context.Background()); err != nil {
		t.Fatalf("EnsureStarted: %v", err)
	}
	if !s.sup.Ready() {
		t.Fatalf("engine not ready after EnsureStarted, state=%s", s.sup.Snapshot().State)
	}
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func httpPost(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

// postPDF uploads a fake document to an extraction endpoint.
func postPDF(t *testing.T, url, filename string, fields map[string]string) (*http.Response, []byte) {
	t.Helper()
	return postDocument(t, url, filename, []byte("%PDF-1.4 fake document body"), fields)
}

func postDocument(t *testing.T, url, filename string, content []byte, fields map[string]string) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("input", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, &buf)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

// history fetches every retained event, oldest first.
func history(t *testing.T, srv *httptest.Server) []types.Event {
	t.Helper()
	resp, body := httpGet(t, srv.URL+"/events/history?limit=0")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/events/history status=%d body=%s", resp.StatusCode, string(body))
	}
	var hr types.HistoryResponse
	if err := json.Unmarshal(body, &hr); err != nil {
		t.Fatalf("/events/history json: %v body=%s", err, string(body))
	}
	return hr.Events
}

func historyTypes(t *testing.T, srv *httptest.Server) []string {
	t.Helper()
	evs := history(t, srv)
	out := make([]string, len(evs))
	for i, ev := range evs {
		out[i] = ev.Type
	}
	return out
}

// containsInOrder reports whether want appears as a subsequence of got.
func containsInOrder(got, want []string) bool {
	i := 0
	for _, g := range got {
		if i < len(want) && g == want[i] {
			i++
		}
	}
	return i == len(want)
}
