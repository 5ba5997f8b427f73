package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"extractd/internal/engine"
	"extractd/internal/events"
	"extractd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Ready() bool
	Status(ctx context.Context) types.StatusResponse
	Health(ctx context.Context) (types.HealthResponse, bool)
	Restart(ctx context.Context) (ready bool, err error)
	Logs(ctx context.Context, lines int) (types.LogsResponse, error)
	Report(a engine.Activity, message string)
}

func NewMux(svc Service, bus *events.Broadcaster, eng *engine.Client) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints; XML passthrough benefits too
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	r.Use(MetricsMiddleware)

	// @Summary Liveness
	// @Success 200 {string} string "ok"
	// @Router /healthz [get]
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// @Summary Readiness
	// @Success 200 {string} string "ready"
	// @Failure 503 {string} string "starting"
	// @Router /readyz [get]
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("starting"))
	})

	// @Summary Unified health: containers plus engine probe
	// @Produce json
	// @Success 200 {object} types.HealthResponse
	// @Failure 503 {object} types.HealthResponse
	// @Router /health [get]
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp, healthy := svc.Health(r.Context())
		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, resp)
	})

	// @Summary Detailed service status
	// @Produce json
	// @Success 200 {object} types.StatusResponse
	// @Router /status [get]
	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Status(r.Context()))
	})

	r.Get("/events/stream", handleEventStream(bus))
	r.Get("/events/history", handleEventHistory(bus))

	p := &proxyHandlers{svc: svc, bus: bus, eng: eng}
	r.Post("/api/processFulltextDocument", p.document("processFulltextDocument", fulltextFields))
	r.Post("/api/processHeaderDocument", p.document("processHeaderDocument", headerFields))
	r.Post("/api/processReferences", p.document("processReferences", referencesFields))
	r.Post("/api/processCitation", p.citation())
	r.Get("/api/isalive", p.passthrough("/api/isalive"))
	r.Get("/api/version", p.passthrough("/api/version"))

	// @Summary Restart the engine containers
	// @Produce json
	// @Success 200 {object} types.RestartResponse
	// @Failure 409 {object} types.ErrorResponse "engine not managed"
	// @Router /engine/restart [post]
	r.Post("/engine/restart", func(w http.ResponseWriter, r *http.Request) {
		// Join server base context with request context so shutdown cancels the wait.
		ctx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		ready, err := svc.Restart(ctx)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, types.RestartResponse{Status: "restarted", EngineReady: ready})
	})

	// @Summary Engine container log tails
	// @Produce json
	// @Param lines query int false "lines per container" default(100)
	// @Success 200 {object} types.LogsResponse
	// @Router /engine/logs [get]
	r.Get("/engine/logs", func(w http.ResponseWriter, r *http.Request) {
		lines, ok := queryInt(r, "lines", 0)
		if !ok {
			writeJSONError(w, http.StatusBadRequest, "lines must be an integer")
			return
		}
		logs, err := svc.Logs(r.Context(), lines)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, logs)
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// queryInt parses an integer query parameter, returning def when absent.
func queryInt(r *http.Request, name string, def int) (int, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
