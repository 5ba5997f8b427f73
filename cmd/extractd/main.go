package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"extractd/internal/common/fsutil"
	"extractd/internal/config"
	"extractd/internal/engine"
	"extractd/internal/events"
	"extractd/internal/httpapi"
)

const version = "1.0.0"

func main() {
	// Flags with environment variable defaults
	addr := flag.String("addr", envDefault("EXTRACTD_ADDR", ":8071"), "HTTP listen address, e.g. :8071")
	engineURL := flag.String("engine-url", envDefault("EXTRACTD_ENGINE_URL", "http://localhost:8070"), "Base URL of the extraction engine")
	composeFile := flag.String("compose-file", envDefault("EXTRACTD_COMPOSE_FILE", "docker/docker-compose.yml"), "Docker compose file that runs the engine")
	external := flag.Bool("external-engine", envBool("EXTRACTD_EXTERNAL_ENGINE", false), "Probe an externally managed engine instead of running containers")
	configPath := flag.String("config", envDefault("EXTRACTD_CONFIG", ""), "Optional config file (.yaml/.json/.toml); explicit flags win over file values")
	logLevel := flag.String("log-level", envDefault("EXTRACTD_LOG_LEVEL", "info"), "Log level: debug, info, warn, error")
	logJSON := flag.Bool("log-json", envBool("EXTRACTD_LOG_JSON", false), "Emit JSON logs instead of console format")
	historySize := flag.Int("history-size", 0, "Events retained for replay (0 = default 100)")
	subscriberQueue := flag.Int("subscriber-queue", 0, "Per-subscriber event buffer (0 = default 100)")
	maxUploadMB := flag.Int("max-upload-mb", 0, "Maximum document upload size in MB (0 = default 50)")
	corsOrigins := flag.String("cors-origins", envDefault("EXTRACTD_CORS_ORIGINS", ""), "Comma-separated CORS origins (empty disables CORS)")
	reportStatus := flag.Bool("report-status", envBool("EXTRACTD_REPORT_STATUS", false), "Log activity status transitions")
	flag.Parse()

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	var cfg config.Config
	if *configPath != "" {
		c, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		cfg = c
	}
	// Explicit flags override the file; flag defaults fill whatever is left.
	if set["addr"] || cfg.Addr == "" {
		cfg.Addr = *addr
	}
	if set["engine-url"] || cfg.EngineURL == "" {
		cfg.EngineURL = *engineURL
	}
	if set["compose-file"] || cfg.ComposeFile == "" {
		cfg.ComposeFile = *composeFile
	}
	if set["external-engine"] {
		cfg.ExternalEngine = *external
	}
	if set["log-level"] || cfg.LogLevel == "" {
		cfg.LogLevel = *logLevel
	}
	if set["history-size"] {
		cfg.HistorySize = *historySize
	}
	if set["subscriber-queue"] {
		cfg.SubscriberQueue = *subscriberQueue
	}
	if set["max-upload-mb"] {
		cfg.MaxUploadMB = *maxUploadMB
	}

	logger := newLogger(cfg.LogLevel, *logJSON)
	httpapi.SetLogger(logger)

	if cfg.MaxUploadMB > 0 {
		httpapi.SetMaxUploadBytes(int64(cfg.MaxUploadMB) << 20)
	}
	if origins := splitCSV(*corsOrigins); len(origins) > 0 {
		httpapi.SetCORSOptions(true, origins,
			[]string{"GET", "POST", "OPTIONS"},
			[]string{"Accept", "Content-Type", "X-Log-Level"})
	}

	bus := events.NewWithConfig(events.Config{
		HistorySize: cfg.HistorySize,
		MailboxSize: cfg.SubscriberQueue,
	})

	var runner engine.Runner
	if !cfg.ExternalEngine {
		if !fsutil.PathExists(cfg.ComposeFile) {
			logger.Warn().Str("compose_file", cfg.ComposeFile).Msg("compose file not found; engine start will fail")
		}
		runner = engine.NewComposeRunner(cfg.ComposeFile)
	}
	var reporter engine.StatusReporter
	if *reportStatus {
		reporter = engine.LogReporter{}
	}
	sup := engine.NewSupervisor(engine.Config{
		ServiceName:   "extractd",
		Version:       version,
		EngineURL:     cfg.EngineURL,
		ComposeFile:   cfg.ComposeFile,
		External:      cfg.ExternalEngine,
		ProbeInterval: time.Duration(cfg.ProbeIntervalS) * time.Second,
		StartupPolls:  cfg.StartupPolls,
		RestartPolls:  cfg.RestartPolls,
	}, bus, runner, engine.NewHTTPProbe(cfg.EngineURL), reporter)

	mux := httpapi.NewMux(sup, bus, engine.NewClient(cfg.EngineURL))

	// Base context cancels SSE sessions and engine waits on shutdown.
	baseCtx, baseCancel := context.WithCancel(context.Background())
	defer baseCancel()
	httpapi.SetBaseContext(baseCtx)

	srv := &http.Server{Addr: cfg.Addr, Handler: mux}

	go func() {
		if err := sup.EnsureStarted(baseCtx); err != nil {
			// Keep serving; /readyz and /status expose the failure.
			logger.Error().Err(err).Msg("engine startup failed")
		}
	}()

	go func() {
		logger.Info().Str("addr", cfg.Addr).Str("engine_url", cfg.EngineURL).Msg("extractd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	baseCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
	sup.Stop(ctx)
}

func newLogger(level string, jsonOut bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	var out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	if jsonOut {
		return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Str("service", "extractd").Logger()
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Str("service", "extractd").Logger()
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
