package engine

import (
	"time"

	"extractd/internal/events"
)

// Defaults applied when corresponding Config fields are unset.
const (
	defaultServiceName = "extractd"
	defaultVersion     = "1.0.0"

	defaultProbeInterval = 1 * time.Second
	defaultStartupPolls  = 180
	defaultRestartPolls  = 120
	defaultRestartPause  = 2 * time.Second
	defaultProgressEvery = 30
	defaultLogLines      = 100
)

// Config encapsulates all tunables for Supervisor construction.
type Config struct {
	ServiceName string
	Version     string
	// EngineURL is the base URL of the extraction engine HTTP API.
	EngineURL string
	// ComposeFile is the compose manifest the runner starts and stops.
	ComposeFile string
	// External marks the engine as unmanaged: the supervisor never issues
	// container commands and readiness comes from probing alone.
	External bool

	// ProbeInterval is the pause between readiness polls.
	ProbeInterval time.Duration
	// StartupPolls bounds the initial readiness wait.
	StartupPolls int
	// RestartPolls bounds the readiness wait after Restart.
	RestartPolls int
	// RestartPause is the settle time between stop and start on Restart.
	RestartPause time.Duration
	// ProgressEvery emits a readiness_waiting event every Nth poll.
	ProgressEvery int
}

// NewSupervisor constructs a Supervisor from Config, applying defaults for
// zero fields. A nil runner forces External mode; a nil reporter is replaced
// with NopReporter.
func NewSupervisor(cfg Config, bus *events.Broadcaster, runner Runner, prober Prober, reporter StatusReporter) *Supervisor {
	if cfg.ServiceName == "" {
		cfg.ServiceName = defaultServiceName
	}
	if cfg.Version == "" {
		cfg.Version = defaultVersion
	}
	if cfg.ProbeInterval <= 0 {
		cfg.ProbeInterval = defaultProbeInterval
	}
	if cfg.StartupPolls <= 0 {
		cfg.StartupPolls = defaultStartupPolls
	}
	if cfg.RestartPolls <= 0 {
		cfg.RestartPolls = defaultRestartPolls
	}
	if cfg.RestartPause <= 0 {
		cfg.RestartPause = defaultRestartPause
	}
	if cfg.ProgressEvery <= 0 {
		cfg.ProgressEvery = defaultProgressEvery
	}
	if runner == nil {
		cfg.External = true
	}
	reporting := reporter != nil
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Supervisor{
		cfg:       cfg,
		bus:       bus,
		runner:    runner,
		prober:    prober,
		reporter:  reporter,
		reporting: reporting,
		state:     StateStopped,
		startTime: time.Now(),
	}
}
