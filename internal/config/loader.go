package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"extractd/internal/common/fsutil"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Addr            string `json:"addr" yaml:"addr" toml:"addr"`
	EngineURL       string `json:"engine_url" yaml:"engine_url" toml:"engine_url"`
	ComposeFile     string `json:"compose_file" yaml:"compose_file" toml:"compose_file"`
	ExternalEngine  bool   `json:"external_engine" yaml:"external_engine" toml:"external_engine"`
	ProbeIntervalS  int    `json:"probe_interval_s" yaml:"probe_interval_s" toml:"probe_interval_s"`
	StartupPolls    int    `json:"startup_polls" yaml:"startup_polls" toml:"startup_polls"`
	RestartPolls    int    `json:"restart_polls" yaml:"restart_polls" toml:"restart_polls"`
	HistorySize     int    `json:"history_size" yaml:"history_size" toml:"history_size"`
	SubscriberQueue int    `json:"subscriber_queue" yaml:"subscriber_queue" toml:"subscriber_queue"`
	MaxUploadMB     int    `json:"max_upload_mb" yaml:"max_upload_mb" toml:"max_upload_mb"`
	LogLevel        string `json:"log_level" yaml:"log_level" toml:"log_level"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if cfg.ComposeFile != "" {
		expanded, err := fsutil.ExpandHome(cfg.ComposeFile)
		if err != nil {
			return cfg, fmt.Errorf("compose_file: %w", err)
		}
		cfg.ComposeFile = expanded
	}
	return cfg, nil
}
