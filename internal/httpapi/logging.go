package httpapi

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"sort"

	"github.com/rs/zerolog"
)

// zlog is an optional structured logger. If unset, falls back to log.Printf.
var zlog *zerolog.Logger

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { zlog = &l }

// logEvent writes one line about an HTTP-layer happening through the
// structured logger when installed, else the standard logger. Fields keep
// key=value shape in the fallback so scraping works either way.
func logEvent(level zerolog.Level, msg string, fields map[string]any) {
	if zlog != nil {
		ev := zlog.WithLevel(level)
		for k, v := range fields {
			ev = ev.Interface(k, v)
		}
		ev.Msg(msg)
		return
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	line := "httpapi event=" + msg
	for _, k := range keys {
		line += fmt.Sprintf(" %s=%v", k, fields[k])
	}
	log.Print(line)
}

func logInfo(msg string, fields map[string]any)  { logEvent(zerolog.InfoLevel, msg, fields) }
func logError(msg string, fields map[string]any) { logEvent(zerolog.ErrorLevel, msg, fields) }

// LogLevel controls per-request logging behavior.
type LogLevel int

const (
	LevelOff LogLevel = iota
	LevelError
	LevelInfo
	LevelDebug
)

func parseLevel(s string) LogLevel {
	switch s {
	case "off", "":
		return LevelOff
	case "error":
		return LevelError
	case "info":
		return LevelInfo
	case "debug":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// global default, read once
var defaultLogLevel = parseLevel(os.Getenv("EXTRACTD_LOG_LEVEL"))

func requestLogLevel(r *http.Request) LogLevel {
	// Per-request overrides
	if v := r.URL.Query().Get("log"); v != "" {
		if v == "1" {
			return LevelDebug
		}
		return parseLevel(v)
	}
	if v := r.Header.Get("X-Log-Level"); v != "" {
		return parseLevel(v)
	}
	return defaultLogLevel
}
