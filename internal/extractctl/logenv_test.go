package extractctl

import (
	"os"
	"testing"
)

func TestEnvStr(t *testing.T) {
	key := "EXTRACTCTL_ENV_STR"
	os.Unsetenv(key)
	if got := envStr(key, "def"); got != "def" {
		t.Fatalf("envStr default: got %q", got)
	}
	os.Setenv(key, "val")
	t.Cleanup(func() { os.Unsetenv(key) })
	if got := envStr(key, "def"); got != "val" {
		t.Fatalf("envStr set: got %q", got)
	}
}

func TestEnvInt(t *testing.T) {
	key := "EXTRACTCTL_ENV_INT"
	os.Unsetenv(key)
	if got := envInt(key, 7); got != 7 {
		t.Fatalf("envInt default -> %d", got)
	}
	os.Setenv(key, "42")
	t.Cleanup(func() { os.Unsetenv(key) })
	if got := envInt(key, 0); got != 42 {
		t.Fatalf("envInt 42 -> %d", got)
	}
	os.Setenv(key, "bad")
	if got := envInt(key, 5); got != 5 {
		t.Fatalf("envInt bad -> %d", got)
	}
}

func TestSetLogLevel(t *testing.T) {
	t.Cleanup(func() { SetLogLevel("info") })
	cases := map[string]logLevel{
		"debug":   levelDebug,
		"info":    levelInfo,
		"warn":    levelWarn,
		"warning": levelWarn,
		"error":   levelError,
		"err":     levelError,
		"junk":    levelInfo,
		"":        levelInfo,
	}
	for in, want := range cases {
		SetLogLevel(in)
		if currentLevel != want {
			t.Fatalf("SetLogLevel(%q): level %d, want %d", in, currentLevel, want)
		}
	}
}

func TestDefaultConfigReadsEnv(t *testing.T) {
	t.Setenv("EXTRACTCTL_SERVER", "http://10.0.0.5:9000")
	t.Setenv("EXTRACTCTL_TIMEOUT_S", "5")
	cfg := defaultConfig()
	if cfg.Server != "http://10.0.0.5:9000" {
		t.Fatalf("server: got %q", cfg.Server)
	}
	if cfg.Timeout.Seconds() != 5 {
		t.Fatalf("timeout: got %v", cfg.Timeout)
	}
}
