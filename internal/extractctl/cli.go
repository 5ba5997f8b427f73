package extractctl

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Config carries settings shared by every subcommand.
type Config struct {
	Server  string
	LogLvl  string
	Timeout time.Duration
}

func defaultConfig() *Config {
	return &Config{
		Server:  envStr("EXTRACTCTL_SERVER", "http://127.0.0.1:8071"),
		LogLvl:  envStr("EXTRACTCTL_LOG_LEVEL", "info"),
		Timeout: time.Duration(envInt("EXTRACTCTL_TIMEOUT_S", 30)) * time.Second,
	}
}

// MainWithArgs is a testable variant of Main that accepts args explicitly.
// It returns an exit code (0 for success, non-zero on error).
func MainWithArgs(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := buildRootCmdWith(defaultConfig())
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	return 0
}

// Main returns an exit code (0 for success, non-zero on error) for use by cmd/extractctl.
func Main() int { return MainWithArgs(os.Args[1:]) }
