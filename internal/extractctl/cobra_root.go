package extractctl

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"extractd/pkg/types"
)

// buildRootCmdWith constructs the Cobra command tree wired to an extractd server.
func buildRootCmdWith(cfg *Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "extractctl",
		Short:         "Control client for a running extractd server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags -> Config
	root.PersistentFlags().String("server", cfg.Server, "extractd base URL (defaults EXTRACTCTL_SERVER or http://127.0.0.1:8071)")
	root.PersistentFlags().String("log-level", cfg.LogLvl, "Log level: debug|info|warn|error (defaults EXTRACTCTL_LOG_LEVEL or info)")
	root.PersistentFlags().Duration("timeout", cfg.Timeout, "Per-request timeout (defaults EXTRACTCTL_TIMEOUT_S or 30s)")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if f := cmd.InheritedFlags().Lookup("server"); f != nil {
			if v := f.Value.String(); v != "" {
				cfg.Server = v
			}
		}
		if f := cmd.InheritedFlags().Lookup("log-level"); f != nil {
			if v := f.Value.String(); v != "" {
				cfg.LogLvl = v
			}
		}
		if f := cmd.InheritedFlags().Lookup("timeout"); f != nil {
			if d, err := time.ParseDuration(f.Value.String()); err == nil && d > 0 {
				cfg.Timeout = d
			}
		}
		SetLogLevel(cfg.LogLvl)
	}

	statusCmd := &cobra.Command{Use: "status", Short: "Show server and engine status", Example: "  extractctl status", RunE: func(cmd *cobra.Command, args []string) error {
		var st types.StatusResponse
		if err := newClient(cfg).getJSON(cmd.Context(), "/status", &st); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "service:        %s %s\n", st.Service, st.Version)
		fmt.Fprintf(out, "state:          %s\n", st.State)
		fmt.Fprintf(out, "engine:         %s (ready=%v)\n", st.EngineURL, st.EngineReady)
		fmt.Fprintf(out, "subscribers:    %d\n", st.Subscribers)
		fmt.Fprintf(out, "events_total:   %d\n", st.EventsTotal)
		fmt.Fprintf(out, "uptime_seconds: %d\n", st.UptimeSeconds)
		if st.LastError != "" {
			fmt.Fprintf(out, "last_error:     %s\n", st.LastError)
		}
		printContainers(out, st.Containers)
		return nil
	}}

	healthCmd := &cobra.Command{Use: "health", Short: "Check service health (exit 1 when unhealthy)", Example: "  extractctl health", RunE: func(cmd *cobra.Command, args []string) error {
		var h types.HealthResponse
		code, err := newClient(cfg).getJSONStatus(cmd.Context(), "/health", &h)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "status:     %s\n", h.Status)
		fmt.Fprintf(out, "engine_api: %v\n", h.EngineAPI)
		printContainers(out, h.Containers)
		if code != http.StatusOK {
			return fmt.Errorf("service unhealthy")
		}
		return nil
	}}

	restartCmd := &cobra.Command{Use: "restart", Short: "Restart the engine containers and wait for readiness", Example: "  extractctl restart", RunE: func(cmd *cobra.Command, args []string) error {
		var rr types.RestartResponse
		if err := newClient(cfg).postJSON(cmd.Context(), "/engine/restart", &rr); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (engine_ready=%v)\n", rr.Status, rr.EngineReady)
		return nil
	}}

	var logLines int
	logsCmd := &cobra.Command{Use: "logs [container]", Short: "Fetch engine container log tails", Example: "  extractctl logs\n  extractctl logs grobid --lines 200", Args: cobra.MaximumNArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		var lr types.LogsResponse
		if err := newClient(cfg).getJSON(cmd.Context(), fmt.Sprintf("/engine/logs?lines=%d", logLines), &lr); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(args) == 1 {
			tail, ok := lr[args[0]]
			if !ok {
				return fmt.Errorf("no logs for container %q", args[0])
			}
			fmt.Fprint(out, tail)
			if !strings.HasSuffix(tail, "\n") {
				fmt.Fprintln(out)
			}
			return nil
		}
		names := make([]string, 0, len(lr))
		for name := range lr {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(out, "== %s ==\n", name)
			fmt.Fprint(out, lr[name])
			if !strings.HasSuffix(lr[name], "\n") {
				fmt.Fprintln(out)
			}
		}
		return nil
	}}
	logsCmd.Flags().IntVar(&logLines, "lines", 100, "log lines per container")

	// events group
	eventsCmd := &cobra.Command{Use: "events", Short: "Inspect the server event feed", RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("events requires a subcommand: tail|history")
	}}
	var replay int
	eventsTail := &cobra.Command{Use: "tail", Short: "Follow live events (Ctrl+C to stop)", Example: "  extractctl events tail --replay 0", RunE: func(cmd *cobra.Command, args []string) error {
		info("following events from %s", cfg.Server)
		return newClient(cfg).tailEvents(cmd.Context(), replay, func(ev types.Event) {
			printEvent(cmd.OutOrStdout(), ev)
		})
	}}
	eventsTail.Flags().IntVar(&replay, "replay", 10, "history events to replay before live ones")
	var limit int
	eventsHistory := &cobra.Command{Use: "history", Short: "Print recorded events, oldest first", Example: "  extractctl events history --limit 20", RunE: func(cmd *cobra.Command, args []string) error {
		var hr types.HistoryResponse
		if err := newClient(cfg).getJSON(cmd.Context(), fmt.Sprintf("/events/history?limit=%d", limit), &hr); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, ev := range hr.Events {
			printEvent(out, ev)
		}
		fmt.Fprintf(out, "%d of %d recorded events\n", hr.Count, hr.Total)
		return nil
	}}
	eventsHistory.Flags().IntVar(&limit, "limit", 50, "maximum events to fetch")
	eventsCmd.AddCommand(eventsTail, eventsHistory)

	probeCmd := &cobra.Command{Use: "probe", Short: "Probe engine liveness through the server", Example: "  extractctl probe", RunE: func(cmd *cobra.Command, args []string) error {
		body, code, err := newClient(cfg).getText(cmd.Context(), "/api/isalive")
		if err != nil {
			return err
		}
		alive := code == http.StatusOK && strings.TrimSpace(body) == "true"
		fmt.Fprintf(cmd.OutOrStdout(), "engine alive: %v\n", alive)
		if !alive {
			return fmt.Errorf("engine not alive (status %d)", code)
		}
		return nil
	}}

	root.AddCommand(statusCmd, healthCmd, restartCmd, logsCmd, eventsCmd, probeCmd)

	// completion command
	completionCmd := &cobra.Command{Use: "completion", Short: "Generate the autocompletion script for the specified shell"}
	completionCmd.AddCommand(&cobra.Command{Use: "bash", Short: "Bash completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenBashCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "zsh", Short: "Zsh completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenZshCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "fish", Short: "Fish completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenFishCompletion(os.Stdout, true) }})
	completionCmd.AddCommand(&cobra.Command{Use: "powershell", Short: "PowerShell completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenPowerShellCompletionWithDesc(os.Stdout) }})
	root.AddCommand(completionCmd)

	return root
}

func printContainers(out io.Writer, ch types.ContainerHealth) {
	if len(ch.Containers) == 0 {
		if ch.Message != "" {
			fmt.Fprintf(out, "containers:     %s\n", ch.Message)
		}
		if ch.Error != "" {
			fmt.Fprintf(out, "containers:     error: %s\n", ch.Error)
		}
		return
	}
	fmt.Fprintln(out, "containers:")
	names := make([]string, 0, len(ch.Containers))
	for name := range ch.Containers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cs := ch.Containers[name]
		fmt.Fprintf(out, "  %-24s %s (healthy=%v)\n", name, cs.Status, cs.Healthy)
	}
}

func printEvent(out io.Writer, ev types.Event) {
	line := fmt.Sprintf("%s  %-20s", ev.Timestamp.Format(time.RFC3339), ev.Type)
	if len(ev.Data) > 0 {
		if b, err := json.Marshal(ev.Data); err == nil {
			line += " " + string(b)
		}
	}
	fmt.Fprintln(out, line)
}
