package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"extractd/pkg/types"
)

// Runner manages the engine's container lifecycle.
type Runner interface {
	// Start brings the engine containers up. An engine that is already
	// running is success, not an error.
	Start(ctx context.Context) error
	// Stop tears the engine containers down.
	Stop(ctx context.Context) error
	// Health reports per-container status.
	Health(ctx context.Context) types.ContainerHealth
	// Logs returns the last lines of each container's log, keyed by
	// container name.
	Logs(ctx context.Context, lines int) (map[string]string, error)
}

// defaultContainerLabel selects this service's containers in docker queries.
const defaultContainerLabel = "extractd.service=engine"

// execFunc runs a command and returns stdout and stderr separately.
type execFunc func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out, errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut
	err := cmd.Run()
	return out.Bytes(), errOut.Bytes(), err
}

// ComposeRunner drives the engine containers through the docker CLI.
type ComposeRunner struct {
	ComposeFile string
	// Label filters docker queries down to this service's containers.
	Label string
	run   execFunc
}

func NewComposeRunner(composeFile string) *ComposeRunner {
	return &ComposeRunner{ComposeFile: composeFile, Label: defaultContainerLabel, run: runCommand}
}

// Start runs compose up. A conflict caused by containers that are already
// running counts as success.
func (r *ComposeRunner) Start(ctx context.Context) error {
	_, stderr, err := r.run(ctx, "docker", "compose", "-f", r.ComposeFile, "up", "-d")
	if err != nil {
		if isBenignStartConflict(string(stderr)) {
			return nil
		}
		return errStartFailed(commandDetail(stderr, err))
	}
	return nil
}

func (r *ComposeRunner) Stop(ctx context.Context) error {
	_, stderr, err := r.run(ctx, "docker", "compose", "-f", r.ComposeFile, "down")
	if err != nil {
		return fmt.Errorf("engine stop: %s", commandDetail(stderr, err))
	}
	return nil
}

// psContainer is one line of docker ps JSON output.
type psContainer struct {
	Names string `json:"Names"`
	State string `json:"State"`
}

func (r *ComposeRunner) Health(ctx context.Context) types.ContainerHealth {
	stdout, _, err := r.run(ctx, "docker", "ps", "--filter", "label="+r.Label, "--format", "{{json .}}")
	if err != nil {
		return types.ContainerHealth{Containers: map[string]types.ContainerStatus{}, Error: err.Error()}
	}
	statuses := make(map[string]types.ContainerStatus)
	for _, line := range strings.Split(string(stdout), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var c psContainer
		if err := json.Unmarshal([]byte(line), &c); err != nil {
			continue
		}
		statuses[c.Names] = types.ContainerStatus{Status: c.State, Healthy: c.State == "running"}
	}
	if len(statuses) == 0 {
		return types.ContainerHealth{Containers: statuses, Message: "no containers found"}
	}
	all := true
	for _, s := range statuses {
		if !s.Healthy {
			all = false
			break
		}
	}
	return types.ContainerHealth{Healthy: all, Containers: statuses}
}

func (r *ComposeRunner) Logs(ctx context.Context, lines int) (map[string]string, error) {
	stdout, stderr, err := r.run(ctx, "docker", "ps", "--filter", "label="+r.Label, "--format", "{{.Names}}")
	if err != nil {
		return nil, fmt.Errorf("list containers: %s", commandDetail(stderr, err))
	}
	logs := make(map[string]string)
	for _, name := range strings.Fields(string(stdout)) {
		out, errOut, err := r.run(ctx, "docker", "logs", "--tail", strconv.Itoa(lines), name)
		if err != nil {
			logs[name] = "error: " + commandDetail(errOut, err)
			continue
		}
		// docker logs splits the container's own stdout and stderr.
		logs[name] = string(out) + string(errOut)
	}
	return logs, nil
}

// Conflict texts docker emits when the requested containers are already up.
var benignStartPatterns = []string{
	"is already in use",
	"already running",
	"is up-to-date",
}

func isBenignStartConflict(stderr string) bool {
	s := strings.ToLower(stderr)
	for _, p := range benignStartPatterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

// commandDetail prefers a stderr tail over the bare exec error.
func commandDetail(stderr []byte, err error) string {
	s := strings.TrimSpace(string(stderr))
	if len(s) > 4096 {
		s = s[len(s)-4096:]
	}
	if s == "" {
		return err.Error()
	}
	return s
}
