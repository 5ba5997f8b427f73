package engine

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"extractd/internal/events"
)

// Supervisor owns the engine lifecycle state machine. Lifecycle operations
// (EnsureStarted, Stop, Restart) serialize on one mutex; state reads take
// snapshots and never block on lifecycle work.
type Supervisor struct {
	cfg       Config
	bus       *events.Broadcaster
	runner    Runner
	prober    Prober
	reporter  StatusReporter
	reporting bool

	opMu sync.Mutex // serializes lifecycle operations

	mu        sync.RWMutex
	state     State
	lastErr   string
	startTime time.Time
}

// Snapshot returns a read-only view of the supervisor state.
func (s *Supervisor) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{State: s.state, Err: s.lastErr}
}

// Ready reports whether the engine reached the ready state. It reads the
// snapshot only and never probes.
func (s *Supervisor) Ready() bool {
	return s.Snapshot().State == StateReady
}

func (s *Supervisor) setState(st State, errText string) {
	s.mu.Lock()
	s.state = st
	s.lastErr = errText
	s.mu.Unlock()
}

// EnsureStarted makes the engine ready. An engine that already answers its
// liveness probe is adopted as-is with no start command. Otherwise the
// containers are started (an already-running conflict counts as success) and
// readiness is awaited under the startup poll budget. A failed start command
// is returned as an error; an exhausted wait parks the supervisor in
// StateFailed and returns nil.
func (s *Supervisor) EnsureStarted(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	return s.ensureStarted(ctx)
}

func (s *Supervisor) ensureStarted(ctx context.Context) error {
	if s.prober.Ready(ctx) {
		s.setState(StateReady, "")
		log.Printf("engine event=ready reused=1 url=%s", s.cfg.EngineURL)
		s.bus.Publish(events.TypeReadinessReady, map[string]any{"elapsed_s": 0, "reused": true})
		s.report(ActivityIdle, "")
		return nil
	}

	if s.cfg.External {
		s.bus.Publish(events.TypeReadinessStarting, map[string]any{"external": true})
	} else {
		s.setState(StateStarting, "")
		log.Printf("engine event=starting compose=%q", s.cfg.ComposeFile)
		s.bus.Publish(events.TypeReadinessStarting, map[string]any{"compose_file": s.cfg.ComposeFile})
		s.report(ActivityWorking, "starting extraction engine")
		if err := s.runner.Start(ctx); err != nil {
			s.setState(StateFailed, err.Error())
			log.Printf("engine event=start_failed err=%v", err)
			s.bus.Publish(events.TypeReadinessFailed, map[string]any{"error": err.Error(), "stage": "start"})
			s.report(ActivityError, err.Error())
			return err
		}
		s.bus.EmitContainerEvent("start", map[string]any{"compose_file": s.cfg.ComposeFile})
	}

	s.waitReady(ctx, s.cfg.StartupPolls)
	return nil
}

// waitReady polls the prober until ready or the poll budget runs out,
// emitting a readiness_waiting event every ProgressEvery polls. Exhaustion
// parks the supervisor in StateFailed; no polling continues past a terminal
// state.
func (s *Supervisor) waitReady(ctx context.Context, polls int) bool {
	s.setState(StateWaiting, "")
	start := time.Now()
	for i := 0; i < polls; i++ {
		if s.prober.Ready(ctx) {
			elapsed := int(time.Since(start).Seconds())
			s.setState(StateReady, "")
			log.Printf("engine event=ready elapsed_s=%d polls=%d", elapsed, i+1)
			s.bus.Publish(events.TypeReadinessReady, map[string]any{"elapsed_s": elapsed, "polls": i + 1})
			s.report(ActivityIdle, "")
			return true
		}
		if i%s.cfg.ProgressEvery == 0 {
			elapsed := int(time.Since(start).Seconds())
			s.bus.Publish(events.TypeReadinessWaiting, map[string]any{"elapsed_s": elapsed, "polls": i})
			s.report(ActivityWorking, fmt.Sprintf("waiting for engine (%ds)", elapsed))
		}
		select {
		case <-ctx.Done():
			s.setState(StateFailed, "canceled: "+ctx.Err().Error())
			s.bus.Publish(events.TypeReadinessFailed, map[string]any{"error": ctx.Err().Error()})
			return false
		case <-time.After(s.cfg.ProbeInterval):
		}
	}
	msg := fmt.Sprintf("engine not ready after %d polls", polls)
	s.setState(StateFailed, msg)
	log.Printf("engine event=wait_timeout polls=%d", polls)
	s.bus.Publish(events.TypeReadinessFailed, map[string]any{"error": msg, "waited_s": int(time.Since(start).Seconds())})
	s.report(ActivityError, msg)
	return false
}

// Stop brings the engine down. Runner failures are logged and absorbed; the
// supervisor always ends stopped. External engines are left untouched.
func (s *Supervisor) Stop(ctx context.Context) {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	s.stop(ctx)
}

func (s *Supervisor) stop(ctx context.Context) {
	if s.cfg.External {
		return
	}
	s.report(ActivityWorking, "stopping engine containers")
	if err := s.runner.Stop(ctx); err != nil {
		log.Printf("engine event=stop_error err=%v", err)
	}
	s.setState(StateStopped, "")
	log.Printf("engine event=stopped")
	s.bus.EmitContainerEvent("stop", map[string]any{"compose_file": s.cfg.ComposeFile})
}

// Restart cycles the engine containers and waits for readiness under the
// restart poll budget. The returned bool reports whether the engine came
// back; an engine that stays down is a reported outcome, not an error.
func (s *Supervisor) Restart(ctx context.Context) (bool, error) {
	if s.cfg.External {
		return false, ErrUnmanagedEngine()
	}
	s.opMu.Lock()
	defer s.opMu.Unlock()

	log.Printf("engine event=restart compose=%q", s.cfg.ComposeFile)
	s.bus.EmitContainerEvent("restart", map[string]any{"compose_file": s.cfg.ComposeFile})
	s.report(ActivityWorking, "restarting engine containers")

	s.stop(ctx)
	select {
	case <-ctx.Done():
		s.setState(StateFailed, ctx.Err().Error())
		return false, ctx.Err()
	case <-time.After(s.cfg.RestartPause):
	}

	s.setState(StateStarting, "")
	s.bus.Publish(events.TypeReadinessStarting, map[string]any{"compose_file": s.cfg.ComposeFile, "restart": true})
	if err := s.runner.Start(ctx); err != nil {
		s.setState(StateFailed, err.Error())
		log.Printf("engine event=start_failed err=%v", err)
		s.bus.Publish(events.TypeReadinessFailed, map[string]any{"error": err.Error(), "stage": "start"})
		s.report(ActivityError, err.Error())
		return false, err
	}
	s.bus.EmitContainerEvent("start", map[string]any{"compose_file": s.cfg.ComposeFile, "restart": true})

	return s.waitReady(ctx, s.cfg.RestartPolls), nil
}

// Report forwards activity to the external reporter on behalf of callers
// outside the lifecycle path, such as the extraction proxy.
func (s *Supervisor) Report(a Activity, message string) {
	s.report(a, message)
}

// report forwards activity to the external reporter. Errors and panics are
// absorbed: readiness control flow never depends on the reporter.
func (s *Supervisor) report(a Activity, message string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("engine event=reporter_panic err=%v", r)
		}
	}()
	if err := s.reporter.Report(a, message); err != nil {
		log.Printf("engine event=reporter_error err=%v", err)
	}
}
