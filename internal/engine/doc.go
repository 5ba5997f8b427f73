// Package engine supervises the document-extraction engine this service
// fronts: container lifecycle, readiness orchestration, health reporting, and
// the HTTP client used to proxy extraction calls. It is structured into small
// files by concern:
//
//   - supervisor.go: Supervisor state machine (EnsureStarted, Stop, Restart).
//   - config.go: Config and package defaults; NewSupervisor applies defaults.
//   - types.go: lifecycle State values and the read-only Snapshot.
//   - errors.go: error types and helpers (IsUnmanagedEngine, IsStartFailed).
//   - probe.go: Prober interface and the HTTP liveness probe.
//   - runner.go: Runner interface and the docker compose implementation.
//   - reporter.go: best-effort external status reporting.
//   - status.go: Status/Health/Logs reporting helpers.
//   - client.go: engine HTTP client with per-operation timeouts.
//
// The state machine is deliberately simple: stopped, starting,
// waiting_for_engine, ready, failed. A start command that fails is returned
// to the caller; a readiness wait that runs out of polls parks the supervisor
// in failed, observable through Snapshot and Status, without an error.
// External packages should use public methods only.
package engine
