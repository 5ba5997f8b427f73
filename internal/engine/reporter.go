package engine

import "log"

// Activity is the coarse status pushed to an external status consumer.
type Activity string

const (
	ActivityWorking Activity = "working"
	ActivityIdle    Activity = "idle"
	ActivityError   Activity = "error"
)

// StatusReporter pushes the service's activity to an external consumer.
// Implementations should be quick; errors and panics are absorbed by the
// caller and never influence readiness control flow.
type StatusReporter interface {
	Report(a Activity, message string) error
}

// NopReporter is the default; it drops reports.
type NopReporter struct{}

func (NopReporter) Report(Activity, string) error { return nil }

// LogReporter writes activity reports to the process log. Useful when no
// external consumer is wired but operators still want the trail.
type LogReporter struct{}

func (LogReporter) Report(a Activity, message string) error {
	log.Printf("engine event=activity status=%s message=%q", a, message)
	return nil
}
