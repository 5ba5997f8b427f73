package events

import "math"

// Event types published by the service. Stream-only types (ack, ping) are
// written to live subscriber sessions but never recorded in history.
const (
	TypeExtractionStart   = "extraction_start"
	TypeExtractionSuccess = "extraction_success"
	TypeExtractionFailure = "extraction_failure"

	TypeReadinessStarting = "readiness_starting"
	TypeReadinessWaiting  = "readiness_waiting"
	TypeReadinessReady    = "readiness_ready"
	TypeReadinessFailed   = "readiness_failed"

	TypeConnected = "connected" // stream-only
	TypePing      = "ping"      // stream-only
)

// maxErrorLen bounds the error text carried in extraction_failure payloads.
const maxErrorLen = 200

// EmitExtractionStart records the start of a document extraction.
func (b *Broadcaster) EmitExtractionStart(filename, endpoint string, sizeKB int) {
	b.Publish(TypeExtractionStart, map[string]any{
		"filename":     filename,
		"endpoint":     endpoint,
		"file_size_kb": sizeKB,
	})
}

// EmitExtractionSuccess records a completed engine round-trip. The engine's
// own status code is carried in the payload, so non-2xx engine answers still
// count as successful proxy calls.
func (b *Broadcaster) EmitExtractionSuccess(filename, endpoint string, latencyMS float64, responseSizeKB, statusCode int) {
	b.Publish(TypeExtractionSuccess, map[string]any{
		"filename":         filename,
		"endpoint":         endpoint,
		"latency_ms":       round1(latencyMS),
		"response_size_kb": responseSizeKB,
		"status_code":      statusCode,
	})
}

// EmitExtractionFailure records a failed extraction. The error text is
// truncated to a bounded length so a single failure cannot bloat history.
func (b *Broadcaster) EmitExtractionFailure(filename, endpoint, errText string, latencyMS float64) {
	b.Publish(TypeExtractionFailure, map[string]any{
		"filename":   filename,
		"endpoint":   endpoint,
		"error":      truncate(errText, maxErrorLen),
		"latency_ms": round1(latencyMS),
	})
}

// EmitContainerEvent records a container lifecycle event under the
// container_<subtype> type name.
func (b *Broadcaster) EmitContainerEvent(subtype string, details map[string]any) {
	b.Publish("container_"+subtype, details)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
