// Package events provides the in-process event broadcast subsystem: a
// bounded history of published events plus fan-out to live subscribers over
// buffered channels. It is structured into small files by concern:
//
//   - broadcaster.go: Broadcaster core (publish, subscribe, history queries).
//   - ring.go: historyRing, the fixed-capacity chronological buffer.
//   - emit.go: event type names and typed publish helpers.
//   - metrics.go: Prometheus instrumentation.
//
// Publishing never blocks and never fails: a subscriber whose mailbox is full
// at publish time is evicted (removed from the registry, channel closed)
// inside the same critical section. External packages should treat Event
// values as immutable once published.
package events
