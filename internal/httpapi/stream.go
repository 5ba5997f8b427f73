package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"extractd/internal/events"
	"extractd/pkg/types"
)

// handleEventStream serves the live SSE feed. Each session gets an ack frame,
// a bounded history replay, then live events interleaved with keep-alive
// pings. The session ends when the client disconnects, the server shuts down,
// or the subscriber is evicted for falling behind.
func handleEventStream(bus *events.Broadcaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			writeJSONError(w, http.StatusInternalServerError, "streaming unsupported")
			return
		}
		replay, ok := queryInt(r, "replay", defaultReplayLimit)
		if !ok || replay < 0 {
			writeJSONError(w, http.StatusBadRequest, "replay must be a non-negative integer")
			return
		}

		// Register before writing anything so no event published after the
		// replay snapshot can be missed.
		sub, backlog := bus.SubscribeWithReplay(replay)
		defer bus.Unsubscribe(sub)

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)

		ctx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()

		lvl := requestLogLevel(r)
		if lvl >= LevelInfo {
			logInfo("stream_open", map[string]any{"remote": r.RemoteAddr, "replay": replay})
		}

		// Ack first; subscriber_count includes this session.
		ack := types.Event{
			Type:      events.TypeConnected,
			Data:      map[string]any{"subscriber_count": bus.SubscriberCount()},
			Timestamp: time.Now().UTC(),
		}
		if writeFrame(w, ack) != nil {
			return
		}
		for _, ev := range backlog {
			if writeFrame(w, ev) != nil {
				return
			}
		}
		flusher.Flush()

		ticker := time.NewTicker(keepAliveInterval)
		defer ticker.Stop()
		for {
			select {
			case ev, open := <-sub.C:
				if !open {
					// Evicted for falling behind; the client reconnects and
					// replays what it missed.
					if lvl >= LevelInfo {
						logInfo("stream_evicted", map[string]any{"remote": r.RemoteAddr})
					}
					return
				}
				if writeFrame(w, ev) != nil {
					return
				}
				flusher.Flush()
			case <-ticker.C:
				ping := types.Event{Type: events.TypePing, Timestamp: time.Now().UTC()}
				if writeFrame(w, ping) != nil {
					return
				}
				flusher.Flush()
			case <-ctx.Done():
				return
			}
		}
	}
}

// writeFrame emits one SSE frame: event name, id for persisted events, and
// the full record as JSON data.
func writeFrame(w io.Writer, ev types.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\n", ev.Type); err != nil {
		return err
	}
	if ev.ID != "" {
		if _, err := fmt.Fprintf(w, "id: %s\n", ev.ID); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", payload)
	return err
}

// handleEventHistory returns recent events, oldest first. limit=0 returns
// everything still retained.
func handleEventHistory(bus *events.Broadcaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := queryInt(r, "limit", defaultHistoryLimit)
		if !ok || limit < 0 {
			writeJSONError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		evs := bus.History(limit)
		writeJSON(w, http.StatusOK, types.HistoryResponse{
			Events: evs,
			Count:  len(evs),
			Total:  bus.Total(),
		})
	}
}
