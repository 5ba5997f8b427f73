package events

import "extractd/pkg/types"

// historyRing is a fixed-capacity chronological buffer of events. Appending
// to a full ring evicts the oldest entry. Not safe for concurrent use; the
// Broadcaster guards it with its own lock.
type historyRing struct {
	buf   []types.Event
	head  int    // index of the oldest entry
	size  int    // number of valid entries
	total uint64 // count of all entries ever appended
}

func newHistoryRing(capacity int) *historyRing {
	if capacity < 1 {
		capacity = 1
	}
	return &historyRing{buf: make([]types.Event, capacity)}
}

func (r *historyRing) append(e types.Event) {
	tail := (r.head + r.size) % len(r.buf)
	r.buf[tail] = e
	if r.size < len(r.buf) {
		r.size++
	} else {
		r.head = (r.head + 1) % len(r.buf)
	}
	r.total++
}

// tail returns up to limit of the most recent entries, oldest first.
// limit <= 0 returns every retained entry.
func (r *historyRing) tail(limit int) []types.Event {
	n := r.size
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]types.Event, 0, n)
	for i := r.size - n; i < r.size; i++ {
		out = append(out, r.buf[(r.head+i)%len(r.buf)])
	}
	return out
}
