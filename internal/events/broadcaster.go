package events

import (
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"extractd/pkg/types"
)

const (
	defaultHistorySize = 100
	defaultMailboxSize = 100
)

// Config controls Broadcaster capacities. Zero values take package defaults.
type Config struct {
	// HistorySize is the number of events retained for replay and the
	// history endpoint.
	HistorySize int
	// MailboxSize is the per-subscriber channel buffer. A subscriber whose
	// mailbox is full at publish time is evicted.
	MailboxSize int
}

// Subscriber is a registered event consumer.
type Subscriber struct {
	// C delivers published events in FIFO order. It is closed when the
	// subscriber is evicted or unsubscribed; a closed C means the
	// registration is gone and Unsubscribe is a no-op.
	C <-chan types.Event

	id uint64
	ch chan types.Event
}

// Broadcaster fans published events out to subscribers and records them in a
// bounded history. One lock covers the registry and the history, so a
// subscriber registered mid-publish sees either all or none of that publish,
// and replay-then-stream sessions have no gap or duplicate.
type Broadcaster struct {
	mu      sync.RWMutex
	subs    map[uint64]chan types.Event
	nextID  uint64
	history *historyRing
	mailbox int
}

func New() *Broadcaster { return NewWithConfig(Config{}) }

// NewWithConfig creates a Broadcaster, applying defaults for zero fields.
func NewWithConfig(cfg Config) *Broadcaster {
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = defaultHistorySize
	}
	if cfg.MailboxSize <= 0 {
		cfg.MailboxSize = defaultMailboxSize
	}
	return &Broadcaster{
		subs:    make(map[uint64]chan types.Event),
		history: newHistoryRing(cfg.HistorySize),
		mailbox: cfg.MailboxSize,
	}
}

// Publish records an event of the given type and delivers it to every live
// subscriber without blocking. A subscriber whose mailbox cannot take the
// event is evicted: removed from the registry and its channel closed. The
// returned Event is the stored record.
func (b *Broadcaster) Publish(eventType string, data map[string]any) types.Event {
	e := types.Event{
		ID:        ulid.Make().String(),
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}

	b.mu.Lock()
	b.history.append(e)
	for id, ch := range b.subs {
		select {
		case ch <- e:
		default:
			delete(b.subs, id)
			close(ch)
			subscribersEvictedTotal.Inc()
		}
	}
	live := len(b.subs)
	b.mu.Unlock()

	eventsPublishedTotal.WithLabelValues(eventType).Inc()
	subscribersLive.Set(float64(live))
	return e
}

// Subscribe registers a new subscriber with a buffered mailbox.
func (b *Broadcaster) Subscribe() *Subscriber {
	b.mu.Lock()
	sub := b.addLocked()
	live := len(b.subs)
	b.mu.Unlock()
	subscribersLive.Set(float64(live))
	return sub
}

// SubscribeWithReplay registers a subscriber and returns the most recent
// events (up to limit, oldest first) from the same critical section. Events
// published after the snapshot arrive on the subscriber channel, so a caller
// that replays the snapshot and then streams misses nothing and repeats
// nothing. limit <= 0 disables replay.
func (b *Broadcaster) SubscribeWithReplay(limit int) (*Subscriber, []types.Event) {
	b.mu.Lock()
	sub := b.addLocked()
	var replay []types.Event
	if limit > 0 {
		replay = b.history.tail(limit)
	}
	live := len(b.subs)
	b.mu.Unlock()
	subscribersLive.Set(float64(live))
	return sub, replay
}

func (b *Broadcaster) addLocked() *Subscriber {
	b.nextID++
	ch := make(chan types.Event, b.mailbox)
	b.subs[b.nextID] = ch
	return &Subscriber{C: ch, id: b.nextID, ch: ch}
}

// Unsubscribe removes sub and closes its channel. Unsubscribing nil, an
// evicted subscriber, or one already removed is a no-op.
func (b *Broadcaster) Unsubscribe(sub *Subscriber) {
	if sub == nil {
		return
	}
	b.mu.Lock()
	if ch, ok := b.subs[sub.id]; ok {
		delete(b.subs, sub.id)
		close(ch)
	}
	live := len(b.subs)
	b.mu.Unlock()
	subscribersLive.Set(float64(live))
}

// History returns up to limit recorded events, oldest first. limit <= 0
// returns everything retained.
func (b *Broadcaster) History(limit int) []types.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.history.tail(limit)
}

// SubscriberCount reports the number of live subscribers.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Total reports how many events were ever recorded, including those no
// longer retained in history.
func (b *Broadcaster) Total() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.history.total
}
