// Package progress defines the events a long-running TTMc job reports
// as it works through a benchmark or a served request, and a small
// broadcaster used to fan them out to SSE subscribers.
package progress

import "sync"

// Stage names a phase of a TTMc job's lifecycle.
type Stage string

const (
	StageQueued    Stage = "queued"
	StageCostModel Stage = "cost_model"
	StageRunning   Stage = "running"
	StageDone      Stage = "done"
	StageFailed    Stage = "failed"
)

// Event is one reported step of a job's progress.
type Event struct {
	Seq     int     `json:"seq"`
	Stage   Stage   `json:"stage"`
	Mode    int     `json:"mode,omitempty"`
	Flops   float64 `json:"flops,omitempty"`
	Message string  `json:"message,omitempty"`
}

// Broadcaster fans Events out to any number of subscribed channels, used
// to drive one SSE stream per subscriber. A subscriber that falls behind
// misses the events that do not fit its buffer rather than blocking the
// job; it stays subscribed.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
	seq  int
}

// NewBroadcaster returns an empty Broadcaster ready to accept
// subscribers.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[chan Event]struct{})}
}

// Subscribe registers a new channel and returns it along with an
// unsubscribe function the caller must invoke when done listening.
func (b *Broadcaster) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch, func() {
		b.mu.Lock()
		delete(b.subs, ch)
		close(ch)
		b.mu.Unlock()
	}
}

// Publish stamps ev with the next sequence number and delivers it to
// every current subscriber, dropping it for any subscriber whose buffer
// is full instead of blocking.
func (b *Broadcaster) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	ev.Seq = b.seq
	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
