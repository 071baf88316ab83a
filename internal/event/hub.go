package event

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	DefaultQueueSize        = 1024
	DefaultWorkers          = 4
	DefaultSubscriberBuffer = 16
)

// Filter decides whether a created/updated event is delivered to a viewer.
// It runs on hub workers, never on the publishing goroutine.
type Filter func(ctx context.Context, viewerID uuid.UUID, e Event) bool

// HubConfig sizes the hub. Zero values fall back to the defaults.
type HubConfig struct {
	QueueSize        int
	Workers          int
	SubscriberBuffer int
}

type subscription struct {
	id uint64
	ch chan Event
}

// Hub is an in-process topic router with one topic per viewer. Publish only
// enqueues; a fixed worker pool fans events out with non-blocking sends, so
// a slow subscriber loses events instead of stalling others.
type Hub struct {
	log     *slog.Logger
	metrics *hubMetrics
	buffer  int

	mu     sync.RWMutex
	topics map[uuid.UUID]map[uint64]chan Event
	seq    atomic.Uint64
	filter Filter

	queue    chan Event
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewHub creates a hub and starts its workers. reg may be nil.
func NewHub(log *slog.Logger, cfg HubConfig, reg prometheus.Registerer) *Hub {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.SubscriberBuffer <= 0 {
		cfg.SubscriberBuffer = DefaultSubscriberBuffer
	}

	h := &Hub{
		log:    log.With("component", "event_hub"),
		buffer: cfg.SubscriberBuffer,
		topics: make(map[uuid.UUID]map[uint64]chan Event),
		queue:  make(chan Event, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}
	if reg != nil {
		h.metrics = newHubMetrics(reg)
	}

	for range cfg.Workers {
		h.wg.Add(1)
		go h.worker()
	}
	return h
}

// SetFilter installs the audience filter used for created/updated events.
// A nil filter delivers to every topic.
func (h *Hub) SetFilter(f Filter) {
	h.mu.Lock()
	h.filter = f
	h.mu.Unlock()
}

// Publish enqueues e. A full queue or a stopped hub drops the event.
func (h *Hub) Publish(_ context.Context, e Event) {
	select {
	case <-h.stopCh:
		h.metrics.incDropped(dropStopped)
		return
	default:
	}

	select {
	case h.queue <- e:
		h.metrics.incPublished(e.Type)
	default:
		h.metrics.incDropped(dropQueueFull)
		h.log.Warn("event queue full, dropping event",
			slog.String("type", e.Type.String()),
			slog.String("broadcast_id", e.BroadcastID.String()),
		)
	}
}

// Subscribe opens a subscription on the viewer's topic. The returned
// unsubscribe func is idempotent and closes the channel. After Stop the
// channel is returned already closed.
func (h *Hub) Subscribe(viewerID uuid.UUID) (<-chan Event, func()) {
	ch := make(chan Event, h.buffer)
	id := h.seq.Add(1)

	// Stop closes stopCh before it takes h.mu to drain topics, so checking
	// under the lock either registers ch where Stop will close it or sees
	// the hub already stopped.
	h.mu.Lock()
	select {
	case <-h.stopCh:
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	default:
	}
	subs, ok := h.topics[viewerID]
	if !ok {
		subs = make(map[uint64]chan Event)
		h.topics[viewerID] = subs
	}
	subs[id] = ch
	h.mu.Unlock()
	h.metrics.addSubscribers(1)

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			h.mu.Lock()
			removed := false
			if subs, ok := h.topics[viewerID]; ok {
				if _, ok := subs[id]; ok {
					delete(subs, id)
					removed = true
				}
				if len(subs) == 0 {
					delete(h.topics, viewerID)
				}
			}
			h.mu.Unlock()

			// Stop may already have closed it.
			if removed {
				close(ch)
				h.metrics.addSubscribers(-1)
			}
		})
	}
	return ch, unsubscribe
}

// Stop halts the workers and closes every subscriber channel. Events still
// queued are discarded. Safe to call more than once.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.stopCh)
		h.wg.Wait()

		h.mu.Lock()
		topics := h.topics
		h.topics = make(map[uuid.UUID]map[uint64]chan Event)
		h.mu.Unlock()

		n := 0
		for _, subs := range topics {
			for _, ch := range subs {
				close(ch)
				n++
			}
		}
		h.metrics.addSubscribers(-n)
	})
}

func (h *Hub) worker() {
	defer h.wg.Done()
	for {
		select {
		case <-h.stopCh:
			return
		case e := <-h.queue:
			h.deliver(e)
		}
	}
}

type target struct {
	viewerID uuid.UUID
	subs     []subscription
}

func (h *Hub) deliver(e Event) {
	h.mu.RLock()
	filter := h.filter
	var targets []target
	if readerID, ok := e.reader(); ok {
		if subs, ok := h.topics[readerID]; ok {
			targets = append(targets, target{viewerID: readerID, subs: collect(subs)})
		}
	} else {
		targets = make([]target, 0, len(h.topics))
		for viewerID, subs := range h.topics {
			targets = append(targets, target{viewerID: viewerID, subs: collect(subs)})
		}
	}
	h.mu.RUnlock()

	ctx := context.Background()
	for _, t := range targets {
		if e.Type != TypeBroadcastRead && filter != nil && !filter(ctx, t.viewerID, e) {
			continue
		}
		for _, s := range t.subs {
			h.send(s.ch, e)
		}
	}
}

func collect(subs map[uint64]chan Event) []subscription {
	out := make([]subscription, 0, len(subs))
	for id, ch := range subs {
		out = append(out, subscription{id: id, ch: ch})
	}
	return out
}

func (h *Hub) send(ch chan Event, e Event) {
	// The subscriber may unsubscribe between the snapshot and the send.
	defer func() { _ = recover() }()
	select {
	case ch <- e:
		h.metrics.incDelivered(e.Type)
	default:
		h.metrics.incDropped(dropSlowReceiver)
	}
}

// Subscribers reports the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, subs := range h.topics {
		n += len(subs)
	}
	return n
}
