package feed

import (
	"context"
	"log"
	"sync"

	"github.com/latinbarber/booking-api/internal/events"
	"github.com/latinbarber/booking-api/internal/models"
	"github.com/latinbarber/booking-api/internal/store"
)

// Phase of a subscription. A subscription is Priming while its snapshot is
// being captured and Live afterwards; change events are only delivered in
// Live, so records that predate the subscription never show up as "added".
type Phase int

const (
	Priming Phase = iota
	Live
)

type ChangeType string

const (
	Added   ChangeType = "added"
	Removed ChangeType = "removed"
)

type Change struct {
	Type        ChangeType  `json:"type"`
	Appointment models.Appointment `json:"appointment"`
}

type Subscription struct {
	snapshot []models.Appointment
	changes  chan Change

	mu    sync.Mutex
	phase Phase

	unsubscribe func()
	once        sync.Once
}

// Snapshot is the full appointment set at subscription time, newest first.
func (s *Subscription) Snapshot() []models.Appointment { return s.snapshot }

// Changes emits live added/removed markers. The channel closes on
// Unsubscribe or hub shutdown.
func (s *Subscription) Changes() <-chan Change { return s.changes }

func (s *Subscription) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *Subscription) setLive() {
	s.mu.Lock()
	s.phase = Live
	s.mu.Unlock()
}

func (s *Subscription) Unsubscribe() {
	s.once.Do(s.unsubscribe)
}

// Hub turns booking events into a push feed over the appointment
// collection. It implements events.Sink.
type Hub struct {
	repo store.Repository

	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	closed bool
}

func NewHub(repo store.Repository) *Hub {
	return &Hub{
		repo: repo,
		subs: make(map[*Subscription]struct{}),
	}
}

// Subscribe captures the current collection as the priming snapshot and
// switches the subscription to Live before any event can be delivered to
// it, so the snapshot and the change stream never overlap.
func (h *Hub) Subscribe(ctx context.Context) (*Subscription, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, context.Canceled
	}

	snapshot, err := h.repo.FindAppointments(ctx, store.AppointmentFilter{})
	if err != nil {
		return nil, err
	}

	sub := &Subscription{
		snapshot: snapshot,
		changes:  make(chan Change, 16),
		phase:    Priming,
	}
	sub.unsubscribe = func() {
		h.mu.Lock()
		if _, ok := h.subs[sub]; ok {
			delete(h.subs, sub)
			close(sub.changes)
		}
		h.mu.Unlock()
	}

	h.subs[sub] = struct{}{}
	sub.setLive()
	return sub, nil
}

func (h *Hub) Deliver(ev events.Event) {
	var ct ChangeType
	switch ev.Type {
	case events.BookingConfirmed:
		ct = Added
	case events.BookingCancelled:
		ct = Removed
	default:
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		if sub.Phase() != Live {
			continue
		}
		select {
		case sub.changes <- Change{Type: ct, Appointment: ev.Appointment}:
		default:
			// slow consumer: drop the change, the feed is best-effort
			log.Println("feed: dropping change for slow subscriber")
		}
	}
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for sub := range h.subs {
		delete(h.subs, sub)
		close(sub.changes)
	}
}
