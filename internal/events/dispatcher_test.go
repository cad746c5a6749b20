package events

import (
	"sync"
	"testing"

	"github.com/latinbarber/booking-api/internal/models"
)

type captureSink struct {
	mu  sync.Mutex
	got []Event
}

func (c *captureSink) Deliver(ev Event) {
	c.mu.Lock()
	c.got = append(c.got, ev)
	c.mu.Unlock()
}

func (c *captureSink) events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Event(nil), c.got...)
}

func TestDispatcher_DeliversInOrderToAllSinks(t *testing.T) {
	a := &captureSink{}
	b := &captureSink{}
	d := NewDispatcher(a, b)

	d.Dispatch(Event{Type: BookingConfirmed, Appointment: models.Appointment{ID: "1"}})
	d.Dispatch(Event{Type: BookingCancelled, Appointment: models.Appointment{ID: "1"}})
	d.Close()

	for _, sink := range []*captureSink{a, b} {
		got := sink.events()
		if len(got) != 2 {
			t.Fatalf("delivered = %d events, want 2", len(got))
		}
		if got[0].Type != BookingConfirmed || got[1].Type != BookingCancelled {
			t.Fatalf("order = [%s %s]", got[0].Type, got[1].Type)
		}
	}
}

func TestDispatcher_CloseDrainsQueue(t *testing.T) {
	sink := &captureSink{}
	d := NewDispatcher(sink)

	for i := 0; i < 50; i++ {
		d.Dispatch(Event{Type: BookingConfirmed})
	}
	d.Close()

	if len(sink.events()) != 50 {
		t.Fatalf("delivered = %d, want 50", len(sink.events()))
	}
}
