package feed

import (
	"context"
	"testing"
	"time"

	"github.com/latinbarber/booking-api/internal/domain/schedule"
	"github.com/latinbarber/booking-api/internal/events"
	"github.com/latinbarber/booking-api/internal/models"
	"github.com/latinbarber/booking-api/internal/store/memstore"
)

func seed(t *testing.T, repo *memstore.Store, barber, date, clock string) models.Appointment {
	t.Helper()
	ap := &models.Appointment{
		BarberName: barber,
		Date:       date,
		Time:       clock,
		SlotKey:    schedule.SlotKey(barber, date, clock),
	}
	if err := repo.InsertAppointment(context.Background(), ap); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return *ap
}

func TestSubscribe_SnapshotWithoutChangeEvents(t *testing.T) {
	repo := memstore.New()
	seed(t, repo, "Carlos", "10/03/2026", "09:00")
	seed(t, repo, "Carlos", "10/03/2026", "10:00")

	hub := NewHub(repo)
	defer hub.Close()

	sub, err := hub.Subscribe(context.Background())
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer sub.Unsubscribe()

	if len(sub.Snapshot()) != 2 {
		t.Fatalf("snapshot len = %d, want 2", len(sub.Snapshot()))
	}
	if sub.Phase() != Live {
		t.Fatalf("phase = %v, want Live after snapshot", sub.Phase())
	}

	// Pre-existing records never show up as "added".
	select {
	case ch := <-sub.Changes():
		t.Fatalf("unexpected change during priming: %+v", ch)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDeliver_EmitsAddedAndRemoved(t *testing.T) {
	repo := memstore.New()
	hub := NewHub(repo)
	defer hub.Close()

	sub, err := hub.Subscribe(context.Background())
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer sub.Unsubscribe()

	ap := models.Appointment{ID: "a1", BarberName: "Carlos"}
	hub.Deliver(events.Event{Type: events.BookingConfirmed, Appointment: ap})
	hub.Deliver(events.Event{Type: events.BookingCancelled, Appointment: ap})

	want := []ChangeType{Added, Removed}
	for _, w := range want {
		select {
		case ch := <-sub.Changes():
			if ch.Type != w {
				t.Fatalf("change = %s, want %s", ch.Type, w)
			}
			if ch.Appointment.ID != "a1" {
				t.Fatalf("appointment id = %q, want a1", ch.Appointment.ID)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %s change", w)
		}
	}
}

func TestUnsubscribe_ClosesChannel(t *testing.T) {
	hub := NewHub(memstore.New())
	defer hub.Close()

	sub, err := hub.Subscribe(context.Background())
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	sub.Unsubscribe()
	sub.Unsubscribe() // idempotent

	if _, open := <-sub.Changes(); open {
		t.Fatalf("channel still open after unsubscribe")
	}

	// Deliveries after unsubscribe must not panic.
	hub.Deliver(events.Event{Type: events.BookingConfirmed})
}
