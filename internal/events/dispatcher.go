package events

import (
	"log"

	"github.com/latinbarber/booking-api/internal/models"
)

type Type string

const (
	BookingConfirmed Type = "booking_confirmed"
	BookingCancelled Type = "booking_cancelled"
)

type Event struct {
	Type        Type
	Appointment models.Appointment
}

// Sink receives dispatched events. Delivery is fire-and-forget; a sink must
// not block.
type Sink interface {
	Deliver(ev Event)
}

// Dispatcher decouples the booking path from its observers (live feed,
// broker notifier). Events flow through a buffered queue drained by a
// single worker.
type Dispatcher struct {
	sinks []Sink
	queue chan Event
	done  chan struct{}
}

func NewDispatcher(sinks ...Sink) *Dispatcher {
	d := &Dispatcher{
		sinks: sinks,
		queue: make(chan Event, 100),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		for _, s := range d.sinks {
			s.Deliver(ev)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		// queue full: drop rather than stall a booking
		log.Println("events: queue full, dropping", ev.Type)
	}
}

// Close drains pending events and stops the worker.
func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}
