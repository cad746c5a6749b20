package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/latinbarber/booking-api/internal/domain/schedule"
	"github.com/latinbarber/booking-api/internal/events"
	"github.com/latinbarber/booking-api/internal/httperr"
	"github.com/latinbarber/booking-api/internal/models"
	"github.com/latinbarber/booking-api/internal/store"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	UserID string

	BarberName string
	ServiceID  string

	Date string
	Time string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo   store.Repository
	clock  schedule.Clock
	loc    *time.Location
	events *events.Dispatcher
}

func NewCreateBooking(
	repo store.Repository,
	clock schedule.Clock,
	loc *time.Location,
	dispatcher *events.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:   repo,
		clock:  clock,
		loc:    loc,
		events: dispatcher,
	}
}

// Execute books a slot. There is no check-then-insert: the insert itself is
// conditional on the slot key, so two concurrent calls for the same slot
// resolve to exactly one success and one conflict.
func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Identity
	// --------------------------------------------------
	if in.UserID == "" {
		return nil, httperr.ErrBusiness(
			httperr.CodeNotAuthenticated,
			"Debes iniciar sesión para reservar.",
		)
	}

	// --------------------------------------------------
	// Input shape
	// --------------------------------------------------
	barberName := strings.TrimSpace(in.BarberName)
	if barberName == "" {
		return nil, httperr.ErrBusiness(httperr.CodeValidation, "Selecciona un barbero.")
	}
	if in.ServiceID == "" {
		return nil, httperr.ErrBusiness(httperr.CodeValidation, "Selecciona un servicio.")
	}
	if in.Date == "" || in.Time == "" {
		return nil, httperr.ErrBusiness(httperr.CodeValidation, "Selecciona fecha y hora.")
	}
	if _, err := schedule.ParseDateTime(in.Date, in.Time, uc.loc); err != nil {
		return nil, httperr.ErrBusiness(
			httperr.CodeInvalidSchedule,
			"La fecha u hora seleccionada no es válida.",
		)
	}

	// --------------------------------------------------
	// Snapshot customer and service at booking time
	// --------------------------------------------------
	user, err := uc.repo.GetUserByID(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, httperr.ErrBusiness(
				httperr.CodeNotAuthenticated,
				"Debes iniciar sesión para reservar.",
			)
		}
		return nil, storeFailure(err)
	}

	svc, err := uc.repo.GetServiceByID(ctx, in.ServiceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeValidation, "Servicio no encontrado.")
		}
		return nil, storeFailure(err)
	}

	customerName := user.Name
	if customerName == "" {
		customerName = user.Email
	}

	ap := &models.Appointment{
		UserID:        user.ID,
		CustomerName:  customerName,
		CustomerEmail: user.Email,
		BarberName:    barberName,
		ServiceName:   svc.Name,
		Price:         svc.Price,
		Date:          in.Date,
		Time:          in.Time,
		Status:        models.StatusConfirmed,
		SlotKey:       schedule.SlotKey(barberName, in.Date, in.Time),
		CreatedAt:     uc.clock.Now().UnixMilli(),
	}

	// --------------------------------------------------
	// Atomic conditional insert
	// --------------------------------------------------
	if err := uc.repo.InsertAppointment(ctx, ap); err != nil {
		if errors.Is(err, store.ErrSlotTaken) {
			return nil, httperr.ErrBusiness(
				httperr.CodeSlotConflict,
				"¡Lo sentimos! Alguien acaba de ganar esta hora. Elige otra.",
			)
		}
		return nil, storeFailure(err)
	}

	uc.events.Dispatch(events.Event{
		Type:        events.BookingConfirmed,
		Appointment: *ap,
	})

	return ap, nil
}
