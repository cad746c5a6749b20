package booking

import (
	"context"
	"errors"
	"time"

	"github.com/latinbarber/booking-api/internal/domain/schedule"
	"github.com/latinbarber/booking-api/internal/events"
	"github.com/latinbarber/booking-api/internal/httperr"
	"github.com/latinbarber/booking-api/internal/store"
)

type CancelBooking struct {
	repo   store.Repository
	clock  schedule.Clock
	loc    *time.Location
	events *events.Dispatcher
}

func NewCancelBooking(
	repo store.Repository,
	clock schedule.Clock,
	loc *time.Location,
	dispatcher *events.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:   repo,
		clock:  clock,
		loc:    loc,
		events: dispatcher,
	}
}

// Execute deletes the appointment when the 8-hour notice window allows it.
// Cancellation is modeled as deletion; there is no cancelled status.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	userID string,
	appointmentID string,
	isAdmin bool,
) error {

	if userID == "" {
		return httperr.ErrBusiness(
			httperr.CodeNotAuthenticated,
			"Debes iniciar sesión.",
		)
	}

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return httperr.ErrBusiness(httperr.CodeNotFound, "La cita no existe.")
		}
		return storeFailure(err)
	}

	// Appointments are owned by their creator; admins may cancel any.
	if !isAdmin && ap.UserID != userID {
		return httperr.ErrBusiness(httperr.CodeNotFound, "La cita no existe.")
	}

	if err := schedule.CheckCancellable(ap.Date, ap.Time, uc.clock.Now(), uc.loc); err != nil {
		return err
	}

	if err := uc.repo.DeleteAppointmentByID(ctx, ap.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// already gone, nothing left to undo
			return nil
		}
		return storeFailure(err)
	}

	uc.events.Dispatch(events.Event{
		Type:        events.BookingCancelled,
		Appointment: *ap,
	})

	return nil
}
