package booking

import (
	"context"
	"log"
	"time"

	"github.com/latinbarber/booking-api/internal/domain/schedule"
	"github.com/latinbarber/booking-api/internal/events"
	"github.com/latinbarber/booking-api/internal/store"
)

type PurgeExpired struct {
	repo   store.Repository
	loc    *time.Location
	events *events.Dispatcher
}

func NewPurgeExpired(
	repo store.Repository,
	loc *time.Location,
	dispatcher *events.Dispatcher,
) *PurgeExpired {
	return &PurgeExpired{repo: repo, loc: loc, events: dispatcher}
}

// Execute removes appointments whose date plus the 3-day retention window
// lies before `now`. The same `now` is applied to the whole scan so a run
// is deterministic for a given input set; a second run over the same data
// removes nothing. An empty userID scans the whole collection, otherwise
// only that user's records.
func (uc *PurgeExpired) Execute(
	ctx context.Context,
	now time.Time,
	userID string,
) (int, error) {

	apps, err := uc.repo.FindAppointments(ctx, store.AppointmentFilter{UserID: userID})
	if err != nil {
		return 0, storeFailure(err)
	}

	removed := 0
	for _, ap := range apps {
		day, err := schedule.ParseDate(ap.Date, uc.loc)
		if err != nil {
			// one malformed date must not block the rest of the scan
			log.Printf("purge: skipping appointment %s with bad date %q", ap.ID, ap.Date)
			continue
		}
		if !schedule.Expired(day, now) {
			continue
		}

		if err := uc.repo.DeleteAppointmentByID(ctx, ap.ID); err != nil {
			log.Printf("purge: delete %s: %v", ap.ID, err)
			continue
		}
		removed++

		uc.events.Dispatch(events.Event{
			Type:        events.BookingCancelled,
			Appointment: ap,
		})
	}

	return removed, nil
}
