package schedule

import (
	"time"

	"github.com/latinbarber/booking-api/internal/httperr"
)

const (
	// CancelWindowHours is the minimum notice for a cancellation. Exactly
	// 8 whole hours of notice is still eligible.
	CancelWindowHours = 8

	// RetentionWindow is how long an appointment outlives its date before
	// the purge removes it.
	RetentionWindow = 3 * 24 * time.Hour
)

// HoursUntil is integer-millisecond division, truncating toward zero.
func HoursUntil(appointment, now time.Time) int64 {
	return (appointment.UnixMilli() - now.UnixMilli()) / 3_600_000
}

// CheckCancellable enforces the notice window. An unparseable schedule is a
// hard rejection: a cancellation-eligibility check must never fail open.
func CheckCancellable(date, clock string, now time.Time, loc *time.Location) error {
	at, err := ParseDateTime(date, clock, loc)
	if err != nil {
		return httperr.ErrBusiness(
			httperr.CodeInvalidSchedule,
			"La cita tiene una fecha u hora inválida.",
		)
	}

	if HoursUntil(at, now) < CancelWindowHours {
		return httperr.ErrBusiness(
			httperr.CodeCancellationWindow,
			"Solo puedes cancelar con al menos 8 horas de anticipación.",
		)
	}
	return nil
}

// Expired reports whether an appointment dated on day `date` has outlived
// the retention window at instant `now`.
func Expired(date time.Time, now time.Time) bool {
	return date.Add(RetentionWindow).Before(now)
}
