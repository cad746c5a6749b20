package booking

import (
	"context"

	"github.com/latinbarber/booking-api/internal/models"
	"github.com/latinbarber/booking-api/internal/store"
)

// ListAppointments covers the three read projections. All of them come
// back newest-first by creation time, the order every screen displays.
type ListAppointments struct {
	repo store.Repository
}

func NewListAppointments(repo store.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) ForUser(ctx context.Context, userID string) ([]models.Appointment, error) {
	apps, err := uc.repo.FindAppointments(ctx, store.AppointmentFilter{UserID: userID})
	if err != nil {
		return nil, storeFailure(err)
	}
	return apps, nil
}

func (uc *ListAppointments) ForBarberAndDate(
	ctx context.Context,
	barberName string,
	date string,
) ([]models.Appointment, error) {

	apps, err := uc.repo.FindAppointments(ctx, store.AppointmentFilter{
		BarberName: barberName,
		Date:       date,
	})
	if err != nil {
		return nil, storeFailure(err)
	}
	return apps, nil
}

func (uc *ListAppointments) All(ctx context.Context) ([]models.Appointment, error) {
	apps, err := uc.repo.FindAppointments(ctx, store.AppointmentFilter{})
	if err != nil {
		return nil, storeFailure(err)
	}
	return apps, nil
}
