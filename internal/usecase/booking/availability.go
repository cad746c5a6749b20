package booking

import (
	"context"
	"strings"

	"github.com/latinbarber/booking-api/internal/cache"
	"github.com/latinbarber/booking-api/internal/domain/schedule"
	"github.com/latinbarber/booking-api/internal/httperr"
	"github.com/latinbarber/booking-api/internal/store"
)

type GetAvailability struct {
	repo   store.Repository
	config *cache.ShopConfigCache
}

func NewGetAvailability(
	repo store.Repository,
	config *cache.ShopConfigCache,
) *GetAvailability {
	return &GetAvailability{repo: repo, config: config}
}

// Execute returns the free HH:mm slot starts for a barber/date pair, in
// chronological order.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	barberName string,
	date string,
) ([]string, error) {

	barberName = strings.TrimSpace(barberName)
	date = strings.TrimSpace(date)
	if barberName == "" {
		return nil, httperr.ErrBusiness(httperr.CodeValidation, "Selecciona un barbero.")
	}
	if date == "" {
		return nil, httperr.ErrBusiness(httperr.CodeValidation, "Selecciona una fecha.")
	}

	cfg, err := uc.config.Get(ctx)
	if err != nil {
		return nil, storeFailure(err)
	}

	existing, err := uc.repo.FindAppointments(ctx, store.AppointmentFilter{
		BarberName: barberName,
		Date:       date,
	})
	if err != nil {
		return nil, storeFailure(err)
	}

	occupied := make([]string, 0, len(existing))
	for _, ap := range existing {
		occupied = append(occupied, ap.Time)
	}

	return schedule.AvailableSlots(cfg.OpenTime, cfg.CloseTime, occupied), nil
}
