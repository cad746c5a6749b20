package store

import (
	"context"

	"github.com/latinbarber/booking-api/internal/models"
)

// AppointmentFilter is equality-only, mirroring the query surface the
// mobile client had against its document collections. Zero values mean
// "any".
type AppointmentFilter struct {
	BarberName string
	Date       string
	Time       string
	UserID     string
}

// Repository is the persistence contract the engine runs against. All
// durable state lives behind it; the engine itself keeps no shared mutable
// state between calls.
type Repository interface {
	// -------- Appointments --------

	// FindAppointments returns matches ordered by created_at descending.
	FindAppointments(ctx context.Context, f AppointmentFilter) ([]models.Appointment, error)

	// InsertAppointment assigns an ID when empty and persists the record.
	// A slot-key collision returns ErrSlotTaken without writing anything;
	// the check and the write are a single atomic step.
	InsertAppointment(ctx context.Context, ap *models.Appointment) error

	// GetAppointmentByID returns ErrNotFound for an unknown id.
	GetAppointmentByID(ctx context.Context, id string) (*models.Appointment, error)

	// DeleteAppointmentByID returns ErrNotFound for an unknown id.
	DeleteAppointmentByID(ctx context.Context, id string) error

	// -------- Barbers --------
	ListBarbers(ctx context.Context) ([]models.Barber, error)
	CreateBarber(ctx context.Context, b *models.Barber) error
	DeleteBarberByID(ctx context.Context, id string) error

	// -------- Services --------
	ListServices(ctx context.Context) ([]models.Service, error)
	GetServiceByID(ctx context.Context, id string) (*models.Service, error)
	CreateService(ctx context.Context, s *models.Service) error
	DeleteServiceByID(ctx context.Context, id string) error

	// -------- Shop config (singleton) --------

	// GetShopConfig returns the defaults when the document was never saved.
	GetShopConfig(ctx context.Context) (models.ShopConfig, error)

	// SaveShopConfig overwrites the whole document.
	SaveShopConfig(ctx context.Context, cfg models.ShopConfig) error

	// -------- Users --------
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
	UpdateUserFields(ctx context.Context, id string, fields map[string]any) error
}
