package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/latinbarber/booking-api/internal/models"
	"github.com/latinbarber/booking-api/internal/store"
)

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *GormRepository) FindAppointments(
	ctx context.Context,
	f store.AppointmentFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).Model(&models.Appointment{})
	if f.BarberName != "" {
		q = q.Where("barber_name = ?", f.BarberName)
	}
	if f.Date != "" {
		q = q.Where("date = ?", f.Date)
	}
	if f.Time != "" {
		q = q.Where("time = ?", f.Time)
	}
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}

	var apps []models.Appointment
	if err := q.Order("created_at DESC, id DESC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// InsertAppointment relies on the unique index over slot_key: the insert
// either lands or loses to a concurrent booking, with no read in between.
func (r *GormRepository) InsertAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	if ap.ID == "" {
		ap.ID = uuid.NewString()
	}

	err := r.db.WithContext(ctx).Create(ap).Error
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return store.ErrSlotTaken
	}
	return err
}

func (r *GormRepository) GetAppointmentByID(ctx context.Context, id string) (*models.Appointment, error) {
	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &ap, nil
}

func (r *GormRepository) DeleteAppointmentByID(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Barbers
// --------------------------------------------------

func (r *GormRepository) ListBarbers(ctx context.Context) ([]models.Barber, error) {
	var barbers []models.Barber
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&barbers).Error; err != nil {
		return nil, err
	}
	return barbers, nil
}

func (r *GormRepository) CreateBarber(ctx context.Context, b *models.Barber) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *GormRepository) DeleteBarberByID(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Barber{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *GormRepository) ListServices(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *GormRepository) GetServiceByID(ctx context.Context, id string) (*models.Service, error) {
	var sv models.Service
	if err := r.db.WithContext(ctx).First(&sv, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &sv, nil
}

func (r *GormRepository) CreateService(ctx context.Context, sv *models.Service) error {
	if sv.ID == "" {
		sv.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(sv).Error
}

func (r *GormRepository) DeleteServiceByID(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Service{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Shop config
// --------------------------------------------------

func (r *GormRepository) GetShopConfig(ctx context.Context) (models.ShopConfig, error) {
	var cfg models.ShopConfig
	err := r.db.WithContext(ctx).First(&cfg, "id = ?", models.ConfigID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DefaultShopConfig(), nil
	}
	if err != nil {
		return models.ShopConfig{}, err
	}
	return cfg, nil
}

func (r *GormRepository) SaveShopConfig(ctx context.Context, cfg models.ShopConfig) error {
	cfg.ID = models.ConfigID
	return r.db.WithContext(ctx).Save(&cfg).Error
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *GormRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *GormRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *GormRepository) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	err := r.db.WithContext(ctx).Create(u).Error
	if err != nil && isUniqueViolation(err) {
		return store.ErrDuplicateEmail
	}
	return err
}

func (r *GormRepository) UpdateUserFields(
	ctx context.Context,
	id string,
	fields map[string]any,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Compile-time check
var _ store.Repository = (*GormRepository)(nil)
