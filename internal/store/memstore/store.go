package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/latinbarber/booking-api/internal/models"
	"github.com/latinbarber/booking-api/internal/store"
)

// Store is an in-memory Repository used by tests. The mutex makes
// InsertAppointment a single atomic check-and-write, the same guarantee the
// postgres unique index provides.
type Store struct {
	mu           sync.Mutex
	appointments map[string]models.Appointment
	slotKeys     map[string]string // slot key -> appointment id
	barbers      map[string]models.Barber
	services     map[string]models.Service
	users        map[string]models.User
	config       *models.ShopConfig
}

func New() *Store {
	return &Store{
		appointments: make(map[string]models.Appointment),
		slotKeys:     make(map[string]string),
		barbers:      make(map[string]models.Barber),
		services:     make(map[string]models.Service),
		users:        make(map[string]models.User),
	}
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (s *Store) FindAppointments(ctx context.Context, f store.AppointmentFilter) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Appointment
	for _, ap := range s.appointments {
		if f.BarberName != "" && ap.BarberName != f.BarberName {
			continue
		}
		if f.Date != "" && ap.Date != f.Date {
			continue
		}
		if f.Time != "" && ap.Time != f.Time {
			continue
		}
		if f.UserID != "" && ap.UserID != f.UserID {
			continue
		}
		out = append(out, ap)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) InsertAppointment(ctx context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.slotKeys[ap.SlotKey]; taken {
		return store.ErrSlotTaken
	}
	if ap.ID == "" {
		ap.ID = uuid.NewString()
	}
	s.appointments[ap.ID] = *ap
	s.slotKeys[ap.SlotKey] = ap.ID
	return nil
}

func (s *Store) GetAppointmentByID(ctx context.Context, id string) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ap, ok := s.appointments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &ap, nil
}

func (s *Store) DeleteAppointmentByID(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ap, ok := s.appointments[id]
	if !ok {
		return store.ErrNotFound
	}
	delete(s.appointments, id)
	delete(s.slotKeys, ap.SlotKey)
	return nil
}

// --------------------------------------------------
// Barbers
// --------------------------------------------------

func (s *Store) ListBarbers(ctx context.Context) ([]models.Barber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Barber, 0, len(s.barbers))
	for _, b := range s.barbers {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) CreateBarber(ctx context.Context, b *models.Barber) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	s.barbers[b.ID] = *b
	return nil
}

func (s *Store) DeleteBarberByID(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.barbers[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.barbers, id)
	return nil
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (s *Store) ListServices(ctx context.Context) ([]models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Service, 0, len(s.services))
	for _, sv := range s.services {
		out = append(out, sv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) GetServiceByID(ctx context.Context, id string) (*models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sv, ok := s.services[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &sv, nil
}

func (s *Store) CreateService(ctx context.Context, sv *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sv.ID == "" {
		sv.ID = uuid.NewString()
	}
	s.services[sv.ID] = *sv
	return nil
}

func (s *Store) DeleteServiceByID(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.services[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.services, id)
	return nil
}

// --------------------------------------------------
// Shop config
// --------------------------------------------------

func (s *Store) GetShopConfig(ctx context.Context) (models.ShopConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.config == nil {
		return models.DefaultShopConfig(), nil
	}
	return *s.config, nil
}

func (s *Store) SaveShopConfig(ctx context.Context, cfg models.ShopConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg.ID = models.ConfigID
	s.config = &cfg
	return nil
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return store.ErrDuplicateEmail
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	s.users[u.ID] = *u
	return nil
}

func (s *Store) UpdateUserFields(ctx context.Context, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "name":
			u.Name, _ = v.(string)
		case "phone":
			u.Phone, _ = v.(string)
		}
	}
	s.users[id] = u
	return nil
}

// Compile-time check
var _ store.Repository = (*Store)(nil)
