package booking

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/latinbarber/booking-api/internal/cache"
	"github.com/latinbarber/booking-api/internal/domain/schedule"
	"github.com/latinbarber/booking-api/internal/events"
	"github.com/latinbarber/booking-api/internal/httperr"
	"github.com/latinbarber/booking-api/internal/models"
	"github.com/latinbarber/booking-api/internal/store"
	"github.com/latinbarber/booking-api/internal/store/memstore"
)

type fixture struct {
	repo  *memstore.Store
	clock schedule.FixedClock

	create *CreateBooking
	cancel *CancelBooking
	avail  *GetAvailability
	purge  *PurgeExpired
	list   *ListAppointments

	user models.User
	svc  models.Service
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()
	ctx := context.Background()

	repo := memstore.New()
	dispatcher := events.NewDispatcher()
	t.Cleanup(dispatcher.Close)

	user := models.User{Name: "Ana Torres", Email: "ana@example.com", Role: models.RoleClient}
	if err := repo.CreateUser(ctx, &user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	svc := models.Service{Name: "Corte Clásico", Price: 150, DurationMinutes: 30}
	if err := repo.CreateService(ctx, &svc); err != nil {
		t.Fatalf("seed service: %v", err)
	}
	if err := repo.SaveShopConfig(ctx, models.ShopConfig{OpenTime: "09:00", CloseTime: "12:00"}); err != nil {
		t.Fatalf("seed config: %v", err)
	}

	clock := schedule.FixedClock{T: now}
	loc := time.UTC

	return &fixture{
		repo:   repo,
		clock:  clock,
		create: NewCreateBooking(repo, clock, loc, dispatcher),
		cancel: NewCancelBooking(repo, clock, loc, dispatcher),
		avail:  NewGetAvailability(repo, cache.NewShopConfigCache(nil, repo)),
		purge:  NewPurgeExpired(repo, loc, dispatcher),
		list:   NewListAppointments(repo),
		user:   user,
		svc:    svc,
	}
}

func (f *fixture) book(t *testing.T, date, clock string) *models.Appointment {
	t.Helper()
	ap, err := f.create.Execute(context.Background(), CreateBookingInput{
		UserID:     f.user.ID,
		BarberName: "Carlos",
		ServiceID:  f.svc.ID,
		Date:       date,
		Time:       clock,
	})
	if err != nil {
		t.Fatalf("book %s %s: %v", date, clock, err)
	}
	return ap
}

func TestBookingFlow_EndToEnd(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	ctx := context.Background()

	got, err := f.avail.Execute(ctx, "Carlos", "10/03/2026")
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	want := []string{"09:00", "10:00", "11:00"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("slots = %v, want %v", got, want)
	}

	f.book(t, "10/03/2026", "10:00")

	got, err = f.avail.Execute(ctx, "Carlos", "10/03/2026")
	if err != nil {
		t.Fatalf("availability after booking: %v", err)
	}
	want = []string{"09:00", "11:00"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("slots after booking = %v, want %v", got, want)
	}

	_, err = f.create.Execute(ctx, CreateBookingInput{
		UserID:     f.user.ID,
		BarberName: "Carlos",
		ServiceID:  f.svc.ID,
		Date:       "10/03/2026",
		Time:       "10:00",
	})
	if !httperr.IsBusiness(err, httperr.CodeSlotConflict) {
		t.Fatalf("second booking error = %v, want %s", err, httperr.CodeSlotConflict)
	}
}

func TestCreateBooking_ConcurrentSameSlot(t *testing.T) {
	f := newFixture(t, time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))

	results := make([]error, 2)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = f.create.Execute(context.Background(), CreateBookingInput{
				UserID:     f.user.ID,
				BarberName: "Carlos",
				ServiceID:  f.svc.ID,
				Date:       "10/03/2026",
				Time:       "09:00",
			})
		}(i)
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case httperr.IsBusiness(err, httperr.CodeSlotConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 || conflicts != 1 {
		t.Fatalf("successes=%d conflicts=%d, want exactly one of each", successes, conflicts)
	}
}

func TestCreateBooking_RequiresIdentity(t *testing.T) {
	f := newFixture(t, time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))

	_, err := f.create.Execute(context.Background(), CreateBookingInput{
		BarberName: "Carlos",
		ServiceID:  f.svc.ID,
		Date:       "10/03/2026",
		Time:       "09:00",
	})
	if !httperr.IsBusiness(err, httperr.CodeNotAuthenticated) {
		t.Fatalf("error = %v, want %s", err, httperr.CodeNotAuthenticated)
	}
}

func TestCreateBooking_ValidatesInput(t *testing.T) {
	f := newFixture(t, time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, err := f.create.Execute(ctx, CreateBookingInput{
		UserID:    f.user.ID,
		ServiceID: f.svc.ID,
		Date:      "10/03/2026",
		Time:      "09:00",
	})
	if !httperr.IsBusiness(err, httperr.CodeValidation) {
		t.Fatalf("blank barber error = %v, want %s", err, httperr.CodeValidation)
	}

	_, err = f.create.Execute(ctx, CreateBookingInput{
		UserID:     f.user.ID,
		BarberName: "Carlos",
		ServiceID:  f.svc.ID,
		Time:       "09:00",
	})
	if !httperr.IsBusiness(err, httperr.CodeValidation) {
		t.Fatalf("blank date error = %v, want %s", err, httperr.CodeValidation)
	}

	_, err = f.create.Execute(ctx, CreateBookingInput{
		UserID:     f.user.ID,
		BarberName: "Carlos",
		ServiceID:  f.svc.ID,
		Date:       "2026-03-10",
		Time:       "09:00",
	})
	if !httperr.IsBusiness(err, httperr.CodeInvalidSchedule) {
		t.Fatalf("bad date error = %v, want %s", err, httperr.CodeInvalidSchedule)
	}
}

func TestCreateBooking_SnapshotsAreNotRetroactive(t *testing.T) {
	f := newFixture(t, time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))
	ctx := context.Background()

	ap := f.book(t, "10/03/2026", "09:00")
	if ap.CustomerName != "Ana Torres" || ap.Price != 150 {
		t.Fatalf("snapshot = (%s, %v), want (Ana Torres, 150)", ap.CustomerName, ap.Price)
	}
	if ap.Status != models.StatusConfirmed {
		t.Fatalf("status = %q, want %q", ap.Status, models.StatusConfirmed)
	}

	// Later edits to the profile and the catalog must not touch the
	// stored appointment.
	if err := f.repo.UpdateUserFields(ctx, f.user.ID, map[string]any{"name": "Ana María"}); err != nil {
		t.Fatalf("update user: %v", err)
	}
	fresh := f.svc
	fresh.Price = 300
	if err := f.repo.CreateService(ctx, &fresh); err != nil {
		t.Fatalf("update service: %v", err)
	}

	stored, err := f.repo.GetAppointmentByID(ctx, ap.ID)
	if err != nil {
		t.Fatalf("reload appointment: %v", err)
	}
	if stored.CustomerName != "Ana Torres" || stored.Price != 150 {
		t.Fatalf("stored snapshot changed: (%s, %v)", stored.CustomerName, stored.Price)
	}
}

func TestCancelBooking_Window(t *testing.T) {
	now := time.Date(2026, 3, 10, 4, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	ctx := context.Background()

	// 09:00 the same day is 5 hours away: inside the window, rejected and
	// the record stays.
	ap := f.book(t, "10/03/2026", "09:00")
	err := f.cancel.Execute(ctx, f.user.ID, ap.ID, false)
	if !httperr.IsBusiness(err, httperr.CodeCancellationWindow) {
		t.Fatalf("error = %v, want %s", err, httperr.CodeCancellationWindow)
	}
	if _, err := f.repo.GetAppointmentByID(ctx, ap.ID); err != nil {
		t.Fatalf("rejected cancellation removed the record: %v", err)
	}

	// The next day is far outside the window: deleted.
	ap2 := f.book(t, "11/03/2026", "09:00")
	if err := f.cancel.Execute(ctx, f.user.ID, ap2.ID, false); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := f.repo.GetAppointmentByID(ctx, ap2.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("appointment still present after cancel: %v", err)
	}
}

func TestCancelBooking_ForeignAppointmentHidden(t *testing.T) {
	f := newFixture(t, time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))
	ctx := context.Background()

	other := models.User{Name: "Otro", Email: "otro@example.com"}
	if err := f.repo.CreateUser(ctx, &other); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	ap := f.book(t, "10/03/2026", "09:00")

	err := f.cancel.Execute(ctx, other.ID, ap.ID, false)
	if !httperr.IsBusiness(err, httperr.CodeNotFound) {
		t.Fatalf("error = %v, want %s", err, httperr.CodeNotFound)
	}

	// An admin identity may cancel anyone's appointment.
	if err := f.cancel.Execute(ctx, other.ID, ap.ID, true); err != nil {
		t.Fatalf("admin cancel: %v", err)
	}
}

func TestPurgeExpired_IdempotentAndSkipsMalformed(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	ctx := context.Background()

	// Two expired, one current, one malformed.
	f.book(t, "01/03/2026", "09:00")
	f.book(t, "05/03/2026", "09:00")
	keep := f.book(t, "10/03/2026", "09:00")
	bad := &models.Appointment{
		UserID:     f.user.ID,
		BarberName: "Carlos",
		Date:       "someday",
		Time:       "09:00",
		SlotKey:    schedule.SlotKey("Carlos", "someday", "09:00"),
	}
	if err := f.repo.InsertAppointment(ctx, bad); err != nil {
		t.Fatalf("seed malformed: %v", err)
	}

	removed, err := f.purge.Execute(ctx, now, "")
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}

	// Second run with the same now removes nothing more.
	removed, err = f.purge.Execute(ctx, now, "")
	if err != nil {
		t.Fatalf("second purge: %v", err)
	}
	if removed != 0 {
		t.Fatalf("second run removed = %d, want 0", removed)
	}

	if _, err := f.repo.GetAppointmentByID(ctx, keep.ID); err != nil {
		t.Fatalf("current appointment purged: %v", err)
	}
	if _, err := f.repo.GetAppointmentByID(ctx, bad.ID); err != nil {
		t.Fatalf("malformed appointment must survive the scan: %v", err)
	}
}

func TestPurgeExpired_ScopedToUser(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	ctx := context.Background()

	other := models.User{Name: "Otro", Email: "otro@example.com"}
	if err := f.repo.CreateUser(ctx, &other); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	theirs := &models.Appointment{
		UserID:     other.ID,
		BarberName: "Miguel",
		Date:       "01/03/2026",
		Time:       "09:00",
		SlotKey:    schedule.SlotKey("Miguel", "01/03/2026", "09:00"),
	}
	if err := f.repo.InsertAppointment(ctx, theirs); err != nil {
		t.Fatalf("seed appointment: %v", err)
	}
	f.book(t, "01/03/2026", "10:00")

	removed, err := f.purge.Execute(ctx, now, f.user.ID)
	if err != nil {
		t.Fatalf("scoped purge: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if _, err := f.repo.GetAppointmentByID(ctx, theirs.ID); err != nil {
		t.Fatalf("scoped purge touched another user's record: %v", err)
	}
}

func TestListProjections_NewestFirst(t *testing.T) {
	f := newFixture(t, time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))
	ctx := context.Background()

	// Distinct createdAt values via explicit inserts.
	for i, clock := range []string{"09:00", "10:00", "11:00"} {
		ap := &models.Appointment{
			UserID:     f.user.ID,
			BarberName: "Carlos",
			Date:       "10/03/2026",
			Time:       clock,
			SlotKey:    schedule.SlotKey("Carlos", "10/03/2026", clock),
			CreatedAt:  int64(1000 + i),
		}
		if err := f.repo.InsertAppointment(ctx, ap); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	apps, err := f.list.ForUser(ctx, f.user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(apps) != 3 {
		t.Fatalf("len = %d, want 3", len(apps))
	}
	for i := 1; i < len(apps); i++ {
		if apps[i-1].CreatedAt < apps[i].CreatedAt {
			t.Fatalf("not sorted newest first: %v", apps)
		}
	}

	byBarber, err := f.list.ForBarberAndDate(ctx, "Carlos", "10/03/2026")
	if err != nil {
		t.Fatalf("list by barber: %v", err)
	}
	if len(byBarber) != 3 {
		t.Fatalf("barber list len = %d, want 3", len(byBarber))
	}

	all, err := f.list.All(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("all len = %d, want 3", len(all))
	}
}
