package report

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/latinbarber/booking-api/internal/domain/schedule"
	"github.com/latinbarber/booking-api/internal/httperr"
	"github.com/latinbarber/booking-api/internal/models"
	"github.com/latinbarber/booking-api/internal/store/memstore"
)

func seedAppointment(t *testing.T, repo *memstore.Store, date, clock string) {
	t.Helper()
	ap := &models.Appointment{
		UserID:        "u1",
		CustomerName:  "Ana Torres",
		CustomerEmail: "ana@example.com",
		BarberName:    "Carlos",
		ServiceName:   "Corte Clásico",
		Price:         150.5,
		Date:          date,
		Time:          clock,
		Status:        models.StatusConfirmed,
		SlotKey:       schedule.SlotKey("Carlos", date, clock),
	}
	if err := repo.InsertAppointment(context.Background(), ap); err != nil {
		t.Fatalf("seed %s %s: %v", date, clock, err)
	}
}

func TestExportCSV_FormatAndRange(t *testing.T) {
	repo := memstore.New()
	seedAppointment(t, repo, "05/03/2026", "09:00")
	seedAppointment(t, repo, "10/03/2026", "10:00")
	seedAppointment(t, repo, "20/03/2026", "11:00")

	uc := NewExportCSV(repo, time.UTC)

	// Inclusive on both ends: 05/03 and 10/03 are in, 20/03 is out.
	out, err := uc.Execute(context.Background(), "05/03/2026", "10/03/2026")
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	if !bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatalf("output missing UTF-8 BOM")
	}

	lines := strings.Split(strings.TrimRight(string(out[3:]), "\n"), "\n")
	if lines[0] != "Fecha,Hora,Cliente,Correo,Barbero,Servicio,Precio,Estado" {
		t.Fatalf("header = %q", lines[0])
	}
	if len(lines) != 3 {
		t.Fatalf("rows = %d, want 2 data rows: %v", len(lines)-1, lines)
	}

	wantRow := "05/03/2026,09:00,Ana Torres,ana@example.com,Carlos,Corte Clásico,150.5,confirmada"
	found := false
	for _, l := range lines[1:] {
		if l == wantRow {
			found = true
		}
		if strings.Contains(l, "20/03/2026") {
			t.Fatalf("row outside range exported: %q", l)
		}
	}
	if !found {
		t.Fatalf("expected row %q in %v", wantRow, lines[1:])
	}
}

func TestExportCSV_EmptyRangeIsNoData(t *testing.T) {
	repo := memstore.New()
	seedAppointment(t, repo, "05/03/2026", "09:00")

	uc := NewExportCSV(repo, time.UTC)

	_, err := uc.Execute(context.Background(), "01/01/2026", "31/01/2026")
	if !httperr.IsBusiness(err, httperr.CodeNoData) {
		t.Fatalf("error = %v, want %s", err, httperr.CodeNoData)
	}
}

func TestExportCSV_RejectsBadRange(t *testing.T) {
	uc := NewExportCSV(memstore.New(), time.UTC)

	_, err := uc.Execute(context.Background(), "2026-01-01", "31/01/2026")
	if !httperr.IsBusiness(err, httperr.CodeInvalidSchedule) {
		t.Fatalf("error = %v, want %s", err, httperr.CodeInvalidSchedule)
	}
}

func TestExportCSV_SkipsMalformedDates(t *testing.T) {
	repo := memstore.New()
	seedAppointment(t, repo, "05/03/2026", "09:00")
	seedAppointment(t, repo, "someday", "10:00")

	uc := NewExportCSV(repo, time.UTC)

	out, err := uc.Execute(context.Background(), "01/03/2026", "31/03/2026")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if strings.Contains(string(out), "someday") {
		t.Fatalf("malformed row exported")
	}
}
