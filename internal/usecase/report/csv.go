package report

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/latinbarber/booking-api/internal/domain/schedule"
	"github.com/latinbarber/booking-api/internal/httperr"
	"github.com/latinbarber/booking-api/internal/store"
)

// Header matches the spreadsheet the shop has always imported. Fields are
// comma-joined with no quoting, an accepted limitation of the format.
const csvHeader = "Fecha,Hora,Cliente,Correo,Barbero,Servicio,Precio,Estado"

// utf8BOM keeps Excel from mangling accented names.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type ExportCSV struct {
	repo store.Repository
	loc  *time.Location
}

func NewExportCSV(repo store.Repository, loc *time.Location) *ExportCSV {
	return &ExportCSV{repo: repo, loc: loc}
}

// Execute renders every appointment whose date falls in the inclusive
// [start, end] range, both dd/mm/yyyy. Zero matches is a typed no-data
// outcome, never a header-only file.
func (uc *ExportCSV) Execute(ctx context.Context, start, end string) ([]byte, error) {
	startDay, err := schedule.ParseDate(start, uc.loc)
	if err != nil {
		return nil, httperr.ErrBusiness(
			httperr.CodeInvalidSchedule,
			"Fecha de inicio inválida, usa dd/mm/aaaa.",
		)
	}
	endDay, err := schedule.ParseDate(end, uc.loc)
	if err != nil {
		return nil, httperr.ErrBusiness(
			httperr.CodeInvalidSchedule,
			"Fecha de fin inválida, usa dd/mm/aaaa.",
		)
	}

	apps, err := uc.repo.FindAppointments(ctx, store.AppointmentFilter{})
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeStoreUnavailable, err.Error())
	}

	var buf bytes.Buffer
	buf.Write(utf8BOM)
	buf.WriteString(csvHeader)
	buf.WriteByte('\n')

	rows := 0
	for _, ap := range apps {
		day, err := schedule.ParseDate(ap.Date, uc.loc)
		if err != nil {
			log.Printf("report: skipping appointment %s with bad date %q", ap.ID, ap.Date)
			continue
		}
		if day.Before(startDay) || day.After(endDay) {
			continue
		}

		fmt.Fprintf(&buf, "%s,%s,%s,%s,%s,%s,%s,%s\n",
			ap.Date,
			ap.Time,
			ap.CustomerName,
			ap.CustomerEmail,
			ap.BarberName,
			ap.ServiceName,
			strconv.FormatFloat(ap.Price, 'f', -1, 64),
			ap.Status,
		)
		rows++
	}

	if rows == 0 {
		return nil, httperr.ErrBusiness(
			httperr.CodeNoData,
			"No hay citas en el rango de fechas seleccionado.",
		)
	}

	return buf.Bytes(), nil
}
