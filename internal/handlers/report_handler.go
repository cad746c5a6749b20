package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/latinbarber/booking-api/internal/httperr"
	"github.com/latinbarber/booking-api/internal/storage"
	"github.com/latinbarber/booking-api/internal/usecase/report"
)

// ReportHandler produces the admin CSV export. When an archiver is
// configured, a copy of every generated report also lands in the bucket.
type ReportHandler struct {
	export   *report.ExportCSV
	archiver *storage.ReportArchiver
}

func NewReportHandler(export *report.ExportCSV, archiver *storage.ReportArchiver) *ReportHandler {
	return &ReportHandler{export: export, archiver: archiver}
}

// ExportCSV streams the report for ?start=dd/mm/yyyy&end=dd/mm/yyyy. An
// empty range is a 404 with a typed code, never a header-only file.
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")

	data, err := h.export.Execute(c.Request.Context(), start, end)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	filename := fmt.Sprintf(
		"Reporte_Citas_%s_a_%s.csv",
		strings.ReplaceAll(start, "/", "-"),
		strings.ReplaceAll(end, "/", "-"),
	)

	if h.archiver != nil {
		if err := h.archiver.Upload(c.Request.Context(), "reportes/"+filename, data); err != nil {
			// archival is best effort, the download must still succeed
			log.Printf("report: archive %s: %v", filename, err)
		}
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
