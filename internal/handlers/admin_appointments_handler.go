package handlers

import (
	"io"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/latinbarber/booking-api/internal/domain/schedule"
	"github.com/latinbarber/booking-api/internal/feed"
	"github.com/latinbarber/booking-api/internal/httperr"
	"github.com/latinbarber/booking-api/internal/httpresp"
	"github.com/latinbarber/booking-api/internal/usecase/booking"
)

// AdminAppointmentsHandler exposes the whole appointment collection to the
// admin panel, as a one-shot list and as a server-sent event feed.
type AdminAppointmentsHandler struct {
	list  *booking.ListAppointments
	purge *booking.PurgeExpired
	hub   *feed.Hub
	clock schedule.Clock
}

func NewAdminAppointmentsHandler(
	list *booking.ListAppointments,
	purge *booking.PurgeExpired,
	hub *feed.Hub,
	clock schedule.Clock,
) *AdminAppointmentsHandler {
	return &AdminAppointmentsHandler{
		list:  list,
		purge: purge,
		hub:   hub,
		clock: clock,
	}
}

// List sweeps expired records across all users, then returns everything
// newest first. Optional filters: ?barber=...&date=dd/mm/yyyy.
func (h *AdminAppointmentsHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if _, err := h.purge.Execute(ctx, h.clock.Now(), ""); err != nil {
		log.Printf("admin: global purge: %v", err)
	}

	barber := c.Query("barber")
	date := c.Query("date")

	if barber != "" || date != "" {
		apps, err := h.list.ForBarberAndDate(ctx, barber, date)
		if err != nil {
			httperr.WriteBusiness(c, err)
			return
		}
		httpresp.List(c, apps)
		return
	}

	apps, err := h.list.All(ctx)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}
	httpresp.List(c, apps)
}

// Feed streams the collection over SSE: first a "snapshot" event with the
// full current set, then one "change" event per confirmed or cancelled
// booking until the client disconnects.
func (h *AdminAppointmentsHandler) Feed(c *gin.Context) {
	ctx := c.Request.Context()

	if _, err := h.purge.Execute(ctx, h.clock.Now(), ""); err != nil {
		log.Printf("admin: global purge: %v", err)
	}

	sub, err := h.hub.Subscribe(ctx)
	if err != nil {
		httperr.Internal(c, "failed_to_subscribe", "No se pudo abrir el canal de citas.")
		return
	}
	defer sub.Unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.SSEvent("snapshot", sub.Snapshot())
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case change, ok := <-sub.Changes():
			if !ok {
				return false
			}
			c.SSEvent("change", change)
			return true
		}
	})
}
