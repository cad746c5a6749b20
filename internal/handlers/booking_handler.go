package handlers

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/latinbarber/booking-api/internal/domain/schedule"
	"github.com/latinbarber/booking-api/internal/httperr"
	"github.com/latinbarber/booking-api/internal/httpresp"
	"github.com/latinbarber/booking-api/internal/middleware"
	"github.com/latinbarber/booking-api/internal/models"
	"github.com/latinbarber/booking-api/internal/usecase/booking"
)

type BookingHandler struct {
	availability *booking.GetAvailability
	create       *booking.CreateBooking
	cancel       *booking.CancelBooking
	list         *booking.ListAppointments
	purge        *booking.PurgeExpired
	clock        schedule.Clock
}

func NewBookingHandler(
	availability *booking.GetAvailability,
	create *booking.CreateBooking,
	cancel *booking.CancelBooking,
	list *booking.ListAppointments,
	purge *booking.PurgeExpired,
	clock schedule.Clock,
) *BookingHandler {
	return &BookingHandler{
		availability: availability,
		create:       create,
		cancel:       cancel,
		list:         list,
		purge:        purge,
		clock:        clock,
	}
}

type CreateBookingRequest struct {
	BarberName string `json:"barber_name" binding:"required"`
	ServiceID  string `json:"service_id" binding:"required"`
	Date       string `json:"date" binding:"required"`
	Time       string `json:"time" binding:"required"`
}

// Availability answers "which slots are still free for this barber on this
// day". Query params: barber, date (dd/mm/yyyy).
func (h *BookingHandler) Availability(c *gin.Context) {
	slots, err := h.availability.Execute(
		c.Request.Context(),
		c.Query("barber"),
		c.Query("date"),
	)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}
	httpresp.OK(c, gin.H{"slots": slots})
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Cuerpo de la petición inválido.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), booking.CreateBookingInput{
		UserID:     c.GetString(middleware.ContextUserID),
		BarberName: req.BarberName,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		Time:       req.Time,
	})
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}
	httpresp.Created(c, ap)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	isAdmin := c.GetString(middleware.ContextUserRole) == models.RoleAdmin
	err := h.cancel.Execute(
		c.Request.Context(),
		c.GetString(middleware.ContextUserID),
		c.Param("id"),
		isAdmin,
	)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}
	httpresp.OK(c, gin.H{"cancelled": true})
}

// ListMine sweeps the caller's expired appointments before listing, so the
// response never contains records past the retention window.
func (h *BookingHandler) ListMine(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetString(middleware.ContextUserID)

	if _, err := h.purge.Execute(ctx, h.clock.Now(), userID); err != nil {
		log.Printf("booking: purge for user %s: %v", userID, err)
	}

	apps, err := h.list.ForUser(ctx, userID)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}
	httpresp.List(c, apps)
}
