package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/latinbarber/booking-api/internal/httperr"
	"github.com/latinbarber/booking-api/internal/httpresp"
	"github.com/latinbarber/booking-api/internal/models"
	"github.com/latinbarber/booking-api/internal/store"
)

// CatalogHandler serves the barber and service catalogs. Reads are public,
// writes are admin-only (enforced at the route level).
type CatalogHandler struct {
	repo store.Repository
}

func NewCatalogHandler(repo store.Repository) *CatalogHandler {
	return &CatalogHandler{repo: repo}
}

// --------- Barbers ---------

type CreateBarberRequest struct {
	Name   string  `json:"name" binding:"required"`
	Rating float64 `json:"rating"`
}

func (h *CatalogHandler) ListBarbers(c *gin.Context) {
	barbers, err := h.repo.ListBarbers(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "No se pudo cargar la lista de barberos.")
		return
	}
	httpresp.List(c, barbers)
}

func (h *CatalogHandler) CreateBarber(c *gin.Context) {
	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Cuerpo de la petición inválido.")
		return
	}

	rating := req.Rating
	if rating == 0 {
		rating = 5.0
	}
	barber := models.Barber{
		Name:   strings.TrimSpace(req.Name),
		Rating: rating,
	}
	if err := h.repo.CreateBarber(c.Request.Context(), &barber); err != nil {
		httperr.Internal(c, "failed_to_create_barber", "No se pudo registrar al barbero.")
		return
	}
	httpresp.Created(c, barber)
}

func (h *CatalogHandler) DeleteBarber(c *gin.Context) {
	if err := h.repo.DeleteBarberByID(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httperr.NotFound(c, "barber_not_found", "El barbero no existe.")
			return
		}
		httperr.Internal(c, "failed_to_delete_barber", "No se pudo eliminar al barbero.")
		return
	}
	httpresp.OK(c, gin.H{"deleted": true})
}

// --------- Services ---------

type CreateServiceRequest struct {
	Name            string  `json:"name" binding:"required"`
	Price           float64 `json:"price" binding:"required"`
	DurationMinutes int     `json:"duration_minutes"`
}

func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.repo.ListServices(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_services", "No se pudo cargar la lista de servicios.")
		return
	}
	httpresp.List(c, services)
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Cuerpo de la petición inválido.")
		return
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = 30
	}
	svc := models.Service{
		Name:            strings.TrimSpace(req.Name),
		Price:           req.Price,
		DurationMinutes: duration,
	}
	if err := h.repo.CreateService(c.Request.Context(), &svc); err != nil {
		httperr.Internal(c, "failed_to_create_service", "No se pudo registrar el servicio.")
		return
	}
	httpresp.Created(c, svc)
}

func (h *CatalogHandler) DeleteService(c *gin.Context) {
	if err := h.repo.DeleteServiceByID(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httperr.NotFound(c, "service_not_found", "El servicio no existe.")
			return
		}
		httperr.Internal(c, "failed_to_delete_service", "No se pudo eliminar el servicio.")
		return
	}
	httpresp.OK(c, gin.H{"deleted": true})
}
