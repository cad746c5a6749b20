package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/latinbarber/booking-api/internal/cache"
	"github.com/latinbarber/booking-api/internal/domain/schedule"
	"github.com/latinbarber/booking-api/internal/httperr"
	"github.com/latinbarber/booking-api/internal/httpresp"
	"github.com/latinbarber/booking-api/internal/models"
)

// HoursHandler serves the shop schedule singleton.
type HoursHandler struct {
	config *cache.ShopConfigCache
}

func NewHoursHandler(config *cache.ShopConfigCache) *HoursHandler {
	return &HoursHandler{config: config}
}

type UpdateHoursRequest struct {
	OpenTime  string `json:"open_time" binding:"required"`
	CloseTime string `json:"close_time" binding:"required"`
	WorkDays  string `json:"work_days"`
}

func (h *HoursHandler) Get(c *gin.Context) {
	cfg, err := h.config.Get(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_load_hours", "No se pudo cargar el horario.")
		return
	}
	httpresp.OK(c, cfg)
}

// Update replaces the whole schedule document. Both bounds must be HH:mm;
// an open bound at or past the close bound is stored as-is and simply
// yields an empty grid, matching how the booking screen treats it.
func (h *HoursHandler) Update(c *gin.Context) {
	var req UpdateHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Cuerpo de la petición inválido.")
		return
	}

	if _, err := time.Parse(schedule.ClockLayout, req.OpenTime); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidSchedule, "La hora de apertura no es válida.")
		return
	}
	if _, err := time.Parse(schedule.ClockLayout, req.CloseTime); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidSchedule, "La hora de cierre no es válida.")
		return
	}

	cfg := models.ShopConfig{
		ID:        models.ConfigID,
		OpenTime:  req.OpenTime,
		CloseTime: req.CloseTime,
		WorkDays:  req.WorkDays,
	}
	if cfg.WorkDays == "" {
		cfg.WorkDays = models.DefaultShopConfig().WorkDays
	}

	if err := h.config.Save(c.Request.Context(), cfg); err != nil {
		httperr.Internal(c, "failed_to_save_hours", "No se pudo guardar el horario.")
		return
	}
	httpresp.OK(c, cfg)
}
