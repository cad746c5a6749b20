package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/latinbarber/booking-api/internal/httperr"
	"github.com/latinbarber/booking-api/internal/httpresp"
	"github.com/latinbarber/booking-api/internal/middleware"
	"github.com/latinbarber/booking-api/internal/store"
)

type MeHandler struct {
	repo store.Repository
}

func NewMeHandler(repo store.Repository) *MeHandler {
	return &MeHandler{repo: repo}
}

type UpdateMeRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (h *MeHandler) Get(c *gin.Context) {
	user, err := h.repo.GetUserByID(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httperr.NotFound(c, "user_not_found", "El usuario no existe.")
			return
		}
		httperr.Internal(c, "failed_to_load_user", "No se pudo cargar el perfil.")
		return
	}
	httpresp.OK(c, user)
}

func (h *MeHandler) Update(c *gin.Context) {
	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Cuerpo de la petición inválido.")
		return
	}

	fields := map[string]any{}
	if name := strings.TrimSpace(req.Name); name != "" {
		fields["name"] = name
	}
	if req.Phone != "" {
		fields["phone"] = req.Phone
	}
	if len(fields) == 0 {
		httperr.BadRequest(c, "nothing_to_update", "No hay cambios que guardar.")
		return
	}

	userID := c.GetString(middleware.ContextUserID)
	if err := h.repo.UpdateUserFields(c.Request.Context(), userID, fields); err != nil {
		httperr.Internal(c, "failed_to_update_user", "No se pudo actualizar el perfil.")
		return
	}

	user, err := h.repo.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_load_user", "No se pudo cargar el perfil.")
		return
	}
	httpresp.OK(c, user)
}
