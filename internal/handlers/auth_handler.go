package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/latinbarber/booking-api/internal/config"
	"github.com/latinbarber/booking-api/internal/httperr"
	"github.com/latinbarber/booking-api/internal/httpresp"
	"github.com/latinbarber/booking-api/internal/models"
	"github.com/latinbarber/booking-api/internal/store"
	"github.com/latinbarber/booking-api/internal/validators"
)

type AuthHandler struct {
	repo   store.Repository
	config *config.Config
}

func NewAuthHandler(repo store.Repository, cfg *config.Config) *AuthHandler {
	return &AuthHandler{repo: repo, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "El dominio del correo no existe.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "No se pudo procesar la contraseña.")
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         models.RoleClient,
	}

	if err := h.repo.CreateUser(c.Request.Context(), &user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			httperr.BadRequest(c, "email_already_registered", "Este correo ya está registrado.")
			return
		}
		httperr.Internal(c, "failed_to_create_user", "No se pudo crear la cuenta.")
		return
	}

	token, err := h.signToken(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_sign_token", "No se pudo generar la sesión.")
		return
	}

	httpresp.Created(c, AuthResponse{Token: token, User: user})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Cuerpo de la petición inválido.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.repo.GetUserByEmail(c.Request.Context(), email)
	if err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Correo o contraseña incorrectos.")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Correo o contraseña incorrectos.")
		return
	}

	token, err := h.signToken(user)
	if err != nil {
		httperr.Internal(c, "failed_to_sign_token", "No se pudo generar la sesión.")
		return
	}

	httpresp.OK(c, AuthResponse{Token: token, User: *user})
}

func (h *AuthHandler) signToken(u *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  u.ID,
		"role": u.Role,
		"exp":  time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
