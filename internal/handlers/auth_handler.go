package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/expert-scheduler/internal/auth"
	"github.com/BruksfildServices01/expert-scheduler/internal/config"
	"github.com/BruksfildServices01/expert-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
	"github.com/BruksfildServices01/expert-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/expert-scheduler/internal/models"
	"github.com/BruksfildServices01/expert-scheduler/internal/timezone"
)

type AuthHandler struct {
	users  user.Repository
	config *config.Config
}

func NewAuthHandler(users user.Repository, cfg *config.Config) *AuthHandler {
	return &AuthHandler{users: users, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email,emaildomain"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
	Timezone string `json:"timezone" binding:"omitempty,iana_tz"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Timezone string `json:"timezone"`
}

type authResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		Timezone: u.Timezone,
	}
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if failedTag(err, "emaildomain") {
			httperr.BadRequest(c, "invalid_email_domain", "The email domain does not look valid.")
			return
		}
		invalidRequest(c, err)
		return
	}

	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role == "" {
		role = models.RolePlayer
	}
	if !models.ValidRole(role) {
		writeError(c, httperr.ErrBusiness(user.CodeInvalidRole), "")
		return
	}

	tz := req.Timezone
	if tz == "" {
		tz = timezone.DefaultTimezone
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(c, err, "failed_to_hash_password")
		return
	}

	u := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
		Timezone:     tz,
	}

	if err := h.users.CreateUser(c.Request.Context(), u); err != nil {
		writeError(c, err, "failed_to_create_user")
		return
	}

	token, err := auth.Sign(h.config.JWTSecret, u, time.Now())
	if err != nil {
		writeError(c, err, "failed_to_generate_token")
		return
	}

	httpresp.Created(c, authResponse{User: toUserResponse(u), Token: token})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	u, err := h.users.FindUserByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, httperr.ErrBusiness(user.CodeInvalidCredentials), "")
			return
		}
		writeError(c, err, "login_failed")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		writeError(c, httperr.ErrBusiness(user.CodeInvalidCredentials), "")
		return
	}

	token, err := auth.Sign(h.config.JWTSecret, u, time.Now())
	if err != nil {
		writeError(c, err, "failed_to_generate_token")
		return
	}

	httpresp.OK(c, authResponse{User: toUserResponse(u), Token: token})
}
