package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"license-manager/internal/config"
	"license-manager/internal/models"
	"license-manager/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

type CredentialsRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new user account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "login and password are required")
		return
	}

	login := strings.TrimSpace(req.Login)
	if len(login) < 3 {
		respondError(c, http.StatusBadRequest, "login must be at least 3 characters")
		return
	}
	if len(req.Password) < 4 {
		respondError(c, http.StatusBadRequest, "password must be at least 4 characters")
		return
	}

	if _, err := h.authService.Register(login, req.Password); err != nil {
		if errors.Is(err, services.ErrUserExists) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Error().Err(err).Str("login", login).Msg("failed to register user")
		respondError(c, http.StatusInternalServerError, "failed to register user")
		return
	}

	respondOK(c, http.StatusOK, "user registered successfully", nil)
}

// Login authenticates a user and issues a token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "login and password are required")
		return
	}

	user, err := h.authService.Authenticate(strings.TrimSpace(req.Login), req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, err.Error())
			return
		}
		log.Error().Err(err).Msg("authentication failed")
		respondError(c, http.StatusInternalServerError, "authentication failed")
		return
	}

	token, err := h.generateToken(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token")
		respondError(c, http.StatusInternalServerError, "failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "authenticated successfully",
		"data":    user,
		"token":   token,
	})
}

// generateToken signs a JWT for the user
func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	expiresIn, err := time.ParseDuration(h.cfg.JWT.ExpiresIn)
	if err != nil {
		expiresIn = 24 * time.Hour
	}

	secret := h.cfg.JWT.Secret
	if secret == "" {
		secret = "license-manager-default-secret-change-in-production"
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"login":   user.Login,
		"exp":     now.Add(expiresIn).Unix(),
		"iat":     now.Unix(),
		"iss":     h.cfg.JWT.Issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
