package handlers

import (
	"net/http"

	"license-manager/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetUsers returns all users
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.userService.GetUsers()
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")
		respondError(c, http.StatusInternalServerError, "failed to get users")
		return
	}

	respondOK(c, http.StatusOK, "", users)
}
