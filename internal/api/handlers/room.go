package handlers

import (
	"net/http"

	"license-manager/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type RoomHandler struct {
	licenseService *services.LicenseService
}

func NewRoomHandler(licenseService *services.LicenseService) *RoomHandler {
	return &RoomHandler{licenseService: licenseService}
}

// GetRooms lists the distinct room numbers that have computers
func (h *RoomHandler) GetRooms(c *gin.Context) {
	rooms, err := h.licenseService.Rooms()
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")
		respondError(c, http.StatusInternalServerError, "failed to get rooms")
		return
	}

	respondOK(c, http.StatusOK, "", rooms)
}

// GetRoomLicenses lists the licenses of every computer in a room. An empty
// list for an unknown room is not an error.
func (h *RoomHandler) GetRoomLicenses(c *gin.Context) {
	licenses, err := h.licenseService.ForRoom(c.Param("room"))
	if err != nil {
		log.Error().Err(err).Str("room", c.Param("room")).Msg("failed to get room licenses")
		respondError(c, http.StatusInternalServerError, "failed to get licenses")
		return
	}

	respondOK(c, http.StatusOK, "", licenses)
}

// GetComputerLicenses lists the licenses of one computer addressed by room
// and name
func (h *RoomHandler) GetComputerLicenses(c *gin.Context) {
	licenses, err := h.licenseService.ForComputer(c.Param("room"), c.Param("name"))
	if err != nil {
		log.Error().Err(err).
			Str("room", c.Param("room")).
			Str("computer", c.Param("name")).
			Msg("failed to get computer licenses")
		respondError(c, http.StatusInternalServerError, "failed to get licenses")
		return
	}

	respondOK(c, http.StatusOK, "", licenses)
}
