package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"license-manager/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ComputerHandler struct {
	computerService *services.ComputerService
}

func NewComputerHandler(computerService *services.ComputerService) *ComputerHandler {
	return &ComputerHandler{computerService: computerService}
}

type CreateComputerRequest struct {
	RoomNumber   string `json:"room_number" binding:"required"`
	ComputerName string `json:"computer_name" binding:"required"`
}

// GetComputers returns all computers
func (h *ComputerHandler) GetComputers(c *gin.Context) {
	computers, err := h.computerService.GetComputers()
	if err != nil {
		log.Error().Err(err).Msg("failed to get computers")
		respondError(c, http.StatusInternalServerError, "failed to get computers")
		return
	}

	respondOK(c, http.StatusOK, "", computers)
}

// CreateComputer registers a computer in a room
func (h *ComputerHandler) CreateComputer(c *gin.Context) {
	var req CreateComputerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "room_number and computer_name are required")
		return
	}

	computer, err := h.computerService.CreateComputer(
		strings.TrimSpace(req.RoomNumber),
		strings.TrimSpace(req.ComputerName),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to create computer")
		respondError(c, http.StatusInternalServerError, "failed to create computer")
		return
	}

	respondOK(c, http.StatusOK, "computer added successfully", gin.H{"id": computer.ID})
}

// DeleteComputer removes a computer and cascades to its licenses
func (h *ComputerHandler) DeleteComputer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid computer ID")
		return
	}

	if err := h.computerService.DeleteComputer(uint(id)); err != nil {
		log.Error().Err(err).Uint64("id", id).Msg("failed to delete computer")
		respondError(c, http.StatusInternalServerError, "failed to delete computer")
		return
	}

	respondOK(c, http.StatusOK, "computer deleted successfully", nil)
}
