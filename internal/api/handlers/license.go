package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"license-manager/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const dateLayout = "2006-01-02"

type LicenseHandler struct {
	licenseService  *services.LicenseService
	computerService *services.ComputerService
}

func NewLicenseHandler(licenseService *services.LicenseService, computerService *services.ComputerService) *LicenseHandler {
	return &LicenseHandler{
		licenseService:  licenseService,
		computerService: computerService,
	}
}

type CreateLicenseRequest struct {
	ComputerID   uint     `json:"computer_id" binding:"required"`
	Software     string   `json:"software" binding:"required"`
	LicenseStart string   `json:"license_start" binding:"required"`
	LicenseEnd   string   `json:"license_end" binding:"required"`
	Budget       *float64 `json:"budget"`
}

// UpdateLicenseRequest enumerates the fields a partial update may touch.
// Unknown keys in the payload are rejected, not interpolated.
type UpdateLicenseRequest struct {
	ComputerID   *uint    `json:"computer_id"`
	Software     *string  `json:"software"`
	LicenseStart *string  `json:"license_start"`
	LicenseEnd   *string  `json:"license_end"`
	Budget       *float64 `json:"budget"`
}

type CreateLicenseByRoomRequest struct {
	RoomNumber   string   `json:"room_number" binding:"required"`
	ComputerName string   `json:"computer_name" binding:"required"`
	Software     string   `json:"software" binding:"required"`
	LicenseStart string   `json:"license_start" binding:"required"`
	LicenseEnd   string   `json:"license_end" binding:"required"`
	Budget       *float64 `json:"budget"`
}

type UpdateLicenseByDetailsRequest struct {
	RoomNumber   string `json:"room_number" binding:"required"`
	ComputerName string `json:"computer_name" binding:"required"`
	Software     string `json:"software" binding:"required"`
	LicenseStart string `json:"license_start" binding:"required"`
	LicenseEnd   string `json:"license_end" binding:"required"`
}

func validDate(value string) bool {
	_, err := time.Parse(dateLayout, value)
	return err == nil
}

// checkDateRange validates both dates and that the end falls strictly after
// the start. Returns a user-facing message, or "" when the range is fine.
func checkDateRange(start, end string) string {
	if !validDate(start) {
		return "invalid license start date (expected YYYY-MM-DD)"
	}
	if !validDate(end) {
		return "invalid license end date (expected YYYY-MM-DD)"
	}
	if end <= start {
		return "license end date must be after the start date"
	}
	return ""
}

// GetLicenses lists licenses, optionally for one computer
func (h *LicenseHandler) GetLicenses(c *gin.Context) {
	var computerID uint
	if raw := c.Query("computer_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid computer_id")
			return
		}
		computerID = uint(id)
	}

	licenses, err := h.licenseService.GetLicenses(computerID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get licenses")
		respondError(c, http.StatusInternalServerError, "failed to get licenses")
		return
	}

	respondOK(c, http.StatusOK, "", licenses)
}

// CreateLicense assigns a license to a computer by id
func (h *LicenseHandler) CreateLicense(c *gin.Context) {
	var req CreateLicenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "computer_id, software, license_start and license_end are required")
		return
	}

	if msg := checkDateRange(req.LicenseStart, req.LicenseEnd); msg != "" {
		respondError(c, http.StatusBadRequest, msg)
		return
	}

	exists, err := h.computerService.Exists(req.ComputerID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check computer")
		respondError(c, http.StatusInternalServerError, "failed to create license")
		return
	}
	if !exists {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("computer with ID %d not found", req.ComputerID))
		return
	}

	budget := req.Budget
	if budget == nil {
		zero := 0.0
		budget = &zero
	}

	if _, err := h.licenseService.CreateLicense(req.ComputerID, strings.TrimSpace(req.Software),
		req.LicenseStart, req.LicenseEnd, budget); err != nil {
		log.Error().Err(err).Msg("failed to create license")
		respondError(c, http.StatusInternalServerError, "failed to create license")
		return
	}

	respondOK(c, http.StatusOK, "license added successfully", nil)
}

// UpdateLicense applies a partial update to a license
func (h *LicenseHandler) UpdateLicense(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid license ID")
		return
	}

	var req UpdateLicenseRequest
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid update payload: "+err.Error())
		return
	}

	if req.LicenseStart != nil && !validDate(*req.LicenseStart) {
		respondError(c, http.StatusBadRequest, "invalid license start date (expected YYYY-MM-DD)")
		return
	}
	if req.LicenseEnd != nil && !validDate(*req.LicenseEnd) {
		respondError(c, http.StatusBadRequest, "invalid license end date (expected YYYY-MM-DD)")
		return
	}
	if req.Software != nil {
		trimmed := strings.TrimSpace(*req.Software)
		req.Software = &trimmed
	}

	patch := services.LicensePatch{
		ComputerID:   req.ComputerID,
		Software:     req.Software,
		LicenseStart: req.LicenseStart,
		LicenseEnd:   req.LicenseEnd,
		Budget:       req.Budget,
	}

	if err := h.licenseService.UpdateLicense(uint(id), patch); err != nil {
		log.Error().Err(err).Uint64("id", id).Msg("failed to update license")
		respondError(c, http.StatusInternalServerError, "failed to update license")
		return
	}

	respondOK(c, http.StatusOK, "license updated successfully", nil)
}

// DeleteLicense removes a license
func (h *LicenseHandler) DeleteLicense(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid license ID")
		return
	}

	if err := h.licenseService.DeleteLicense(uint(id)); err != nil {
		log.Error().Err(err).Uint64("id", id).Msg("failed to delete license")
		respondError(c, http.StatusInternalServerError, "failed to delete license")
		return
	}

	respondOK(c, http.StatusOK, "license deleted successfully", nil)
}

// SearchLicenses filters licenses by software, room and active status
func (h *LicenseHandler) SearchLicenses(c *gin.Context) {
	software := c.Query("software")
	room := c.Query("room")
	activeOnly := strings.EqualFold(c.DefaultQuery("active_only", "false"), "true")

	results, err := h.licenseService.Search(software, room, activeOnly)
	if err != nil {
		log.Error().Err(err).Msg("failed to search licenses")
		respondError(c, http.StatusInternalServerError, "failed to search licenses")
		return
	}

	respondOK(c, http.StatusOK, "", results)
}

// GetStats returns license counts by status
func (h *LicenseHandler) GetStats(c *gin.Context) {
	counts, err := h.licenseService.CountByStatus()
	if err != nil {
		log.Error().Err(err).Msg("failed to count licenses")
		respondError(c, http.StatusInternalServerError, "failed to count licenses")
		return
	}

	respondOK(c, http.StatusOK, "", counts)
}

// CreateLicenseByRoom assigns a license by (room, computer name) instead of id
func (h *LicenseHandler) CreateLicenseByRoom(c *gin.Context) {
	var req CreateLicenseByRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "room_number, computer_name, software, license_start and license_end are required")
		return
	}

	if msg := checkDateRange(req.LicenseStart, req.LicenseEnd); msg != "" {
		respondError(c, http.StatusBadRequest, msg)
		return
	}

	budget := req.Budget
	if budget == nil {
		zero := 0.0
		budget = &zero
	}

	_, err := h.licenseService.CreateByRoom(
		strings.TrimSpace(req.RoomNumber),
		strings.TrimSpace(req.ComputerName),
		strings.TrimSpace(req.Software),
		req.LicenseStart, req.LicenseEnd, budget,
	)
	if err != nil {
		if errors.Is(err, services.ErrComputerNotFound) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		log.Error().Err(err).Msg("failed to create license by room")
		respondError(c, http.StatusInternalServerError, "failed to create license")
		return
	}

	respondOK(c, http.StatusOK, "license added successfully", nil)
}

// UpdateLicenseByDetails rewrites the date range of the license identified
// by (room, computer name, software)
func (h *LicenseHandler) UpdateLicenseByDetails(c *gin.Context) {
	var req UpdateLicenseByDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "room_number, computer_name, software, license_start and license_end are required")
		return
	}

	if msg := checkDateRange(req.LicenseStart, req.LicenseEnd); msg != "" {
		respondError(c, http.StatusBadRequest, msg)
		return
	}

	err := h.licenseService.UpdateByDetails(
		strings.TrimSpace(req.RoomNumber),
		strings.TrimSpace(req.ComputerName),
		strings.TrimSpace(req.Software),
		req.LicenseStart, req.LicenseEnd,
	)
	if err != nil {
		if errors.Is(err, services.ErrLicenseNotFound) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		log.Error().Err(err).Msg("failed to update license by details")
		respondError(c, http.StatusInternalServerError, "failed to update license")
		return
	}

	respondOK(c, http.StatusOK, "license updated successfully", nil)
}
