package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "parishbooks/internal/errors"
	"parishbooks/internal/pagination"
	"parishbooks/internal/services"
)

// AttendanceHandler handles attendance-capture requests.
type AttendanceHandler struct {
	attendanceService services.AttendanceServicer
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(attendanceService services.AttendanceServicer) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// RecordAttendanceRequest represents the request payload for recording attendance.
type RecordAttendanceRequest struct {
	MemberID string `json:"member_id" binding:"required,uuid"`
	Present  *bool  `json:"present" binding:"required"`
	Note     string `json:"note" binding:"max=500"`
}

// RecordAttendance records (or re-records) one member's attendance at an event
// @Summary     Record attendance
// @Description Record a member's attendance at an event. Re-recording the same member updates the existing row.
// @Tags        attendance
// @Accept      json
// @Produce     json
// @Param       id path string true "Event ID"
// @Param       request body RecordAttendanceRequest true "Attendance details"
// @Success     200 {object} models.Attendance
// @Failure     404 {object} ErrorResponse "Event or member not found"
// @Router      /events/{id}/attendance [post]
func (h *AttendanceHandler) RecordAttendance(c *gin.Context) {
	var req RecordAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	attendance, err := h.attendanceService.RecordAttendance(c.Param("id"), req.MemberID, *req.Present, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"attendance": attendance})
}

// GetEventAttendance lists attendance rows for an event.
func (h *AttendanceHandler) GetEventAttendance(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.attendanceService.GetEventAttendance(c.Param("id"), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetEventSummary returns present/absent counts for an event.
func (h *AttendanceHandler) GetEventSummary(c *gin.Context) {
	summary, err := h.attendanceService.GetEventSummary(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetMemberAttendance lists a member's attendance history.
func (h *AttendanceHandler) GetMemberAttendance(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.attendanceService.GetMemberAttendance(c.Param("id"), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteAttendance removes an attendance row.
func (h *AttendanceHandler) DeleteAttendance(c *gin.Context) {
	if err := h.attendanceService.DeleteAttendance(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
