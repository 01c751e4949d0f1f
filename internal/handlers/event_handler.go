package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "parishbooks/internal/errors"
	"parishbooks/internal/pagination"
	"parishbooks/internal/services"
)

// EventHandler handles event-calendar requests.
type EventHandler struct {
	eventService services.EventServicer
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(eventService services.EventServicer) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// CreateEventRequest represents the request payload for creating an event.
type CreateEventRequest struct {
	Name        string  `json:"name" binding:"required,max=150"`
	Description string  `json:"description" binding:"max=1000"`
	Location    string  `json:"location" binding:"max=200"`
	StartsAt    string  `json:"starts_at" binding:"required"`
	EndsAt      *string `json:"ends_at"`
}

// CreateEvent creates a calendar event.
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	startsAt, err := parseFlexibleTime(req.StartsAt)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	endsAt, err := parseOptionalTime(req.EndsAt)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	event, err := h.eventService.CreateEvent(req.Name, req.Description, req.Location, startsAt, endsAt)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"event": event})
}

// GetEvents returns a paginated event list, optionally bounded by date.
func (h *EventHandler) GetEvents(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	from, err := parseOptionalTime(stringPtrOrNil(c.Query("from")))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	to, err := parseOptionalTime(stringPtrOrNil(c.Query("to")))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.eventService.GetEvents(page, from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetEventByID returns a single event.
func (h *EventHandler) GetEventByID(c *gin.Context) {
	event, err := h.eventService.GetEventByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": event})
}

// UpdateEventRequest represents the request payload for updating an event.
type UpdateEventRequest struct {
	Name        string  `json:"name" binding:"omitempty,max=150"`
	Description string  `json:"description" binding:"omitempty,max=1000"`
	Location    string  `json:"location" binding:"omitempty,max=200"`
	StartsAt    *string `json:"starts_at"`
	EndsAt      *string `json:"ends_at"`
}

// UpdateEvent updates a calendar event.
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	startsAt, err := parseOptionalTime(req.StartsAt)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	endsAt, err := parseOptionalTime(req.EndsAt)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	event, err := h.eventService.UpdateEvent(c.Param("id"), req.Name, req.Description, req.Location, startsAt, endsAt)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": event})
}

// DeleteEvent deletes a calendar event.
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	if err := h.eventService.DeleteEvent(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
