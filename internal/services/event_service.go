package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "parishbooks/internal/errors"
	"parishbooks/internal/models"
	"parishbooks/internal/pagination"
)

// eventService handles event-calendar business logic.
type eventService struct {
	db *gorm.DB
}

// NewEventService creates a new EventServicer.
func NewEventService(db *gorm.DB) EventServicer {
	return &eventService{db: db}
}

// CreateEvent creates a calendar event.
func (s *eventService) CreateEvent(name, description, location string, startsAt time.Time, endsAt *time.Time) (*models.Event, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "event name is required")
	}
	if startsAt.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "event start time is required")
	}
	if endsAt != nil && endsAt.Before(startsAt) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "event end time must be after the start time")
	}

	event := &models.Event{
		Name:        name,
		Description: description,
		Location:    location,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
	}
	if err := s.db.Create(event).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return event, nil
}

// GetEvents retrieves a paginated list of events, optionally within a
// date window.
func (s *eventService) GetEvents(page pagination.PageRequest, from, to *time.Time) (*pagination.PageResponse[models.Event], error) {
	page.Defaults()

	base := s.db.Model(&models.Event{})
	if from != nil {
		base = base.Where("starts_at >= ?", *from)
	}
	if to != nil {
		base = base.Where("starts_at <= ?", *to)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var events []models.Event
	if err := base.Scopes(pagination.Paginate(page)).
		Order("starts_at DESC").
		Find(&events).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(events, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetEventByID retrieves an event by ID.
func (s *eventService) GetEventByID(eventID string) (*models.Event, error) {
	var event models.Event
	if err := s.db.Where("id = ?", eventID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &event, nil
}

// UpdateEvent updates an existing event.
func (s *eventService) UpdateEvent(eventID string, name, description, location string, startsAt, endsAt *time.Time) (*models.Event, error) {
	event, err := s.GetEventByID(eventID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if description != "" {
		updates["description"] = description
	}
	if location != "" {
		updates["location"] = location
	}
	if startsAt != nil {
		updates["starts_at"] = *startsAt
	}
	if endsAt != nil {
		updates["ends_at"] = *endsAt
	}

	if len(updates) > 0 {
		if err := s.db.Model(event).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.db.Where("id = ?", event.ID).First(event).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return event, nil
}

// DeleteEvent soft-deletes an event and its attendance records.
func (s *eventService) DeleteEvent(eventID string) error {
	event, err := s.GetEventByID(eventID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", event.ID).Delete(&models.Attendance{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(event).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
