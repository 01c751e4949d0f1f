package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "parishbooks/internal/errors"
	"parishbooks/internal/models"
	"parishbooks/internal/pagination"
)

// attendanceService handles attendance capture.
type attendanceService struct {
	db      *gorm.DB
	members MemberServicer
	events  EventServicer
}

// NewAttendanceService creates a new AttendanceServicer.
func NewAttendanceService(db *gorm.DB, members MemberServicer, events EventServicer) AttendanceServicer {
	return &attendanceService{db: db, members: members, events: events}
}

// RecordAttendance marks a member present or absent at an event. Repeat
// calls for the same member and event update the existing record.
func (s *attendanceService) RecordAttendance(eventID, memberID string, present bool, note string) (*models.Attendance, error) {
	event, err := s.events.GetEventByID(eventID)
	if err != nil {
		return nil, err
	}
	if _, err := s.members.GetMemberByID(memberID); err != nil {
		return nil, err
	}

	var record models.Attendance
	err = s.db.Where("event_id = ? AND member_id = ?", eventID, memberID).First(&record).Error
	switch {
	case err == nil:
		if err := s.db.Model(&record).Updates(map[string]interface{}{
			"present": present,
			"note":    note,
		}).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		record.Present = present
		record.Note = note
		return &record, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		record = models.Attendance{
			EventID:  eventID,
			MemberID: memberID,
			Date:     event.StartsAt,
			Present:  present,
			Note:     note,
		}
		if err := s.db.Create(&record).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &record, nil

	default:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
}

// GetEventAttendance lists attendance records for one event.
func (s *attendanceService) GetEventAttendance(eventID string, page pagination.PageRequest) (*pagination.PageResponse[models.Attendance], error) {
	if _, err := s.events.GetEventByID(eventID); err != nil {
		return nil, err
	}
	return s.listAttendance("event_id = ?", eventID, page)
}

// GetMemberAttendance lists attendance records for one member.
func (s *attendanceService) GetMemberAttendance(memberID string, page pagination.PageRequest) (*pagination.PageResponse[models.Attendance], error) {
	if _, err := s.members.GetMemberByID(memberID); err != nil {
		return nil, err
	}
	return s.listAttendance("member_id = ?", memberID, page)
}

func (s *attendanceService) listAttendance(cond, id string, page pagination.PageRequest) (*pagination.PageResponse[models.Attendance], error) {
	page.Defaults()

	base := s.db.Model(&models.Attendance{}).Where(cond, id)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var records []models.Attendance
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&records).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(records, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetEventSummary returns present/absent counts for an event.
func (s *attendanceService) GetEventSummary(eventID string) (*AttendanceSummary, error) {
	if _, err := s.events.GetEventByID(eventID); err != nil {
		return nil, err
	}

	summary := &AttendanceSummary{EventID: eventID}
	if err := s.db.Model(&models.Attendance{}).
		Where("event_id = ? AND present = ?", eventID, true).
		Count(&summary.Present).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Model(&models.Attendance{}).
		Where("event_id = ? AND present = ?", eventID, false).
		Count(&summary.Absent).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return summary, nil
}

// DeleteAttendance removes a single attendance record.
func (s *attendanceService) DeleteAttendance(attendanceID string) error {
	var record models.Attendance
	if err := s.db.Where("id = ?", attendanceID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrAttendanceNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Delete(&record).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
