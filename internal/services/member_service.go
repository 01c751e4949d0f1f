package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "parishbooks/internal/errors"
	"parishbooks/internal/models"
	"parishbooks/internal/pagination"
)

// memberService handles member-registry business logic.
type memberService struct {
	db *gorm.DB
}

// NewMemberService creates a new MemberServicer.
func NewMemberService(db *gorm.DB) MemberServicer {
	return &memberService{db: db}
}

// CreateMember registers a new member.
func (s *memberService) CreateMember(firstName, lastName, gender, phone, email, address string, dateOfBirth, joinedAt *time.Time, status models.MemberStatus) (*models.Member, error) {
	if firstName == "" || lastName == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "first and last name are required")
	}
	if status == "" {
		status = models.MemberStatusActive
	}

	member := &models.Member{
		FirstName:   firstName,
		LastName:    lastName,
		Gender:      gender,
		Phone:       phone,
		Email:       email,
		Address:     address,
		DateOfBirth: dateOfBirth,
		JoinedAt:    joinedAt,
		Status:      status,
	}

	if err := s.db.Create(member).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return member, nil
}

// GetMembers retrieves a paginated list of members, optionally filtered
// by a case-insensitive name search and by status.
func (s *memberService) GetMembers(page pagination.PageRequest, search string, status *models.MemberStatus) (*pagination.PageResponse[models.Member], error) {
	page.Defaults()

	base := s.db.Model(&models.Member{})
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		base = base.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", pattern, pattern)
	}
	if status != nil {
		base = base.Where("status = ?", *status)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var members []models.Member
	if err := base.Scopes(pagination.Paginate(page)).
		Order("last_name, first_name").
		Find(&members).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(members, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetMemberByID retrieves a member by ID.
func (s *memberService) GetMemberByID(memberID string) (*models.Member, error) {
	var member models.Member
	if err := s.db.Where("id = ?", memberID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMemberNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &member, nil
}

// UpdateMember updates an existing member.
func (s *memberService) UpdateMember(memberID string, fields MemberUpdateFields) (*models.Member, error) {
	member, err := s.GetMemberByID(memberID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if fields.FirstName != nil && *fields.FirstName != "" {
		updates["first_name"] = *fields.FirstName
	}
	if fields.LastName != nil && *fields.LastName != "" {
		updates["last_name"] = *fields.LastName
	}
	if fields.Gender != nil {
		updates["gender"] = *fields.Gender
	}
	if fields.Phone != nil {
		updates["phone"] = *fields.Phone
	}
	if fields.Email != nil {
		updates["email"] = *fields.Email
	}
	if fields.Address != nil {
		updates["address"] = *fields.Address
	}
	if fields.DateOfBirth != nil {
		updates["date_of_birth"] = *fields.DateOfBirth
	}
	if fields.JoinedAt != nil {
		updates["joined_at"] = *fields.JoinedAt
	}
	if fields.Status != nil {
		updates["status"] = *fields.Status
	}
	if fields.Notes != nil {
		updates["notes"] = *fields.Notes
	}

	if len(updates) > 0 {
		if err := s.db.Model(member).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.db.Where("id = ?", member.ID).First(member).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return member, nil
}

// DeleteMember soft-deletes a member. Attendance history is kept.
func (s *memberService) DeleteMember(memberID string) error {
	member, err := s.GetMemberByID(memberID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(member).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
