package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "parishbooks/internal/errors"
	"parishbooks/internal/models"
	"parishbooks/internal/pagination"
	"parishbooks/internal/services"
)

// MemberHandler handles member-registry requests.
type MemberHandler struct {
	memberService services.MemberServicer
	auditService  services.AuditServicer
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(memberService services.MemberServicer, auditService services.AuditServicer) *MemberHandler {
	return &MemberHandler{memberService: memberService, auditService: auditService}
}

// CreateMemberRequest represents the request payload for registering a member.
type CreateMemberRequest struct {
	FirstName   string  `json:"first_name" binding:"required,max=100"`
	LastName    string  `json:"last_name" binding:"required,max=100"`
	Gender      string  `json:"gender" binding:"omitempty,oneof=male female other"`
	Phone       string  `json:"phone" binding:"omitempty,phone"`
	Email       string  `json:"email" binding:"omitempty,email"`
	Address     string  `json:"address" binding:"max=500"`
	DateOfBirth *string `json:"date_of_birth"`
	JoinedAt    *string `json:"joined_at"`
	Status      string  `json:"status" binding:"omitempty,member_status"`
}

// CreateMember registers a new member
// @Summary     Register a member
// @Tags        members
// @Accept      json
// @Produce     json
// @Param       request body CreateMemberRequest true "Member details"
// @Success     201 {object} models.Member "Member created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /members [post]
func (h *MemberHandler) CreateMember(c *gin.Context) {
	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	dateOfBirth, err := parseOptionalTime(req.DateOfBirth)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	joinedAt, err := parseOptionalTime(req.JoinedAt)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	member, err := h.memberService.CreateMember(
		req.FirstName, req.LastName, req.Gender, req.Phone, req.Email, req.Address,
		dateOfBirth, joinedAt, models.MemberStatus(req.Status),
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_MEMBER", "member", member.ID, c.ClientIP(), nil)

	c.JSON(http.StatusCreated, gin.H{"member": member})
}

// GetMembers returns a paginated member list with optional search and status filter.
func (h *MemberHandler) GetMembers(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var status *models.MemberStatus
	if raw := c.Query("status"); raw != "" {
		s := models.MemberStatus(raw)
		status = &s
	}

	result, err := h.memberService.GetMembers(page, c.Query("search"), status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMemberByID returns a single member.
func (h *MemberHandler) GetMemberByID(c *gin.Context) {
	member, err := h.memberService.GetMemberByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"member": member})
}

// UpdateMemberRequest represents the request payload for updating a member.
type UpdateMemberRequest struct {
	FirstName   *string `json:"first_name" binding:"omitempty,max=100"`
	LastName    *string `json:"last_name" binding:"omitempty,max=100"`
	Gender      *string `json:"gender" binding:"omitempty,oneof=male female other"`
	Phone       *string `json:"phone" binding:"omitempty,phone"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Address     *string `json:"address" binding:"omitempty,max=500"`
	DateOfBirth *string `json:"date_of_birth"`
	JoinedAt    *string `json:"joined_at"`
	Status      *string `json:"status" binding:"omitempty,member_status"`
	Notes       *string `json:"notes" binding:"omitempty,max=1000"`
}

// UpdateMember updates a member's details.
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	dateOfBirth, err := parseOptionalTime(req.DateOfBirth)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	joinedAt, err := parseOptionalTime(req.JoinedAt)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fields := services.MemberUpdateFields{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Gender:      req.Gender,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		DateOfBirth: dateOfBirth,
		JoinedAt:    joinedAt,
		Notes:       req.Notes,
	}
	if req.Status != nil {
		s := models.MemberStatus(*req.Status)
		fields.Status = &s
	}

	member, err := h.memberService.UpdateMember(c.Param("id"), fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_MEMBER", "member", member.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"member": member})
}

// DeleteMember removes a member from the registry.
func (h *MemberHandler) DeleteMember(c *gin.Context) {
	id := c.Param("id")
	if err := h.memberService.DeleteMember(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_MEMBER", "member", id, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}
