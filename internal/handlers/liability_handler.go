package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "parishbooks/internal/errors"
	"parishbooks/internal/models"
	"parishbooks/internal/pagination"
	"parishbooks/internal/services"
)

// LiabilityHandler handles liability requests. Mutation responses carry a
// warnings array: a liability write can succeed while its derived income
// sync or a balance delta does not.
type LiabilityHandler struct {
	liabilityService services.LiabilityServicer
	auditService     services.AuditServicer
}

// NewLiabilityHandler creates a new LiabilityHandler.
func NewLiabilityHandler(liabilityService services.LiabilityServicer, auditService services.AuditServicer) *LiabilityHandler {
	return &LiabilityHandler{liabilityService: liabilityService, auditService: auditService}
}

// CreateLiabilityRequest represents the request payload for creating a
// liability. IsLoan accepts a JSON bool or the strings "true"/"false".
type CreateLiabilityRequest struct {
	CreditorName  string          `json:"creditor_name" binding:"required,max=150"`
	TotalAmount   int64           `json:"total_amount" binding:"required,gt=0"`
	Date          string          `json:"date" binding:"required"`
	IsLoan        models.LoanFlag `json:"is_loan"`
	AccountID     *string         `json:"account_id" binding:"omitempty,uuid"`
	PaymentMethod string          `json:"payment_method" binding:"omitempty,payment_method"`
	Notes         string          `json:"notes" binding:"max=1000"`
}

// CreateLiability creates a liability; loans get a mirrored income entry
// @Summary     Create a liability
// @Description Create a liability. When is_loan is set, a matching income entry is created and the funding account is credited. Partial failures are reported in the warnings array.
// @Tags        liabilities
// @Accept      json
// @Produce     json
// @Param       request body CreateLiabilityRequest true "Liability details"
// @Success     201 {object} models.Liability "Liability created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /liabilities [post]
func (h *LiabilityHandler) CreateLiability(c *gin.Context) {
	var req CreateLiabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseFlexibleTime(req.Date)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	liability, warnings, err := h.liabilityService.CreateLiability(services.LiabilityInput{
		CreditorName:  req.CreditorName,
		TotalAmount:   req.TotalAmount,
		Date:          date,
		IsLoan:        req.IsLoan,
		AccountID:     req.AccountID,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_LIABILITY", "liability", liability.ID, c.ClientIP(),
		map[string]interface{}{"creditor": req.CreditorName, "total_amount": req.TotalAmount, "is_loan": req.IsLoan.Bool()})

	c.JSON(http.StatusCreated, liabilityResponse(liability, warnings))
}

// GetLiabilities returns a paginated list of liabilities.
func (h *LiabilityHandler) GetLiabilities(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.liabilityService.GetLiabilities(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetLiabilityByID returns a single liability with its payments.
func (h *LiabilityHandler) GetLiabilityByID(c *gin.Context) {
	liability, err := h.liabilityService.GetLiabilityByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"liability": liability})
}

// UpdateLiabilityRequest represents the request payload for updating a liability.
type UpdateLiabilityRequest struct {
	CreditorName  *string          `json:"creditor_name" binding:"omitempty,max=150"`
	TotalAmount   *int64           `json:"total_amount" binding:"omitempty,gt=0"`
	Date          *string          `json:"date"`
	IsLoan        *models.LoanFlag `json:"is_loan"`
	AccountID     *string          `json:"account_id" binding:"omitempty,uuid"`
	PaymentMethod *string          `json:"payment_method" binding:"omitempty,payment_method"`
	Notes         *string          `json:"notes" binding:"omitempty,max=1000"`
}

// UpdateLiability updates a liability and re-syncs its derived income entry
// @Summary     Update a liability
// @Description Update a liability. For loans the mirrored income entry and account balances are reconciled; partial failures are reported in the warnings array.
// @Tags        liabilities
// @Accept      json
// @Produce     json
// @Param       id path string true "Liability ID"
// @Param       request body UpdateLiabilityRequest true "Fields to update"
// @Success     200 {object} models.Liability
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /liabilities/{id} [put]
func (h *LiabilityHandler) UpdateLiability(c *gin.Context) {
	var req UpdateLiabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseOptionalTime(req.Date)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	liability, warnings, err := h.liabilityService.UpdateLiability(c.Param("id"), services.LiabilityUpdateFields{
		CreditorName:  req.CreditorName,
		TotalAmount:   req.TotalAmount,
		Date:          date,
		IsLoan:        req.IsLoan,
		AccountID:     req.AccountID,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_LIABILITY", "liability", liability.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, liabilityResponse(liability, warnings))
}

// MakePaymentRequest represents the request payload for a liability payment.
type MakePaymentRequest struct {
	Amount        int64  `json:"amount" binding:"required,gt=0"`
	Date          string `json:"date"`
	AccountID     string `json:"account_id" binding:"required,uuid"`
	PaymentMethod string `json:"payment_method" binding:"omitempty,payment_method"`
	Note          string `json:"note" binding:"max=500"`
}

// MakePayment records a repayment against a liability
// @Summary     Record a liability payment
// @Description Record a repayment. An expenditure entry is created against the paying account, the account is debited, and the liability totals and status are updated.
// @Tags        liabilities
// @Accept      json
// @Produce     json
// @Param       id path string true "Liability ID"
// @Param       request body MakePaymentRequest true "Payment details"
// @Success     200 {object} models.Liability
// @Failure     400 {object} ErrorResponse "Invalid input or payment exceeds remaining amount"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /liabilities/{id}/payments [post]
func (h *LiabilityHandler) MakePayment(c *gin.Context) {
	var req MakePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseOptionalTime(stringPtrOrNil(req.Date))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.PaymentInput{
		Amount:        req.Amount,
		AccountID:     req.AccountID,
		PaymentMethod: req.PaymentMethod,
		Note:          req.Note,
	}
	if date != nil {
		input.Date = *date
	}

	liability, warnings, err := h.liabilityService.MakePayment(c.Param("id"), input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("LIABILITY_PAYMENT", "liability", liability.ID, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount, "account_id": req.AccountID})

	c.JSON(http.StatusOK, liabilityResponse(liability, warnings))
}

// DeleteLiability deletes a liability along with its payments and derived income.
func (h *LiabilityHandler) DeleteLiability(c *gin.Context) {
	id := c.Param("id")
	if err := h.liabilityService.DeleteLiability(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_LIABILITY", "liability", id, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}

// liabilityResponse wraps a liability with its reconciliation warnings.
// Warnings is always present, empty when nothing went wrong.
func liabilityResponse(liability *models.Liability, warnings []string) gin.H {
	if warnings == nil {
		warnings = []string{}
	}
	return gin.H{"liability": liability, "warnings": warnings}
}

func stringPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
