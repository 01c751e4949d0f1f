package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "parishbooks/internal/errors"
	"parishbooks/internal/pagination"
	"parishbooks/internal/services"
)

// ExpenditureHandler handles expenditure-entry requests.
type ExpenditureHandler struct {
	expenditureService services.ExpenditureServicer
	auditService       services.AuditServicer
}

// NewExpenditureHandler creates a new ExpenditureHandler.
func NewExpenditureHandler(expenditureService services.ExpenditureServicer, auditService services.AuditServicer) *ExpenditureHandler {
	return &ExpenditureHandler{expenditureService: expenditureService, auditService: auditService}
}

// CreateExpenditure creates an expenditure entry and debits its account
// @Summary     Create an expenditure entry
// @Tags        expenditure
// @Accept      json
// @Produce     json
// @Param       request body CreateEntryRequest true "Entry details"
// @Success     201 {object} models.Expenditure "Expenditure created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /expenditure [post]
func (h *ExpenditureHandler) CreateExpenditure(c *gin.Context) {
	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseFlexibleTime(req.Date)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expenditure, err := h.expenditureService.CreateExpenditure(services.EntryInput{
		Amount:        req.Amount,
		Date:          date,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		AccountID:     req.AccountID,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_EXPENDITURE", "expenditure", expenditure.ID, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount})

	c.JSON(http.StatusCreated, gin.H{"expenditure": expenditure})
}

// GetExpenditures returns a filtered, paginated list of expenditure entries.
func (h *ExpenditureHandler) GetExpenditures(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := entryFilterFromQuery(c)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.expenditureService.GetExpenditures(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetExpenditureByID returns a single expenditure entry.
func (h *ExpenditureHandler) GetExpenditureByID(c *gin.Context) {
	expenditure, err := h.expenditureService.GetExpenditureByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expenditure": expenditure})
}

// UpdateExpenditure updates an expenditure entry, compensating account
// balances when the amount or account changes.
func (h *ExpenditureHandler) UpdateExpenditure(c *gin.Context) {
	var req UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fields, err := entryUpdateFieldsFromRequest(req)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expenditure, err := h.expenditureService.UpdateExpenditure(c.Param("id"), fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_EXPENDITURE", "expenditure", expenditure.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"expenditure": expenditure})
}

// DeleteExpenditure deletes an expenditure entry and reverses its balance
// contribution.
func (h *ExpenditureHandler) DeleteExpenditure(c *gin.Context) {
	id := c.Param("id")
	if err := h.expenditureService.DeleteExpenditure(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_EXPENDITURE", "expenditure", id, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}
