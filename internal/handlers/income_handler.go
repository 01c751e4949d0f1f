package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "parishbooks/internal/errors"
	"parishbooks/internal/pagination"
	"parishbooks/internal/services"
)

// IncomeHandler handles income-entry requests.
type IncomeHandler struct {
	incomeService services.IncomeServicer
	auditService  services.AuditServicer
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(incomeService services.IncomeServicer, auditService services.AuditServicer) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService, auditService: auditService}
}

// CreateEntryRequest represents the request payload for creating an income
// or expenditure entry. Amounts are integer cents.
type CreateEntryRequest struct {
	Amount        int64   `json:"amount" binding:"required,gt=0"`
	Date          string  `json:"date" binding:"required"`
	Description   string  `json:"description" binding:"max=500"`
	CategoryID    *string `json:"category_id" binding:"omitempty,uuid"`
	AccountID     *string `json:"account_id" binding:"omitempty,uuid"`
	PaymentMethod string  `json:"payment_method" binding:"omitempty,payment_method"`
}

// UpdateEntryRequest represents the request payload for updating an entry.
type UpdateEntryRequest struct {
	Amount        *int64  `json:"amount" binding:"omitempty,gt=0"`
	Date          *string `json:"date"`
	Description   *string `json:"description" binding:"omitempty,max=500"`
	CategoryID    *string `json:"category_id" binding:"omitempty,uuid"`
	AccountID     *string `json:"account_id" binding:"omitempty,uuid"`
	PaymentMethod *string `json:"payment_method" binding:"omitempty,payment_method"`
}

// CreateIncome creates an income entry and credits its account
// @Summary     Create an income entry
// @Description Record an income entry; the target account balance is credited atomically
// @Tags        income
// @Accept      json
// @Produce     json
// @Param       request body CreateEntryRequest true "Entry details"
// @Success     201 {object} models.Income "Income created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /income [post]
func (h *IncomeHandler) CreateIncome(c *gin.Context) {
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

	income, err := h.incomeService.CreateIncome(services.EntryInput{
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

	h.auditService.Log("CREATE_INCOME", "income", income.ID, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount})

	c.JSON(http.StatusCreated, gin.H{"income": income})
}

// GetIncomes returns a filtered, paginated list of income entries
// @Summary     List income entries
// @Tags        income
// @Produce     json
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       from query string false "From date (YYYY-MM-DD)"
// @Param       to query string false "To date (YYYY-MM-DD)"
// @Param       category_id query string false "Category filter"
// @Param       account_id query string false "Account filter"
// @Success     200 {object} pagination.PageResponse[models.Income]
// @Router      /income [get]
func (h *IncomeHandler) GetIncomes(c *gin.Context) {
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

	result, err := h.incomeService.GetIncomes(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetIncomeByID returns a single income entry.
func (h *IncomeHandler) GetIncomeByID(c *gin.Context) {
	income, err := h.incomeService.GetIncomeByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"income": income})
}

// UpdateIncome updates an income entry, compensating account balances when
// the amount or account changes.
func (h *IncomeHandler) UpdateIncome(c *gin.Context) {
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

	income, err := h.incomeService.UpdateIncome(c.Param("id"), fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_INCOME", "income", income.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"income": income})
}

// DeleteIncome deletes an income entry and reverses its balance contribution.
func (h *IncomeHandler) DeleteIncome(c *gin.Context) {
	id := c.Param("id")
	if err := h.incomeService.DeleteIncome(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_INCOME", "income", id, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}

// entryFilterFromQuery builds an EntryFilter from list query parameters.
func entryFilterFromQuery(c *gin.Context) (services.EntryFilter, error) {
	var filter services.EntryFilter

	if from := c.Query("from"); from != "" {
		t, err := parseFlexibleTime(from)
		if err != nil {
			return filter, err
		}
		filter.FromDate = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := parseFlexibleTime(to)
		if err != nil {
			return filter, err
		}
		filter.ToDate = &t
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		filter.CategoryID = &categoryID
	}
	if accountID := c.Query("account_id"); accountID != "" {
		filter.AccountID = &accountID
	}
	if raw := c.Query("min_amount"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, err
		}
		filter.MinAmount = &v
	}
	if raw := c.Query("max_amount"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, err
		}
		filter.MaxAmount = &v
	}

	return filter, nil
}

// entryUpdateFieldsFromRequest converts an update payload, parsing the
// optional date string.
func entryUpdateFieldsFromRequest(req UpdateEntryRequest) (services.EntryUpdateFields, error) {
	date, err := parseOptionalTime(req.Date)
	if err != nil {
		return services.EntryUpdateFields{}, err
	}
	return services.EntryUpdateFields{
		Amount:        req.Amount,
		Date:          date,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		AccountID:     req.AccountID,
		PaymentMethod: req.PaymentMethod,
	}, nil
}
