package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "parishbooks/internal/errors"
	"parishbooks/internal/models"
	"parishbooks/internal/pagination"
	"parishbooks/internal/services"
)

// AccountHandler handles account-related requests.
type AccountHandler struct {
	accountService services.AccountServicer
	auditService   services.AuditServicer
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService services.AccountServicer, auditService services.AuditServicer) *AccountHandler {
	return &AccountHandler{accountService: accountService, auditService: auditService}
}

// CreateAccountRequest represents the request payload for creating an account.
type CreateAccountRequest struct {
	Name           string `json:"name" binding:"required,max=100"`
	Type           string `json:"type" binding:"omitempty,account_type"`
	Description    string `json:"description" binding:"max=500"`
	Currency       string `json:"currency" binding:"omitempty,len=3"`
	BankName       string `json:"bank_name" binding:"max=100"`
	AccountNumber  string `json:"account_number" binding:"max=50"`
	InitialBalance int64  `json:"initial_balance" binding:"omitempty,min=0"`
}

// CreateAccount handles the creation of a new account
// @Summary     Create an account
// @Description Create a new money-holding account, optionally with an opening balance
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Param       request body CreateAccountRequest true "Account details"
// @Success     201 {object} models.Account "Account created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts [post]
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := h.accountService.CreateAccount(
		req.Name,
		models.AccountType(req.Type),
		req.Description,
		req.Currency,
		req.BankName,
		req.AccountNumber,
		req.InitialBalance,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_ACCOUNT", "account", account.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "initial_balance": req.InitialBalance})

	c.JSON(http.StatusCreated, gin.H{"account": account})
}

// GetAccounts returns a paginated list of accounts
// @Summary     List accounts
// @Tags        accounts
// @Produce     json
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Account]
// @Router      /accounts [get]
func (h *AccountHandler) GetAccounts(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.accountService.GetAccounts(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAccountByID returns a single account
// @Summary     Get an account
// @Tags        accounts
// @Produce     json
// @Param       id path string true "Account ID"
// @Success     200 {object} models.Account
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /accounts/{id} [get]
func (h *AccountHandler) GetAccountByID(c *gin.Context) {
	account, err := h.accountService.GetAccountByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account})
}

// UpdateAccountRequest represents the request payload for updating an account.
type UpdateAccountRequest struct {
	Name          *string `json:"name" binding:"omitempty,max=100"`
	Description   *string `json:"description" binding:"omitempty,max=500"`
	BankName      *string `json:"bank_name" binding:"omitempty,max=100"`
	AccountNumber *string `json:"account_number" binding:"omitempty,max=50"`
	IsActive      *bool   `json:"is_active"`
}

// UpdateAccount updates an account's descriptive fields
// @Summary     Update an account
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Param       id path string true "Account ID"
// @Param       request body UpdateAccountRequest true "Fields to update"
// @Success     200 {object} models.Account
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /accounts/{id} [put]
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := h.accountService.UpdateAccount(c.Param("id"), services.AccountUpdateFields{
		Name:          req.Name,
		Description:   req.Description,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		IsActive:      req.IsActive,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_ACCOUNT", "account", account.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"account": account})
}
