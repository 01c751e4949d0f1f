package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "parishbooks/internal/errors"
	"parishbooks/internal/models"
	"parishbooks/internal/pagination"
)

// accountService handles account-related business logic.
type accountService struct {
	db *gorm.DB
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB) AccountServicer {
	return &accountService{db: db}
}

// CreateAccount creates a new money-holding account. A non-zero initial
// balance is recorded as an opening income entry so the ledger and the
// entry history agree.
func (s *accountService) CreateAccount(name string, accountType models.AccountType, description, currency, bankName, accountNumber string, initialBalance int64) (*models.Account, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}
	if initialBalance < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "initial balance cannot be negative")
	}

	if currency == "" {
		currency = "USD"
	}
	if accountType == "" {
		accountType = models.AccountTypeCash
	}

	account := &models.Account{
		Name:          name,
		Type:          accountType,
		Description:   description,
		Balance:       initialBalance,
		Currency:      currency,
		BankName:      bankName,
		AccountNumber: accountNumber,
		IsActive:      true,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if initialBalance > 0 {
			opening := &models.Income{
				Amount:      initialBalance,
				Date:        time.Now(),
				Description: "Initial balance",
				AccountID:   &account.ID,
			}
			if err := tx.Create(opening).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccounts retrieves a paginated list of active accounts.
func (s *accountService) GetAccounts(page pagination.PageRequest) (*pagination.PageResponse[models.Account], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Account{}).Where("is_active = ?", true)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var accounts []models.Account
	if err := base.Scopes(pagination.Paginate(page)).Order("name").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(accounts, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetAccountByID retrieves an account by ID.
func (s *accountService) GetAccountByID(accountID string) (*models.Account, error) {
	var account models.Account
	if err := s.db.Where("id = ?", accountID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// UpdateAccount updates an existing account's descriptive fields.
// The balance is never set directly; it only moves through ApplyBalanceDelta.
func (s *accountService) UpdateAccount(accountID string, fields AccountUpdateFields) (*models.Account, error) {
	account, err := s.GetAccountByID(accountID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if fields.Name != nil && *fields.Name != "" {
		updates["name"] = *fields.Name
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if fields.BankName != nil {
		updates["bank_name"] = *fields.BankName
	}
	if fields.AccountNumber != nil {
		updates["account_number"] = *fields.AccountNumber
	}
	if fields.IsActive != nil {
		updates["is_active"] = *fields.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(account).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		// Reload to get fresh data
		if err := s.db.Where("id = ?", account.ID).First(account).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return account, nil
}

// ApplyBalanceDelta applies a signed adjustment to an account's running
// balance. LedgerOpCreate adds a contribution, LedgerOpDelete reverses
// one; the sign further depends on the transaction kind. Callers never
// set an absolute balance.
func (s *accountService) ApplyBalanceDelta(tx *gorm.DB, accountID string, amount int64, op LedgerOp, kind LedgerKind) error {
	if amount < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "delta amount cannot be negative")
	}
	if tx == nil {
		tx = s.db
	}

	var signed int64
	switch kind {
	case LedgerKindIncome, LedgerKindTransferIn:
		signed = amount
	case LedgerKindExpenditure, LedgerKindTransferOut:
		signed = -amount
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "unsupported ledger kind")
	}
	if op == LedgerOpDelete {
		signed = -signed
	}

	res := tx.Model(&models.Account{}).
		Where("id = ?", accountID).
		UpdateColumn("balance", gorm.Expr("balance + ?", signed))
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}
