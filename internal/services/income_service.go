package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "parishbooks/internal/errors"
	"parishbooks/internal/models"
	"parishbooks/internal/pagination"
)

// incomeService handles income-entry business logic.
type incomeService struct {
	db       *gorm.DB
	accounts AccountServicer
}

// NewIncomeService creates a new IncomeServicer.
func NewIncomeService(db *gorm.DB, accounts AccountServicer) IncomeServicer {
	return &incomeService{db: db, accounts: accounts}
}

// CreateIncome records an inflow and credits the target account.
func (s *incomeService) CreateIncome(input EntryInput) (*models.Income, error) {
	if input.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if input.Date.IsZero() {
		input.Date = time.Now()
	}

	income := &models.Income{
		Amount:        input.Amount,
		Date:          input.Date,
		Description:   input.Description,
		CategoryID:    input.CategoryID,
		AccountID:     input.AccountID,
		PaymentMethod: input.PaymentMethod,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(income).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if income.AccountID != nil {
			return s.accounts.ApplyBalanceDelta(tx, *income.AccountID, income.Amount, LedgerOpCreate, LedgerKindIncome)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return income, nil
}

// GetIncomes retrieves a paginated, filtered list of income entries.
func (s *incomeService) GetIncomes(page pagination.PageRequest, filter EntryFilter) (*pagination.PageResponse[models.Income], error) {
	page.Defaults()

	base := applyEntryFilters(s.db.Model(&models.Income{}), filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var incomes []models.Income
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&incomes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(incomes, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetIncomeByID retrieves an income entry by ID.
func (s *incomeService) GetIncomeByID(incomeID string) (*models.Income, error) {
	var income models.Income
	if err := s.db.Where("id = ?", incomeID).First(&income).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrIncomeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &income, nil
}

// UpdateIncome updates an income entry. Amount and account changes apply
// compensating balance deltas so the ledger keeps matching the entry.
func (s *incomeService) UpdateIncome(incomeID string, fields EntryUpdateFields) (*models.Income, error) {
	income, err := s.GetIncomeByID(incomeID)
	if err != nil {
		return nil, err
	}

	oldAmount := income.Amount
	oldAccountID := income.AccountID

	updates := make(map[string]interface{})
	if fields.Amount != nil {
		if *fields.Amount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
		}
		updates["amount"] = *fields.Amount
		income.Amount = *fields.Amount
	}
	if fields.Date != nil {
		updates["date"] = *fields.Date
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if fields.CategoryID != nil {
		updates["category_id"] = fields.CategoryID
	}
	if fields.AccountID != nil {
		if *fields.AccountID == "" {
			income.AccountID = nil
		} else {
			income.AccountID = fields.AccountID
		}
		updates["account_id"] = income.AccountID
	}
	if fields.PaymentMethod != nil {
		updates["payment_method"] = *fields.PaymentMethod
	}

	if len(updates) == 0 {
		return income, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Income{}).Where("id = ?", income.ID).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return adjustEntryBalance(tx, s.accounts, LedgerKindIncome, oldAccountID, income.AccountID, oldAmount, income.Amount)
	})
	if err != nil {
		return nil, err
	}

	return s.GetIncomeByID(income.ID)
}

// DeleteIncome removes an income entry and reverses its balance contribution.
func (s *incomeService) DeleteIncome(incomeID string) error {
	income, err := s.GetIncomeByID(incomeID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(income).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if income.AccountID != nil {
			return s.accounts.ApplyBalanceDelta(tx, *income.AccountID, income.Amount, LedgerOpDelete, LedgerKindIncome)
		}
		return nil
	})
}

// applyEntryFilters narrows an income or expenditure query.
func applyEntryFilters(q *gorm.DB, f EntryFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", *f.ToDate)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.AccountID != nil {
		q = q.Where("account_id = ?", *f.AccountID)
	}
	if f.MinAmount != nil {
		q = q.Where("amount >= ?", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		q = q.Where("amount <= ?", *f.MaxAmount)
	}
	return q
}

// adjustEntryBalance reconciles account balances after an entry's amount
// or account changed. Moves reverse the old contribution in full and
// apply the new one; same-account amount changes apply only the difference.
func adjustEntryBalance(tx *gorm.DB, accounts AccountServicer, kind LedgerKind, oldAccountID, newAccountID *string, oldAmount, newAmount int64) error {
	switch {
	case oldAccountID != nil && newAccountID != nil && *oldAccountID != *newAccountID:
		if err := accounts.ApplyBalanceDelta(tx, *oldAccountID, oldAmount, LedgerOpDelete, kind); err != nil {
			return err
		}
		return accounts.ApplyBalanceDelta(tx, *newAccountID, newAmount, LedgerOpCreate, kind)

	case oldAccountID != nil && newAccountID != nil && oldAmount != newAmount:
		diff := newAmount - oldAmount
		op := LedgerOpCreate
		if diff < 0 {
			op = LedgerOpDelete
			diff = -diff
		}
		return accounts.ApplyBalanceDelta(tx, *newAccountID, diff, op, kind)

	case oldAccountID == nil && newAccountID != nil:
		return accounts.ApplyBalanceDelta(tx, *newAccountID, newAmount, LedgerOpCreate, kind)

	case oldAccountID != nil && newAccountID == nil:
		return accounts.ApplyBalanceDelta(tx, *oldAccountID, oldAmount, LedgerOpDelete, kind)
	}
	return nil
}
