package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "parishbooks/internal/errors"
	"parishbooks/internal/models"
	"parishbooks/internal/pagination"
)

// expenditureService handles expenditure-entry business logic.
type expenditureService struct {
	db       *gorm.DB
	accounts AccountServicer
}

// NewExpenditureService creates a new ExpenditureServicer.
func NewExpenditureService(db *gorm.DB, accounts AccountServicer) ExpenditureServicer {
	return &expenditureService{db: db, accounts: accounts}
}

// CreateExpenditure records an outflow and debits the paying account.
func (s *expenditureService) CreateExpenditure(input EntryInput) (*models.Expenditure, error) {
	if input.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if input.Date.IsZero() {
		input.Date = time.Now()
	}

	expenditure := &models.Expenditure{
		Amount:        input.Amount,
		Date:          input.Date,
		Description:   input.Description,
		CategoryID:    input.CategoryID,
		AccountID:     input.AccountID,
		PaymentMethod: input.PaymentMethod,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(expenditure).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if expenditure.AccountID != nil {
			return s.accounts.ApplyBalanceDelta(tx, *expenditure.AccountID, expenditure.Amount, LedgerOpCreate, LedgerKindExpenditure)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return expenditure, nil
}

// GetExpenditures retrieves a paginated, filtered list of expenditure entries.
func (s *expenditureService) GetExpenditures(page pagination.PageRequest, filter EntryFilter) (*pagination.PageResponse[models.Expenditure], error) {
	page.Defaults()

	base := applyEntryFilters(s.db.Model(&models.Expenditure{}), filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenditures []models.Expenditure
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&expenditures).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenditures, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetExpenditureByID retrieves an expenditure entry by ID.
func (s *expenditureService) GetExpenditureByID(expenditureID string) (*models.Expenditure, error) {
	var expenditure models.Expenditure
	if err := s.db.Where("id = ?", expenditureID).First(&expenditure).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenditureNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expenditure, nil
}

// UpdateExpenditure updates an expenditure entry with compensating
// balance deltas for amount and account changes.
func (s *expenditureService) UpdateExpenditure(expenditureID string, fields EntryUpdateFields) (*models.Expenditure, error) {
	expenditure, err := s.GetExpenditureByID(expenditureID)
	if err != nil {
		return nil, err
	}

	oldAmount := expenditure.Amount
	oldAccountID := expenditure.AccountID

	updates := make(map[string]interface{})
	if fields.Amount != nil {
		if *fields.Amount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
		}
		updates["amount"] = *fields.Amount
		expenditure.Amount = *fields.Amount
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
			expenditure.AccountID = nil
		} else {
			expenditure.AccountID = fields.AccountID
		}
		updates["account_id"] = expenditure.AccountID
	}
	if fields.PaymentMethod != nil {
		updates["payment_method"] = *fields.PaymentMethod
	}

	if len(updates) == 0 {
		return expenditure, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Expenditure{}).Where("id = ?", expenditure.ID).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return adjustEntryBalance(tx, s.accounts, LedgerKindExpenditure, oldAccountID, expenditure.AccountID, oldAmount, expenditure.Amount)
	})
	if err != nil {
		return nil, err
	}

	return s.GetExpenditureByID(expenditure.ID)
}

// DeleteExpenditure removes an expenditure entry and reverses its balance
// contribution.
func (s *expenditureService) DeleteExpenditure(expenditureID string) error {
	expenditure, err := s.GetExpenditureByID(expenditureID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(expenditure).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if expenditure.AccountID != nil {
			return s.accounts.ApplyBalanceDelta(tx, *expenditure.AccountID, expenditure.Amount, LedgerOpDelete, LedgerKindExpenditure)
		}
		return nil
	})
}
