package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "parishbooks/internal/errors"
	"parishbooks/internal/logger"
	"parishbooks/internal/models"
	"parishbooks/internal/pagination"
)

// liabilityService handles liability-related business logic.
type liabilityService struct {
	db         *gorm.DB
	accounts   AccountServicer
	reconciler ReconcileServicer
}

// NewLiabilityService creates a new LiabilityServicer.
func NewLiabilityService(db *gorm.DB, accounts AccountServicer, reconciler ReconcileServicer) LiabilityServicer {
	return &liabilityService{
		db:         db,
		accounts:   accounts,
		reconciler: reconciler,
	}
}

// CreateLiability creates a new liability. For loans, the derived income
// entry is reconciled after the primary write; a reconciliation failure is
// returned as a warning, never as an error on the liability itself.
func (s *liabilityService) CreateLiability(input LiabilityInput) (*models.Liability, []string, error) {
	if input.CreditorName == "" {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "creditor name is required")
	}
	if input.TotalAmount <= 0 {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "total amount must be greater than zero")
	}
	if input.Date.IsZero() {
		input.Date = time.Now()
	}

	liability := &models.Liability{
		CreditorName:  input.CreditorName,
		TotalAmount:   input.TotalAmount,
		Date:          input.Date,
		IsLoan:        input.IsLoan,
		AccountID:     input.AccountID,
		PaymentMethod: input.PaymentMethod,
		Notes:         input.Notes,
	}
	liability.Recalculate()

	if err := s.db.Create(liability).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	warnings := s.syncLoanIncome(liability)
	return liability, warnings, nil
}

// GetLiabilities retrieves a paginated list of liabilities.
func (s *liabilityService) GetLiabilities(page pagination.PageRequest) (*pagination.PageResponse[models.Liability], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Liability{})
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var liabilities []models.Liability
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&liabilities).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(liabilities, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetLiabilityByID retrieves a liability by ID.
func (s *liabilityService) GetLiabilityByID(liabilityID string) (*models.Liability, error) {
	var liability models.Liability
	if err := s.db.Where("id = ?", liabilityID).First(&liability).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLiabilityNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &liability, nil
}

// UpdateLiability updates an existing liability and re-reconciles the
// derived income entry when the liability is a loan.
func (s *liabilityService) UpdateLiability(liabilityID string, fields LiabilityUpdateFields) (*models.Liability, []string, error) {
	liability, err := s.GetLiabilityByID(liabilityID)
	if err != nil {
		return nil, nil, err
	}

	if fields.CreditorName != nil && *fields.CreditorName != "" {
		liability.CreditorName = *fields.CreditorName
	}
	if fields.TotalAmount != nil {
		if *fields.TotalAmount <= 0 {
			return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "total amount must be greater than zero")
		}
		liability.TotalAmount = *fields.TotalAmount
	}
	if fields.Date != nil {
		liability.Date = *fields.Date
	}
	if fields.IsLoan != nil {
		liability.IsLoan = *fields.IsLoan
	}
	if fields.AccountID != nil {
		if *fields.AccountID == "" {
			liability.AccountID = nil
		} else {
			liability.AccountID = fields.AccountID
		}
	}
	if fields.PaymentMethod != nil {
		liability.PaymentMethod = *fields.PaymentMethod
	}
	if fields.Notes != nil {
		liability.Notes = *fields.Notes
	}
	liability.Recalculate()

	if err := s.db.Save(liability).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	warnings := s.syncLoanIncome(liability)
	return liability, warnings, nil
}

// MakePayment records a payment against a liability: the paid and
// remaining amounts are recomputed, an expenditure entry is written
// against the paying account, and the account balance is debited.
func (s *liabilityService) MakePayment(liabilityID string, input PaymentInput) (*models.Liability, []string, error) {
	if input.Amount <= 0 {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "payment amount must be greater than zero")
	}
	if input.AccountID == "" {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "paying account is required")
	}
	if input.Date.IsZero() {
		input.Date = time.Now()
	}

	liability, err := s.GetLiabilityByID(liabilityID)
	if err != nil {
		return nil, nil, err
	}
	if liability.Status == models.LiabilityStatusPaid {
		return nil, nil, apperrors.ErrLiabilityAlreadyPaid
	}
	if input.Amount > liability.AmountRemaining {
		return nil, nil, apperrors.ErrPaymentTooLarge
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		description := "Payment to " + liability.CreditorName
		if input.Note != "" {
			description += " - " + input.Note
		}
		payment := &models.Expenditure{
			Amount:        input.Amount,
			Date:          input.Date,
			Description:   description,
			AccountID:     &input.AccountID,
			PaymentMethod: input.PaymentMethod,
			LiabilityID:   &liability.ID,
		}
		if err := tx.Create(payment).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := s.accounts.ApplyBalanceDelta(tx, input.AccountID, input.Amount, LedgerOpCreate, LedgerKindExpenditure); err != nil {
			return err
		}

		liability.AmountPaid += input.Amount
		liability.Recalculate()
		return tx.Model(liability).Updates(map[string]interface{}{
			"amount_paid":      liability.AmountPaid,
			"amount_remaining": liability.AmountRemaining,
			"status":           liability.Status,
		}).Error
	})
	if err != nil {
		return nil, nil, err
	}

	warnings := s.syncLoanIncome(liability)
	return liability, warnings, nil
}

// DeleteLiability removes a liability together with its linked payment
// expenditures and, for loans, the derived income entry. Balance
// contributions of the removed records are reversed.
func (s *liabilityService) DeleteLiability(liabilityID string) error {
	liability, err := s.GetLiabilityByID(liabilityID)
	if err != nil {
		return err
	}

	var income *models.Income
	if liability.IsLoan.Bool() {
		income, err = s.reconciler.FindLoanIncome(liability)
		if err != nil {
			return err
		}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var payments []models.Expenditure
		if err := tx.Where("liability_id = ?", liability.ID).Find(&payments).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		for i := range payments {
			if payments[i].AccountID != nil {
				if err := s.accounts.ApplyBalanceDelta(tx, *payments[i].AccountID, payments[i].Amount, LedgerOpDelete, LedgerKindExpenditure); err != nil {
					return err
				}
			}
			if err := tx.Delete(&payments[i]).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		if income != nil {
			if income.AccountID != nil {
				if err := s.accounts.ApplyBalanceDelta(tx, *income.AccountID, income.Amount, LedgerOpDelete, LedgerKindIncome); err != nil {
					return err
				}
			}
			if err := tx.Delete(income).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		if err := tx.Delete(liability).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// syncLoanIncome runs reconciliation after a liability mutation and
// flattens the outcome into user-facing warnings. The primary write has
// already succeeded; nothing here rolls it back.
func (s *liabilityService) syncLoanIncome(liability *models.Liability) []string {
	if !liability.IsLoan.Bool() {
		return nil
	}

	result, err := s.reconciler.SyncLoanIncome(liability)
	if err != nil {
		logger.Get().Errorw("liability saved but loan income sync failed",
			"liability_id", liability.ID,
			"error", err,
		)
		return []string{"liability saved, but the related income entry could not be created or updated: " + err.Error()}
	}
	return result.Warnings
}
