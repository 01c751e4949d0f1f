package services

import (
	"fmt"
	"sort"
	"sync"

	"gorm.io/gorm"

	apperrors "parishbooks/internal/errors"
	"parishbooks/internal/logger"
	"parishbooks/internal/models"
)

// reconcileService keeps the derived income entry of a loan liability in
// sync with the liability itself and with the account balance ledger.
//
// The liability->income relationship is a soft, best-effort correlation:
// historical rows may carry the link in payment_details, only in free-text
// descriptions, or not at all. The lookup therefore layers three fallback
// strategies. The creditor-name strategy cannot distinguish multiple loans
// from the same creditor; that ambiguity is a known limitation of the data
// model, not something this service tries to repair.
type reconcileService struct {
	db               *gorm.DB
	accounts         AccountServicer
	categories       CategoryServicer
	defaultAccountID string
	locks            keyedMutex
}

// NewReconcileService creates a new ReconcileServicer. defaultAccountID is
// the last-resort funding account for loans that do not name one; it may
// be empty.
func NewReconcileService(db *gorm.DB, accounts AccountServicer, categories CategoryServicer, defaultAccountID string) ReconcileServicer {
	return &reconcileService{
		db:               db,
		accounts:         accounts,
		categories:       categories,
		defaultAccountID: defaultAccountID,
	}
}

func loanDescription(creditorName string) string {
	return "Loan from " + creditorName
}

func liabilityIDTag(liabilityID string) string {
	return "Liability ID: " + liabilityID
}

// SyncLoanIncome guarantees that exactly one income entry mirrors the
// given loan liability's amount, date, creditor and funding account, and
// that the balance ledger reflects it. Running it twice with unchanged
// input is a true no-op. Ledger-delta failures after a successful entry
// write are reported as warnings, not errors: the entry is consistent but
// a balance may be stale.
func (s *reconcileService) SyncLoanIncome(liability *models.Liability) (*SyncResult, error) {
	if liability == nil || liability.ID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "liability is required")
	}

	// Non-loans have no derived income entry.
	if !liability.IsLoan.Bool() {
		return &SyncResult{}, nil
	}

	// Serialize reconciliation per liability so concurrent runs cannot
	// both miss the lookup and create duplicate entries.
	unlock := s.locks.lock(liability.ID)
	defer unlock()

	existing, err := s.FindLoanIncome(liability)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		return s.createLoanIncome(liability)
	}
	return s.updateLoanIncome(liability, existing)
}

// FindLoanIncome locates the income entry derived from the given
// liability, or nil if none exists. Strategies, first-match-wins:
//  1. payment_details.liability_id equals the liability ID
//  2. description contains "Liability ID: {id}"
//  3. description contains "Loan from {creditor_name}"
//
// Within a strategy the most recently created entry wins.
func (s *reconcileService) FindLoanIncome(liability *models.Liability) (*models.Income, error) {
	// Strategy 1: structured correlation. payment_details is semi-
	// structured text, so candidates are filtered after decoding.
	var tagged []models.Income
	if err := s.db.
		Where("payment_details IS NOT NULL AND payment_details != ''").
		Find(&tagged).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	matches := tagged[:0]
	for i := range tagged {
		if tagged[i].PaymentDetails.LiabilityID == liability.ID {
			matches = append(matches, tagged[i])
		}
	}
	if len(matches) > 0 {
		return newestIncome(matches), nil
	}

	// Strategy 2: the liability ID embedded in the description.
	var byTag []models.Income
	if err := s.db.
		Where("description LIKE ?", "%"+liabilityIDTag(liability.ID)+"%").
		Order("created_at DESC").
		Find(&byTag).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(byTag) > 0 {
		return &byTag[0], nil
	}

	// Strategy 3: the creditor name. Ambiguous for repeat creditors.
	var byCreditor []models.Income
	if err := s.db.
		Where("description LIKE ?", "%"+loanDescription(liability.CreditorName)+"%").
		Order("created_at DESC").
		Find(&byCreditor).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(byCreditor) > 0 {
		return &byCreditor[0], nil
	}

	return nil, nil
}

func newestIncome(entries []models.Income) *models.Income {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return &entries[0]
}

// createLoanIncome inserts the derived income entry and credits the
// funding account.
func (s *reconcileService) createLoanIncome(liability *models.Liability) (*SyncResult, error) {
	category, err := s.categories.ResolveLoanCategory()
	if err != nil {
		return nil, err
	}

	accountID := s.resolveFundingAccount(liability)

	income := &models.Income{
		Amount:        liability.TotalAmount,
		Date:          liability.Date,
		Description:   loanDescription(liability.CreditorName),
		CategoryID:    &category.ID,
		AccountID:     accountID,
		PaymentMethod: liability.PaymentMethod,
		PaymentDetails: models.PaymentDetails{
			Source:      models.PaymentDetailsSourceLiability,
			LiabilityID: liability.ID,
		},
	}
	if err := s.db.Create(income).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := &SyncResult{IncomeID: income.ID, Created: true}

	// The entry write and the balance delta are separate writes. A delta
	// failure leaves the entry in place and surfaces as a warning.
	if accountID != nil {
		if err := s.accounts.ApplyBalanceDelta(nil, *accountID, liability.TotalAmount, LedgerOpCreate, LedgerKindIncome); err != nil {
			s.warn(result, liability.ID, fmt.Sprintf("income entry created but account %s balance was not credited: %v", *accountID, err))
		}
	}

	return result, nil
}

// updateLoanIncome diffs the existing derived entry against the liability,
// writes the differences, and applies compensating ledger deltas.
func (s *reconcileService) updateLoanIncome(liability *models.Liability, existing *models.Income) (*SyncResult, error) {
	oldAmount := existing.Amount
	oldAccountID := existing.AccountID
	newAmount := liability.TotalAmount
	newAccountID := liability.AccountID

	updates := make(map[string]interface{})

	if existing.Amount != newAmount {
		updates["amount"] = newAmount
	}
	if !existing.Date.Equal(liability.Date) {
		updates["date"] = liability.Date
	}
	if desc := loanDescription(liability.CreditorName); existing.Description != desc {
		updates["description"] = desc
	}
	if liability.PaymentMethod != "" && existing.PaymentMethod != liability.PaymentMethod {
		updates["payment_method"] = liability.PaymentMethod
	}
	if !stringPtrEqual(oldAccountID, newAccountID) {
		updates["account_id"] = newAccountID
	}
	// Self-heal entries found through the description fallbacks: backfill
	// a missing or wrong correlation so the structured lookup works next time.
	if existing.PaymentDetails.LiabilityID != liability.ID ||
		existing.PaymentDetails.Source != models.PaymentDetailsSourceLiability {
		updates["payment_details"] = models.PaymentDetails{
			Source:      models.PaymentDetailsSourceLiability,
			LiabilityID: liability.ID,
		}
	}

	if len(updates) == 0 {
		return &SyncResult{IncomeID: existing.ID}, nil
	}

	if err := s.db.Model(&models.Income{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := &SyncResult{IncomeID: existing.ID, Updated: true}

	// Four mutually exclusive compensation scenarios. Each preserves the
	// invariant that this liability's net ledger effect equals exactly its
	// current total credited to its current account.
	switch {
	case oldAccountID != nil && newAccountID != nil && *oldAccountID != *newAccountID:
		// Account moved: reverse the full old amount, credit the full new amount.
		if err := s.accounts.ApplyBalanceDelta(nil, *oldAccountID, oldAmount, LedgerOpDelete, LedgerKindIncome); err != nil {
			s.warn(result, liability.ID, fmt.Sprintf("account %s balance was not debited for the moved loan: %v", *oldAccountID, err))
		}
		if err := s.accounts.ApplyBalanceDelta(nil, *newAccountID, newAmount, LedgerOpCreate, LedgerKindIncome); err != nil {
			s.warn(result, liability.ID, fmt.Sprintf("account %s balance was not credited for the moved loan: %v", *newAccountID, err))
		}

	case oldAccountID != nil && newAccountID != nil && oldAmount != newAmount:
		// Same account, amount changed: apply only the signed difference.
		diff := newAmount - oldAmount
		op := LedgerOpCreate
		if diff < 0 {
			op = LedgerOpDelete
			diff = -diff
		}
		if err := s.accounts.ApplyBalanceDelta(nil, *newAccountID, diff, op, LedgerKindIncome); err != nil {
			s.warn(result, liability.ID, fmt.Sprintf("account %s balance was not adjusted for the amount change: %v", *newAccountID, err))
		}

	case oldAccountID == nil && newAccountID != nil:
		// Account newly assigned: no prior contribution to reverse.
		if err := s.accounts.ApplyBalanceDelta(nil, *newAccountID, newAmount, LedgerOpCreate, LedgerKindIncome); err != nil {
			s.warn(result, liability.ID, fmt.Sprintf("account %s balance was not credited for the loan: %v", *newAccountID, err))
		}

	case oldAccountID != nil && newAccountID == nil:
		// Account removed: reverse the full old contribution.
		if err := s.accounts.ApplyBalanceDelta(nil, *oldAccountID, oldAmount, LedgerOpDelete, LedgerKindIncome); err != nil {
			s.warn(result, liability.ID, fmt.Sprintf("account %s balance was not debited for the removed loan account: %v", *oldAccountID, err))
		}
	}

	return result, nil
}

// resolveFundingAccount picks the account a loan credits, in priority
// order: the account on the liability itself, the account on its
// persisted row, then the configured default. May be nil.
func (s *reconcileService) resolveFundingAccount(liability *models.Liability) *string {
	if liability.AccountID != nil && *liability.AccountID != "" {
		return liability.AccountID
	}

	var row models.Liability
	if err := s.db.Select("account_id").Where("id = ?", liability.ID).First(&row).Error; err == nil {
		if row.AccountID != nil && *row.AccountID != "" {
			return row.AccountID
		}
	}

	if s.defaultAccountID != "" {
		id := s.defaultAccountID
		return &id
	}
	return nil
}

func (s *reconcileService) warn(result *SyncResult, liabilityID, msg string) {
	logger.Get().Warnw("loan income sync: ledger delta failed",
		"liability_id", liabilityID,
		"income_id", result.IncomeID,
		"detail", msg,
	)
	result.Warnings = append(result.Warnings, msg)
}

func stringPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// keyedMutex provides one mutex per key with cleanup when unused.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	sync.Mutex
	refs int
}

func (k *keyedMutex) lock(key string) (unlock func()) {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*keyedLock)
	}
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
