package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// LiabilityStatus tracks how much of a liability has been settled.
type LiabilityStatus string

const (
	LiabilityStatusOpen    LiabilityStatus = "open"
	LiabilityStatusPartial LiabilityStatus = "partial"
	LiabilityStatusPaid    LiabilityStatus = "paid"
)

// LoanFlag is a boolean that tolerates string encodings on the wire.
// Upstream data sources have historically delivered the loan flag as the
// strings "true"/"false", and the string "false" must not be truthy.
type LoanFlag bool

// UnmarshalJSON accepts JSON booleans and the strings "true"/"false"
// (case-insensitive). Anything else decodes to false.
func (f *LoanFlag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = LoanFlag(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = LoanFlag(strings.EqualFold(strings.TrimSpace(s), "true"))
		return nil
	}
	*f = false
	return nil
}

// MarshalJSON always emits a JSON boolean.
func (f LoanFlag) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(f))
}

// Bool returns the normalized boolean value.
func (f LoanFlag) Bool() bool { return bool(f) }

// Liability represents a debt obligation. When IsLoan is set the borrowed
// funds must also appear as a matching income entry; the reconciliation
// service maintains that derived entry.
type Liability struct {
	Base
	CreditorName    string          `gorm:"not null" json:"creditor_name"`
	TotalAmount     int64           `gorm:"type:bigint;not null" json:"total_amount"`
	AmountPaid      int64           `gorm:"type:bigint;not null;default:0" json:"amount_paid"`
	AmountRemaining int64           `gorm:"type:bigint;not null;default:0" json:"amount_remaining"`
	Date            time.Time       `gorm:"not null" json:"date"`
	Status          LiabilityStatus `gorm:"not null;default:'open'" json:"status"`
	IsLoan          LoanFlag        `gorm:"not null;default:false" json:"is_loan"`
	AccountID       *string         `gorm:"type:uuid" json:"account_id,omitempty"`
	PaymentMethod   string          `json:"payment_method,omitempty"`
	Notes           string          `json:"notes,omitempty"`

	// Relationships
	Account  *Account      `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Payments []Expenditure `gorm:"foreignKey:LiabilityID" json:"payments,omitempty"`
}

// Recalculate derives amount remaining and status from total and paid.
// Invariant: amount_remaining = total_amount - amount_paid.
func (l *Liability) Recalculate() {
	l.AmountRemaining = l.TotalAmount - l.AmountPaid
	switch {
	case l.AmountRemaining <= 0:
		l.Status = LiabilityStatusPaid
	case l.AmountPaid > 0:
		l.Status = LiabilityStatusPartial
	default:
		l.Status = LiabilityStatusOpen
	}
}
