package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// PaymentDetailsSourceLiability marks an income entry as derived from a
// loan liability.
const PaymentDetailsSourceLiability = "liability"

// PaymentDetails is a semi-structured bag stored as JSON text. For
// loan-derived income entries it carries the correlation back to the
// liability. Rows created before the correlation scheme existed may hold
// malformed JSON or nothing at all, so decoding is best-effort.
type PaymentDetails struct {
	Source      string `json:"source,omitempty"`
	LiabilityID string `json:"liability_id,omitempty"`
}

// IsZero reports whether no details are set.
func (p PaymentDetails) IsZero() bool {
	return p.Source == "" && p.LiabilityID == ""
}

// Value implements driver.Valuer, serializing to JSON text. Empty details
// are stored as NULL.
func (p PaymentDetails) Value() (driver.Value, error) {
	if p.IsZero() {
		return nil, nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner. Malformed JSON from legacy rows is treated
// as absent details rather than a read error.
func (p *PaymentDetails) Scan(src interface{}) error {
	*p = PaymentDetails{}
	var data []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	_ = json.Unmarshal(data, p)
	return nil
}

// Income represents a recorded inflow of money. At most one income entry
// per loan liability is derived from that liability and kept in sync with
// it (see services.ReconcileServicer).
type Income struct {
	Base
	Amount         int64          `gorm:"type:bigint;not null" json:"amount"`
	Date           time.Time      `gorm:"not null" json:"date"`
	Description    string         `json:"description"`
	CategoryID     *string        `gorm:"type:uuid" json:"category_id,omitempty"`
	AccountID      *string        `gorm:"type:uuid" json:"account_id,omitempty"`
	PaymentMethod  string         `json:"payment_method,omitempty"`
	PaymentDetails PaymentDetails `gorm:"type:text" json:"payment_details,omitempty"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Account  *Account  `gorm:"foreignKey:AccountID" json:"account,omitempty"`
}
