package models

import "time"

// Expenditure represents a recorded outflow of money. Liability payments
// record an expenditure linked back to the liability via LiabilityID.
type Expenditure struct {
	Base
	Amount        int64     `gorm:"type:bigint;not null" json:"amount"`
	Date          time.Time `gorm:"not null" json:"date"`
	Description   string    `json:"description"`
	CategoryID    *string   `gorm:"type:uuid" json:"category_id,omitempty"`
	AccountID     *string   `gorm:"type:uuid" json:"account_id,omitempty"`
	PaymentMethod string    `json:"payment_method,omitempty"`
	LiabilityID   *string   `gorm:"type:uuid;index" json:"liability_id,omitempty"`

	// Relationships
	Category  *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Account   *Account   `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Liability *Liability `gorm:"foreignKey:LiabilityID" json:"liability,omitempty"`
}
