package models

// AccountType represents the kind of money-holding account
type AccountType string

const (
	AccountTypeCash        AccountType = "cash"
	AccountTypeBank        AccountType = "bank"
	AccountTypeMobileMoney AccountType = "mobile_money"
)

// Account represents a money-holding bucket with a running balance.
// The balance is a mutable aggregate: it reflects the net of all signed
// deltas applied by income, expenditure and transfer operations.
type Account struct {
	Base
	Name          string      `gorm:"not null" json:"name"`
	Type          AccountType `gorm:"not null;default:'cash'" json:"type"`
	Description   string      `json:"description"`
	Balance       int64       `gorm:"type:bigint;not null;default:0" json:"balance"`
	Currency      string      `gorm:"not null;default:'USD'" json:"currency"`
	BankName      string      `json:"bank_name,omitempty"`
	AccountNumber string      `json:"account_number,omitempty"`
	IsActive      bool        `gorm:"default:true" json:"is_active"`

	// Relationships
	Incomes      []Income      `gorm:"foreignKey:AccountID" json:"incomes,omitempty"`
	Expenditures []Expenditure `gorm:"foreignKey:AccountID" json:"expenditures,omitempty"`
}
