package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome      CategoryType = "income"
	CategoryTypeExpenditure CategoryType = "expenditure"
)

// Category classifies income and expenditure entries.
type Category struct {
	Base
	Name        string       `gorm:"not null" json:"name"`
	Type        CategoryType `gorm:"not null" json:"type"`
	Description string       `json:"description"`
	Color       string       `json:"color"`

	// Relationships
	Incomes      []Income      `gorm:"foreignKey:CategoryID" json:"incomes,omitempty"`
	Expenditures []Expenditure `gorm:"foreignKey:CategoryID" json:"expenditures,omitempty"`
}
