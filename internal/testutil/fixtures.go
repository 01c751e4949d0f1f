package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"parishbooks/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestAccount creates a cash account with zero balance.
func CreateTestAccount(t *testing.T, db *gorm.DB) *models.Account {
	t.Helper()
	return CreateTestAccountWithBalance(t, db, 0)
}

// CreateTestAccountWithBalance creates a cash account with the given balance (in cents).
func CreateTestAccountWithBalance(t *testing.T, db *gorm.DB, balance int64) *models.Account {
	t.Helper()

	account := &models.Account{
		Name:     fmt.Sprintf("Test Account %d", nextID()),
		Type:     models.AccountTypeCash,
		Balance:  balance,
		Currency: "USD",
		IsActive: true,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestCategory creates a category of the given type.
func CreateTestCategory(t *testing.T, db *gorm.DB, categoryType models.CategoryType) *models.Category {
	t.Helper()
	return CreateTestCategoryWithName(t, db, fmt.Sprintf("Test Category %d", nextID()), categoryType)
}

// CreateTestCategoryWithName creates a category with the given name and type.
func CreateTestCategoryWithName(t *testing.T, db *gorm.DB, name string, categoryType models.CategoryType) *models.Category {
	t.Helper()

	category := &models.Category{
		Name: name,
		Type: categoryType,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestIncome creates an income entry (in cents) against the given account.
func CreateTestIncome(t *testing.T, db *gorm.DB, accountID *string, amount int64, description string) *models.Income {
	t.Helper()

	income := &models.Income{
		Amount:      amount,
		Date:        time.Now(),
		Description: description,
		AccountID:   accountID,
	}
	if err := db.Create(income).Error; err != nil {
		t.Fatalf("failed to create test income: %v", err)
	}
	return income
}

// CreateTestLoanLiability creates a loan liability against the given account.
func CreateTestLoanLiability(t *testing.T, db *gorm.DB, creditor string, amount int64, accountID *string) *models.Liability {
	t.Helper()

	liability := &models.Liability{
		CreditorName: creditor,
		TotalAmount:  amount,
		Date:         time.Now(),
		IsLoan:       true,
		AccountID:    accountID,
	}
	liability.Recalculate()
	if err := db.Create(liability).Error; err != nil {
		t.Fatalf("failed to create test liability: %v", err)
	}
	return liability
}

// CreateTestMember creates a member with a unique name and phone number.
func CreateTestMember(t *testing.T, db *gorm.DB) *models.Member {
	t.Helper()

	n := nextID()
	member := &models.Member{
		FirstName: fmt.Sprintf("Test%d", n),
		LastName:  "Member",
		Phone:     fmt.Sprintf("+1555%07d", n),
		Status:    models.MemberStatusActive,
	}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("failed to create test member: %v", err)
	}
	return member
}

// CreateTestEvent creates an event starting now.
func CreateTestEvent(t *testing.T, db *gorm.DB) *models.Event {
	t.Helper()

	event := &models.Event{
		Name:     fmt.Sprintf("Test Event %d", nextID()),
		StartsAt: time.Now(),
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("failed to create test event: %v", err)
	}
	return event
}
