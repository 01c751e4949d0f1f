package services

import (
	"testing"
	"time"

	"parishbooks/internal/testutil"
)

func TestCreateExpenditure(t *testing.T) {
	t.Run("debits_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db)
		svc := NewExpenditureService(db, acctSvc)
		account := testutil.CreateTestAccountWithBalance(t, db, 10000)

		expenditure, err := svc.CreateExpenditure(EntryInput{Amount: 3000, Date: time.Now(), Description: "Electricity", AccountID: &account.ID})
		testutil.AssertNoError(t, err)
		if expenditure.ID == "" {
			t.Fatal("expected a generated expenditure ID")
		}

		updated, err := acctSvc.GetAccountByID(account.ID)
		testutil.AssertNoError(t, err)
		if updated.Balance != 7000 {
			t.Errorf("expected balance 7000, got %d", updated.Balance)
		}
	})

	t.Run("non_positive_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenditureService(db, NewAccountService(db))

		_, err := svc.CreateExpenditure(EntryInput{Amount: -5, Date: time.Now()})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestUpdateExpenditure(t *testing.T) {
	t.Run("amount_change_adjusts_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db)
		svc := NewExpenditureService(db, acctSvc)
		account := testutil.CreateTestAccountWithBalance(t, db, 10000)

		expenditure, err := svc.CreateExpenditure(EntryInput{Amount: 3000, Date: time.Now(), AccountID: &account.ID})
		testutil.AssertNoError(t, err)

		amount := int64(1000)
		_, err = svc.UpdateExpenditure(expenditure.ID, EntryUpdateFields{Amount: &amount})
		testutil.AssertNoError(t, err)

		updated, err := acctSvc.GetAccountByID(account.ID)
		testutil.AssertNoError(t, err)
		if updated.Balance != 9000 {
			t.Errorf("expected balance 9000 after reducing the expense, got %d", updated.Balance)
		}
	})

	t.Run("account_move_compensates_both", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db)
		svc := NewExpenditureService(db, acctSvc)
		accountA := testutil.CreateTestAccountWithBalance(t, db, 5000)
		accountB := testutil.CreateTestAccountWithBalance(t, db, 5000)

		expenditure, err := svc.CreateExpenditure(EntryInput{Amount: 2000, Date: time.Now(), AccountID: &accountA.ID})
		testutil.AssertNoError(t, err)

		_, err = svc.UpdateExpenditure(expenditure.ID, EntryUpdateFields{AccountID: &accountB.ID})
		testutil.AssertNoError(t, err)

		a, _ := acctSvc.GetAccountByID(accountA.ID)
		b, _ := acctSvc.GetAccountByID(accountB.ID)
		if a.Balance != 5000 || b.Balance != 3000 {
			t.Errorf("expected 5000/3000, got %d/%d", a.Balance, b.Balance)
		}
	})
}

func TestDeleteExpenditure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	acctSvc := NewAccountService(db)
	svc := NewExpenditureService(db, acctSvc)
	account := testutil.CreateTestAccountWithBalance(t, db, 10000)

	expenditure, err := svc.CreateExpenditure(EntryInput{Amount: 3000, Date: time.Now(), AccountID: &account.ID})
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, svc.DeleteExpenditure(expenditure.ID))

	_, err = svc.GetExpenditureByID(expenditure.ID)
	testutil.AssertAppError(t, err, "EXPENDITURE_NOT_FOUND")

	updated, err := acctSvc.GetAccountByID(account.ID)
	testutil.AssertNoError(t, err)
	if updated.Balance != 10000 {
		t.Errorf("expected balance restored to 10000, got %d", updated.Balance)
	}
}
