package services

import (
	"testing"
	"time"

	"parishbooks/internal/pagination"
	"parishbooks/internal/testutil"
)

func TestCreateIncome(t *testing.T) {
	t.Run("credits_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db)
		svc := NewIncomeService(db, acctSvc)
		account := testutil.CreateTestAccount(t, db)

		income, err := svc.CreateIncome(EntryInput{Amount: 5000, Date: time.Now(), Description: "Offering", AccountID: &account.ID})
		testutil.AssertNoError(t, err)
		if income.ID == "" {
			t.Fatal("expected a generated income ID")
		}

		updated, err := acctSvc.GetAccountByID(account.ID)
		testutil.AssertNoError(t, err)
		if updated.Balance != 5000 {
			t.Errorf("expected balance 5000, got %d", updated.Balance)
		}
	})

	t.Run("no_account_is_allowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db, NewAccountService(db))

		income, err := svc.CreateIncome(EntryInput{Amount: 100, Date: time.Now()})
		testutil.AssertNoError(t, err)
		if income.AccountID != nil {
			t.Error("expected nil account")
		}
	})

	t.Run("non_positive_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db, NewAccountService(db))

		_, err := svc.CreateIncome(EntryInput{Amount: 0, Date: time.Now()})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_account_rolls_back", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db, NewAccountService(db))

		ghost := "00000000-0000-0000-0000-000000000000"
		_, err := svc.CreateIncome(EntryInput{Amount: 100, Date: time.Now(), AccountID: &ghost})
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")

		result, err := svc.GetIncomes(pagination.PageRequest{}, EntryFilter{})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 0 {
			t.Errorf("expected rollback to leave no entries, got %d", result.TotalItems)
		}
	})
}

func TestUpdateIncome(t *testing.T) {
	t.Run("amount_change_adjusts_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db)
		svc := NewIncomeService(db, acctSvc)
		account := testutil.CreateTestAccount(t, db)

		income, err := svc.CreateIncome(EntryInput{Amount: 5000, Date: time.Now(), AccountID: &account.ID})
		testutil.AssertNoError(t, err)

		amount := int64(3000)
		updated, err := svc.UpdateIncome(income.ID, EntryUpdateFields{Amount: &amount})
		testutil.AssertNoError(t, err)
		if updated.Amount != 3000 {
			t.Errorf("expected amount 3000, got %d", updated.Amount)
		}

		acct, err := acctSvc.GetAccountByID(account.ID)
		testutil.AssertNoError(t, err)
		if acct.Balance != 3000 {
			t.Errorf("expected balance 3000, got %d", acct.Balance)
		}
	})

	t.Run("account_move_compensates_both", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db)
		svc := NewIncomeService(db, acctSvc)
		accountA := testutil.CreateTestAccount(t, db)
		accountB := testutil.CreateTestAccount(t, db)

		income, err := svc.CreateIncome(EntryInput{Amount: 5000, Date: time.Now(), AccountID: &accountA.ID})
		testutil.AssertNoError(t, err)

		_, err = svc.UpdateIncome(income.ID, EntryUpdateFields{AccountID: &accountB.ID})
		testutil.AssertNoError(t, err)

		a, _ := acctSvc.GetAccountByID(accountA.ID)
		b, _ := acctSvc.GetAccountByID(accountB.ID)
		if a.Balance != 0 || b.Balance != 5000 {
			t.Errorf("expected 0/5000, got %d/%d", a.Balance, b.Balance)
		}
	})

	t.Run("no_fields_is_noop", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db, NewAccountService(db))
		account := testutil.CreateTestAccount(t, db)

		income, err := svc.CreateIncome(EntryInput{Amount: 5000, Date: time.Now(), AccountID: &account.ID})
		testutil.AssertNoError(t, err)

		updated, err := svc.UpdateIncome(income.ID, EntryUpdateFields{})
		testutil.AssertNoError(t, err)
		if updated.Amount != 5000 {
			t.Errorf("expected unchanged amount, got %d", updated.Amount)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db, NewAccountService(db))

		amount := int64(100)
		_, err := svc.UpdateIncome("00000000-0000-0000-0000-000000000000", EntryUpdateFields{Amount: &amount})
		testutil.AssertAppError(t, err, "INCOME_NOT_FOUND")
	})
}

func TestDeleteIncome(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	acctSvc := NewAccountService(db)
	svc := NewIncomeService(db, acctSvc)
	account := testutil.CreateTestAccount(t, db)

	income, err := svc.CreateIncome(EntryInput{Amount: 5000, Date: time.Now(), AccountID: &account.ID})
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, svc.DeleteIncome(income.ID))

	_, err = svc.GetIncomeByID(income.ID)
	testutil.AssertAppError(t, err, "INCOME_NOT_FOUND")

	acct, err := acctSvc.GetAccountByID(account.ID)
	testutil.AssertNoError(t, err)
	if acct.Balance != 0 {
		t.Errorf("expected reversed balance 0, got %d", acct.Balance)
	}
}

func TestGetIncomesFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	acctSvc := NewAccountService(db)
	svc := NewIncomeService(db, acctSvc)
	account := testutil.CreateTestAccount(t, db)

	now := time.Now()
	_, err := svc.CreateIncome(EntryInput{Amount: 1000, Date: now.AddDate(0, 0, -10), AccountID: &account.ID})
	testutil.AssertNoError(t, err)
	_, err = svc.CreateIncome(EntryInput{Amount: 3000, Date: now, AccountID: &account.ID})
	testutil.AssertNoError(t, err)

	from := now.AddDate(0, 0, -1)
	result, err := svc.GetIncomes(pagination.PageRequest{}, EntryFilter{FromDate: &from})
	testutil.AssertNoError(t, err)
	if result.TotalItems != 1 {
		t.Errorf("expected 1 entry after date filter, got %d", result.TotalItems)
	}

	minAmount := int64(2000)
	result, err = svc.GetIncomes(pagination.PageRequest{}, EntryFilter{MinAmount: &minAmount})
	testutil.AssertNoError(t, err)
	if result.TotalItems != 1 {
		t.Errorf("expected 1 entry after amount filter, got %d", result.TotalItems)
	}
}
