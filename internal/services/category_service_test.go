package services

import (
	"testing"

	"parishbooks/internal/models"
	"parishbooks/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		category, err := svc.CreateCategory("Tithes", models.CategoryTypeIncome, "Weekly tithes", "#22c55e")
		testutil.AssertNoError(t, err)

		if category.ID == "" {
			t.Fatal("expected a generated category ID")
		}
		if category.Type != models.CategoryTypeIncome {
			t.Errorf("expected income type, got %q", category.Type)
		}
	})

	t.Run("duplicate_name_same_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory("Utilities", models.CategoryTypeExpenditure, "", "")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory("Utilities", models.CategoryTypeExpenditure, "", "")
		testutil.AssertAppError(t, err, "DUPLICATE_NAME")
	})

	t.Run("same_name_different_type_allowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory("Missions", models.CategoryTypeIncome, "", "")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory("Missions", models.CategoryTypeExpenditure, "", "")
		testutil.AssertNoError(t, err)
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory("", models.CategoryTypeIncome, "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestResolveLoanCategory(t *testing.T) {
	t.Run("matches_existing_keyword_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		existing := testutil.CreateTestCategoryWithName(t, db, "Debt Financing", models.CategoryTypeIncome)
		testutil.CreateTestCategoryWithName(t, db, "Tithes", models.CategoryTypeIncome)

		resolved, err := svc.ResolveLoanCategory()
		testutil.AssertNoError(t, err)
		if resolved.ID != existing.ID {
			t.Errorf("expected keyword match %q, got %q", existing.Name, resolved.Name)
		}
	})

	t.Run("keyword_match_is_case_insensitive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		existing := testutil.CreateTestCategoryWithName(t, db, "BORROWED FUNDS", models.CategoryTypeIncome)

		resolved, err := svc.ResolveLoanCategory()
		testutil.AssertNoError(t, err)
		if resolved.ID != existing.ID {
			t.Errorf("expected case-insensitive match, got %q", resolved.Name)
		}
	})

	t.Run("ignores_expenditure_categories", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		testutil.CreateTestCategoryWithName(t, db, "Loan Repayments", models.CategoryTypeExpenditure)

		resolved, err := svc.ResolveLoanCategory()
		testutil.AssertNoError(t, err)
		if resolved.Name != "Loans" {
			t.Errorf("expected an auto-created Loans category, got %q", resolved.Name)
		}
		if resolved.Type != models.CategoryTypeIncome {
			t.Errorf("expected income type, got %q", resolved.Type)
		}
	})

	t.Run("creates_loans_category_when_no_match", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		resolved, err := svc.ResolveLoanCategory()
		testutil.AssertNoError(t, err)
		if resolved.Name != "Loans" {
			t.Errorf("expected Loans, got %q", resolved.Name)
		}

		// Resolving again reuses the created category.
		again, err := svc.ResolveLoanCategory()
		testutil.AssertNoError(t, err)
		if again.ID != resolved.ID {
			t.Errorf("expected the same category on repeat resolution")
		}

		var count int64
		db.Model(&models.Category{}).Where("name = ?", "Loans").Count(&count)
		if count != 1 {
			t.Errorf("expected one Loans category, got %d", count)
		}
	})
}
