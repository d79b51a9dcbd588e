package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"smartfinance/internal/repository"
	"smartfinance/internal/testutil"
)

func TestSaveBudget(t *testing.T) {
	t.Run("creates_new_budget_with_zero_spend", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(repository.NewLedger(db), nil)

		budget, err := svc.SaveBudget("alice@bank", "Food", decimal.NewFromInt(400))
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, decimal.NewFromInt(400), budget.Amount)
		testutil.AssertDecimalEqual(t, decimal.Zero, budget.Spent)
	})

	t.Run("saving_same_category_updates_limit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ledger := repository.NewLedger(db)
		svc := NewBudgetService(ledger, nil)

		_, err := svc.SaveBudget("alice@bank", "Food", decimal.NewFromInt(400))
		testutil.AssertNoError(t, err)
		_, err = svc.SaveBudget("alice@bank", "Food", decimal.NewFromInt(600))
		testutil.AssertNoError(t, err)

		budgets, err := ledger.BudgetsByOwner("alice@bank")
		testutil.AssertNoError(t, err)
		if len(budgets) != 1 {
			t.Fatalf("expected 1 budget, got %d", len(budgets))
		}
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(600), budgets[0].Amount)
	})

	t.Run("category_identity_is_case_insensitive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ledger := repository.NewLedger(db)
		svc := NewBudgetService(ledger, nil)

		_, err := svc.SaveBudget("alice@bank", "Food", decimal.NewFromInt(400))
		testutil.AssertNoError(t, err)
		_, err = svc.SaveBudget("alice@bank", "FOOD", decimal.NewFromInt(500))
		testutil.AssertNoError(t, err)

		budgets, err := ledger.BudgetsByOwner("alice@bank")
		testutil.AssertNoError(t, err)
		if len(budgets) != 1 {
			t.Fatalf("expected 1 budget for Food/FOOD, got %d", len(budgets))
		}
	})

	t.Run("same_category_different_owners", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ledger := repository.NewLedger(db)
		svc := NewBudgetService(ledger, nil)

		_, err := svc.SaveBudget("alice@bank", "Food", decimal.NewFromInt(400))
		testutil.AssertNoError(t, err)
		_, err = svc.SaveBudget("bob@bank", "Food", decimal.NewFromInt(300))
		testutil.AssertNoError(t, err)

		alice, err := ledger.BudgetsByOwner("alice@bank")
		testutil.AssertNoError(t, err)
		bob, err := ledger.BudgetsByOwner("bob@bank")
		testutil.AssertNoError(t, err)
		if len(alice) != 1 || len(bob) != 1 {
			t.Fatalf("expected one budget each, got %d and %d", len(alice), len(bob))
		}
	})

	t.Run("non_positive_limit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(repository.NewLedger(db), nil)

		_, err := svc.SaveBudget("alice@bank", "Food", decimal.Zero)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestDeleteBudget(t *testing.T) {
	t.Run("removes_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ledger := repository.NewLedger(db)
		svc := NewBudgetService(ledger, nil)

		_, err := svc.SaveBudget("alice@bank", "Food", decimal.NewFromInt(400))
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.DeleteBudget("alice@bank", "food"))

		budgets, err := ledger.BudgetsByOwner("alice@bank")
		testutil.AssertNoError(t, err)
		if len(budgets) != 0 {
			t.Errorf("expected no budgets, got %d", len(budgets))
		}
	})

	t.Run("unknown_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(repository.NewLedger(db), nil)

		testutil.AssertAppError(t, svc.DeleteBudget("alice@bank", "Food"), "BUDGET_NOT_FOUND")
	})
}

func TestRemainingBudget(t *testing.T) {
	t.Run("reports_limit_minus_current_month_spend", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ledger := repository.NewLedger(db)
		svc := NewBudgetService(ledger, nil)

		testutil.CreateTestBudget(t, db, "alice@bank", "Food", decimal.NewFromInt(400))
		testutil.CreateTestTransaction(t, db, "alice@bank", "shop@bank", decimal.NewFromInt(120), "Food")
		testutil.CreateTestTransaction(t, db, "alice@bank", "cafe@bank", decimal.NewFromInt(30), "food")

		status, err := svc.RemainingBudget("alice@bank", "Food")
		testutil.AssertNoError(t, err)

		if status.Unbounded {
			t.Fatal("expected a bounded budget status")
		}
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(150), status.Spent)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(250), status.Remaining)
	})

	t.Run("incoming_transfers_do_not_count_as_spend", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(repository.NewLedger(db), nil)

		testutil.CreateTestBudget(t, db, "alice@bank", "Food", decimal.NewFromInt(400))
		testutil.CreateTestTransaction(t, db, "bob@bank", "alice@bank", decimal.NewFromInt(90), "Food")

		status, err := svc.RemainingBudget("alice@bank", "Food")
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.Zero, status.Spent)
	})

	t.Run("category_without_budget_is_unbounded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(repository.NewLedger(db), nil)

		status, err := svc.RemainingBudget("alice@bank", "Travel")
		testutil.AssertNoError(t, err)
		if !status.Unbounded {
			t.Error("expected an unbounded status for an unbudgeted category")
		}
	})

	t.Run("overspend_goes_negative", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(repository.NewLedger(db), nil)

		testutil.CreateTestBudget(t, db, "alice@bank", "Food", decimal.NewFromInt(100))
		testutil.CreateTestTransaction(t, db, "alice@bank", "shop@bank", decimal.NewFromInt(130), "Food")

		status, err := svc.RemainingBudget("alice@bank", "Food")
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(-30), status.Remaining)
	})
}

func TestLoadBudgetsForOwner(t *testing.T) {
	t.Run("synchronize_reconciles_cached_spend", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ledger := repository.NewLedger(db)
		svc := NewBudgetService(ledger, nil)

		testutil.CreateTestBudget(t, db, "alice@bank", "Food", decimal.NewFromInt(400))
		testutil.CreateTestTransaction(t, db, "alice@bank", "shop@bank", decimal.NewFromInt(75), "Food")

		budgets, err := svc.LoadBudgetsForOwner("alice@bank", true)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(75), budgets[0].Spent)

		// Reconciled value is persisted.
		stored, err := ledger.BudgetByOwnerCategory("alice@bank", "Food")
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(75), stored.Spent)
	})

	t.Run("without_synchronize_returns_cached_values", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(repository.NewLedger(db), nil)

		testutil.CreateTestBudget(t, db, "alice@bank", "Food", decimal.NewFromInt(400))
		testutil.CreateTestTransaction(t, db, "alice@bank", "shop@bank", decimal.NewFromInt(75), "Food")

		budgets, err := svc.LoadBudgetsForOwner("alice@bank", false)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.Zero, budgets[0].Spent)
	})
}
