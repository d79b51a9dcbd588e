package session

import (
	"testing"

	"github.com/shopspring/decimal"

	"smartfinance/internal/models"
)

func TestSessionClient(t *testing.T) {
	s := New()

	if s.Client() != nil {
		t.Error("expected nil client on fresh session")
	}

	client := &models.Client{FirstName: "Alice", PayeeAddress: "alice@bank"}
	history := []models.Transaction{{Sender: "alice@bank", Receiver: "bob@bank"}}
	s.SetClient(client, history)

	if got := s.Client(); got == nil || got.PayeeAddress != "alice@bank" {
		t.Errorf("unexpected client: %+v", got)
	}
	if got := s.Transactions(); len(got) != 1 || got[0].Receiver != "bob@bank" {
		t.Errorf("unexpected transactions: %+v", got)
	}
}

func TestFindBudget(t *testing.T) {
	s := New()
	s.SetBudgets([]models.Budget{
		{Category: "Food", CategoryKey: "food", Amount: decimal.NewFromInt(400)},
		{Category: "Rent", CategoryKey: "rent", Amount: decimal.NewFromInt(1200)},
	}, []string{"Food", "Rent"})

	t.Run("case_insensitive_lookup", func(t *testing.T) {
		budget, ok := s.FindBudget("  FOOD ")
		if !ok {
			t.Fatal("expected budget to be found")
		}
		if budget.Category != "Food" {
			t.Errorf("expected Food, got %s", budget.Category)
		}
	})

	t.Run("missing_category", func(t *testing.T) {
		if _, ok := s.FindBudget("travel"); ok {
			t.Error("expected no budget for travel")
		}
	})

	t.Run("returns_copy", func(t *testing.T) {
		budget, _ := s.FindBudget("rent")
		budget.Amount = decimal.NewFromInt(1)

		again, _ := s.FindBudget("rent")
		if !again.Amount.Equal(decimal.NewFromInt(1200)) {
			t.Errorf("cached budget mutated: %s", again.Amount)
		}
	})
}

func TestClear(t *testing.T) {
	s := New()
	s.SetClient(&models.Client{PayeeAddress: "alice@bank"}, []models.Transaction{{}})
	s.SetBudgets([]models.Budget{{CategoryKey: "food"}}, []string{"Food"})

	s.Clear()

	if s.Client() != nil || len(s.Transactions()) != 0 {
		t.Error("expected client state to be cleared")
	}
	if len(s.Budgets()) != 0 || len(s.BudgetCategories()) != 0 {
		t.Error("expected budget state to be cleared")
	}
}
