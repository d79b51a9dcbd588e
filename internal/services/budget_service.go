package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "smartfinance/internal/errors"
	"smartfinance/internal/models"
	"smartfinance/internal/repository"
	"smartfinance/internal/session"
)

// budgetService reconciles configured limits against actual spend computed
// from the transaction history. Spend reconciliation is lazy: the cached
// spent value is corrected when budgets are loaded with synchronizeSpent,
// not on every transfer.
type budgetService struct {
	ledger  *repository.Ledger
	session *session.Session
	now     func() time.Time
}

// NewBudgetService creates a new BudgetServicer. session may be nil when no
// interactive session cache is in play (e.g. background jobs).
func NewBudgetService(ledger *repository.Ledger, sess *session.Session) BudgetServicer {
	return &budgetService{ledger: ledger, session: sess, now: time.Now}
}

// SaveBudget upserts a budget by its case-insensitive (owner, category)
// identity. A new category starts with zero recorded spend; an existing one
// keeps its reconciled spend and only the limit changes.
func (s *budgetService) SaveBudget(owner, category string, monthlyLimit decimal.Decimal) (*models.Budget, error) {
	owner = strings.TrimSpace(owner)
	category = strings.TrimSpace(category)
	if owner == "" || category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "owner and category are required")
	}
	if !monthlyLimit.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "monthly limit must be positive")
	}

	existing, err := s.ledger.BudgetByOwnerCategory(owner, category)
	switch {
	case err == nil:
		if err := s.ledger.UpdateBudgetAmount(owner, category, monthlyLimit); err != nil {
			return nil, err
		}
		existing.Amount = monthlyLimit
	case errors.Is(err, apperrors.ErrBudgetNotFound):
		existing = &models.Budget{
			Owner:    owner,
			Category: category,
			Amount:   monthlyLimit,
			Spent:    decimal.Zero,
		}
		if err := s.ledger.CreateBudget(existing); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := s.reloadOwner(owner); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteBudget removes the (owner, category) budget.
func (s *budgetService) DeleteBudget(owner, category string) error {
	deleted, err := s.ledger.DeleteBudget(owner, category)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return apperrors.ErrBudgetNotFound
	}
	return s.reloadOwner(owner)
}

// LoadBudgetsForOwner returns the owner's budgets. With synchronizeSpent the
// cached spent value of each budget is recomputed from the current month's
// outgoing transactions and persisted when it drifted.
func (s *budgetService) LoadBudgetsForOwner(owner string, synchronizeSpent bool) ([]models.Budget, error) {
	budgets, err := s.ledger.BudgetsByOwner(owner)
	if err != nil {
		return nil, err
	}

	if synchronizeSpent {
		for i := range budgets {
			current, err := s.ledger.MonthlySpend(owner, budgets[i].Category, s.now())
			if err != nil {
				return nil, err
			}
			if !current.Equal(budgets[i].Spent) {
				if err := s.ledger.UpdateBudgetSpent(owner, budgets[i].Category, current); err != nil {
					return nil, err
				}
				budgets[i].Spent = current
			}
		}
	}

	return budgets, nil
}

// RemainingBudget reports limit − currentMonthSpend for the category, after
// writing back the freshly computed spend. A category without a budget is
// unconstrained and reported as unbounded, not zero.
func (s *budgetService) RemainingBudget(owner, category string) (*BudgetStatus, error) {
	budget, err := s.ledger.BudgetByOwnerCategory(owner, category)
	if errors.Is(err, apperrors.ErrBudgetNotFound) {
		return &BudgetStatus{Category: category, Unbounded: true}, nil
	}
	if err != nil {
		return nil, err
	}

	spent, err := s.ledger.MonthlySpend(owner, category, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.ledger.UpdateBudgetSpent(owner, category, spent); err != nil {
		return nil, err
	}

	return &BudgetStatus{
		Category:  budget.Category,
		Limit:     budget.Amount,
		Spent:     spent,
		Remaining: budget.Amount.Sub(spent),
	}, nil
}

// BudgetCategories lists the owner's configured category names.
func (s *budgetService) BudgetCategories(owner string) ([]string, error) {
	return s.ledger.DistinctBudgetCategories(owner)
}

// reloadOwner refreshes the session's budget and category caches so reads
// after a mutation observe the write.
func (s *budgetService) reloadOwner(owner string) error {
	if s.session == nil {
		return nil
	}
	budgets, err := s.LoadBudgetsForOwner(owner, true)
	if err != nil {
		return err
	}
	categories, err := s.ledger.DistinctBudgetCategories(owner)
	if err != nil {
		return err
	}
	s.session.SetBudgets(budgets, categories)
	return nil
}
