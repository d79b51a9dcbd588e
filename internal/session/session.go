// Package session holds per-process application state: the logged-in client
// and the cached budget views. It is constructed once at startup and passed
// explicitly to the components that need it.
package session

import (
	"sync"

	"smartfinance/internal/models"
)

// Session is the explicit application-session context. All fields are
// guarded for concurrent access from request handlers.
type Session struct {
	mu sync.RWMutex

	client       *models.Client
	transactions []models.Transaction
	budgets      []models.Budget
	categories   []string
}

// New creates an empty session.
func New() *Session {
	return &Session{}
}

// SetClient records the logged-in client and their transaction history.
func (s *Session) SetClient(client *models.Client, transactions []models.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.client = client
	s.transactions = transactions
}

// Client returns the logged-in client, or nil if no one is logged in.
func (s *Session) Client() *models.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client
}

// Transactions returns the cached transaction history, most recent first.
func (s *Session) Transactions() []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transactions
}

// SetBudgets replaces the cached budget list and category list. Budget
// mutations reload both so subsequent reads observe their own writes.
func (s *Session) SetBudgets(budgets []models.Budget, categories []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets = budgets
	s.categories = categories
}

// Budgets returns the cached budget list.
func (s *Session) Budgets() []models.Budget {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.budgets
}

// BudgetCategories returns the cached category names.
func (s *Session) BudgetCategories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categories
}

// FindBudget looks up a cached budget by case-insensitive category.
func (s *Session) FindBudget(category string) (*models.Budget, bool) {
	key := models.NormalizeCategory(category)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.budgets {
		if s.budgets[i].CategoryKey == key {
			b := s.budgets[i]
			return &b, true
		}
	}
	return nil, false
}

// Clear resets the session, e.g. on logout.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.client = nil
	s.transactions = nil
	s.budgets = nil
	s.categories = nil
}
