package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	apperrors "smartfinance/internal/errors"
	"smartfinance/internal/models"
	"smartfinance/internal/pagination"
	"smartfinance/internal/repository"
	"smartfinance/internal/session"
)

// clientService covers client authentication and ledger-side queries.
type clientService struct {
	ledger  *repository.Ledger
	session *session.Session
	budgets BudgetServicer
}

// NewClientService creates a new ClientServicer.
func NewClientService(ledger *repository.Ledger, sess *session.Session, budgets BudgetServicer) ClientServicer {
	return &clientService{ledger: ledger, session: sess, budgets: budgets}
}

// Login verifies the payee address and password, and on success populates
// the session with the client, their accounts, transaction history, and
// reconciled budgets.
func (s *clientService) Login(payeeAddress, password string) (*models.Client, error) {
	client, err := s.GetClient(payeeAddress)
	if err != nil {
		if errors.Is(err, apperrors.ErrClientNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(client.Password), []byte(password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	transactions, err := s.ledger.TransactionsByPayee(payeeAddress)
	if err != nil {
		return nil, err
	}

	if s.session != nil {
		s.session.SetClient(client, transactions)

		budgets, err := s.budgets.LoadBudgetsForOwner(payeeAddress, true)
		if err != nil {
			return nil, err
		}
		categories, err := s.budgets.BudgetCategories(payeeAddress)
		if err != nil {
			return nil, err
		}
		s.session.SetBudgets(budgets, categories)
	}

	return client, nil
}

// GetClient loads a client with both accounts attached.
func (s *clientService) GetClient(payeeAddress string) (*models.Client, error) {
	client, err := s.ledger.ClientByPayeeAddress(payeeAddress)
	if err != nil {
		return nil, err
	}

	wallet, err := s.ledger.WalletByOwner(payeeAddress)
	if err != nil && !errors.Is(err, apperrors.ErrAccountNotFound) {
		return nil, err
	}
	savings, err := s.ledger.SavingsByOwner(payeeAddress)
	if err != nil && !errors.Is(err, apperrors.ErrAccountNotFound) {
		return nil, err
	}
	client.Wallet = wallet
	client.Savings = savings
	return client, nil
}

// AllClients lists every registered client with accounts preloaded.
func (s *clientService) AllClients() ([]models.Client, error) {
	return s.ledger.AllClients()
}

// SearchClients matches clients by payee address or name.
func (s *clientService) SearchClients(query string) ([]models.Client, error) {
	return s.ledger.SearchClients(query)
}

// Transactions returns one page of the payee's history, most recent first.
func (s *clientService) Transactions(payeeAddress string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	transactions, total, err := s.ledger.TransactionsByPayeePage(payeeAddress, page.Offset(), page.PageSize)
	if err != nil {
		return nil, err
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, total)
	return &result, nil
}

// SpendingByCategory aggregates the owner's outgoing transactions by category.
func (s *clientService) SpendingByCategory(owner string) ([]repository.CategoryTotal, error) {
	return s.ledger.SpendingByCategory(owner)
}
