package services

import (
	"context"

	"github.com/shopspring/decimal"

	"smartfinance/internal/analytics"
	"smartfinance/internal/models"
	"smartfinance/internal/pagination"
	"smartfinance/internal/repository"
)

// TransferServicer owns atomic money movement and client onboarding.
type TransferServicer interface {
	CreateClient(firstName, lastName, payeeAddress, password string, initialWallet, initialSavings decimal.Decimal) (*models.Client, error)
	DeleteClient(payeeAddress string) error
	TransferMoney(sender, receiver string, amount decimal.Decimal, category, message string) error
}

// ClientServicer covers authentication and client/ledger queries.
type ClientServicer interface {
	Login(payeeAddress, password string) (*models.Client, error)
	GetClient(payeeAddress string) (*models.Client, error)
	AllClients() ([]models.Client, error)
	SearchClients(query string) ([]models.Client, error)
	Transactions(payeeAddress string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	SpendingByCategory(owner string) ([]repository.CategoryTotal, error)
}

// BudgetStatus reports the remaining headroom for one category this month.
// Unbounded means no budget is configured, so spending is unconstrained.
type BudgetStatus struct {
	Category  string          `json:"category"`
	Limit     decimal.Decimal `json:"limit"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
	Unbounded bool            `json:"unbounded"`
}

// BudgetServicer reconciles configured spending limits against actual spend
// derived from the transaction ledger.
type BudgetServicer interface {
	SaveBudget(owner, category string, monthlyLimit decimal.Decimal) (*models.Budget, error)
	DeleteBudget(owner, category string) error
	LoadBudgetsForOwner(owner string, synchronizeSpent bool) ([]models.Budget, error)
	RemainingBudget(owner, category string) (*BudgetStatus, error)
	BudgetCategories(owner string) ([]string, error)
}

// InvestmentServicer manages manually tracked investment positions.
type InvestmentServicer interface {
	AddInvestment(owner, investmentType string, amountInvested, currentValue decimal.Decimal) (*models.Investment, error)
	GetInvestments(owner string) ([]models.Investment, error)
	UpdateValue(owner, investmentID string, currentValue decimal.Decimal) (*models.Investment, error)
}

// StockSuggestion is a transient, per-request recommendation entry.
// Volatility and Momentum are nil when undefined for the available data.
type StockSuggestion struct {
	Symbol        string               `json:"symbol"`
	Name          string               `json:"name"`
	Price         float64              `json:"price"`
	PercentChange float64              `json:"percent_change"`
	Volatility    *float64             `json:"volatility,omitempty"`
	Momentum      *float64             `json:"momentum,omitempty"`
	Score         float64              `json:"score"`
	Profile       analytics.RiskProfile `json:"profile"`
}

// RecommendationServicer produces ranked instrument suggestions. Its methods
// never fail: upstream trouble degrades to the static fallback list.
type RecommendationServicer interface {
	Suggestions(ctx context.Context, profile analytics.RiskProfile) []StockSuggestion
	TrendingStocks(ctx context.Context) []StockSuggestion
	HistoricalPrices(ctx context.Context, symbol string) ([]float64, error)
	ClearCaches()
}
