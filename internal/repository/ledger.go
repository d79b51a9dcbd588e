// Package repository provides typed read/write access to the persistent
// ledger tables. It maps rows to entities and validates them at the boundary;
// business rules live in the services that call it.
package repository

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "smartfinance/internal/errors"
	"smartfinance/internal/models"
)

// Ledger is the typed repository over clients, accounts, transactions,
// budgets, and investments. Methods never expose raw rows.
type Ledger struct {
	db *gorm.DB
}

// NewLedger creates a ledger repository bound to the given connection.
func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// WithTx returns a ledger repository scoped to an open transaction. Every
// multi-step mutation in the services runs its reads and writes through a
// tx-scoped repository so the store's transaction boundary covers them all.
func (l *Ledger) WithTx(tx *gorm.DB) *Ledger {
	return &Ledger{db: tx}
}

// DB exposes the underlying connection for transaction management.
func (l *Ledger) DB() *gorm.DB {
	return l.db
}

// ---- clients ----

// ClientByPayeeAddress loads a client row by its unique payee address.
func (l *Ledger) ClientByPayeeAddress(payeeAddress string) (*models.Client, error) {
	var client models.Client
	if err := l.db.Where("payee_address = ?", payeeAddress).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrClientNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &client, nil
}

// ClientExists reports whether a client with the payee address is registered.
func (l *Ledger) ClientExists(payeeAddress string) (bool, error) {
	var count int64
	if err := l.db.Model(&models.Client{}).Where("payee_address = ?", payeeAddress).Count(&count).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count > 0, nil
}

// CreateClient inserts a client row. A unique-index violation on the payee
// address maps to the duplicate-client error so a registration racing past
// the existence pre-check still surfaces as a conflict, not an internal error.
func (l *Ledger) CreateClient(client *models.Client) error {
	if err := l.db.Create(client).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrDuplicateClient
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// DeleteClient removes the client row and reports how many rows were affected.
func (l *Ledger) DeleteClient(payeeAddress string) (int64, error) {
	res := l.db.Where("payee_address = ?", payeeAddress).Delete(&models.Client{})
	if res.Error != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	return res.RowsAffected, nil
}

// AllClients returns every registered client, most recent first.
func (l *Ledger) AllClients() ([]models.Client, error) {
	var clients []models.Client
	if err := l.db.Preload("Wallet").Preload("Savings").
		Order("created_at DESC").Find(&clients).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return clients, nil
}

// SearchClients matches payee address, first name, or last name.
func (l *Ledger) SearchClients(query string) ([]models.Client, error) {
	pattern := "%" + query + "%"
	var clients []models.Client
	if err := l.db.Preload("Wallet").Preload("Savings").
		Where("payee_address LIKE ? OR first_name LIKE ? OR last_name LIKE ?", pattern, pattern, pattern).
		Find(&clients).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return clients, nil
}

// ---- accounts ----

// WalletByOwner loads a wallet account by owner payee address.
func (l *Ledger) WalletByOwner(owner string) (*models.WalletAccount, error) {
	var account models.WalletAccount
	if err := l.db.Where("owner = ?", owner).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// SavingsByOwner loads a savings account by owner payee address.
func (l *Ledger) SavingsByOwner(owner string) (*models.SavingsAccount, error) {
	var account models.SavingsAccount
	if err := l.db.Where("owner = ?", owner).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// NextAccountNumber reserves the next account number for the given account
// type. The sequence row is advanced with a single atomic UPDATE, so the
// read-increment pair cannot race; callers must invoke this inside the same
// transaction that inserts the account.
func (l *Ledger) NextAccountNumber(accountType models.AccountType) (string, error) {
	res := l.db.Model(&models.AccountSequence{}).
		Where("account_type = ?", accountType).
		Update("next_value", gorm.Expr("next_value + 1"))
	if res.Error != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		seq := models.AccountSequence{AccountType: accountType, NextValue: 1}
		if err := l.db.Create(&seq).Error; err != nil {
			return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return models.FormatAccountNumber(seq.NextValue), nil
	}

	var seq models.AccountSequence
	if err := l.db.Where("account_type = ?", accountType).First(&seq).Error; err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return models.FormatAccountNumber(seq.NextValue), nil
}

// CreateWalletAccount inserts a wallet account with a freshly reserved
// account number and the default deposit limit.
func (l *Ledger) CreateWalletAccount(owner string, balance decimal.Decimal) (*models.WalletAccount, error) {
	number, err := l.NextAccountNumber(models.AccountTypeWallet)
	if err != nil {
		return nil, err
	}
	account := &models.WalletAccount{
		Owner:         owner,
		AccountNumber: number,
		Balance:       balance,
		DepositLimit:  models.DefaultDepositLimit,
	}
	if err := l.db.Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return account, nil
}

// CreateSavingsAccount inserts a savings account with a freshly reserved
// account number and the default transaction limit.
func (l *Ledger) CreateSavingsAccount(owner string, balance decimal.Decimal) (*models.SavingsAccount, error) {
	number, err := l.NextAccountNumber(models.AccountTypeSavings)
	if err != nil {
		return nil, err
	}
	account := &models.SavingsAccount{
		Owner:            owner,
		AccountNumber:    number,
		Balance:          balance,
		TransactionLimit: models.DefaultTransactionLimit,
	}
	if err := l.db.Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return account, nil
}

// DebitSavings atomically subtracts amount from the owner's savings balance.
// The balance check and the write are a single conditional UPDATE, so two
// concurrent debits serialize on the row and can never both pass a stale
// read of the balance.
func (l *Ledger) DebitSavings(owner string, amount decimal.Decimal) error {
	res := l.db.Model(&models.SavingsAccount{}).
		Where("owner = ? AND balance >= ?", owner, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := l.SavingsByOwner(owner); err != nil {
			return err
		}
		return apperrors.ErrInsufficientBalance
	}
	return nil
}

// CreditWallet atomically adds amount to the owner's wallet balance.
func (l *Ledger) CreditWallet(owner string, amount decimal.Decimal) error {
	res := l.db.Model(&models.WalletAccount{}).
		Where("owner = ?", owner).
		Update("balance", gorm.Expr("balance + ?", amount))
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

// DeleteWalletAccounts removes all wallet rows owned by the payee address.
func (l *Ledger) DeleteWalletAccounts(owner string) error {
	if err := l.db.Where("owner = ?", owner).Delete(&models.WalletAccount{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// DeleteSavingsAccounts removes all savings rows owned by the payee address.
func (l *Ledger) DeleteSavingsAccounts(owner string) error {
	if err := l.db.Where("owner = ?", owner).Delete(&models.SavingsAccount{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ---- transactions ----

// AppendTransaction records an immutable ledger entry.
func (l *Ledger) AppendTransaction(tx *models.Transaction) error {
	if err := l.db.Create(tx).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// TransactionsByPayee returns every transaction the payee sent or received,
// most recent first. Blank categories are normalized at this boundary.
func (l *Ledger) TransactionsByPayee(payeeAddress string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := l.db.Where("sender = ? OR receiver = ?", payeeAddress, payeeAddress).
		Order("date DESC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	normalizeCategories(transactions)
	return transactions, nil
}

// TransactionsByPayeePage returns one page of the payee's transaction history.
func (l *Ledger) TransactionsByPayeePage(payeeAddress string, offset, limit int) ([]models.Transaction, int64, error) {
	base := l.db.Model(&models.Transaction{}).
		Where("sender = ? OR receiver = ?", payeeAddress, payeeAddress)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Order("date DESC").Offset(offset).Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	normalizeCategories(transactions)
	return transactions, total, nil
}

func normalizeCategories(transactions []models.Transaction) {
	for i := range transactions {
		if models.NormalizeCategory(transactions[i].Category) == "" {
			transactions[i].Category = models.DefaultTransactionCategory
		}
	}
}

// MonthlySpend sums the owner's outgoing transactions in the calendar month
// containing now, filtered by category (case-insensitive).
func (l *Ledger) MonthlySpend(owner, category string, now time.Time) (decimal.Decimal, error) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0)

	var total decimal.Decimal
	err := l.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("sender = ? AND LOWER(category) = ? AND date >= ? AND date < ?",
			owner, models.NormalizeCategory(category), start, end).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}

// CategoryTotal is an aggregated outgoing spend for one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// SpendingByCategory aggregates the owner's outgoing transactions by category.
func (l *Ledger) SpendingByCategory(owner string) ([]CategoryTotal, error) {
	var totals []CategoryTotal
	err := l.db.Model(&models.Transaction{}).
		Select("category, SUM(amount) AS total").
		Where("sender = ?", owner).
		Group("category").
		Scan(&totals).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return totals, nil
}

// ---- budgets ----

// BudgetsByOwner returns an owner's budgets ordered by creation.
func (l *Ledger) BudgetsByOwner(owner string) ([]models.Budget, error) {
	var budgets []models.Budget
	if err := l.db.Where("owner = ?", owner).Order("created_at").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// BudgetByOwnerCategory loads a budget by its case-insensitive category key.
func (l *Ledger) BudgetByOwnerCategory(owner, category string) (*models.Budget, error) {
	var budget models.Budget
	if err := l.db.Where("owner = ? AND category_key = ?", owner, models.NormalizeCategory(category)).
		First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// CreateBudget inserts a budget row.
func (l *Ledger) CreateBudget(budget *models.Budget) error {
	if err := l.db.Create(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// UpdateBudgetAmount changes the monthly limit of an existing budget without
// touching its reconciled spend.
func (l *Ledger) UpdateBudgetAmount(owner, category string, amount decimal.Decimal) error {
	res := l.db.Model(&models.Budget{}).
		Where("owner = ? AND category_key = ?", owner, models.NormalizeCategory(category)).
		Update("amount", amount)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrBudgetNotFound
	}
	return nil
}

// UpdateBudgetSpent persists a freshly reconciled spent value.
func (l *Ledger) UpdateBudgetSpent(owner, category string, spent decimal.Decimal) error {
	res := l.db.Model(&models.Budget{}).
		Where("owner = ? AND category_key = ?", owner, models.NormalizeCategory(category)).
		Update("spent", spent)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrBudgetNotFound
	}
	return nil
}

// DeleteBudget removes the (owner, category) budget row.
func (l *Ledger) DeleteBudget(owner, category string) (int64, error) {
	res := l.db.Where("owner = ? AND category_key = ?", owner, models.NormalizeCategory(category)).
		Delete(&models.Budget{})
	if res.Error != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	return res.RowsAffected, nil
}

// DistinctBudgetCategories lists the owner's configured category names.
func (l *Ledger) DistinctBudgetCategories(owner string) ([]string, error) {
	var categories []string
	if err := l.db.Model(&models.Budget{}).
		Where("owner = ?", owner).
		Order("category").
		Pluck("category", &categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// ---- investments ----

// InvestmentsByOwner returns an owner's investments, most recent first.
func (l *Ledger) InvestmentsByOwner(owner string) ([]models.Investment, error) {
	var investments []models.Investment
	if err := l.db.Where("owner = ?", owner).Order("invested_at DESC").
		Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return investments, nil
}

// CreateInvestment inserts an investment record.
func (l *Ledger) CreateInvestment(investment *models.Investment) error {
	if err := l.db.Create(investment).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// UpdateInvestmentValue sets the current value of an investment by ID.
func (l *Ledger) UpdateInvestmentValue(id string, value decimal.Decimal) error {
	res := l.db.Model(&models.Investment{}).Where("id = ?", id).Update("current_value", value)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrInvestmentNotFound
	}
	return nil
}
