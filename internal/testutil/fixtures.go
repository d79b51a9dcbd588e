package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"smartfinance/internal/models"
)

// TestPassword is the plaintext password all fixture clients share.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestClient creates a client with a hashed password and a unique
// payee address. No accounts are created.
func CreateTestClient(t *testing.T, db *gorm.DB) *models.Client {
	t.Helper()
	address := fmt.Sprintf("client%d@bank", nextID())
	return CreateTestClientWithAddress(t, db, address)
}

// CreateTestClientWithAddress creates a client with the given payee address.
func CreateTestClientWithAddress(t *testing.T, db *gorm.DB, payeeAddress string) *models.Client {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	client := &models.Client{
		FirstName:    "Test",
		LastName:     "Client",
		PayeeAddress: payeeAddress,
		Password:     string(hash),
	}
	if err := db.Create(client).Error; err != nil {
		t.Fatalf("failed to create test client: %v", err)
	}
	return client
}

// CreateTestWalletAccount creates a wallet account with the given balance.
func CreateTestWalletAccount(t *testing.T, db *gorm.DB, owner string, balance decimal.Decimal) *models.WalletAccount {
	t.Helper()

	account := &models.WalletAccount{
		Owner:         owner,
		AccountNumber: models.FormatAccountNumber(nextID()),
		Balance:       balance,
		DepositLimit:  models.DefaultDepositLimit,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test wallet account: %v", err)
	}
	return account
}

// CreateTestSavingsAccount creates a savings account with the given balance.
func CreateTestSavingsAccount(t *testing.T, db *gorm.DB, owner string, balance decimal.Decimal) *models.SavingsAccount {
	t.Helper()

	account := &models.SavingsAccount{
		Owner:            owner,
		AccountNumber:    models.FormatAccountNumber(nextID()),
		Balance:          balance,
		TransactionLimit: models.DefaultTransactionLimit,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test savings account: %v", err)
	}
	return account
}

// CreateTestTransaction creates a ledger entry dated now.
func CreateTestTransaction(t *testing.T, db *gorm.DB, sender, receiver string, amount decimal.Decimal, category string) *models.Transaction {
	t.Helper()
	return CreateTestTransactionAt(t, db, sender, receiver, amount, category, time.Now())
}

// CreateTestTransactionAt creates a ledger entry with an explicit date.
func CreateTestTransactionAt(t *testing.T, db *gorm.DB, sender, receiver string, amount decimal.Decimal, category string, date time.Time) *models.Transaction {
	t.Helper()

	txn := &models.Transaction{
		Sender:   sender,
		Receiver: receiver,
		Amount:   amount,
		Category: category,
		Date:     date,
	}
	if err := db.Create(txn).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return txn
}

// CreateTestBudget creates a budget with zero recorded spend.
func CreateTestBudget(t *testing.T, db *gorm.DB, owner, category string, amount decimal.Decimal) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		Owner:    owner,
		Category: category,
		Amount:   amount,
		Spent:    decimal.Zero,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestInvestment creates an investment position.
func CreateTestInvestment(t *testing.T, db *gorm.DB, owner string, invested, current decimal.Decimal) *models.Investment {
	t.Helper()

	investment := &models.Investment{
		Owner:          owner,
		InvestmentType: fmt.Sprintf("Fixed Deposit %d", nextID()),
		AmountInvested: invested,
		CurrentValue:   current,
		InvestedAt:     time.Now(),
	}
	if err := db.Create(investment).Error; err != nil {
		t.Fatalf("failed to create test investment: %v", err)
	}
	return investment
}
