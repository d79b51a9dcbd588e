package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AccountType identifies the two account variants a client holds.
type AccountType string

const (
	AccountTypeWallet  AccountType = "wallet"
	AccountTypeSavings AccountType = "savings"
)

// AccountNumberPrefix is the fixed human-readable prefix shared by all
// account numbers, e.g. "3201 0007".
const AccountNumberPrefix = "3201"

// FormatAccountNumber renders a sequence value as a displayable account number.
func FormatAccountNumber(seq int64) string {
	return fmt.Sprintf("%s %04d", AccountNumberPrefix, seq)
}

// Default type-specific limits applied when an account is created.
var (
	DefaultDepositLimit     = decimal.NewFromInt(10000)
	DefaultTransactionLimit = decimal.NewFromInt(100000)
)

// WalletAccount is the receiving-side account credited by incoming transfers.
// One per client, auto-created on first incoming transfer if absent.
type WalletAccount struct {
	Base
	Owner         string          `gorm:"uniqueIndex;not null" json:"owner"`
	AccountNumber string          `gorm:"not null" json:"account_number"`
	Balance       decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"balance"`
	DepositLimit  decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"deposit_limit"`
}

// SavingsAccount is the spending-side account debited by outgoing transfers.
type SavingsAccount struct {
	Base
	Owner            string          `gorm:"uniqueIndex;not null" json:"owner"`
	AccountNumber    string          `gorm:"not null" json:"account_number"`
	Balance          decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"balance"`
	TransactionLimit decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"transaction_limit"`
}

// AccountSequence holds the next account-number sequence value per account
// type. It is incremented with a single atomic UPDATE inside the same
// transaction that inserts the account, so concurrent creations cannot
// assign colliding numbers.
type AccountSequence struct {
	AccountType AccountType `gorm:"primaryKey" json:"account_type"`
	NextValue   int64       `gorm:"not null" json:"next_value"`
}
