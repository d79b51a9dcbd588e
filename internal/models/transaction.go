package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultTransactionCategory is substituted when a transfer is recorded with
// a blank category.
const DefaultTransactionCategory = "Transfer"

// Transaction is an immutable, append-only ledger entry recording a money
// movement from a sender's savings account to a receiver's wallet account.
type Transaction struct {
	Base
	Sender   string          `gorm:"index;not null" json:"sender"`
	Receiver string          `gorm:"index;not null" json:"receiver"`
	Amount   decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	Category string          `gorm:"not null" json:"category"`
	Message  string          `json:"message"`
	Date     time.Time       `gorm:"index;not null" json:"date"`
}
