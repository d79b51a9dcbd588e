package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investment records a position a client holds outside the ledger accounts,
// e.g. a fixed deposit or a stock purchase tracked manually.
type Investment struct {
	Base
	Owner          string          `gorm:"index;not null" json:"owner"`
	InvestmentType string          `gorm:"not null" json:"investment_type"`
	AmountInvested decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount_invested"`
	CurrentValue   decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"current_value"`
	InvestedAt     time.Time       `gorm:"not null" json:"invested_at"`
}
