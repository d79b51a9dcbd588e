package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is a monthly spending limit for a category. Category identity is
// case-insensitive within an owner: "Food" and "food" are the same budget.
// Spent is a cached value; the authoritative amount is always derivable by
// summing the owner's outgoing transactions in the current month.
type Budget struct {
	Base
	Owner       string          `gorm:"uniqueIndex:idx_budgets_owner_category;not null" json:"owner"`
	Category    string          `gorm:"not null" json:"category"`
	CategoryKey string          `gorm:"uniqueIndex:idx_budgets_owner_category;not null" json:"-"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	Spent       decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"spent"`
}

// BeforeSave normalizes the case-insensitive category key.
func (b *Budget) BeforeSave(tx *gorm.DB) error {
	b.CategoryKey = NormalizeCategory(b.Category)
	return nil
}

// NormalizeCategory returns the canonical lookup key for a category name.
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}
