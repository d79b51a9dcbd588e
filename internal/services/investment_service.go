package services

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "smartfinance/internal/errors"
	"smartfinance/internal/models"
	"smartfinance/internal/repository"
)

// investmentService manages manually tracked investment positions.
type investmentService struct {
	ledger *repository.Ledger
}

// NewInvestmentService creates a new InvestmentServicer.
func NewInvestmentService(ledger *repository.Ledger) InvestmentServicer {
	return &investmentService{ledger: ledger}
}

// AddInvestment records a new position for the owner.
func (s *investmentService) AddInvestment(owner, investmentType string, amountInvested, currentValue decimal.Decimal) (*models.Investment, error) {
	owner = strings.TrimSpace(owner)
	investmentType = strings.TrimSpace(investmentType)
	if owner == "" || investmentType == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "owner and investment type are required")
	}
	if !amountInvested.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount invested must be positive")
	}
	if currentValue.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "current value cannot be negative")
	}

	investment := &models.Investment{
		Owner:          owner,
		InvestmentType: investmentType,
		AmountInvested: amountInvested,
		CurrentValue:   currentValue,
		InvestedAt:     time.Now(),
	}
	if err := s.ledger.CreateInvestment(investment); err != nil {
		return nil, err
	}
	return investment, nil
}

// GetInvestments lists the owner's positions, most recent first.
func (s *investmentService) GetInvestments(owner string) ([]models.Investment, error) {
	return s.ledger.InvestmentsByOwner(owner)
}

// UpdateValue sets the current value of one of the owner's positions.
func (s *investmentService) UpdateValue(owner, investmentID string, currentValue decimal.Decimal) (*models.Investment, error) {
	if currentValue.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "current value cannot be negative")
	}

	investments, err := s.ledger.InvestmentsByOwner(owner)
	if err != nil {
		return nil, err
	}

	var target *models.Investment
	for i := range investments {
		if investments[i].ID == investmentID {
			target = &investments[i]
			break
		}
	}
	if target == nil {
		return nil, apperrors.ErrInvestmentNotFound
	}

	if err := s.ledger.UpdateInvestmentValue(investmentID, currentValue); err != nil {
		return nil, err
	}
	target.CurrentValue = currentValue
	return target, nil
}
