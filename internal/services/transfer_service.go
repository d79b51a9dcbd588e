package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "smartfinance/internal/errors"
	"smartfinance/internal/logger"
	"smartfinance/internal/metrics"
	"smartfinance/internal/models"
	"smartfinance/internal/repository"
)

// transferService orchestrates atomic money movement and client onboarding.
// Every multi-record mutation runs inside a single database transaction; the
// store's transaction boundary is the only concurrency mechanism relied on.
type transferService struct {
	ledger    *repository.Ledger
	collector *metrics.Collector
}

// NewTransferService creates a new TransferServicer.
func NewTransferService(ledger *repository.Ledger, collector *metrics.Collector) TransferServicer {
	return &transferService{ledger: ledger, collector: collector}
}

// CreateClient registers a client together with their wallet and savings
// accounts as one atomic unit of work. Precondition failures return before
// any transaction opens; a failure at any step rolls back all three inserts.
func (s *transferService) CreateClient(
	firstName, lastName, payeeAddress, password string,
	initialWallet, initialSavings decimal.Decimal,
) (*models.Client, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	payeeAddress = strings.TrimSpace(payeeAddress)

	if firstName == "" || lastName == "" || payeeAddress == "" || strings.TrimSpace(password) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "all client fields are required")
	}
	if initialWallet.IsNegative() || initialSavings.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "initial balances cannot be negative")
	}

	exists, err := s.ledger.ClientExists(payeeAddress)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrDuplicateClient
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	client := &models.Client{
		FirstName:    firstName,
		LastName:     lastName,
		PayeeAddress: payeeAddress,
		Password:     string(hashed),
	}

	err = s.ledger.DB().Transaction(func(tx *gorm.DB) error {
		ledger := s.ledger.WithTx(tx)

		if err := ledger.CreateClient(client); err != nil {
			return err
		}
		wallet, err := ledger.CreateWalletAccount(payeeAddress, initialWallet)
		if err != nil {
			return err
		}
		savings, err := ledger.CreateSavingsAccount(payeeAddress, initialSavings)
		if err != nil {
			return err
		}
		client.Wallet = wallet
		client.Savings = savings
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("client created",
		"payee_address", payeeAddress,
		"wallet", client.Wallet.AccountNumber,
		"savings", client.Savings.AccountNumber,
	)
	return client, nil
}

// DeleteClient removes the client's accounts and client row in one atomic
// unit of work. Deleting a non-existent client is a reported failure, not a
// silent no-op.
func (s *transferService) DeleteClient(payeeAddress string) error {
	payeeAddress = strings.TrimSpace(payeeAddress)
	if payeeAddress == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "payee address is required")
	}

	return s.ledger.DB().Transaction(func(tx *gorm.DB) error {
		ledger := s.ledger.WithTx(tx)

		if err := ledger.DeleteWalletAccounts(payeeAddress); err != nil {
			return err
		}
		if err := ledger.DeleteSavingsAccounts(payeeAddress); err != nil {
			return err
		}
		deleted, err := ledger.DeleteClient(payeeAddress)
		if err != nil {
			return err
		}
		if deleted == 0 {
			// Returning an error rolls back the account deletions too.
			return apperrors.ErrClientNotFound
		}
		return nil
	})
}

// TransferMoney moves amount from the sender's savings account into the
// receiver's wallet account and appends the ledger entry, atomically.
// Receivers without a wallet are onboarded with a new one holding the
// transferred amount. Self-transfers and non-positive amounts are rejected
// before any transaction opens.
func (s *transferService) TransferMoney(sender, receiver string, amount decimal.Decimal, category, message string) error {
	sender = strings.TrimSpace(sender)
	receiver = strings.TrimSpace(receiver)

	if sender == "" || receiver == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "sender and receiver are required")
	}
	if strings.EqualFold(sender, receiver) {
		return apperrors.ErrSelfTransfer
	}
	if !amount.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "transfer amount must be positive")
	}

	err := s.ledger.DB().Transaction(func(tx *gorm.DB) error {
		ledger := s.ledger.WithTx(tx)

		if err := ledger.DebitSavings(sender, amount); err != nil {
			return err
		}

		switch err := ledger.CreditWallet(receiver, amount); {
		case err == nil:
		case errors.Is(err, apperrors.ErrAccountNotFound):
			if _, err := ledger.CreateWalletAccount(receiver, amount); err != nil {
				return err
			}
		default:
			return err
		}

		if strings.TrimSpace(category) == "" {
			category = models.DefaultTransactionCategory
		}
		return ledger.AppendTransaction(&models.Transaction{
			Sender:   sender,
			Receiver: receiver,
			Amount:   amount,
			Category: category,
			Message:  message,
			Date:     time.Now(),
		})
	})

	if s.collector != nil {
		s.collector.RecordTransfer(err == nil)
	}
	if err != nil {
		return err
	}

	logger.Get().Infow("transfer committed",
		"sender", sender,
		"receiver", receiver,
		"amount", amount.String(),
	)
	return nil
}
