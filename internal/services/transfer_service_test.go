package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"smartfinance/internal/models"
	"smartfinance/internal/repository"
	"smartfinance/internal/testutil"
)

func TestCreateClient(t *testing.T) {
	t.Run("creates_client_with_both_accounts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransferService(repository.NewLedger(db), nil)

		client, err := svc.CreateClient("Alice", "Ng", "alice@bank", "secret123",
			decimal.NewFromInt(100), decimal.NewFromInt(500))
		testutil.AssertNoError(t, err)

		if client.Wallet == nil || client.Savings == nil {
			t.Fatal("expected wallet and savings accounts to be created")
		}
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(100), client.Wallet.Balance)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(500), client.Savings.Balance)
		if client.Password == "secret123" {
			t.Error("expected password to be stored hashed")
		}
	})

	t.Run("assigns_sequential_account_numbers", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransferService(repository.NewLedger(db), nil)

		first, err := svc.CreateClient("A", "A", "a@bank", "password1", decimal.Zero, decimal.Zero)
		testutil.AssertNoError(t, err)
		second, err := svc.CreateClient("B", "B", "b@bank", "password2", decimal.Zero, decimal.Zero)
		testutil.AssertNoError(t, err)

		if first.Wallet.AccountNumber != "3201 0001" {
			t.Errorf("expected first wallet number 3201 0001, got %s", first.Wallet.AccountNumber)
		}
		if second.Wallet.AccountNumber != "3201 0002" {
			t.Errorf("expected second wallet number 3201 0002, got %s", second.Wallet.AccountNumber)
		}
		// Wallet and savings sequences advance independently.
		if first.Savings.AccountNumber != "3201 0001" {
			t.Errorf("expected first savings number 3201 0001, got %s", first.Savings.AccountNumber)
		}
	})

	t.Run("duplicate_payee_address", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransferService(repository.NewLedger(db), nil)

		_, err := svc.CreateClient("Alice", "Ng", "alice@bank", "secret123", decimal.Zero, decimal.Zero)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateClient("Other", "Person", "alice@bank", "secret456", decimal.Zero, decimal.Zero)
		testutil.AssertAppError(t, err, "DUPLICATE_CLIENT")
	})

	t.Run("blank_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransferService(repository.NewLedger(db), nil)

		_, err := svc.CreateClient("  ", "Ng", "alice@bank", "secret123", decimal.Zero, decimal.Zero)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("negative_initial_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransferService(repository.NewLedger(db), nil)

		_, err := svc.CreateClient("Alice", "Ng", "alice@bank", "secret123",
			decimal.NewFromInt(-1), decimal.Zero)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestDeleteClient(t *testing.T) {
	t.Run("removes_client_and_accounts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ledger := repository.NewLedger(db)
		svc := NewTransferService(ledger, nil)

		_, err := svc.CreateClient("Alice", "Ng", "alice@bank", "secret123", decimal.Zero, decimal.Zero)
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.DeleteClient("alice@bank"))

		_, err = ledger.ClientByPayeeAddress("alice@bank")
		testutil.AssertAppError(t, err, "CLIENT_NOT_FOUND")
		_, err = ledger.WalletByOwner("alice@bank")
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
		_, err = ledger.SavingsByOwner("alice@bank")
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})

	t.Run("unknown_client", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransferService(repository.NewLedger(db), nil)

		testutil.AssertAppError(t, svc.DeleteClient("ghost@bank"), "CLIENT_NOT_FOUND")
	})
}

func TestTransferMoney(t *testing.T) {
	setup := func(t *testing.T) (*transferService, *repository.Ledger, func()) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ledger := repository.NewLedger(db)
		svc := NewTransferService(ledger, nil).(*transferService)

		testutil.CreateTestClientWithAddress(t, db, "sender@bank")
		testutil.CreateTestSavingsAccount(t, db, "sender@bank", decimal.NewFromInt(1000))
		testutil.CreateTestClientWithAddress(t, db, "receiver@bank")
		testutil.CreateTestWalletAccount(t, db, "receiver@bank", decimal.NewFromInt(50))

		return svc, ledger, func() { testutil.TeardownTestDB(t, db) }
	}

	t.Run("moves_funds_and_appends_ledger_entry", func(t *testing.T) {
		svc, ledger, teardown := setup(t)
		defer teardown()

		err := svc.TransferMoney("sender@bank", "receiver@bank", decimal.NewFromInt(300), "Rent", "June rent")
		testutil.AssertNoError(t, err)

		savings, err := ledger.SavingsByOwner("sender@bank")
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(700), savings.Balance)

		wallet, err := ledger.WalletByOwner("receiver@bank")
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(350), wallet.Balance)

		history, err := ledger.TransactionsByPayee("sender@bank")
		testutil.AssertNoError(t, err)
		if len(history) != 1 {
			t.Fatalf("expected 1 ledger entry, got %d", len(history))
		}
		if history[0].Category != "Rent" {
			t.Errorf("expected category Rent, got %s", history[0].Category)
		}
	})

	t.Run("insufficient_balance_leaves_state_untouched", func(t *testing.T) {
		svc, ledger, teardown := setup(t)
		defer teardown()

		err := svc.TransferMoney("sender@bank", "receiver@bank", decimal.NewFromInt(5000), "", "")
		testutil.AssertAppError(t, err, "INSUFFICIENT_BALANCE")

		savings, err := ledger.SavingsByOwner("sender@bank")
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(1000), savings.Balance)

		history, err := ledger.TransactionsByPayee("sender@bank")
		testutil.AssertNoError(t, err)
		if len(history) != 0 {
			t.Errorf("expected no ledger entries, got %d", len(history))
		}
	})

	t.Run("self_transfer_rejected_case_insensitively", func(t *testing.T) {
		svc, _, teardown := setup(t)
		defer teardown()

		err := svc.TransferMoney("sender@bank", "SENDER@BANK", decimal.NewFromInt(10), "", "")
		testutil.AssertAppError(t, err, "SELF_TRANSFER")
	})

	t.Run("non_positive_amount", func(t *testing.T) {
		svc, _, teardown := setup(t)
		defer teardown()

		err := svc.TransferMoney("sender@bank", "receiver@bank", decimal.Zero, "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		err = svc.TransferMoney("sender@bank", "receiver@bank", decimal.NewFromInt(-5), "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("creates_wallet_for_receiver_without_one", func(t *testing.T) {
		svc, ledger, teardown := setup(t)
		defer teardown()

		err := svc.TransferMoney("sender@bank", "newcomer@bank", decimal.NewFromInt(200), "", "")
		testutil.AssertNoError(t, err)

		wallet, err := ledger.WalletByOwner("newcomer@bank")
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(200), wallet.Balance)
		if wallet.AccountNumber == "" {
			t.Error("expected the new wallet to get an account number")
		}
	})

	t.Run("blank_category_defaults", func(t *testing.T) {
		svc, ledger, teardown := setup(t)
		defer teardown()

		err := svc.TransferMoney("sender@bank", "receiver@bank", decimal.NewFromInt(10), "   ", "")
		testutil.AssertNoError(t, err)

		history, err := ledger.TransactionsByPayee("sender@bank")
		testutil.AssertNoError(t, err)
		if history[0].Category != models.DefaultTransactionCategory {
			t.Errorf("expected default category, got %q", history[0].Category)
		}
	})

	t.Run("sender_without_savings_account", func(t *testing.T) {
		svc, _, teardown := setup(t)
		defer teardown()

		err := svc.TransferMoney("nobody@bank", "receiver@bank", decimal.NewFromInt(10), "", "")
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})
}
