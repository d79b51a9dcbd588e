package models

// Client represents a registered client. The payee address is the unique
// identity key used as the account-owner key throughout the ledger.
type Client struct {
	Base
	FirstName    string `gorm:"not null" json:"first_name"`
	LastName     string `gorm:"not null" json:"last_name"`
	PayeeAddress string `gorm:"uniqueIndex;not null" json:"payee_address"`
	Password     string `gorm:"not null" json:"-"`

	// Relationships, keyed by payee address rather than row ID.
	Wallet  *WalletAccount  `gorm:"foreignKey:Owner;references:PayeeAddress" json:"wallet,omitempty"`
	Savings *SavingsAccount `gorm:"foreignKey:Owner;references:PayeeAddress" json:"savings,omitempty"`
}
