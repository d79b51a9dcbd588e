// Package database manages the GORM connection and schema migrations.
package database

import (
	"fmt"
	"time"

	"smartfinance/internal/config"
	"smartfinance/internal/logger"
	"smartfinance/internal/models"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Manager handles database connections and migrations.
type Manager struct {
	db     *gorm.DB
	cfg    *config.Config
	pgURL  string
	sqlite bool
}

// NewManager opens a database connection for the configured driver.
// Postgres is the production driver; sqlite serves local development.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{cfg: cfg}

	switch cfg.DBDriver {
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{TranslateError: true})
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		m.db = db
		m.sqlite = true
	default:
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)
		db, err := gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{TranslateError: true})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying DB: %w", err)
		}
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)

		m.db = db
		m.pgURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBSSLMode)
	}

	return m, nil
}

// Migrate brings the schema up to date. Postgres uses the SQL migrations in
// migrations/; sqlite falls back to GORM auto-migration plus sequence seeding.
func (m *Manager) Migrate() error {
	if m.sqlite {
		if err := m.db.AutoMigrate(AllModels()...); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		return SeedAccountSequences(m.db)
	}

	logger.Get().Info("Running database migrations...")

	mig, err := migrate.New("file://migrations", m.pgURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := mig.Close()
		if srcErr != nil {
			logger.Get().Warnf("migrate source close error: %v", srcErr)
		}
		if dbErr != nil {
			logger.Get().Warnf("migrate database close error: %v", dbErr)
		}
	}()

	if err := mig.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Get().Info("Database migrations completed successfully")
	return nil
}

// DB returns the underlying GORM database instance.
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// AllModels lists every GORM entity for auto-migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.Client{},
		&models.WalletAccount{},
		&models.SavingsAccount{},
		&models.Transaction{},
		&models.Budget{},
		&models.Investment{},
		&models.AccountSequence{},
	}
}

// SeedAccountSequences inserts the per-account-type sequence rows if absent.
func SeedAccountSequences(db *gorm.DB) error {
	for _, t := range []models.AccountType{models.AccountTypeWallet, models.AccountTypeSavings} {
		var count int64
		if err := db.Model(&models.AccountSequence{}).Where("account_type = ?", t).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(&models.AccountSequence{AccountType: t, NextValue: 0}).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
