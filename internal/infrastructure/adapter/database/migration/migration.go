package migration

import (
	"context"
	"errors"
	"fmt"

	coreport "github.com/amirhossein-jamali/vending-sync/internal/domain/port/core"
	"github.com/amirhossein-jamali/vending-sync/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

const (
	// CurrentSchemaVersion represents the current database schema version
	CurrentSchemaVersion = "1.1.0"
)

// MigrationManager manages database migrations
type MigrationManager struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *MigrationManager {
	return &MigrationManager{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// MigrateAll creates or upgrades the schema to CurrentSchemaVersion
func (m *MigrationManager) MigrateAll(ctx context.Context) error {
	m.logger.Info("Starting database migrations", map[string]any{
		"target_version": CurrentSchemaVersion,
	})

	db := m.db.WithContext(ctx)
	if err := db.AutoMigrate(&model.MigrationVersion{}); err != nil {
		return m.fail("Failed to create migration version table", err)
	}

	currentVersion, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return m.fail("Failed to check current schema version", err)
	}

	if currentVersion == CurrentSchemaVersion {
		m.logger.Info("Database already at target version, skipping migration", map[string]any{
			"version": currentVersion,
		})
		return nil
	}

	m.logger.Info("Current database version", map[string]any{
		"version": currentVersion,
	})

	if err := db.AutoMigrate(
		&model.Machine{},
		&model.IntegrationToken{},
		&model.Transaction{},
		&model.PricingSettings{},
	); err != nil {
		return m.fail("Failed to auto-migrate models", err)
	}

	if err := m.runVersionedMigrations(ctx, currentVersion); err != nil {
		return m.fail("Failed to run versioned migrations", err)
	}

	if err := m.createIndexes(ctx); err != nil {
		return m.fail("Failed to create indexes", err)
	}

	if err := m.setVersion(ctx, CurrentSchemaVersion, "Machines, tokens, transactions and pricing settings"); err != nil {
		return m.fail("Failed to update schema version", err)
	}

	m.logger.Info("Database migrations completed successfully", map[string]any{
		"version": CurrentSchemaVersion,
	})
	return nil
}

// GetCurrentVersion returns the latest applied version, or "" for a fresh database
func (m *MigrationManager) GetCurrentVersion(ctx context.Context) (string, error) {
	var version model.MigrationVersion
	result := m.db.WithContext(ctx).Order("applied_at desc").First(&version)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", result.Error
	}

	return version.Version, nil
}

func (m *MigrationManager) setVersion(ctx context.Context, version, description string) error {
	migrationVersion := model.MigrationVersion{
		Version:     version,
		Description: description,
		AppliedAt:   m.timeProvider.Now(),
	}
	return m.db.WithContext(ctx).Create(&migrationVersion).Error
}

// runVersionedMigrations applies the steps AutoMigrate cannot express
func (m *MigrationManager) runVersionedMigrations(ctx context.Context, currentVersion string) error {
	m.logger.Info("Running versioned migrations", map[string]any{
		"from": currentVersion,
		"to":   CurrentSchemaVersion,
	})

	switch currentVersion {
	case "":
		return nil
	case "1.0.0":
		return m.migrateFrom1_0_0To1_1_0(ctx)
	default:
		return fmt.Errorf("no migration path from schema version %s", currentVersion)
	}
}

// migrateFrom1_0_0To1_1_0 backfills the status column introduced in 1.1.0
func (m *MigrationManager) migrateFrom1_0_0To1_1_0(ctx context.Context) error {
	m.logger.Info("Migrating from v1.0.0 to v1.1.0", nil)

	return m.db.WithContext(ctx).Exec(`
		UPDATE transactions
		SET status = CASE WHEN settled_amount > 0 THEN 'completed' ELSE 'failed' END
		WHERE status IS NULL OR status = ''
	`).Error
}

func (m *MigrationManager) fail(msg string, err error) error {
	m.logger.Error(msg, map[string]any{
		"error":          err.Error(),
		"target_version": CurrentSchemaVersion,
	})
	return err
}
