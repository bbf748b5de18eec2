package database

import (
	"fmt"

	"lpsimplex/internal/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AutoMigrate runs automatic database migrations for every persisted
// entity.
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("Running database migrations...")

	if err := enableUUIDExtension(db, log); err != nil {
		log.Error("Failed to enable PostgreSQL extensions", zap.Error(err))
		return fmt.Errorf("failed to enable PostgreSQL extensions: %w", err)
	}

	entities := []interface{}{
		&store.SolveJob{},
	}

	log.Info("Migrating entities", zap.Int("entity_count", len(entities)))

	if err := db.AutoMigrate(entities...); err != nil {
		log.Error("Auto migration failed", zap.Error(err))
		return fmt.Errorf("auto migration failed: %w", err)
	}

	log.Info("Database migrations completed successfully",
		zap.Strings("tables", []string{"solve_jobs"}))

	return nil
}

// enableUUIDExtension enables UUID generation for PostgreSQL, trying
// uuid-ossp first and falling back to pgcrypto / the builtin
// gen_random_uuid() on PostgreSQL 13+.
func enableUUIDExtension(db *gorm.DB, log *zap.Logger) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		log.Warn("uuid-ossp extension not available, trying pgcrypto", zap.Error(err))
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error; err != nil {
			log.Warn("pgcrypto extension not available, relying on builtin gen_random_uuid()", zap.Error(err))
		}
	}
	return nil
}

// DropAllTables drops every persisted entity. Useful for development
// resets; never call this against a production database.
func DropAllTables(db *gorm.DB, log *zap.Logger) error {
	log.Warn("Dropping all tables...")

	entities := []interface{}{
		&store.SolveJob{},
	}

	if err := db.Migrator().DropTable(entities...); err != nil {
		log.Error("Failed to drop tables", zap.Error(err))
		return fmt.Errorf("failed to drop tables: %w", err)
	}

	log.Info("All tables dropped successfully")
	return nil
}
