package infra

import (
	"fmt"

	"wagebook/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update both tables, then applies idempotent SQL patches that GORM
// cannot express (dropping the legacy cascading FK, backfilling snapshot
// columns on databases created by the old schema).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations creates/updates the schema. Shared with integration tests.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Worker{},
		&model.Attendance{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL statements that AutoMigrate cannot
// fully handle on its own. Each statement is guarded by an existence check so
// re-running on an already-patched schema is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// The original schema declared attendance.worker_id as a foreign key
		// with ON DELETE CASCADE, which silently erased history when a worker
		// was removed. History must survive worker deletion, so any such
		// constraint is dropped on databases created by the old schema.
		{"drop legacy cascading FK on attendance.worker_id", `
DO $$
DECLARE
  fk record;
BEGIN
  FOR fk IN
    SELECT conname FROM pg_constraint
    WHERE conrelid = to_regclass('attendance') AND contype = 'f'
  LOOP
    EXECUTE format('ALTER TABLE attendance DROP CONSTRAINT %I', fk.conname);
  END LOOP;
END $$`},

		// Backfill the name/role snapshot for rows written before the snapshot
		// columns existed, while the referenced worker is still around.
		{"backfill worker snapshot columns", `
UPDATE attendance a
SET worker_name = w.name, worker_role = w.role
FROM workers w
WHERE w.id = a.worker_id AND a.worker_name = ''`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
