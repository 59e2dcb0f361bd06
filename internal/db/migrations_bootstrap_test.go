package db

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	embeddedmigrations "github.com/fergcraven/coachline/migrations"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestOpenSQLiteAppliesEmbeddedMigrationsOnCleanDatabase(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "coachline-clean.db")
	database := openSQLiteForBootstrapTest(t, databasePath)

	for _, table := range []string{"users", "habit_logs", "checkin_records", "dismissed_reminders", "checkin_assignments"} {
		if !database.Migrator().HasTable(table) {
			t.Fatalf("expected %s table after migrations", table)
		}
	}

	assertUniqueIndexExists(t, database, "uidx_client_log_date", "habit_logs")
	assertUniqueIndexExists(t, database, "uidx_dismissal", "dismissed_reminders")
	assertAllEmbeddedMigrationsApplied(t, database)
}

func TestOpenSQLiteUpgradesInitOnlySchema(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "coachline-upgrade.db")
	seedInitOnlySchema(t, databasePath)

	database := openSQLiteForBootstrapTest(t, databasePath)

	if !database.Migrator().HasTable("checkin_assignments") {
		t.Fatal("expected checkin_assignments table after upgrade")
	}

	var migratedUser struct {
		Email string `gorm:"column:email"`
		Role  string `gorm:"column:role"`
	}
	if err := database.
		Table("users").
		Select("email", "role").
		Where("email = ?", "preexisting@example.com").
		First(&migratedUser).Error; err != nil {
		t.Fatalf("load pre-existing user: %v", err)
	}
	if migratedUser.Role != "client" {
		t.Fatalf("expected pre-existing user role to survive, got %q", migratedUser.Role)
	}

	assertAllEmbeddedMigrationsApplied(t, database)
}

func TestOpenSQLiteMigrationBootstrapIsIdempotent(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "coachline-idempotent.db")

	firstOpen, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("first open sqlite: %v", err)
	}
	firstRecords := loadMigrationRecords(t, firstOpen)

	firstSQLDB, err := firstOpen.DB()
	if err != nil {
		t.Fatalf("first open sql db: %v", err)
	}
	if err := firstSQLDB.Close(); err != nil {
		t.Fatalf("close first sql db: %v", err)
	}

	secondOpen := openSQLiteForBootstrapTest(t, databasePath)
	secondRecords := loadMigrationRecords(t, secondOpen)

	if !reflect.DeepEqual(firstRecords, secondRecords) {
		t.Fatalf("expected migration records to remain unchanged between boots, before=%v after=%v", firstRecords, secondRecords)
	}
}

func openSQLiteForBootstrapTest(t *testing.T, databasePath string) *gorm.DB {
	t.Helper()

	database, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return database
}

// seedInitOnlySchema simulates a deployment that ran only the first
// migration, before the assignments table existed.
func seedInitOnlySchema(t *testing.T, databasePath string) {
	t.Helper()

	dsn := fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", databasePath)
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open init-only sqlite: %v", err)
	}

	initSQL, err := fs.ReadFile(embeddedmigrations.Files, "001_init.sql")
	if err != nil {
		t.Fatalf("read 001 migration: %v", err)
	}
	if err := database.Exec(string(initSQL)).Error; err != nil {
		t.Fatalf("apply 001 migration: %v", err)
	}
	if err := database.Exec(
		`CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, name TEXT NOT NULL, applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP)`,
	).Error; err != nil {
		t.Fatalf("create schema_migrations: %v", err)
	}
	if err := database.Exec(
		`INSERT INTO schema_migrations (version, name) VALUES ('001', 'init')`,
	).Error; err != nil {
		t.Fatalf("record 001 migration: %v", err)
	}

	if err := database.Exec(
		`INSERT INTO users (email, password_hash) VALUES (?, ?)`,
		"preexisting@example.com",
		"pre-hash",
	).Error; err != nil {
		t.Fatalf("insert pre-existing user: %v", err)
	}

	if database.Migrator().HasTable("checkin_assignments") {
		t.Fatal("expected init-only schema to lack checkin_assignments")
	}

	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open init-only sql db: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("close init-only sql db: %v", err)
	}
}

func assertUniqueIndexExists(t *testing.T, database *gorm.DB, indexName string, tableName string) {
	t.Helper()

	var row struct {
		SQL string `gorm:"column:sql"`
	}
	if err := database.Raw(
		`SELECT sql FROM sqlite_master WHERE type = 'index' AND name = ? AND tbl_name = ?`,
		indexName,
		tableName,
	).Scan(&row).Error; err != nil {
		t.Fatalf("load index sql for %s: %v", indexName, err)
	}
	definition := strings.ToLower(row.SQL)
	if !strings.Contains(definition, "unique") {
		t.Fatalf("expected %s to be a unique index, got %q", indexName, row.SQL)
	}
}

func assertAllEmbeddedMigrationsApplied(t *testing.T, database *gorm.DB) {
	t.Helper()

	migrations, err := loadEmbeddedMigrations()
	if err != nil {
		t.Fatalf("load embedded migrations: %v", err)
	}
	expectedVersions := make([]string, 0, len(migrations))
	for _, migration := range migrations {
		expectedVersions = append(expectedVersions, migration.Version)
	}

	var rows []struct {
		Version string `gorm:"column:version"`
	}
	if err := database.Raw(`SELECT version FROM schema_migrations ORDER BY version ASC`).Scan(&rows).Error; err != nil {
		t.Fatalf("load applied migration versions: %v", err)
	}
	actualVersions := make([]string, 0, len(rows))
	for _, row := range rows {
		actualVersions = append(actualVersions, row.Version)
	}

	if !reflect.DeepEqual(expectedVersions, actualVersions) {
		t.Fatalf("unexpected applied migration versions: expected=%v actual=%v", expectedVersions, actualVersions)
	}
}

type migrationRecord struct {
	Version   string `gorm:"column:version"`
	Name      string `gorm:"column:name"`
	AppliedAt string `gorm:"column:applied_at"`
}

func loadMigrationRecords(t *testing.T, database *gorm.DB) []migrationRecord {
	t.Helper()

	records := make([]migrationRecord, 0)
	if err := database.Raw(
		`SELECT version, name, applied_at FROM schema_migrations ORDER BY version ASC`,
	).Scan(&records).Error; err != nil {
		t.Fatalf("load migration records: %v", err)
	}
	return records
}
