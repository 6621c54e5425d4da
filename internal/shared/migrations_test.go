package shared

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func TestMigrations(t *testing.T) {
	t.Run("Load", func(t *testing.T) {
		migrations, err := loadMigrations()
		if err != nil {
			t.Fatalf("failed to load migrations: %v", err)
		}

		if len(migrations) == 0 {
			t.Fatal("expected at least one migration")
		}

		for i, m := range migrations {
			if m.Up == "" {
				t.Errorf("migration %d has no up script", m.Version)
			}
			if m.Down == "" {
				t.Errorf("migration %d has no down script", m.Version)
			}
			if i > 0 && migrations[i-1].Version >= m.Version {
				t.Error("expected migrations sorted by version")
			}
		}
	})

	t.Run("Run", func(t *testing.T) {
		db := openTestDB(t)

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM history").Scan(&count); err != nil {
			t.Fatalf("expected history table to exist: %v", err)
		}
		if count != 0 {
			t.Errorf("expected empty history table, got %d rows", count)
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		db := openTestDB(t)

		if err := RunMigrations(db); err != nil {
			t.Fatalf("first run failed: %v", err)
		}
		if err := RunMigrations(db); err != nil {
			t.Fatalf("second run failed: %v", err)
		}

		var applied int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied); err != nil {
			t.Fatalf("failed to count applied migrations: %v", err)
		}

		migrations, _ := loadMigrations()
		if applied != len(migrations) {
			t.Errorf("expected %d applied migrations, got %d", len(migrations), applied)
		}
	})

	t.Run("Rollback", func(t *testing.T) {
		db := openTestDB(t)

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		if err := RollbackMigration(db); err != nil {
			t.Fatalf("failed to rollback: %v", err)
		}

		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM history").Scan(&count)
		if err == nil {
			t.Error("expected history table dropped after rollback")
		}
	})

	t.Run("Rollback Without Migrations", func(t *testing.T) {
		db := openTestDB(t)

		if err := createMigrationsTable(db); err != nil {
			t.Fatalf("failed to create migrations table: %v", err)
		}

		if err := RollbackMigration(db); err == nil {
			t.Error("expected error when nothing to roll back")
		}
	})
}

func TestRemoveComments(t *testing.T) {
	input := "CREATE TABLE t ( -- trailing comment\nid TEXT -- another\n)"

	got := removeComments(input)
	if got != "CREATE TABLE t (\nid TEXT\n)" && got != "CREATE TABLE t ( \nid TEXT \n)" {
		t.Errorf("unexpected comment stripping result %q", got)
	}
}
