package repository

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func testDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getenv("DB_USER", "kanso_user"),
		getenv("DB_PASSWORD", "secret"),
		getenv("DB_HOST", "localhost"),
		getenv("DB_PORT", "5432"),
		getenv("DB_NAME", "kanso_db"),
	)
}

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Connect("pgx", testDSN())
	if err != nil {
		t.Skipf("Skipping integration tests: database connection failed: %v", err)
	}
	require.NoError(t, RunMigrations(db), "Failed to migrate test database")
	return db
}

func cleanup(t *testing.T, db *sqlx.DB) {
	t.Helper()
	_, err := db.Exec("TRUNCATE TABLE efforts, habits, objectives, goals, tickets, announcements, features, users CASCADE")
	require.NoError(t, err, "Failed to clean up database")
}

func insertUser(t *testing.T, db *sqlx.DB, id, email string) {
	t.Helper()
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO users (id, email, password_hash, date_joined, updated_at)
		VALUES ($1, $2, 'hash', $3, $3)`, id, email, now)
	require.NoError(t, err, "Failed to create user fixture")
}
