package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createRegistrationTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE registrations (
		id TEXT PRIMARY KEY,
		full_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		wallet_address TEXT NOT NULL,
		phone_number TEXT,
		country TEXT,
		investment_amount TEXT,
		referral_code TEXT,
		accepted_terms BOOLEAN NOT NULL DEFAULT 0,
		receive_updates BOOLEAN NOT NULL DEFAULT 0,
		registered_at DATETIME NOT NULL,
		first_contact_sent BOOLEAN NOT NULL DEFAULT 0,
		first_contact_date DATETIME,
		reminder_sent BOOLEAN NOT NULL DEFAULT 0,
		reminder_date DATETIME,
		last_email_type TEXT NOT NULL DEFAULT 'none',
		created_at DATETIME,
		updated_at DATETIME
	);`)
}
