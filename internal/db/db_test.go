package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	tests := []struct {
		dialect Dialect
		in      string
		want    string
	}{
		{SQLite, `SELECT * FROM item WHERE item_id = ?`, `SELECT * FROM item WHERE item_id = ?`},
		{Postgres, `SELECT * FROM item WHERE item_id = ?`, `SELECT * FROM item WHERE item_id = $1`},
		{Postgres, `UPDATE piece SET room_num = ?, shelf_num = ? WHERE item_id = ?`,
			`UPDATE piece SET room_num = $1, shelf_num = $2 WHERE item_id = $3`},
		{Postgres, `SELECT '?' FROM t WHERE a = ?`, `SELECT '?' FROM t WHERE a = $1`},
		{Postgres, `SELECT 1`, `SELECT 1`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, rebind(tt.dialect, tt.in))
	}
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, ":memory:?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", sqliteDSN(":memory:"))
	assert.Equal(t,
		"file:data.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)",
		sqliteDSN("data.db"))
	assert.Equal(t,
		"file:x?mode=memory&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		sqliteDSN("file:x?mode=memory"))
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open("oracle", "whatever")
	assert.Error(t, err)
}

func TestMigrateSeedsReferenceData(t *testing.T) {
	d := NewTestDB(t)
	ctx := context.Background()

	var roles int
	require.NoError(t, d.QueryRowContext(ctx, `SELECT COUNT(*) FROM role`).Scan(&roles))
	assert.Equal(t, 4, roles)

	var holding int
	require.NoError(t, d.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM location WHERE room_num = ? AND shelf_num = ?`, -1, -1,
	).Scan(&holding))
	assert.Equal(t, 1, holding)

	// Running again is a no-op.
	require.NoError(t, Migrate(d))
}

func TestConstraintClassification(t *testing.T) {
	d := NewTestDB(t)
	ctx := context.Background()

	_, err := d.ExecContext(ctx,
		`INSERT INTO person (username, password_hash) VALUES (?, ?)`, "alice", "x")
	require.NoError(t, err)

	_, err = d.ExecContext(ctx,
		`INSERT INTO person (username, password_hash) VALUES (?, ?)`, "alice", "y")
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsForeignKeyViolation(err))

	_, err = d.ExecContext(ctx,
		`INSERT INTO act (username, role_id) VALUES (?, ?)`, "nobody", "staff")
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err))
	assert.True(t, IsConstraintViolation(err))

	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsConstraintViolation(errors.New("UNIQUE constraint failed")))
}

func TestTxRollback(t *testing.T) {
	d := NewTestDB(t)
	ctx := context.Background()

	tx, err := d.BeginTx(ctx, nil)
	require.NoError(t, err)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO person (username, password_hash) VALUES (?, ?)`, "bob", "x")
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	var n int
	require.NoError(t, d.QueryRowContext(ctx, `SELECT COUNT(*) FROM person`).Scan(&n))
	assert.Zero(t, n)
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2024-03-05"))
	assert.True(t, d.Valid)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), d.Time)

	now := time.Now()
	require.NoError(t, d.Scan(now))
	assert.Equal(t, now, d.Time)

	require.NoError(t, d.Scan(nil))
	assert.False(t, d.Valid)
	assert.Nil(t, d.Ptr())

	assert.Error(t, d.Scan("not a date"))
	assert.Error(t, d.Scan(42))
	assert.Equal(t, "2024-03-05", FormatDate(time.Date(2024, 3, 5, 13, 0, 0, 0, time.UTC)))
}
