package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/welcomehome/internal/db"
	"github.com/erazemk/welcomehome/internal/model"
)

func newMockDB(t *testing.T, dialect db.Dialect) (*db.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db.Wrap(sqlDB, dialect), mock
}

func TestAddItemToOrderPostgresPlaceholders(t *testing.T) {
	conn, mock := newMockDB(t, db.Postgres)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO item_in (item_id, order_id, found) VALUES ($1, $2, $3)`)).
		WithArgs(int64(5), int64(9), false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, AddItemToOrder(context.Background(), conn, 9, 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddItemToOrderPostgresConstraint(t *testing.T) {
	conn, mock := newMockDB(t, db.Postgres)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO item_in`)).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := AddItemToOrder(context.Background(), conn, 9, 5)
	assert.ErrorIs(t, err, model.ErrItemUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePersonPostgresDuplicate(t *testing.T) {
	conn, mock := newMockDB(t, db.Postgres)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO person`)).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	err := CreatePerson(context.Background(), conn, model.Person{Username: "alice"}, model.RoleDonor)
	assert.ErrorIs(t, err, model.ErrDuplicateUsername)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPrepareOrderRollsBackOnDeliveryFailure(t *testing.T) {
	conn, mock := newMockDB(t, db.SQLite)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE piece SET room_num = ?, shelf_num = ?`)).
		WithArgs(model.HoldingRoom, model.HoldingShelf, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO delivered`)).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := PrepareOrder(context.Background(), conn, 3, "sam", day)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recording delivery")
	assert.True(t, model.IsUnexpected(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrderQueryError(t *testing.T) {
	conn, mock := newMockDB(t, db.SQLite)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT order_id, order_date`)).
		WithArgs(int64(1)).
		WillReturnError(errors.New("connection reset"))

	o, err := GetOrder(context.Background(), conn, 1)
	assert.Nil(t, o)
	assert.ErrorContains(t, err, "getting order")
}

func TestListRoomsScansRows(t *testing.T) {
	conn, mock := newMockDB(t, db.SQLite)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT DISTINCT room_num FROM location`)).
		WithArgs(model.HoldingRoom).
		WillReturnRows(sqlmock.NewRows([]string{"room_num"}).AddRow(1).AddRow(4))

	rooms, err := ListRooms(context.Background(), conn)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4}, rooms)
}
