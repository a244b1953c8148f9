package db

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	mockDb, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { mockDb.Close() })
	return NewStore(sqlx.NewDb(mockDb, "sqlmock")), mock
}

func TestGetUserByUsername(t *testing.T) {
	store, mock := newMockStore(t)

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM users WHERE username = \$1`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "created_at", "updated_at", "last_synced_at"}).
			AddRow(1, "alice", now, now, nil))

	user, err := store.GetUserByUsername("alice")

	assert.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Nil(t, user.LastSyncedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListUsernames(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT username FROM users ORDER BY username`).
		WillReturnRows(sqlmock.NewRows([]string{"username"}).AddRow("alice").AddRow("bob"))

	usernames, err := store.ListUsernames()

	assert.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, usernames)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUserRemovesOwnedRowsFirst(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM repositories WHERE user_id IN \(SELECT id FROM users WHERE username = \$1\)`).
		WithArgs("alice").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM users WHERE username = \$1`).
		WithArgs("alice").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, store.DeleteUser("alice"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUserRollsBackOnFailure(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM repositories WHERE user_id IN \(SELECT id FROM users WHERE username = \$1\)`).
		WithArgs("alice").
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	assert.Error(t, store.DeleteUser("alice"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
