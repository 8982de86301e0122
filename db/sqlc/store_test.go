package db

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return NewStore(conn), mock
}

func TestExecTxCommits(t *testing.T) {
	store, mock := newTestStore(t)
	cartID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cart_items")).
		WithArgs(cartID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := store.ExecTx(context.Background(), func(q *Queries) error {
		return q.ClearCart(context.Background(), cartID)
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecTxRollsBackOnError(t *testing.T) {
	store, mock := newTestStore(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := store.ExecTx(context.Background(), func(q *Queries) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

// A serialization failure aborts the first attempt; the unit of work
// runs again on a fresh transaction and succeeds.
func TestExecSerializableTxRetriesOnSerializationFailure(t *testing.T) {
	store, mock := newTestStore(t)
	cartID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cart_items")).
		WithArgs(cartID).
		WillReturnError(&pq.Error{Code: "40001"})
	mock.ExpectRollback()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cart_items")).
		WithArgs(cartID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	attempts := 0
	err := store.ExecSerializableTx(context.Background(), func(q *Queries) error {
		attempts++
		return q.ClearCart(context.Background(), cartID)
	})
	require.NoError(t, err)
	require.Equal(t, 2, attempts)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecSerializableTxDoesNotRetryPlainErrors(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	attempts := 0
	err := store.ExecSerializableTx(context.Background(), func(q *Queries) error {
		attempts++
		return errors.New("not retryable")
	})
	require.Error(t, err)
	require.Equal(t, 1, attempts)
	require.NoError(t, mock.ExpectationsWereMet())
}
