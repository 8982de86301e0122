package db

import (
	"context"
	"database/sql"
	"fmt"
)

type Store struct {
	*Queries
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		DB:      db,
		Queries: New(db),
	}
}

// ExecTx runs fq inside a single database transaction. Any error from
// fq rolls the whole transaction back.
func (s *Store) ExecTx(ctx context.Context, fq func(q *Queries) error) error {
	return s.execTx(ctx, nil, fq)
}

// ExecSerializableTx runs fq at serializable isolation and retries once
// when Postgres aborts the transaction with a serialization failure or
// deadlock. Callers still use row locks; the retry covers the window a
// concurrent writer slips in between.
func (s *Store) ExecSerializableTx(ctx context.Context, fq func(q *Queries) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	err := s.execTx(ctx, opts, fq)
	if err != nil && IsRetryable(err) {
		err = s.execTx(ctx, opts, fq)
	}
	return err
}

func (s *Store) execTx(ctx context.Context, opts *sql.TxOptions, fq func(q *Queries) error) error {
	tx, err := s.DB.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	q := New(tx)
	if err := fq(q); err != nil {
		if txErr := tx.Rollback(); txErr != nil && txErr != sql.ErrTxDone {
			return fmt.Errorf("encountered rollback error: %v (original: %w)", txErr, err)
		}
		return err
	}

	return tx.Commit()
}
