package db

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

const createWalletTransaction = `-- name: CreateWalletTransaction :one
INSERT INTO wallet_transactions (id, type, amount, currency, from_wallet_id, to_wallet_id, description, metadata)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, type, amount, currency, from_wallet_id, to_wallet_id, description, metadata, created_at
`

type CreateWalletTransactionParams struct {
	ID           uuid.UUID
	Type         string
	Amount       int64
	Currency     string
	FromWalletID uuid.NullUUID
	ToWalletID   uuid.NullUUID
	Description  sql.NullString
	Metadata     pqtype.NullRawMessage
}

func (q *Queries) CreateWalletTransaction(ctx context.Context, arg CreateWalletTransactionParams) (WalletTransaction, error) {
	row := q.db.QueryRowContext(ctx, createWalletTransaction,
		arg.ID,
		arg.Type,
		arg.Amount,
		arg.Currency,
		arg.FromWalletID,
		arg.ToWalletID,
		arg.Description,
		arg.Metadata,
	)
	var i WalletTransaction
	err := row.Scan(
		&i.ID,
		&i.Type,
		&i.Amount,
		&i.Currency,
		&i.FromWalletID,
		&i.ToWalletID,
		&i.Description,
		&i.Metadata,
		&i.CreatedAt,
	)
	return i, err
}

const listWalletTransactionsByCustomerID = `-- name: ListWalletTransactionsByCustomerID :many
SELECT t.id, t.type, t.amount, t.currency, t.from_wallet_id, t.to_wallet_id, t.description, t.metadata, t.created_at
FROM wallet_transactions t
WHERE t.from_wallet_id IN (SELECT id FROM wallets WHERE customer_id = $1)
   OR t.to_wallet_id IN (SELECT id FROM wallets WHERE customer_id = $1)
ORDER BY t.created_at DESC
LIMIT $2 OFFSET $3
`

type ListWalletTransactionsByCustomerIDParams struct {
	CustomerID int64
	Limit      int32
	Offset     int32
}

func (q *Queries) ListWalletTransactionsByCustomerID(ctx context.Context, arg ListWalletTransactionsByCustomerIDParams) ([]WalletTransaction, error) {
	rows, err := q.db.QueryContext(ctx, listWalletTransactionsByCustomerID, arg.CustomerID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []WalletTransaction
	for rows.Next() {
		var i WalletTransaction
		if err := rows.Scan(
			&i.ID,
			&i.Type,
			&i.Amount,
			&i.Currency,
			&i.FromWalletID,
			&i.ToWalletID,
			&i.Description,
			&i.Metadata,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
