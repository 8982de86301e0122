package db

import (
	"context"

	"github.com/google/uuid"
)

const createWallet = `-- name: CreateWallet :one
INSERT INTO wallets (id, customer_id, currency, balance)
VALUES ($1, $2, $3, $4)
RETURNING id, customer_id, currency, balance, created_at, updated_at
`

type CreateWalletParams struct {
	ID         uuid.UUID
	CustomerID int64
	Currency   string
	Balance    int64
}

func (q *Queries) CreateWallet(ctx context.Context, arg CreateWalletParams) (Wallet, error) {
	row := q.db.QueryRowContext(ctx, createWallet,
		arg.ID,
		arg.CustomerID,
		arg.Currency,
		arg.Balance,
	)
	var i Wallet
	err := row.Scan(
		&i.ID,
		&i.CustomerID,
		&i.Currency,
		&i.Balance,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getWallet = `-- name: GetWallet :one
SELECT id, customer_id, currency, balance, created_at, updated_at
FROM wallets
WHERE id = $1
`

func (q *Queries) GetWallet(ctx context.Context, id uuid.UUID) (Wallet, error) {
	row := q.db.QueryRowContext(ctx, getWallet, id)
	var i Wallet
	err := row.Scan(
		&i.ID,
		&i.CustomerID,
		&i.Currency,
		&i.Balance,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getWalletForUpdate = `-- name: GetWalletForUpdate :one
SELECT id, customer_id, currency, balance, created_at, updated_at
FROM wallets
WHERE id = $1
FOR UPDATE
`

func (q *Queries) GetWalletForUpdate(ctx context.Context, id uuid.UUID) (Wallet, error) {
	row := q.db.QueryRowContext(ctx, getWalletForUpdate, id)
	var i Wallet
	err := row.Scan(
		&i.ID,
		&i.CustomerID,
		&i.Currency,
		&i.Balance,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getWalletByCustomerAndCurrency = `-- name: GetWalletByCustomerAndCurrency :one
SELECT id, customer_id, currency, balance, created_at, updated_at
FROM wallets
WHERE customer_id = $1 AND currency = $2
`

type GetWalletByCustomerAndCurrencyParams struct {
	CustomerID int64
	Currency   string
}

func (q *Queries) GetWalletByCustomerAndCurrency(ctx context.Context, arg GetWalletByCustomerAndCurrencyParams) (Wallet, error) {
	row := q.db.QueryRowContext(ctx, getWalletByCustomerAndCurrency, arg.CustomerID, arg.Currency)
	var i Wallet
	err := row.Scan(
		&i.ID,
		&i.CustomerID,
		&i.Currency,
		&i.Balance,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getWalletByCustomerAndCurrencyForUpdate = `-- name: GetWalletByCustomerAndCurrencyForUpdate :one
SELECT id, customer_id, currency, balance, created_at, updated_at
FROM wallets
WHERE customer_id = $1 AND currency = $2
FOR UPDATE
`

type GetWalletByCustomerAndCurrencyForUpdateParams struct {
	CustomerID int64
	Currency   string
}

func (q *Queries) GetWalletByCustomerAndCurrencyForUpdate(ctx context.Context, arg GetWalletByCustomerAndCurrencyForUpdateParams) (Wallet, error) {
	row := q.db.QueryRowContext(ctx, getWalletByCustomerAndCurrencyForUpdate, arg.CustomerID, arg.Currency)
	var i Wallet
	err := row.Scan(
		&i.ID,
		&i.CustomerID,
		&i.Currency,
		&i.Balance,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getWalletsByCustomerID = `-- name: GetWalletsByCustomerID :many
SELECT id, customer_id, currency, balance, created_at, updated_at
FROM wallets
WHERE customer_id = $1
ORDER BY currency
`

func (q *Queries) GetWalletsByCustomerID(ctx context.Context, customerID int64) ([]Wallet, error) {
	rows, err := q.db.QueryContext(ctx, getWalletsByCustomerID, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Wallet
	for rows.Next() {
		var i Wallet
		if err := rows.Scan(
			&i.ID,
			&i.CustomerID,
			&i.Currency,
			&i.Balance,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const lockWalletsForTransfer = `-- name: LockWalletsForTransfer :many
SELECT id, customer_id, currency, balance, created_at, updated_at
FROM wallets
WHERE (customer_id = $1 OR customer_id = $2) AND currency = $3
ORDER BY id
FOR UPDATE
`

type LockWalletsForTransferParams struct {
	FromCustomerID int64
	ToCustomerID   int64
	Currency       string
}

// LockWalletsForTransfer locks both wallet rows in ascending id order so
// two transfers running in opposite directions cannot deadlock.
func (q *Queries) LockWalletsForTransfer(ctx context.Context, arg LockWalletsForTransferParams) ([]Wallet, error) {
	rows, err := q.db.QueryContext(ctx, lockWalletsForTransfer, arg.FromCustomerID, arg.ToCustomerID, arg.Currency)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Wallet
	for rows.Next() {
		var i Wallet
		if err := rows.Scan(
			&i.ID,
			&i.CustomerID,
			&i.Currency,
			&i.Balance,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const creditWalletBalance = `-- name: CreditWalletBalance :one
UPDATE wallets
SET balance = balance + $2, updated_at = now()
WHERE id = $1
RETURNING id, customer_id, currency, balance, created_at, updated_at
`

type CreditWalletBalanceParams struct {
	ID     uuid.UUID
	Amount int64
}

func (q *Queries) CreditWalletBalance(ctx context.Context, arg CreditWalletBalanceParams) (Wallet, error) {
	row := q.db.QueryRowContext(ctx, creditWalletBalance, arg.ID, arg.Amount)
	var i Wallet
	err := row.Scan(
		&i.ID,
		&i.CustomerID,
		&i.Currency,
		&i.Balance,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const debitWalletBalance = `-- name: DebitWalletBalance :one
UPDATE wallets
SET balance = balance - $2, updated_at = now()
WHERE id = $1 AND balance >= $2
RETURNING id, customer_id, currency, balance, created_at, updated_at
`

type DebitWalletBalanceParams struct {
	ID     uuid.UUID
	Amount int64
}

// DebitWalletBalance returns sql.ErrNoRows when the guard fails, i.e.
// the wallet no longer covers the amount. Callers hold the row lock, so
// a guard failure means the pre-checked balance was already spent.
func (q *Queries) DebitWalletBalance(ctx context.Context, arg DebitWalletBalanceParams) (Wallet, error) {
	row := q.db.QueryRowContext(ctx, debitWalletBalance, arg.ID, arg.Amount)
	var i Wallet
	err := row.Scan(
		&i.ID,
		&i.CustomerID,
		&i.Currency,
		&i.Balance,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const deleteWallet = `-- name: DeleteWallet :execrows
DELETE FROM wallets
WHERE id = $1
`

func (q *Queries) DeleteWallet(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteWallet, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
