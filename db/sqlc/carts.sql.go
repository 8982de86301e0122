package db

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const createCart = `-- name: CreateCart :one
INSERT INTO carts (id, customer_id)
VALUES ($1, $2)
RETURNING id, customer_id, created_at, updated_at
`

type CreateCartParams struct {
	ID         uuid.UUID
	CustomerID int64
}

func (q *Queries) CreateCart(ctx context.Context, arg CreateCartParams) (Cart, error) {
	row := q.db.QueryRowContext(ctx, createCart, arg.ID, arg.CustomerID)
	var i Cart
	err := row.Scan(
		&i.ID,
		&i.CustomerID,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getCartByCustomerID = `-- name: GetCartByCustomerID :one
SELECT id, customer_id, created_at, updated_at
FROM carts
WHERE customer_id = $1
`

func (q *Queries) GetCartByCustomerID(ctx context.Context, customerID int64) (Cart, error) {
	row := q.db.QueryRowContext(ctx, getCartByCustomerID, customerID)
	var i Cart
	err := row.Scan(
		&i.ID,
		&i.CustomerID,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listCartItems = `-- name: ListCartItems :many
SELECT id, cart_id, product_id, quantity, created_at, updated_at
FROM cart_items
WHERE cart_id = $1
ORDER BY product_id
`

// ListCartItems returns items in ascending product-id order; order
// placement relies on this to lock product rows deterministically.
func (q *Queries) ListCartItems(ctx context.Context, cartID uuid.UUID) ([]CartItem, error) {
	rows, err := q.db.QueryContext(ctx, listCartItems, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CartItem
	for rows.Next() {
		var i CartItem
		if err := rows.Scan(
			&i.ID,
			&i.CartID,
			&i.ProductID,
			&i.Quantity,
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

const upsertCartItem = `-- name: UpsertCartItem :one
INSERT INTO cart_items (cart_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (cart_id, product_id)
DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = now()
RETURNING id, cart_id, product_id, quantity, created_at, updated_at
`

type UpsertCartItemParams struct {
	CartID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int32
}

func (q *Queries) UpsertCartItem(ctx context.Context, arg UpsertCartItemParams) (CartItem, error) {
	row := q.db.QueryRowContext(ctx, upsertCartItem, arg.CartID, arg.ProductID, arg.Quantity)
	var i CartItem
	err := row.Scan(
		&i.ID,
		&i.CartID,
		&i.ProductID,
		&i.Quantity,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updateCartItemQuantity = `-- name: UpdateCartItemQuantity :one
UPDATE cart_items
SET quantity = $3, updated_at = now()
WHERE cart_id = $1 AND product_id = $2
RETURNING id, cart_id, product_id, quantity, created_at, updated_at
`

type UpdateCartItemQuantityParams struct {
	CartID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int32
}

func (q *Queries) UpdateCartItemQuantity(ctx context.Context, arg UpdateCartItemQuantityParams) (CartItem, error) {
	row := q.db.QueryRowContext(ctx, updateCartItemQuantity, arg.CartID, arg.ProductID, arg.Quantity)
	var i CartItem
	err := row.Scan(
		&i.ID,
		&i.CartID,
		&i.ProductID,
		&i.Quantity,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const deleteCartItem = `-- name: DeleteCartItem :execrows
DELETE FROM cart_items
WHERE cart_id = $1 AND product_id = $2
`

type DeleteCartItemParams struct {
	CartID    uuid.UUID
	ProductID uuid.UUID
}

func (q *Queries) DeleteCartItem(ctx context.Context, arg DeleteCartItemParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteCartItem, arg.CartID, arg.ProductID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const clearCart = `-- name: ClearCart :exec
DELETE FROM cart_items
WHERE cart_id = $1
`

func (q *Queries) ClearCart(ctx context.Context, cartID uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, clearCart, cartID)
	return err
}

const pruneStaleCartItems = `-- name: PruneStaleCartItems :execrows
DELETE FROM cart_items
WHERE updated_at < $1
`

// PruneStaleCartItems drops cart lines that have not been touched since
// the cutoff. Run by the background scheduler, never by request code.
func (q *Queries) PruneStaleCartItems(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := q.db.ExecContext(ctx, pruneStaleCartItems, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listCartItemsWithProducts = `-- name: ListCartItemsWithProducts :many
SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity,
       p.slug, p.name, p.price, p.currency, p.stock
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.cart_id = $1
ORDER BY ci.product_id
`

type ListCartItemsWithProductsRow struct {
	ID        int64
	CartID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int32
	Slug      string
	Name      string
	Price     int64
	Currency  string
	Stock     int32
}

func (q *Queries) ListCartItemsWithProducts(ctx context.Context, cartID uuid.UUID) ([]ListCartItemsWithProductsRow, error) {
	rows, err := q.db.QueryContext(ctx, listCartItemsWithProducts, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListCartItemsWithProductsRow
	for rows.Next() {
		var i ListCartItemsWithProductsRow
		if err := rows.Scan(
			&i.ID,
			&i.CartID,
			&i.ProductID,
			&i.Quantity,
			&i.Slug,
			&i.Name,
			&i.Price,
			&i.Currency,
			&i.Stock,
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
