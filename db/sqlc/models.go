package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

type User struct {
	ID        int64
	Email     string
	Tag       sql.NullString
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Wallet balances are stored as integers in the currency's smallest
// unit. The balance column carries a CHECK (balance >= 0) constraint
// as a last line of defence behind the service-level guards.
type Wallet struct {
	ID         uuid.UUID
	CustomerID int64
	Currency   string
	Balance    int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type WalletTransaction struct {
	ID           uuid.UUID
	Type         string
	Amount       int64
	Currency     string
	FromWalletID uuid.NullUUID
	ToWalletID   uuid.NullUUID
	Description  sql.NullString
	Metadata     pqtype.NullRawMessage
	CreatedAt    time.Time
}

type Product struct {
	ID          uuid.UUID
	Slug        string
	Name        string
	Description sql.NullString
	Price       int64
	Currency    string
	Stock       int32
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Cart struct {
	ID         uuid.UUID
	CustomerID int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type CartItem struct {
	ID        int64
	CartID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int32
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Order struct {
	ID         uuid.UUID
	Reference  string
	CustomerID int64
	WalletID   uuid.UUID
	Status     string
	Total      int64
	Currency   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OrderItem rows are written once at placement time and never updated;
// unit_price freezes the product price at the instant of purchase.
type OrderItem struct {
	ID        int64
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Quantity  int32
	UnitPrice int64
	Currency  string
	CreatedAt time.Time
}
