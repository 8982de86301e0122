package cart

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	db "github.com/SwiftKart/SwiftKart-Backend/db/sqlc"
	"github.com/SwiftKart/SwiftKart-Backend/services/monitoring/logging"
	"github.com/SwiftKart/SwiftKart-Backend/services/servicerror"
	"github.com/SwiftKart/SwiftKart-Backend/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*CartService, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return NewCartService(db.NewStore(conn), logging.NewLogger(&utils.Config{})), mock
}

func productRow(id uuid.UUID, slug string, price int64, currencyCode string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "slug", "name", "description", "price", "currency", "stock", "created_at", "updated_at"}).
		AddRow(id.String(), slug, "Test Product", nil, price, currencyCode, int32(10), now, now)
}

func cartRow(id uuid.UUID, customerID int64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "customer_id", "created_at", "updated_at"}).
		AddRow(id.String(), customerID, now, now)
}

func itemsWithProductsColumns() []string {
	return []string{"id", "cart_id", "product_id", "quantity", "slug", "name", "price", "currency", "stock"}
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddItem(context.Background(), 7, uuid.New(), 0)
	require.Equal(t, servicerror.KindInvalidArgument, servicerror.KindOf(err))
}

func TestAddItemMissingProduct(t *testing.T) {
	svc, mock := newTestService(t)
	productID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = $1")).
		WithArgs(productID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "name", "description", "price", "currency", "stock", "created_at", "updated_at"}))
	mock.ExpectRollback()

	_, err := svc.AddItem(context.Background(), 7, productID, 1)
	require.Equal(t, servicerror.KindNotFound, servicerror.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddItemCurrencyMismatch(t *testing.T) {
	svc, mock := newTestService(t)
	cartID := uuid.New()
	productID := uuid.New()
	existingID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = $1")).
		WithArgs(productID).
		WillReturnRows(productRow(productID, "euro-item", 500, "EUR"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM carts WHERE customer_id = $1")).
		WithArgs(int64(7)).
		WillReturnRows(cartRow(cartID, 7))
	mock.ExpectQuery(regexp.QuoteMeta("JOIN products p ON p.id = ci.product_id")).
		WithArgs(cartID).
		WillReturnRows(sqlmock.NewRows(itemsWithProductsColumns()).
			AddRow(int64(1), cartID.String(), existingID.String(), int32(2), "dollar-item", "Dollar Item", int64(300), "USD", int32(5)))
	mock.ExpectRollback()

	_, err := svc.AddItem(context.Background(), 7, productID, 1)
	require.Equal(t, servicerror.KindInvalidState, servicerror.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

// The first add creates the customer's cart on the fly.
func TestAddItemCreatesCartLazily(t *testing.T) {
	svc, mock := newTestService(t)
	cartID := uuid.New()
	productID := uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = $1")).
		WithArgs(productID).
		WillReturnRows(productRow(productID, "widget", 250, "USD"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM carts WHERE customer_id = $1")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "created_at", "updated_at"}))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO carts")).
		WillReturnRows(cartRow(cartID, 7))
	mock.ExpectQuery(regexp.QuoteMeta("JOIN products p ON p.id = ci.product_id")).
		WithArgs(cartID).
		WillReturnRows(sqlmock.NewRows(itemsWithProductsColumns()))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO cart_items")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "cart_id", "product_id", "quantity", "created_at", "updated_at"}).
			AddRow(int64(1), cartID.String(), productID.String(), int32(3), now, now))
	mock.ExpectQuery(regexp.QuoteMeta("JOIN products p ON p.id = ci.product_id")).
		WithArgs(cartID).
		WillReturnRows(sqlmock.NewRows(itemsWithProductsColumns()).
			AddRow(int64(1), cartID.String(), productID.String(), int32(3), "widget", "Test Product", int64(250), "USD", int32(10)))
	mock.ExpectCommit()

	model, err := svc.AddItem(context.Background(), 7, productID, 3)
	require.NoError(t, err)
	require.Len(t, model.Items, 1)
	require.Equal(t, int32(3), model.Items[0].Quantity)
	require.Equal(t, int64(750), model.Subtotal)
	require.Equal(t, "USD", model.Currency)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveItemNotInCart(t *testing.T) {
	svc, mock := newTestService(t)
	cartID := uuid.New()
	productID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM carts WHERE customer_id = $1")).
		WithArgs(int64(7)).
		WillReturnRows(cartRow(cartID, 7))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2")).
		WithArgs(cartID, productID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := svc.RemoveItem(context.Background(), 7, productID)
	require.Equal(t, servicerror.KindNotFound, servicerror.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

// A customer who never added an item still gets an empty cart view.
func TestGetCartWithoutCartRow(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM carts WHERE customer_id = $1")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "created_at", "updated_at"}))

	model, err := svc.GetCart(context.Background(), 7)
	require.NoError(t, err)
	require.Empty(t, model.Items)
	require.Equal(t, int64(0), model.Subtotal)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClearCartWithoutCartRow(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM carts WHERE customer_id = $1")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "created_at", "updated_at"}))

	err := svc.ClearCart(context.Background(), 7)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
