package order

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

const testCustomerID = int64(7)

func newTestService(t *testing.T) (*OrderService, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	refs, err := utils.NewReferenceGenerator("test-salt")
	require.NoError(t, err)

	return NewOrderService(db.NewStore(conn), logging.NewLogger(&utils.Config{}), refs), mock
}

type placementFixture struct {
	cartID    uuid.UUID
	walletID  uuid.UUID
	productID uuid.UUID
}

func newPlacementFixture() placementFixture {
	return placementFixture{
		cartID:    uuid.New(),
		walletID:  uuid.New(),
		productID: uuid.New(),
	}
}

// expectValidationPhase mocks the reads shared by every placement
// scenario: cart, cart items, locked wallet, locked product.
func (f placementFixture) expectValidationPhase(mock sqlmock.Sqlmock, walletOwner int64, walletCurrency string, balance int64, productCurrency string, price int64, stock, quantity int32) {
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM carts WHERE customer_id = $1")).
		WithArgs(testCustomerID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "created_at", "updated_at"}).
			AddRow(f.cartID.String(), testCustomerID, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM cart_items WHERE cart_id = $1 ORDER BY product_id")).
		WithArgs(f.cartID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "cart_id", "product_id", "quantity", "created_at", "updated_at"}).
			AddRow(int64(1), f.cartID.String(), f.productID.String(), quantity, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM wallets WHERE id = $1 FOR UPDATE")).
		WithArgs(f.walletID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "currency", "balance", "created_at", "updated_at"}).
			AddRow(f.walletID.String(), walletOwner, walletCurrency, balance, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = $1 FOR UPDATE")).
		WithArgs(f.productID).
		WillReturnRows(productRow(f.productID, "mechanical-keyboard", price, productCurrency, stock))
}

func productRow(id uuid.UUID, slug string, price int64, currencyCode string, stock int32) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "slug", "name", "description", "price", "currency", "stock", "created_at", "updated_at"}).
		AddRow(id.String(), slug, "Mechanical Keyboard", nil, price, currencyCode, stock, now, now)
}

// A wallet holding 10000 buys 2 units priced 3000 from a stock of 5:
// the order totals 6000, the wallet ends at 4000, the stock at 3, and
// the order is confirmed with the cart cleared.
func TestCreateOrderFromCart(t *testing.T) {
	svc, mock := newTestService(t)
	f := newPlacementFixture()
	orderID := uuid.New()
	now := time.Now()

	f.expectValidationPhase(mock, testCustomerID, "USD", 10000, "USD", 3000, 5, 2)

	mock.ExpectQuery(regexp.QuoteMeta("SET stock = stock - $2")).
		WithArgs(f.productID, int32(2)).
		WillReturnRows(productRow(f.productID, "mechanical-keyboard", 3000, "USD", 3))
	mock.ExpectQuery(regexp.QuoteMeta("SET balance = balance - $2")).
		WithArgs(f.walletID, int64(6000)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "currency", "balance", "created_at", "updated_at"}).
			AddRow(f.walletID.String(), testCustomerID, "USD", int64(4000), now, now))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO orders")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "reference", "customer_id", "wallet_id", "status", "total", "currency", "created_at", "updated_at"}).
			AddRow(orderID.String(), "SK-TESTREF", testCustomerID, f.walletID.String(), string(StatusConfirmed), int64(6000), "USD", now, now))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO order_items")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "product_id", "quantity", "unit_price", "currency", "created_at"}).
			AddRow(int64(1), orderID.String(), f.productID.String(), int32(2), int64(3000), "USD", now))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO wallet_transactions")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "type", "amount", "currency", "from_wallet_id", "to_wallet_id", "description", "metadata", "created_at"}).
			AddRow(uuid.New().String(), "order_payment", int64(6000), "USD", f.walletID.String(), nil, nil, nil, now))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cart_items WHERE cart_id = $1")).
		WithArgs(f.cartID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	placed, err := svc.CreateOrderFromCart(context.Background(), testCustomerID, f.walletID)
	require.NoError(t, err)
	require.Equal(t, StatusConfirmed, placed.Status)
	require.Equal(t, int64(6000), placed.Total)
	require.Equal(t, "USD", placed.Currency)
	require.Len(t, placed.Items, 1)
	require.Equal(t, int64(3000), placed.Items[0].UnitPrice)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderFromCartInsufficientStock(t *testing.T) {
	svc, mock := newTestService(t)
	f := newPlacementFixture()

	f.expectValidationPhase(mock, testCustomerID, "USD", 10000, "USD", 3000, 1, 2)
	mock.ExpectRollback()

	_, err := svc.CreateOrderFromCart(context.Background(), testCustomerID, f.walletID)
	se, ok := servicerror.AsServiceError(err)
	require.True(t, ok)
	require.Equal(t, servicerror.KindInsufficientStock, se.Kind)
	require.Equal(t, "mechanical-keyboard", se.Resource)
	require.Equal(t, int64(2), se.Required)
	require.Equal(t, int64(1), se.Available)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderFromCartInsufficientBalance(t *testing.T) {
	svc, mock := newTestService(t)
	f := newPlacementFixture()

	f.expectValidationPhase(mock, testCustomerID, "USD", 5000, "USD", 3000, 5, 2)
	mock.ExpectRollback()

	_, err := svc.CreateOrderFromCart(context.Background(), testCustomerID, f.walletID)
	se, ok := servicerror.AsServiceError(err)
	require.True(t, ok)
	require.Equal(t, servicerror.KindInsufficientBalance, se.Kind)
	require.Equal(t, int64(6000), se.Required)
	require.Equal(t, int64(5000), se.Available)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderFromCartCurrencyMismatch(t *testing.T) {
	svc, mock := newTestService(t)
	f := newPlacementFixture()

	f.expectValidationPhase(mock, testCustomerID, "EUR", 10000, "USD", 3000, 5, 2)
	mock.ExpectRollback()

	_, err := svc.CreateOrderFromCart(context.Background(), testCustomerID, f.walletID)
	require.Equal(t, servicerror.KindInvalidState, servicerror.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderFromCartWrongWalletOwner(t *testing.T) {
	svc, mock := newTestService(t)
	f := newPlacementFixture()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM carts WHERE customer_id = $1")).
		WithArgs(testCustomerID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "created_at", "updated_at"}).
			AddRow(f.cartID.String(), testCustomerID, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM cart_items WHERE cart_id = $1 ORDER BY product_id")).
		WithArgs(f.cartID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "cart_id", "product_id", "quantity", "created_at", "updated_at"}).
			AddRow(int64(1), f.cartID.String(), f.productID.String(), int32(1), now, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM wallets WHERE id = $1 FOR UPDATE")).
		WithArgs(f.walletID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "currency", "balance", "created_at", "updated_at"}).
			AddRow(f.walletID.String(), int64(99), "USD", int64(10000), now, now))
	mock.ExpectRollback()

	_, err := svc.CreateOrderFromCart(context.Background(), testCustomerID, f.walletID)
	require.Equal(t, servicerror.KindForbidden, servicerror.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

// A second checkout straight after a successful one finds the cart
// emptied and must be rejected before any locks are taken.
func TestCreateOrderFromCartEmptyCart(t *testing.T) {
	svc, mock := newTestService(t)
	f := newPlacementFixture()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM carts WHERE customer_id = $1")).
		WithArgs(testCustomerID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "created_at", "updated_at"}).
			AddRow(f.cartID.String(), testCustomerID, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM cart_items WHERE cart_id = $1 ORDER BY product_id")).
		WithArgs(f.cartID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "cart_id", "product_id", "quantity", "created_at", "updated_at"}))
	mock.ExpectRollback()

	_, err := svc.CreateOrderFromCart(context.Background(), testCustomerID, f.walletID)
	require.Equal(t, servicerror.KindInvalidState, servicerror.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderFromCartNoCart(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM carts WHERE customer_id = $1")).
		WithArgs(testCustomerID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "created_at", "updated_at"}))
	mock.ExpectRollback()

	_, err := svc.CreateOrderFromCart(context.Background(), testCustomerID, uuid.New())
	require.Equal(t, servicerror.KindInvalidState, servicerror.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func orderRow(id uuid.UUID, status Status) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "reference", "customer_id", "wallet_id", "status", "total", "currency", "created_at", "updated_at"}).
		AddRow(id.String(), "SK-TESTREF", testCustomerID, uuid.New().String(), string(status), int64(6000), "USD", now, now)
}

func TestUpdateOrderStatus(t *testing.T) {
	svc, mock := newTestService(t)
	orderID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM orders WHERE id = $1 FOR UPDATE")).
		WithArgs(orderID).
		WillReturnRows(orderRow(orderID, StatusConfirmed))
	mock.ExpectQuery(regexp.QuoteMeta("SET status = $2")).
		WithArgs(orderID, string(StatusProcessing)).
		WillReturnRows(orderRow(orderID, StatusProcessing))
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta("FROM order_items WHERE order_id = $1")).
		WithArgs(orderID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "product_id", "quantity", "unit_price", "currency", "created_at"}))

	updated, err := svc.UpdateOrderStatus(context.Background(), orderID, StatusProcessing)
	require.NoError(t, err)
	require.Equal(t, StatusProcessing, updated.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrderStatusInvalidTransition(t *testing.T) {
	svc, mock := newTestService(t)
	orderID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM orders WHERE id = $1 FOR UPDATE")).
		WithArgs(orderID).
		WillReturnRows(orderRow(orderID, StatusDelivered))
	mock.ExpectRollback()

	_, err := svc.UpdateOrderStatus(context.Background(), orderID, StatusPending)
	require.Equal(t, servicerror.KindInvalidState, servicerror.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrderStatusUnknownStatus(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UpdateOrderStatus(context.Background(), uuid.New(), Status("MISPLACED"))
	require.Equal(t, servicerror.KindInvalidArgument, servicerror.KindOf(err))
}

func TestGetOrderOwnership(t *testing.T) {
	svc, mock := newTestService(t)
	orderID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM orders WHERE id = $1")).
		WithArgs(orderID).
		WillReturnRows(orderRow(orderID, StatusConfirmed))

	_, err := svc.GetOrder(context.Background(), 99, orderID)
	require.Equal(t, servicerror.KindForbidden, servicerror.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
