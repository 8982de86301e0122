package catalog

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
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*CatalogService, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	store := db.NewStore(conn)
	logger := logging.NewLogger(&utils.Config{})
	return NewCatalogService(store, logger), mock
}

var productColumns = []string{"id", "slug", "name", "description", "price", "currency", "stock", "created_at", "updated_at"}

func productRow(id uuid.UUID, slug, name string, price int64, currencyCode string, stock int32) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(productColumns).
		AddRow(id.String(), slug, name, nil, price, currencyCode, stock, now, now)
}

func TestCreateProductRejectsBadInput(t *testing.T) {
	svc, _ := newTestService(t)

	cases := []CreateProductInput{
		{Slug: "", Name: "Keyboard", Price: 100, Currency: "USD", Stock: 1},
		{Slug: "keyboard", Name: "", Price: 100, Currency: "USD", Stock: 1},
		{Slug: "keyboard", Name: "Keyboard", Price: -1, Currency: "USD", Stock: 1},
		{Slug: "keyboard", Name: "Keyboard", Price: 100, Currency: "USD", Stock: -1},
		{Slug: "keyboard", Name: "Keyboard", Price: 100, Currency: "usd", Stock: 1},
	}
	for _, input := range cases {
		_, err := svc.CreateProduct(context.Background(), input)
		require.Equal(t, servicerror.KindInvalidArgument, servicerror.KindOf(err))
	}
}

func TestCreateProduct(t *testing.T) {
	svc, mock := newTestService(t)
	productID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO products")).
		WillReturnRows(productRow(productID, "mechanical-keyboard", "Mechanical Keyboard", 3000, "USD", 5))

	product, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Slug:     "mechanical-keyboard",
		Name:     "Mechanical Keyboard",
		Price:    3000,
		Currency: "USD",
		Stock:    5,
	})
	require.NoError(t, err)
	require.Equal(t, "mechanical-keyboard", product.Slug)
	require.Equal(t, int64(3000), product.Price)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProductDuplicateSlug(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO products")).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Slug:     "mechanical-keyboard",
		Name:     "Mechanical Keyboard",
		Price:    3000,
		Currency: "USD",
		Stock:    5,
	})
	require.Equal(t, servicerror.KindDuplicate, servicerror.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProductMissing(t *testing.T) {
	svc, mock := newTestService(t)
	productID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = $1")).
		WithArgs(productID).
		WillReturnRows(sqlmock.NewRows(productColumns))

	_, err := svc.GetProduct(context.Background(), productID)
	require.Equal(t, servicerror.KindNotFound, servicerror.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProductBySlug(t *testing.T) {
	svc, mock := newTestService(t)
	productID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE slug = $1")).
		WithArgs("mechanical-keyboard").
		WillReturnRows(productRow(productID, "mechanical-keyboard", "Mechanical Keyboard", 3000, "USD", 5))

	product, err := svc.GetProductBySlug(context.Background(), "mechanical-keyboard")
	require.NoError(t, err)
	require.Equal(t, productID, product.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListProductsClampsPaging(t *testing.T) {
	svc, mock := newTestService(t)

	// Out-of-range limit and offset fall back to the defaults
	mock.ExpectQuery(regexp.QuoteMeta("FROM products ORDER BY slug LIMIT $1 OFFSET $2")).
		WithArgs(int32(20), int32(0)).
		WillReturnRows(sqlmock.NewRows(productColumns))

	products, err := svc.ListProducts(context.Background(), 500, -3)
	require.NoError(t, err)
	require.Empty(t, products)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRestock(t *testing.T) {
	svc, mock := newTestService(t)
	productID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = $1 FOR UPDATE")).
		WithArgs(productID).
		WillReturnRows(productRow(productID, "mechanical-keyboard", "Mechanical Keyboard", 3000, "USD", 2))
	mock.ExpectQuery(regexp.QuoteMeta("SET stock = stock + $2")).
		WithArgs(productID, int32(10)).
		WillReturnRows(productRow(productID, "mechanical-keyboard", "Mechanical Keyboard", 3000, "USD", 12))
	mock.ExpectCommit()

	product, err := svc.Restock(context.Background(), productID, 10)
	require.NoError(t, err)
	require.Equal(t, int32(12), product.Stock)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRestockRejectsNonPositiveQuantity(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Restock(context.Background(), uuid.New(), 0)
	require.Equal(t, servicerror.KindInvalidArgument, servicerror.KindOf(err))
}

func TestRestockMissingProduct(t *testing.T) {
	svc, mock := newTestService(t)
	productID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = $1 FOR UPDATE")).
		WithArgs(productID).
		WillReturnRows(sqlmock.NewRows(productColumns))
	mock.ExpectRollback()

	_, err := svc.Restock(context.Background(), productID, 5)
	require.Equal(t, servicerror.KindNotFound, servicerror.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteProductReferencedByOrders(t *testing.T) {
	svc, mock := newTestService(t)
	productID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = $1")).
		WithArgs(productID).
		WillReturnRows(productRow(productID, "mechanical-keyboard", "Mechanical Keyboard", 3000, "USD", 5))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products")).
		WithArgs(productID).
		WillReturnError(&pq.Error{Code: "23503"})

	err := svc.DeleteProduct(context.Background(), productID)
	require.Equal(t, servicerror.KindConflict, servicerror.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
