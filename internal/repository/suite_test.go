package repository_test

import (
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/stockcheckout/internal/domain"
	"github.com/nikolayk812/stockcheckout/internal/pgtest"
	"github.com/nikolayk812/stockcheckout/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"golang.org/x/text/currency"
)

var ars = currency.MustParseISO("ARS")

// pgSuite owns one migrated Postgres container per suite.
type pgSuite struct {
	suite.Suite

	pool      *pgxpool.Pool
	container testcontainers.Container
}

// before all tests in the suite
func (s *pgSuite) SetupSuite() {
	ctx := s.T().Context()

	var (
		connStr string
		err     error
	)

	s.container, connStr, err = pgtest.StartPostgres(ctx)
	s.Require().NoError(err)

	s.pool, err = pgxpool.New(ctx, connStr)
	s.Require().NoError(err)
}

// after all tests in the suite
func (s *pgSuite) TearDownSuite() {
	ctx := s.T().Context()

	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		s.NoError(s.container.Terminate(ctx))
	}
}

// deleteAll keeps the seeded methods and drops everything else.
func (s *pgSuite) deleteAll() {
	_, err := s.pool.Exec(s.T().Context(),
		"TRUNCATE TABLE order_items, orders, shipment_orders, order_drafts, cart_items, products CASCADE")
	s.NoError(err)
}

func (s *pgSuite) insertProducts(products ...domain.Product) []domain.Product {
	repo := repository.NewProduct(s.pool)

	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		id, err := repo.InsertProduct(s.T().Context(), p)
		s.Require().NoError(err)

		p.ID = id
		result = append(result, p)
	}

	return result
}

func fakeProduct() domain.Product {
	return domain.Product{
		Name: fmt.Sprintf("%s %s", gofakeit.ProductName(), gofakeit.LetterN(8)),
		Price: domain.Money{
			Amount:   decimal.NewFromFloat(gofakeit.Price(1, 1000)).Round(2),
			Currency: ars,
		},
		Discount:  gofakeit.Number(0, 50),
		Stock:     gofakeit.Number(10, 100),
		Available: true,
		ImageURL:  gofakeit.URL(),
	}
}

func fakeOrder(productIDs ...uuid.UUID) domain.Order {
	total := decimal.Zero

	items := make([]domain.OrderItem, 0, len(productIDs))
	for _, id := range productIDs {
		p := fakeProduct()
		p.ID = id

		item := domain.OrderItem{
			ProductID:     id,
			Quantity:      gofakeit.Number(1, 5),
			Discount:      p.Discount,
			OriginalPrice: p.Price,
			FinalPrice:    p.DiscountedPrice(),
		}
		total = total.Add(item.LineTotal().Amount)
		items = append(items, item)
	}

	return domain.Order{
		OwnerID:         gofakeit.UUID(),
		PaymentMethodID: domain.PaymentMethodCash,
		Shipment: domain.ShipmentOrder{
			MethodID:   domain.ShipmentMethodPickup,
			PickupName: gofakeit.Name(),
			PickupDNI:  gofakeit.DigitN(8),
		},
		Contact: domain.Contact{
			Name:        gofakeit.Name(),
			Email:       gofakeit.Email(),
			Cellphone:   gofakeit.Phone(),
			DNI:         gofakeit.DigitN(8),
			DetailOrder: gofakeit.Sentence(5),
		},
		ExpireAt:       gofakeit.FutureDate().UTC().Truncate(time.Microsecond),
		ShipmentCost:   domain.ZeroMoney(ars),
		DiscountCoupon: domain.ZeroMoney(ars),
		Total:          domain.Money{Amount: total, Currency: ars},
		Items:          items,
	}
}

var moneyComparer = cmp.Comparer(func(x, y domain.Money) bool {
	return x.Equal(y)
})

func assertOrder(t *testing.T, expected, actual domain.Order) {
	t.Helper()

	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.OrderItem{}, "CreatedAt"),
		cmpopts.IgnoreFields(domain.Order{}, "ID", "CreatedAt", "UpdatedAt", "Status", "ExpireAt"),
		cmpopts.IgnoreFields(domain.ShipmentOrder{}, "ID"),
		cmpopts.SortSlices(func(a, b domain.OrderItem) bool {
			return a.ProductID.String() < b.ProductID.String()
		}),
		cmpopts.EquateEmpty(),
		moneyComparer,
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)

	assert.True(t, expected.ExpireAt.Equal(actual.ExpireAt), "expire at %s != %s", expected.ExpireAt, actual.ExpireAt)
	assert.False(t, actual.CreatedAt.IsZero())
	assert.False(t, actual.UpdatedAt.IsZero())
	assert.NotEqual(t, uuid.Nil, actual.ID)
	assert.NotEqual(t, uuid.Nil, actual.Shipment.ID)
}

func assertOrders(t *testing.T, expected, actual []domain.Order) {
	t.Helper()

	sortOrders := func(orders []domain.Order) {
		sort.Slice(orders, func(i, j int) bool {
			return orders[i].OwnerID < orders[j].OwnerID
		})
	}

	sortOrders(expected)
	sortOrders(actual)

	require.Equal(t, len(expected), len(actual))

	for i := range expected {
		assertOrder(t, expected[i], actual[i])
	}
}

var decimalEqual = cmp.Comparer(func(x, y decimal.Decimal) bool {
	return x.Equal(y)
})
