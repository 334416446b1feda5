package repository_test

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/nikolayk812/stockcheckout/internal/domain"
	"github.com/nikolayk812/stockcheckout/internal/port"
	"github.com/nikolayk812/stockcheckout/internal/repository"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/text/currency"
)

type orderRepositorySuite struct {
	pgSuite

	repo       port.OrderRepository
	productIDs []uuid.UUID
}

// entry point to run the tests in the suite
func TestOrderRepositorySuite(t *testing.T) {
	suite.Run(t, new(orderRepositorySuite))
}

func (s *orderRepositorySuite) SetupSuite() {
	s.pgSuite.SetupSuite()
	s.repo = repository.NewOrder(s.pool)
}

// before each test
func (s *orderRepositorySuite) SetupTest() {
	products := s.insertProducts(fakeProduct(), fakeProduct(), fakeProduct())
	s.productIDs = lo.Map(products, func(p domain.Product, _ int) uuid.UUID {
		return p.ID
	})
}

// after each test
func (s *orderRepositorySuite) TearDownTest() {
	s.deleteAll()
}

func (s *orderRepositorySuite) TestInsertOrder() {
	tests := []struct {
		name        string
		orderFunc   func() domain.Order
		wantError   string
		wantErrorIs error
	}{
		{
			name: "valid order with all fields: ok",
			orderFunc: func() domain.Order {
				return fakeOrder(s.productIDs...)
			},
		},
		{
			name: "home delivery, no pickup fields: ok",
			orderFunc: func() domain.Order {
				o := fakeOrder(s.productIDs[0])
				o.Shipment = domain.ShipmentOrder{
					MethodID:   domain.ShipmentMethodLocal,
					Address:    gofakeit.Street(),
					Province:   gofakeit.State(),
					City:       gofakeit.City(),
					PostalCode: gofakeit.Zip(),
				}
				return o
			},
		},
		{
			name: "no items: fail",
			orderFunc: func() domain.Order {
				o := fakeOrder(s.productIDs...)
				o.Items = nil
				return o
			},
			wantError: "no items in order: validation failed",
		},
		{
			name: "empty owner: fail",
			orderFunc: func() domain.Order {
				o := fakeOrder(s.productIDs...)
				o.OwnerID = ""
				return o
			},
			wantError: "ownerID is empty: validation failed",
		},
		{
			name: "shipment cost in another currency: fail",
			orderFunc: func() domain.Order {
				o := fakeOrder(s.productIDs...)
				o.ShipmentCost = domain.ZeroMoney(currency.USD)
				return o
			},
			wantError: "currency mismatch USD != ARS: validation failed",
		},
		{
			name: "unknown shipment method: fail",
			orderFunc: func() domain.Order {
				o := fakeOrder(s.productIDs...)
				o.Shipment.MethodID = 99
				return o
			},
			wantErrorIs: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()
			ctx := t.Context()

			order := tt.orderFunc()

			inserted, err := s.repo.InsertOrder(ctx, order)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				require.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			if tt.wantErrorIs != nil {
				require.ErrorIs(t, err, tt.wantErrorIs)
				return
			}
			require.NoError(t, err)
			require.Equal(t, domain.OrderStatusPending, inserted.Status)

			actual, err := s.repo.GetOrder(ctx, inserted.ID)
			require.NoError(t, err)

			require.Equal(t, inserted.ID, actual.ID)
			require.Equal(t, inserted.Shipment.ID, actual.Shipment.ID)
			require.Equal(t, domain.OrderStatusPending, actual.Status)
			assertOrder(t, order, actual)
		})
	}
}

func (s *orderRepositorySuite) TestInsertOrderIsAtomic() {
	t := s.T()
	ctx := t.Context()

	// the second item references a missing product, nothing may be left behind
	order := fakeOrder(s.productIDs[0], uuid.New())

	_, err := s.repo.InsertOrder(ctx, order)
	require.ErrorIs(t, err, domain.ErrValidation)

	for _, table := range []string{"orders", "shipment_orders", "order_items"} {
		var n int
		require.NoError(t, s.pool.QueryRow(ctx, "SELECT count(*) FROM "+table).Scan(&n))
		require.Zero(t, n, table)
	}
}

func (s *orderRepositorySuite) TestGetOrder() {
	t := s.T()

	orderID := uuid.New()

	_, err := s.repo.GetOrder(t.Context(), orderID)
	require.EqualError(t, err, "withTx: order["+orderID.String()+"]: not found")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func (s *orderRepositorySuite) TestSearchOrders() {
	order1 := fakeOrder(s.productIDs[0], s.productIDs[1])
	order2 := fakeOrder(s.productIDs[2])
	inserted := s.insertOrders(order1, order2)

	tests := []struct {
		name       string
		filter     domain.OrderFilter
		wantOrders []domain.Order
		wantError  string
	}{
		{
			name:      "empty filter: error",
			filter:    domain.OrderFilter{},
			wantError: "filter.Validate: validation failed: all fields are empty",
		},
		{
			name: "search by ids: 1 found",
			filter: domain.OrderFilter{
				IDs: []uuid.UUID{inserted[0].ID},
			},
			wantOrders: []domain.Order{order1},
		},
		{
			name: "search by ids: 2 found",
			filter: domain.OrderFilter{
				IDs: []uuid.UUID{inserted[0].ID, inserted[1].ID},
			},
			wantOrders: []domain.Order{order1, order2},
		},
		{
			name: "search by ids: not found",
			filter: domain.OrderFilter{
				IDs: []uuid.UUID{uuid.New()},
			},
		},
		{
			name: "search by owner ids: 1 found",
			filter: domain.OrderFilter{
				OwnerIDs: []string{order2.OwnerID},
			},
			wantOrders: []domain.Order{order2},
		},
		{
			name: "search by owner ids: not found",
			filter: domain.OrderFilter{
				OwnerIDs: []string{"not found"},
			},
		},
		{
			name: "search by status pending: 2 found",
			filter: domain.OrderFilter{
				Statuses: []domain.OrderStatus{domain.OrderStatusPending},
			},
			wantOrders: []domain.Order{order1, order2},
		},
		{
			name: "search by status shipped: not found",
			filter: domain.OrderFilter{
				Statuses: []domain.OrderStatus{domain.OrderStatusShipped},
			},
		},
		{
			name: "search by invalid status: error",
			filter: domain.OrderFilter{
				Statuses: []domain.OrderStatus{"lost"},
			},
			wantError: "filter.Validate: validation failed: status[lost]: invalid order status",
		},
		{
			name: "search by createdAt after: 2 found",
			filter: domain.OrderFilter{
				CreatedAt: lo.ToPtr(domain.TimeRange{
					After: lo.ToPtr(time.Now().UTC().Add(-1 * time.Minute)),
				}),
			},
			wantOrders: []domain.Order{order1, order2},
		},
		{
			name: "search by createdAt before: not found",
			filter: domain.OrderFilter{
				CreatedAt: lo.ToPtr(domain.TimeRange{
					Before: lo.ToPtr(time.Now().UTC().Add(-1 * time.Minute)),
				}),
			},
		},
		{
			name: "search by updatedAt window and owner: 1 found",
			filter: domain.OrderFilter{
				OwnerIDs: []string{order1.OwnerID},
				UpdatedAt: lo.ToPtr(domain.TimeRange{
					Before: lo.ToPtr(time.Now().UTC().Add(1 * time.Minute)),
					After:  lo.ToPtr(time.Now().UTC().Add(-1 * time.Minute)),
				}),
			},
			wantOrders: []domain.Order{order1},
		},
		{
			name: "search by createdAt empty: error",
			filter: domain.OrderFilter{
				CreatedAt: lo.ToPtr(domain.TimeRange{}),
			},
			wantError: "filter.Validate: validation failed: createdAt: both Before and After are nil",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			orders, err := s.repo.SearchOrders(t.Context(), tt.filter)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			assertOrders(t, tt.wantOrders, orders)
		})
	}
}

func (s *orderRepositorySuite) TestListOrders() {
	t := s.T()
	ctx := t.Context()

	orders, err := s.repo.ListOrders(ctx)
	require.NoError(t, err)
	require.Empty(t, orders)

	order1 := fakeOrder(s.productIDs[0])
	order2 := fakeOrder(s.productIDs[1], s.productIDs[2])
	s.insertOrders(order1, order2)

	orders, err = s.repo.ListOrders(ctx)
	require.NoError(t, err)
	assertOrders(t, []domain.Order{order1, order2}, orders)
}

func (s *orderRepositorySuite) insertOrders(orders ...domain.Order) []domain.Order {
	result := make([]domain.Order, 0, len(orders))

	for _, order := range orders {
		inserted, err := s.repo.InsertOrder(s.T().Context(), order)
		s.Require().NoError(err)
		result = append(result, inserted)
	}

	return result
}
