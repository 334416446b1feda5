package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/stockcheckout/internal/domain"
)

type OrderRepository interface {
	GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)

	SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)

	// ListOrders returns every order, most recently updated first.
	ListOrders(ctx context.Context) ([]domain.Order, error)

	// InsertOrder stores the order with its shipment and items and returns it
	// with database generated ids and timestamps filled in.
	InsertOrder(ctx context.Context, order domain.Order) (domain.Order, error)
}
