package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/stockcheckout/internal/domain"
	"github.com/nikolayk812/stockcheckout/internal/port"
)

// OrderService serves read access to placed orders.
type OrderService struct {
	orders port.OrderRepository
}

func NewOrderService(orders port.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

// UserOrders lists the orders of user, most recently updated first.
func (s *OrderService) UserOrders(ctx context.Context, user domain.User) ([]domain.Order, error) {
	if !user.IsAuthenticated() {
		return nil, fmt.Errorf("user orders: %w", domain.ErrUnauthenticated)
	}

	orders, err := s.orders.SearchOrders(ctx, domain.OrderFilter{OwnerIDs: []string{user.ID}})
	if err != nil {
		return nil, fmt.Errorf("orders.SearchOrders: %w", err)
	}

	return orders, nil
}

// AdminOrders searches all orders, an empty filter lists every one of them.
func (s *OrderService) AdminOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	if filter.IsEmpty() {
		orders, err := s.orders.ListOrders(ctx)
		if err != nil {
			return nil, fmt.Errorf("orders.ListOrders: %w", err)
		}
		return orders, nil
	}

	orders, err := s.orders.SearchOrders(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("orders.SearchOrders: %w", err)
	}

	return orders, nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.GetOrder: %w", err)
	}

	return order, nil
}
