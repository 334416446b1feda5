package service

import (
	"context"
	"fmt"

	"github.com/nikolayk812/stockcheckout/internal/domain"
	"github.com/nikolayk812/stockcheckout/internal/port"
)

type MethodService struct {
	methods port.MethodRepository
}

func NewMethodService(methods port.MethodRepository) *MethodService {
	return &MethodService{methods: methods}
}

// ForCheckout returns the methods a buyer can pick from.
func (s *MethodService) ForCheckout(ctx context.Context) ([]domain.ShipmentMethod, []domain.PaymentMethod, error) {
	return s.list(ctx, true)
}

// ForAdmin returns every method, active or not.
func (s *MethodService) ForAdmin(ctx context.Context) ([]domain.ShipmentMethod, []domain.PaymentMethod, error) {
	return s.list(ctx, false)
}

func (s *MethodService) list(ctx context.Context, onlyActive bool) ([]domain.ShipmentMethod, []domain.PaymentMethod, error) {
	shipments, err := s.methods.ListShipmentMethods(ctx, onlyActive)
	if err != nil {
		return nil, nil, fmt.Errorf("methods.ListShipmentMethods: %w", err)
	}

	payments, err := s.methods.ListPaymentMethods(ctx, onlyActive)
	if err != nil {
		return nil, nil, fmt.Errorf("methods.ListPaymentMethods: %w", err)
	}

	return shipments, payments, nil
}
