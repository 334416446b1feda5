package port

import (
	"context"

	"github.com/nikolayk812/stockcheckout/internal/domain"
)

type MethodRepository interface {
	GetShipmentMethod(ctx context.Context, id int64) (domain.ShipmentMethod, error)
	GetPaymentMethod(ctx context.Context, id int64) (domain.PaymentMethod, error)

	ListShipmentMethods(ctx context.Context, onlyActive bool) ([]domain.ShipmentMethod, error)
	ListPaymentMethods(ctx context.Context, onlyActive bool) ([]domain.PaymentMethod, error)
}
