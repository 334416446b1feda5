package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/stockcheckout/internal/domain"
)

type ProductRepository interface {
	InsertProduct(ctx context.Context, product domain.Product) (uuid.UUID, error)

	GetProducts(ctx context.Context, productIDs []uuid.UUID) ([]domain.Product, error)

	// LockProducts reads the products and holds row locks on them until the
	// surrounding transaction ends. Missing ids are silently absent from the result.
	LockProducts(ctx context.Context, productIDs []uuid.UUID) ([]domain.Product, error)

	// UpdateStock persists Stock and StockReserved of all given products in one statement.
	UpdateStock(ctx context.Context, products []domain.Product) error

	MarkUnavailable(ctx context.Context, productID uuid.UUID) (bool, error)

	UpdatePrice(ctx context.Context, productID uuid.UUID, price domain.Money, discount int) error

	// ResetReservedStock returns all reserved units to stock and reports how many products changed.
	ResetReservedStock(ctx context.Context) (int64, error)

	DeleteProduct(ctx context.Context, productID uuid.UUID) error
}
