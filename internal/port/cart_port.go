package port

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nikolayk812/stockcheckout/internal/domain"
	"golang.org/x/text/currency"
)

var ErrCacheMiss = errors.New("cache miss")

type CartRepository interface {
	GetCart(ctx context.Context, ownerID string) (domain.Cart, error)

	// GetSnapshotItems joins cart rows with their products in the order they were added.
	// Products priced in another currency than cur fail with domain.ErrValidation.
	GetSnapshotItems(ctx context.Context, ownerID string, cur currency.Unit) ([]domain.CartSnapshotItem, error)

	AddItem(ctx context.Context, ownerID string, productID uuid.UUID, quantity int) error

	// SubtractItem lowers the quantity of a line and removes it when nothing is left.
	SubtractItem(ctx context.Context, ownerID string, productID uuid.UUID, quantity int) (bool, error)

	DeleteItem(ctx context.Context, ownerID string, productID uuid.UUID) (bool, error)

	DeleteItems(ctx context.Context, ownerID string, productIDs []uuid.UUID) (int64, error)

	ClearCart(ctx context.Context, ownerID string) (int64, error)
}

// CartSnapshotProvider is the read and clear contract checkout has on a cart.
type CartSnapshotProvider interface {
	// CurrentSnapshot may be served from a cache and is meant for display.
	CurrentSnapshot(ctx context.Context, ownerID string) (domain.CartSnapshot, error)

	// LiveSnapshot always reads the stored cart rows.
	LiveSnapshot(ctx context.Context, ownerID string) (domain.CartSnapshot, error)

	// Clear removes the given products from the cart, or the whole cart when none are given.
	Clear(ctx context.Context, ownerID string, productIDs ...uuid.UUID) error
}

// SnapshotCache stores computed cart snapshots. Get returns ErrCacheMiss when nothing is cached.
type SnapshotCache interface {
	Get(ctx context.Context, ownerID string) (domain.CartSnapshot, error)
	Set(ctx context.Context, ownerID string, snapshot domain.CartSnapshot) error
	Delete(ctx context.Context, ownerID string) error
}
