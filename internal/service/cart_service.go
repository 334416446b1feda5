package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/stockcheckout/internal/domain"
	"github.com/nikolayk812/stockcheckout/internal/port"
	"golang.org/x/text/currency"
)

// CartService owns the per-user cart rows and serves their snapshots.
// It is the CartSnapshotProvider used by checkout.
type CartService struct {
	products port.ProductRepository
	carts    port.CartRepository
	cache    port.SnapshotCache
	currency currency.Unit
	logger   *slog.Logger
	now      func() time.Time
}

var _ port.CartSnapshotProvider = (*CartService)(nil)

// NewCartService creates a CartService. cache may be nil.
func NewCartService(
	products port.ProductRepository,
	carts port.CartRepository,
	cache port.SnapshotCache,
	cur currency.Unit,
	logger *slog.Logger,
) *CartService {
	if logger == nil {
		logger = slog.Default()
	}

	return &CartService{
		products: products,
		carts:    carts,
		cache:    cache,
		currency: cur,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *CartService) CurrentSnapshot(ctx context.Context, ownerID string) (domain.CartSnapshot, error) {
	if s.cache != nil {
		snapshot, err := s.cache.Get(ctx, ownerID)
		if err == nil {
			return snapshot, nil
		}
		if !errors.Is(err, port.ErrCacheMiss) {
			s.logger.Warn("snapshot cache read failed", "owner_id", ownerID, "error", err)
		}
	}

	snapshot, err := s.readSnapshot(ctx, ownerID)
	if err != nil {
		return snapshot, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, ownerID, snapshot); err != nil {
			s.logger.Warn("snapshot cache write failed", "owner_id", ownerID, "error", err)
		}
	}

	return snapshot, nil
}

// LiveSnapshot builds the snapshot from the cart rows and never consults the cache.
// A cache entry written by a display read that raced a cart change is dropped on the way.
func (s *CartService) LiveSnapshot(ctx context.Context, ownerID string) (domain.CartSnapshot, error) {
	snapshot, err := s.readSnapshot(ctx, ownerID)
	if err != nil {
		return snapshot, err
	}

	s.Invalidate(ctx, ownerID)

	return snapshot, nil
}

func (s *CartService) readSnapshot(ctx context.Context, ownerID string) (domain.CartSnapshot, error) {
	items, err := s.carts.GetSnapshotItems(ctx, ownerID, s.currency)
	if err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("carts.GetSnapshotItems: %w", err)
	}

	return domain.NewCartSnapshot(s.currency, items, s.now().UTC()), nil
}

func (s *CartService) Clear(ctx context.Context, ownerID string, productIDs ...uuid.UUID) error {
	var err error
	if len(productIDs) == 0 {
		_, err = s.carts.ClearCart(ctx, ownerID)
	} else {
		_, err = s.carts.DeleteItems(ctx, ownerID, productIDs)
	}
	if err != nil {
		return fmt.Errorf("carts.Clear: %w", err)
	}

	s.Invalidate(ctx, ownerID)

	return nil
}

// AddItem puts quantity more units of a product in the cart. The product must
// be able to cover everything the cart would then hold.
func (s *CartService) AddItem(ctx context.Context, ownerID string, productID uuid.UUID, quantity int) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty: %w", domain.ErrValidation)
	}
	if quantity <= 0 {
		return fmt.Errorf("quantity[%d] must be positive: %w", quantity, domain.ErrValidation)
	}

	products, err := s.products.GetProducts(ctx, []uuid.UUID{productID})
	if err != nil {
		return fmt.Errorf("products.GetProducts: %w", err)
	}
	if len(products) == 0 {
		return fmt.Errorf("product[%s]: %w", productID, domain.ErrNotFound)
	}
	product := products[0]

	if product.Price.Currency != s.currency {
		return fmt.Errorf("product[%s] is priced in %s: %w", product.Name, product.Price.Currency, domain.ErrValidation)
	}

	cart, err := s.carts.GetCart(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("carts.GetCart: %w", err)
	}

	inCart := 0
	for _, item := range cart.Items {
		if item.ProductID == productID {
			inCart = item.Quantity
		}
	}

	wasAvailable := product.Available
	ok, stock := product.CheckAvailability(quantity + inCart)

	if wasAvailable && !product.Available {
		if _, err := s.products.MarkUnavailable(ctx, productID); err != nil {
			s.logger.Warn("mark product unavailable failed", "product_id", productID, "error", err)
		} else {
			s.logger.Info("product marked unavailable", "product_id", productID)
		}
	}

	if !ok {
		return fmt.Errorf("not enough stock of product[%s], %d in stock: %w", product.Name, stock, domain.ErrValidation)
	}

	if err := s.carts.AddItem(ctx, ownerID, productID, quantity); err != nil {
		return fmt.Errorf("carts.AddItem: %w", err)
	}

	s.Invalidate(ctx, ownerID)

	return nil
}

func (s *CartService) SubtractItem(ctx context.Context, ownerID string, productID uuid.UUID, quantity int) error {
	changed, err := s.carts.SubtractItem(ctx, ownerID, productID, quantity)
	if err != nil {
		return fmt.Errorf("carts.SubtractItem: %w", err)
	}

	// the row may have been removed by a product delete the cache never heard of
	s.Invalidate(ctx, ownerID)

	if !changed {
		return fmt.Errorf("product[%s] in cart: %w", productID, domain.ErrNotFound)
	}

	return nil
}

func (s *CartService) RemoveItem(ctx context.Context, ownerID string, productID uuid.UUID) error {
	deleted, err := s.carts.DeleteItem(ctx, ownerID, productID)
	if err != nil {
		return fmt.Errorf("carts.DeleteItem: %w", err)
	}

	s.Invalidate(ctx, ownerID)

	if !deleted {
		return fmt.Errorf("product[%s] in cart: %w", productID, domain.ErrNotFound)
	}

	return nil
}

// Invalidate drops the cached snapshot of the owner. Failures are only logged.
func (s *CartService) Invalidate(ctx context.Context, ownerID string) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Delete(ctx, ownerID); err != nil {
		s.logger.Warn("snapshot cache invalidation failed", "owner_id", ownerID, "error", err)
	}
}
