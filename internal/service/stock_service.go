package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nikolayk812/stockcheckout/internal/domain"
	"github.com/nikolayk812/stockcheckout/internal/metrics"
	"github.com/nikolayk812/stockcheckout/internal/port"
	"github.com/samber/lo"
)

// StockService returns reserved stock to sale.
type StockService struct {
	uow      port.UnitOfWork
	products port.ProductRepository
	metrics  *metrics.Checkout
	logger   *slog.Logger
}

func NewStockService(uow port.UnitOfWork, products port.ProductRepository, m *metrics.Checkout, logger *slog.Logger) *StockService {
	if logger == nil {
		logger = slog.Default()
	}

	return &StockService{
		uow:      uow,
		products: products,
		metrics:  m,
		logger:   logger,
	}
}

// ResetReserved moves the reserved stock of every product back to stock in one
// statement and reports how many products changed.
func (s *StockService) ResetReserved(ctx context.Context) (int64, error) {
	n, err := s.products.ResetReservedStock(ctx)
	if err != nil {
		return 0, fmt.Errorf("products.ResetReservedStock: %w", err)
	}

	s.metrics.ObserveStockReset(n)
	s.logger.Info("reserved stock reset", "products", n)

	return n, nil
}

// Release returns reserved units of specific products to stock, for example when
// a pending order is abandoned. It fails without changes if any product has fewer
// units reserved than requested.
func (s *StockService) Release(ctx context.Context, lines []domain.CartLine) error {
	if len(lines) == 0 {
		return nil
	}

	ids := lo.Uniq(lo.Map(lines, func(line domain.CartLine, _ int) uuid.UUID {
		return line.ProductID
	}))

	err := s.uow.Do(ctx, func(ctx context.Context, repos port.Repositories) error {
		locked, err := repos.Products.LockProducts(ctx, ids)
		if err != nil {
			return fmt.Errorf("repos.Products.LockProducts: %w", err)
		}

		byID := lo.KeyBy(locked, func(p domain.Product) uuid.UUID {
			return p.ID
		})

		for _, line := range lines {
			p, ok := byID[line.ProductID]
			if !ok {
				return fmt.Errorf("product[%s]: %w", line.ProductID, domain.ErrNotFound)
			}

			if err := p.Release(line.Quantity); err != nil {
				return fmt.Errorf("product[%s]: %w: %w", p.Name, domain.ErrValidation, err)
			}

			byID[line.ProductID] = p
		}

		modified := lo.Map(ids, func(id uuid.UUID, _ int) domain.Product {
			return byID[id]
		})

		if err := repos.Products.UpdateStock(ctx, modified); err != nil {
			return fmt.Errorf("repos.Products.UpdateStock: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("uow.Do: %w", err)
	}

	s.logger.Info("reserved stock released", "products", len(ids))

	return nil
}
