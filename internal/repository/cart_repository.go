package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/stockcheckout/internal/db"
	"github.com/nikolayk812/stockcheckout/internal/domain"
	"github.com/nikolayk812/stockcheckout/internal/port"
	"github.com/samber/lo"
	"golang.org/x/text/currency"
)

type cartRepository struct {
	q    *db.Queries
	dbtx db.DBTX
}

func NewCart(pool *pgxpool.Pool) port.CartRepository {
	return &cartRepository{
		q:    db.New(pool),
		dbtx: pool,
	}
}

func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return &cartRepository{
		q:    db.New(tx),
		dbtx: tx,
	}
}

func (r *cartRepository) GetCart(ctx context.Context, ownerID string) (domain.Cart, error) {
	var c domain.Cart

	dbCartItems, err := r.q.GetCart(ctx, ownerID)
	if err != nil {
		return c, fmt.Errorf("q.GetCart: %w", err)
	}

	items := lo.Map(dbCartItems, func(row db.GetCartRow, _ int) domain.CartItem {
		return domain.CartItem{
			ProductID: row.ProductID,
			Quantity:  int(row.Quantity),
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		}
	})

	return domain.Cart{
		OwnerID: ownerID,
		Items:   items,
	}, nil
}

func (r *cartRepository) GetSnapshotItems(ctx context.Context, ownerID string, cur currency.Unit) ([]domain.CartSnapshotItem, error) {
	rows, err := r.q.GetCartSnapshotRows(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("q.GetCartSnapshotRows: %w", err)
	}

	items := make([]domain.CartSnapshotItem, 0, len(rows))

	for _, row := range rows {
		price, err := toMoney(row.PriceAmount, row.PriceCurrency)
		if err != nil {
			return nil, fmt.Errorf("toMoney: %w", err)
		}

		if price.Currency != cur {
			return nil, fmt.Errorf("product[%s] is priced in %s, cart currency is %s: %w",
				row.ProductID, price.Currency, cur, domain.ErrValidation)
		}

		items = append(items, domain.CartSnapshotItem{
			ProductID: row.ProductID,
			Name:      row.Name,
			Price:     row.PriceAmount,
			Discount:  int(row.Discount),
			Quantity:  int(row.Quantity),
			Stock:     int(row.Stock),
			Image:     lo.FromPtr(row.ImageUrl),
		})
	}

	return items, nil
}

func (r *cartRepository) AddItem(ctx context.Context, ownerID string, productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity[%d] must be positive: %w", quantity, domain.ErrValidation)
	}

	arg := db.AddItemParams{
		OwnerID:   ownerID,
		ProductID: productID,
		Quantity:  int32(quantity),
	}

	if err := r.q.AddItem(ctx, arg); err != nil {
		return fmt.Errorf("q.AddItem: %w", mapPgError(err))
	}

	return nil
}

func (r *cartRepository) SubtractItem(ctx context.Context, ownerID string, productID uuid.UUID, quantity int) (bool, error) {
	if quantity <= 0 {
		return false, fmt.Errorf("quantity[%d] must be positive: %w", quantity, domain.ErrValidation)
	}

	changed, err := withTx(ctx, r.dbtx, func(q *db.Queries) (bool, error) {
		rowsAffected, err := q.DecrementItem(ctx, db.DecrementItemParams{
			Quantity:  int32(quantity),
			OwnerID:   ownerID,
			ProductID: productID,
		})
		if err != nil {
			return false, fmt.Errorf("q.DecrementItem: %w", err)
		}

		if rowsAffected > 0 {
			return true, nil
		}

		// nothing would be left, drop the line
		rowsAffected, err = q.DeleteItemUpTo(ctx, db.DeleteItemUpToParams{
			OwnerID:   ownerID,
			ProductID: productID,
			Quantity:  int32(quantity),
		})
		if err != nil {
			return false, fmt.Errorf("q.DeleteItemUpTo: %w", err)
		}

		return rowsAffected > 0, nil
	})
	if err != nil {
		return false, fmt.Errorf("withTx: %w", err)
	}

	return changed, nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, ownerID string, productID uuid.UUID) (bool, error) {
	arg := db.DeleteItemParams{
		OwnerID:   ownerID,
		ProductID: productID,
	}

	rowsAffected, err := r.q.DeleteItem(ctx, arg)
	if err != nil {
		return false, fmt.Errorf("q.DeleteItem: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *cartRepository) DeleteItems(ctx context.Context, ownerID string, productIDs []uuid.UUID) (int64, error) {
	if len(productIDs) == 0 {
		return 0, nil
	}

	rowsAffected, err := r.q.DeleteItems(ctx, db.DeleteItemsParams{
		OwnerID:    ownerID,
		ProductIds: productIDs,
	})
	if err != nil {
		return 0, fmt.Errorf("q.DeleteItems: %w", err)
	}

	return rowsAffected, nil
}

func (r *cartRepository) ClearCart(ctx context.Context, ownerID string) (int64, error) {
	rowsAffected, err := r.q.ClearCart(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("q.ClearCart: %w", err)
	}

	return rowsAffected, nil
}
