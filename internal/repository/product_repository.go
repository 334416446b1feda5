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
)

type productRepository struct {
	q *db.Queries
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{q: db.New(pool)}
}

func NewProductWithTx(tx pgx.Tx) port.ProductRepository {
	return &productRepository{q: db.New(tx)}
}

func (r *productRepository) InsertProduct(ctx context.Context, product domain.Product) (uuid.UUID, error) {
	if err := product.Validate(); err != nil {
		return uuid.Nil, fmt.Errorf("product.Validate: %w: %w", domain.ErrValidation, err)
	}

	id, err := r.q.InsertProduct(ctx, db.InsertProductParams{
		Name:          product.Name,
		PriceAmount:   product.Price.Amount,
		PriceCurrency: product.Price.Currency.String(),
		Discount:      int32(product.Discount),
		Stock:         int32(product.Stock),
		StockReserved: int32(product.StockReserved),
		Available:     product.Available,
		ImageUrl:      lo.EmptyableToPtr(product.ImageURL),
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("q.InsertProduct: %w", err)
	}

	return id, nil
}

func (r *productRepository) GetProducts(ctx context.Context, productIDs []uuid.UUID) ([]domain.Product, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	dbProducts, err := r.q.GetProducts(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("q.GetProducts: %w", err)
	}

	products, err := mapDBProductsToDomain(dbProducts)
	if err != nil {
		return nil, fmt.Errorf("mapDBProductsToDomain: %w", err)
	}

	return products, nil
}

func (r *productRepository) LockProducts(ctx context.Context, productIDs []uuid.UUID) ([]domain.Product, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	dbProducts, err := r.q.LockProducts(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("q.LockProducts: %w", err)
	}

	products, err := mapDBProductsToDomain(dbProducts)
	if err != nil {
		return nil, fmt.Errorf("mapDBProductsToDomain: %w", err)
	}

	return products, nil
}

func (r *productRepository) UpdateStock(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	arg := db.UpdateProductsStockParams{
		Ids:            make([]uuid.UUID, 0, len(products)),
		Stocks:         make([]int32, 0, len(products)),
		StocksReserved: make([]int32, 0, len(products)),
	}

	for _, p := range products {
		arg.Ids = append(arg.Ids, p.ID)
		arg.Stocks = append(arg.Stocks, int32(p.Stock))
		arg.StocksReserved = append(arg.StocksReserved, int32(p.StockReserved))
	}

	rowsAffected, err := r.q.UpdateProductsStock(ctx, arg)
	if err != nil {
		return fmt.Errorf("q.UpdateProductsStock: %w", err)
	}

	if rowsAffected != int64(len(products)) {
		return fmt.Errorf("q.UpdateProductsStock: updated %d of %d products: %w", rowsAffected, len(products), domain.ErrNotFound)
	}

	return nil
}

func (r *productRepository) MarkUnavailable(ctx context.Context, productID uuid.UUID) (bool, error) {
	rowsAffected, err := r.q.MarkProductUnavailable(ctx, productID)
	if err != nil {
		return false, fmt.Errorf("q.MarkProductUnavailable: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *productRepository) UpdatePrice(ctx context.Context, productID uuid.UUID, price domain.Money, discount int) error {
	if discount < 0 || discount > 100 {
		return fmt.Errorf("discount[%d] is out of range 0..100: %w", discount, domain.ErrValidation)
	}

	rowsAffected, err := r.q.UpdateProductPrice(ctx, db.UpdateProductPriceParams{
		PriceAmount:   price.Amount,
		PriceCurrency: price.Currency.String(),
		Discount:      int32(discount),
		ID:            productID,
	})
	if err != nil {
		return fmt.Errorf("q.UpdateProductPrice: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("product[%s]: %w", productID, domain.ErrNotFound)
	}

	return nil
}

func (r *productRepository) ResetReservedStock(ctx context.Context) (int64, error) {
	rowsAffected, err := r.q.ResetReservedStock(ctx)
	if err != nil {
		return 0, fmt.Errorf("q.ResetReservedStock: %w", err)
	}

	return rowsAffected, nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	rowsAffected, err := r.q.DeleteProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("q.DeleteProduct: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("product[%s]: %w", productID, domain.ErrNotFound)
	}

	return nil
}

func mapDBProductToDomain(p db.Product) (domain.Product, error) {
	price, err := toMoney(p.PriceAmount, p.PriceCurrency)
	if err != nil {
		return domain.Product{}, fmt.Errorf("toMoney: %w", err)
	}

	return domain.Product{
		ID:            p.ID,
		Name:          p.Name,
		Price:         price,
		Discount:      int(p.Discount),
		Stock:         int(p.Stock),
		StockReserved: int(p.StockReserved),
		Available:     p.Available,
		ImageURL:      lo.FromPtr(p.ImageUrl),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}, nil
}

func mapDBProductsToDomain(rows []db.Product) ([]domain.Product, error) {
	products := make([]domain.Product, 0, len(rows))

	for _, row := range rows {
		p, err := mapDBProductToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapDBProductToDomain: %w", err)
		}

		products = append(products, p)
	}

	return products, nil
}
