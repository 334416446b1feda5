package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/stockcheckout/internal/db"
	"github.com/nikolayk812/stockcheckout/internal/domain"
	"github.com/nikolayk812/stockcheckout/internal/port"
)

type methodRepository struct {
	q *db.Queries
}

func NewMethod(pool *pgxpool.Pool) port.MethodRepository {
	return &methodRepository{q: db.New(pool)}
}

func NewMethodWithTx(tx pgx.Tx) port.MethodRepository {
	return &methodRepository{q: db.New(tx)}
}

func (r *methodRepository) GetShipmentMethod(ctx context.Context, id int64) (domain.ShipmentMethod, error) {
	dbMethod, err := r.q.GetShipmentMethod(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ShipmentMethod{}, fmt.Errorf("shipment method[%d]: %w", id, domain.ErrNotFound)
		}
		return domain.ShipmentMethod{}, fmt.Errorf("q.GetShipmentMethod: %w", err)
	}

	return mapDBShipmentMethodToDomain(dbMethod)
}

func (r *methodRepository) GetPaymentMethod(ctx context.Context, id int64) (domain.PaymentMethod, error) {
	dbMethod, err := r.q.GetPaymentMethod(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PaymentMethod{}, fmt.Errorf("payment method[%d]: %w", id, domain.ErrNotFound)
		}
		return domain.PaymentMethod{}, fmt.Errorf("q.GetPaymentMethod: %w", err)
	}

	return mapDBPaymentMethodToDomain(dbMethod), nil
}

func (r *methodRepository) ListShipmentMethods(ctx context.Context, onlyActive bool) ([]domain.ShipmentMethod, error) {
	rows, err := r.q.ListShipmentMethods(ctx, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("q.ListShipmentMethods: %w", err)
	}

	methods := make([]domain.ShipmentMethod, 0, len(rows))
	for _, row := range rows {
		m, err := mapDBShipmentMethodToDomain(row)
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}

	return methods, nil
}

func (r *methodRepository) ListPaymentMethods(ctx context.Context, onlyActive bool) ([]domain.PaymentMethod, error) {
	rows, err := r.q.ListPaymentMethods(ctx, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("q.ListPaymentMethods: %w", err)
	}

	methods := make([]domain.PaymentMethod, 0, len(rows))
	for _, row := range rows {
		methods = append(methods, mapDBPaymentMethodToDomain(row))
	}

	return methods, nil
}

func mapDBShipmentMethodToDomain(m db.ShipmentMethod) (domain.ShipmentMethod, error) {
	price, err := toMoney(m.PriceAmount, m.PriceCurrency)
	if err != nil {
		return domain.ShipmentMethod{}, fmt.Errorf("shipment method[%d]: %w", m.ID, err)
	}

	return domain.ShipmentMethod{
		ID:          m.ID,
		Name:        m.Name,
		Price:       price,
		IsActive:    m.IsActive,
		Description: m.Description,
	}, nil
}

func mapDBPaymentMethodToDomain(m db.PaymentMethod) domain.PaymentMethod {
	return domain.PaymentMethod{
		ID:          m.ID,
		Name:        m.Name,
		GraceHours:  int(m.GraceHours),
		IsActive:    m.IsActive,
		Description: m.Description,
	}
}
