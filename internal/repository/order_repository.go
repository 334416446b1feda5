package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/stockcheckout/internal/db"
	"github.com/nikolayk812/stockcheckout/internal/domain"
	"github.com/nikolayk812/stockcheckout/internal/port"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type orderRepository struct {
	q    *db.Queries
	dbtx db.DBTX
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{
		q:    db.New(pool),
		dbtx: pool,
	}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{
		q:    db.New(tx),
		dbtx: tx,
	}
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	var o domain.Order

	order, err := withTx(ctx, r.dbtx, func(q *db.Queries) (domain.Order, error) {
		dbOrder, err := q.GetOrder(ctx, orderID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return o, fmt.Errorf("order[%s]: %w", orderID, domain.ErrNotFound)
			}
			return o, fmt.Errorf("q.GetOrder: %w", err)
		}

		dbOrderItems, err := q.GetOrderItems(ctx, []uuid.UUID{orderID})
		if err != nil {
			return o, fmt.Errorf("q.GetOrderItems: %w", err)
		}

		domainOrder, err := mapDBOrderToDomain(orderRow(dbOrder), dbOrderItems)
		if err != nil {
			return o, fmt.Errorf("mapDBOrderToDomain: %w", err)
		}

		return domainOrder, nil
	})
	if err != nil {
		return o, fmt.Errorf("withTx: %w", err)
	}

	return order, nil
}

func (r *orderRepository) InsertOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	if len(order.Items) == 0 {
		return order, fmt.Errorf("no items in order: %w", domain.ErrValidation)
	}

	if order.OwnerID == "" {
		return order, fmt.Errorf("ownerID is empty: %w", domain.ErrValidation)
	}

	cur := order.Total.Currency
	for _, m := range []domain.Money{order.ShipmentCost, order.DiscountCoupon} {
		if m.Currency != cur {
			return order, fmt.Errorf("currency mismatch %s != %s: %w", m.Currency, cur, domain.ErrValidation)
		}
	}

	itemsArg := db.InsertOrderItemsParams{
		ProductIds:     make([]uuid.UUID, 0, len(order.Items)),
		Quantities:     make([]int32, 0, len(order.Items)),
		Discounts:      make([]int32, 0, len(order.Items)),
		OriginalPrices: make([]decimal.Decimal, 0, len(order.Items)),
		FinalPrices:    make([]decimal.Decimal, 0, len(order.Items)),
	}

	for _, item := range order.Items {
		if item.OriginalPrice.Currency != cur || item.FinalPrice.Currency != cur {
			return order, fmt.Errorf("product[%s] currency mismatch with order %s: %w", item.ProductID, cur, domain.ErrValidation)
		}

		itemsArg.ProductIds = append(itemsArg.ProductIds, item.ProductID)
		itemsArg.Quantities = append(itemsArg.Quantities, int32(item.Quantity))
		itemsArg.Discounts = append(itemsArg.Discounts, int32(item.Discount))
		itemsArg.OriginalPrices = append(itemsArg.OriginalPrices, item.OriginalPrice.Amount)
		itemsArg.FinalPrices = append(itemsArg.FinalPrices, item.FinalPrice.Amount)
	}

	status := order.Status
	if status == "" {
		status = domain.OrderStatusPending
	}

	inserted, err := withTx(ctx, r.dbtx, func(q *db.Queries) (domain.Order, error) {
		shipmentID, err := q.InsertShipmentOrder(ctx, db.InsertShipmentOrderParams{
			MethodID:   order.Shipment.MethodID,
			NamePickup: order.Shipment.PickupName,
			DniPickup:  order.Shipment.PickupDNI,
			Address:    order.Shipment.Address,
			Province:   order.Shipment.Province,
			City:       order.Shipment.City,
			PostalCode: order.Shipment.PostalCode,
			Detail:     order.Shipment.Detail,
		})
		if err != nil {
			return order, fmt.Errorf("q.InsertShipmentOrder: %w", err)
		}

		row, err := q.InsertOrder(ctx, db.InsertOrderParams{
			OwnerID:         order.OwnerID,
			Status:          string(status),
			PaymentMethodID: order.PaymentMethodID,
			ShipmentID:      shipmentID,
			Name:            order.Contact.Name,
			Email:           order.Contact.Email,
			Cellphone:       order.Contact.Cellphone,
			Dni:             order.Contact.DNI,
			DetailOrder:     order.Contact.DetailOrder,
			ExpireAt:        order.ExpireAt,
			Currency:        cur.String(),
			ShipmentCost:    order.ShipmentCost.Amount,
			DiscountCoupon:  order.DiscountCoupon.Amount,
			Total:           order.Total.Amount,
		})
		if err != nil {
			return order, fmt.Errorf("q.InsertOrder: %w", err)
		}

		itemsArg.OrderID = row.ID

		rowsAffected, err := q.InsertOrderItems(ctx, itemsArg)
		if err != nil {
			return order, fmt.Errorf("q.InsertOrderItems: %w", err)
		}

		if rowsAffected != int64(len(order.Items)) {
			return order, fmt.Errorf("q.InsertOrderItems: inserted %d of %d items", rowsAffected, len(order.Items))
		}

		result := order
		result.ID = row.ID
		result.Status = status
		result.Shipment.ID = shipmentID
		result.CreatedAt = row.CreatedAt
		result.UpdatedAt = row.UpdatedAt
		result.Items = lo.Map(order.Items, func(item domain.OrderItem, _ int) domain.OrderItem {
			item.CreatedAt = row.CreatedAt
			return item
		})

		return result, nil
	})
	if err != nil {
		return order, fmt.Errorf("withTx: %w", err)
	}

	return inserted, nil
}

func (r *orderRepository) SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("filter.Validate: %w: %w", domain.ErrValidation, err)
	}

	return r.searchOrders(ctx, mapDomainOrderFilterToDBFilter(filter))
}

func (r *orderRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return r.searchOrders(ctx, db.SearchOrdersParams{})
}

func (r *orderRepository) searchOrders(ctx context.Context, dbFilter db.SearchOrdersParams) ([]domain.Order, error) {
	orders, err := withTx(ctx, r.dbtx, func(q *db.Queries) ([]domain.Order, error) {
		dbOrders, err := q.SearchOrders(ctx, dbFilter)
		if err != nil {
			return nil, fmt.Errorf("q.SearchOrders: %w", err)
		}

		if len(dbOrders) == 0 {
			return nil, nil
		}

		orderIDs := lo.Map(dbOrders, func(row db.SearchOrdersRow, _ int) uuid.UUID {
			return row.ID
		})

		dbOrderItems, err := q.GetOrderItems(ctx, orderIDs)
		if err != nil {
			return nil, fmt.Errorf("q.GetOrderItems: %w", err)
		}

		itemsByOrder := lo.GroupBy(dbOrderItems, func(item db.OrderItem) uuid.UUID {
			return item.OrderID
		})

		result := make([]domain.Order, 0, len(dbOrders))
		for _, row := range dbOrders {
			order, err := mapDBOrderToDomain(orderRow(row), itemsByOrder[row.ID])
			if err != nil {
				return nil, fmt.Errorf("mapDBOrderToDomain: %w", err)
			}
			result = append(result, order)
		}

		return result, nil
	})
	if err != nil {
		return nil, fmt.Errorf("withTx: %w", err)
	}

	return orders, nil
}

func mapDomainOrderFilterToDBFilter(filter domain.OrderFilter) db.SearchOrdersParams {
	var statuses []string
	for _, status := range filter.Statuses {
		statuses = append(statuses, string(status))
	}

	var createdAfter, createdBefore, updatedAfter, updatedBefore *time.Time

	if filter.CreatedAt != nil {
		createdAfter = filter.CreatedAt.After
		createdBefore = filter.CreatedAt.Before
	}

	if filter.UpdatedAt != nil {
		updatedAfter = filter.UpdatedAt.After
		updatedBefore = filter.UpdatedAt.Before
	}

	return db.SearchOrdersParams{
		Ids:           nilSliceIfEmpty(filter.IDs),
		OwnerIds:      nilSliceIfEmpty(filter.OwnerIDs),
		Statuses:      nilSliceIfEmpty(statuses),
		CreatedAfter:  createdAfter,
		CreatedBefore: createdBefore,
		UpdatedAfter:  updatedAfter,
		UpdatedBefore: updatedBefore,
	}
}

// orderRow is the shape shared by GetOrderRow and SearchOrdersRow.
type orderRow db.GetOrderRow

func mapDBOrderToDomain(row orderRow, dbItems []db.OrderItem) (domain.Order, error) {
	var o domain.Order

	status, err := domain.ToOrderStatus(row.Status)
	if err != nil {
		return o, fmt.Errorf("domain.ToOrderStatus[%s]: %w", row.Status, err)
	}

	total, err := toMoney(row.Total, row.Currency)
	if err != nil {
		return o, fmt.Errorf("toMoney: %w", err)
	}
	cur := total.Currency

	items := make([]domain.OrderItem, 0, len(dbItems))
	for _, item := range dbItems {
		items = append(items, domain.OrderItem{
			ProductID:     item.ProductID,
			Quantity:      int(item.Quantity),
			Discount:      int(item.Discount),
			OriginalPrice: domain.Money{Amount: item.OriginalPrice, Currency: cur},
			FinalPrice:    domain.Money{Amount: item.FinalPrice, Currency: cur},
			CreatedAt:     item.CreatedAt,
		})
	}

	return domain.Order{
		ID:              row.ID,
		OwnerID:         row.OwnerID,
		Status:          status,
		PaymentMethodID: row.PaymentMethodID,
		Shipment: domain.ShipmentOrder{
			ID:         row.ShipmentID,
			MethodID:   row.MethodID,
			PickupName: row.NamePickup,
			PickupDNI:  row.DniPickup,
			Address:    row.Address,
			Province:   row.Province,
			City:       row.City,
			PostalCode: row.PostalCode,
			Detail:     row.Detail,
		},
		Contact: domain.Contact{
			Name:        row.Name,
			Email:       row.Email,
			Cellphone:   row.Cellphone,
			DNI:         row.Dni,
			DetailOrder: row.DetailOrder,
		},
		ExpireAt:       row.ExpireAt,
		ShipmentCost:   domain.Money{Amount: row.ShipmentCost, Currency: cur},
		DiscountCoupon: domain.Money{Amount: row.DiscountCoupon, Currency: cur},
		Total:          total,
		Items:          items,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}, nil
}
