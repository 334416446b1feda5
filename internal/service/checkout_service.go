package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/stockcheckout/internal/domain"
	"github.com/nikolayk812/stockcheckout/internal/metrics"
	"github.com/nikolayk812/stockcheckout/internal/port"
	"github.com/samber/lo"
	"golang.org/x/text/currency"
)

// CheckoutService turns the open draft of a user into a pending order.
type CheckoutService struct {
	uow      port.UnitOfWork
	drafts   *DraftManager
	carts    port.CartSnapshotProvider
	cache    port.SnapshotCache
	currency currency.Unit
	metrics  *metrics.Checkout
	logger   *slog.Logger
	now      func() time.Time
}

type CheckoutDeps struct {
	UnitOfWork port.UnitOfWork
	Drafts     *DraftManager
	Carts      port.CartSnapshotProvider
	// Cache is optional, the snapshot of the user is dropped from it after a checkout
	Cache    port.SnapshotCache
	Currency currency.Unit
	Metrics  *metrics.Checkout
	Logger   *slog.Logger
}

func NewCheckoutService(deps CheckoutDeps) *CheckoutService {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &CheckoutService{
		uow:      deps.UnitOfWork,
		drafts:   deps.Drafts,
		carts:    deps.Carts,
		cache:    deps.Cache,
		currency: deps.Currency,
		metrics:  deps.Metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// BeginCheckout syncs the open draft of user with the live cart, it runs every time
// the user enters checkout.
func (s *CheckoutService) BeginCheckout(ctx context.Context, user domain.User) (domain.OrderDraft, error) {
	if !user.IsAuthenticated() {
		return s.drafts.GetOrCreateDraft(ctx, user, domain.CartSnapshot{})
	}

	snapshot, err := s.carts.LiveSnapshot(ctx, user.ID)
	if err != nil {
		return domain.OrderDraft{}, fmt.Errorf("carts.LiveSnapshot: %w", err)
	}

	return s.drafts.GetOrCreateDraft(ctx, user, snapshot)
}

// CreateOrderPending consumes the open draft of user in one transaction: stock of every
// product in the draft is reserved, the order is created with prices frozen, the bought
// products leave the cart and the draft becomes used. Nothing is persisted on error.
func (s *CheckoutService) CreateOrderPending(ctx context.Context, user domain.User, data domain.OrderData) (_ domain.Order, err error) {
	started := time.Now()

	var (
		order    domain.Order
		draftID  uuid.UUID
		reserved int
	)

	defer func() {
		s.observe(user, order, draftID, reserved, started, err)
	}()

	if !user.IsAuthenticated() {
		return order, fmt.Errorf("create order: %w", domain.ErrUnauthenticated)
	}

	err = s.uow.Do(ctx, func(ctx context.Context, repos port.Repositories) error {
		draft, err := repos.Drafts.LockOpenDraft(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("repos.Drafts.LockOpenDraft: %w", err)
		}
		draftID = draft.ID

		res, err := s.reserveStock(ctx, repos.Products, draft.Cart)
		if err != nil {
			return fmt.Errorf("reserveStock: %w", err)
		}

		shipment, payment, err := resolveMethods(ctx, repos.Methods, data)
		if err != nil {
			return fmt.Errorf("resolveMethods: %w", err)
		}

		pending, err := s.buildOrder(user, data, res, shipment, payment)
		if err != nil {
			return fmt.Errorf("buildOrder: %w", err)
		}

		created, err := repos.Orders.InsertOrder(ctx, pending)
		if err != nil {
			return fmt.Errorf("repos.Orders.InsertOrder: %w", err)
		}

		// only what was bought leaves the cart, lines added after the snapshot stay
		if _, err := repos.Carts.DeleteItems(ctx, user.ID, res.productIDs()); err != nil {
			return fmt.Errorf("repos.Carts.DeleteItems: %w", err)
		}

		if err := repos.Drafts.MarkUsed(ctx, draft.ID); err != nil {
			return fmt.Errorf("repos.Drafts.MarkUsed: %w", err)
		}

		order = created
		reserved = res.units()

		return nil
	})
	if err != nil {
		order = domain.Order{}
		reserved = 0
		return order, fmt.Errorf("uow.Do: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, user.ID); err != nil {
			s.logger.Warn("snapshot cache invalidation failed", "owner_id", user.ID, "error", err)
		}
	}

	return order, nil
}

// reservation is the outcome of a successful stock confirmation.
type reservation struct {
	lines    []domain.CartLine
	products map[uuid.UUID]domain.Product
}

func (r reservation) productIDs() []uuid.UUID {
	return lo.Map(r.lines, func(line domain.CartLine, _ int) uuid.UUID {
		return line.ProductID
	})
}

func (r reservation) units() int {
	return lo.SumBy(r.lines, func(line domain.CartLine) int {
		return line.Quantity
	})
}

// reserveStock locks every product of the snapshot and moves the requested units to
// reserved stock. Lines are checked in snapshot order and the first failing line aborts
// the batch before anything is written.
func (s *CheckoutService) reserveStock(ctx context.Context, products port.ProductRepository, snapshot domain.CartSnapshot) (reservation, error) {
	var res reservation

	if snapshot.IsEmpty() {
		return res, fmt.Errorf("cart has no items: %w", domain.ErrValidation)
	}

	lines := snapshot.Lines()

	locked, err := products.LockProducts(ctx, snapshot.ProductIDs())
	if err != nil {
		return res, fmt.Errorf("products.LockProducts: %w", err)
	}

	byID := lo.KeyBy(locked, func(p domain.Product) uuid.UUID {
		return p.ID
	})

	modified := make([]domain.Product, 0, len(lines))

	for _, line := range lines {
		p, ok := byID[line.ProductID]
		if !ok {
			return res, fmt.Errorf("product[%s]: %w", line.ProductID, domain.ErrNotFound)
		}

		if line.Quantity <= 0 {
			return res, fmt.Errorf("quantity[%d] of product[%s] must be positive: %w", line.Quantity, p.Name, domain.ErrValidation)
		}

		if p.Price.Currency != s.currency {
			return res, fmt.Errorf("product[%s] is priced in %s: %w", p.Name, p.Price.Currency, domain.ErrValidation)
		}

		if !p.Reserve(line.Quantity) {
			return res, fmt.Errorf("insufficient stock for product[%s]: %w", p.Name, domain.ErrValidation)
		}

		byID[line.ProductID] = p
		modified = append(modified, p)
	}

	if err := products.UpdateStock(ctx, modified); err != nil {
		return res, fmt.Errorf("products.UpdateStock: %w", err)
	}

	return reservation{lines: lines, products: byID}, nil
}

func resolveMethods(ctx context.Context, methods port.MethodRepository, data domain.OrderData) (domain.ShipmentMethod, domain.PaymentMethod, error) {
	shipment, err := methods.GetShipmentMethod(ctx, data.ShipmentMethodID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return shipment, domain.PaymentMethod{}, fmt.Errorf("invalid shipment method[%d]: %w", data.ShipmentMethodID, domain.ErrValidation)
		}
		return shipment, domain.PaymentMethod{}, fmt.Errorf("methods.GetShipmentMethod: %w", err)
	}

	payment, err := methods.GetPaymentMethod(ctx, data.PaymentMethodID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return shipment, payment, fmt.Errorf("invalid payment method[%d]: %w", data.PaymentMethodID, domain.ErrValidation)
		}
		return shipment, payment, fmt.Errorf("methods.GetPaymentMethod: %w", err)
	}

	return shipment, payment, nil
}

func (s *CheckoutService) buildOrder(
	user domain.User,
	data domain.OrderData,
	res reservation,
	shipment domain.ShipmentMethod,
	payment domain.PaymentMethod,
) (domain.Order, error) {
	var o domain.Order

	subtotal := domain.ZeroMoney(s.currency)
	items := make([]domain.OrderItem, 0, len(res.lines))

	for _, line := range res.lines {
		p := res.products[line.ProductID]

		item := domain.OrderItem{
			ProductID:     p.ID,
			Quantity:      line.Quantity,
			Discount:      p.Discount,
			OriginalPrice: p.Price,
			FinalPrice:    p.DiscountedPrice(),
		}

		var err error
		if subtotal, err = subtotal.Add(item.LineTotal()); err != nil {
			return o, fmt.Errorf("subtotal.Add: %w", err)
		}

		items = append(items, item)
	}

	// coupons are not supported yet
	coupon := domain.ZeroMoney(s.currency)

	total, err := subtotal.Add(shipment.Price)
	if err != nil {
		return o, fmt.Errorf("shipment method[%d]: %w", shipment.ID, err)
	}

	if total, err = total.Sub(coupon); err != nil {
		return o, fmt.Errorf("total.Sub: %w", err)
	}

	return domain.Order{
		OwnerID:         user.ID,
		Status:          domain.OrderStatusPending,
		PaymentMethodID: payment.ID,
		Shipment:        data.ShipmentOrder(),
		Contact:         data.Contact(),
		ExpireAt:        payment.ExpireAt(s.now().UTC()),
		ShipmentCost:    shipment.Price,
		DiscountCoupon:  coupon,
		Total:           total,
		Items:           items,
	}, nil
}

func (s *CheckoutService) observe(user domain.User, order domain.Order, draftID uuid.UUID, reserved int, started time.Time, err error) {
	result := checkoutResult(err)
	s.metrics.ObserveCheckout(result, started, reserved)

	if err == nil {
		s.logger.Info("order created",
			"owner_id", user.ID,
			"order_id", order.ID,
			"draft_id", draftID,
			"products", len(order.Items),
			"units", reserved,
			"total", order.Total.String())
		return
	}

	level := slog.LevelWarn
	if result == metrics.ResultError {
		level = slog.LevelError
	}

	s.logger.Log(context.Background(), level, "checkout failed",
		"owner_id", user.ID,
		"draft_id", draftID,
		"result", result,
		"error", err)
}

func checkoutResult(err error) string {
	switch {
	case err == nil:
		return metrics.ResultCreated
	case errors.Is(err, domain.ErrNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, domain.ErrValidation):
		return metrics.ResultValidation
	case errors.Is(err, domain.ErrUnauthenticated):
		return metrics.ResultUnauthenticated
	case errors.Is(err, domain.ErrConflict):
		return metrics.ResultConflict
	default:
		return metrics.ResultError
	}
}
