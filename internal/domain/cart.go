package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Cart struct {
	OwnerID string
	Items   []CartItem
}

type CartItem struct {
	ProductID uuid.UUID
	Quantity  int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartSnapshot is a point-in-time copy of a cart. It is stored as JSON inside
// an order draft and is the source of truth for a checkout.
type CartSnapshot struct {
	Items              []CartSnapshotItem `json:"items"`
	Currency           string             `json:"currency"`
	TotalQuantity      int                `json:"total_quantity"`
	TotalPrice         decimal.Decimal    `json:"total_price"`
	TotalPriceDiscount decimal.Decimal    `json:"total_price_discount"`
	CapturedAt         time.Time          `json:"captured_at"`
}

type CartSnapshotItem struct {
	ProductID uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Discount  int             `json:"discount"`
	Quantity  int             `json:"quantity"`
	Stock     int             `json:"stock"`
	Image     string          `json:"image,omitempty"`
}

// CartLine is a product with the quantity requested for it.
type CartLine struct {
	ProductID uuid.UUID
	Quantity  int
}

// NewCartSnapshotItem captures product data for quantity units.
func NewCartSnapshotItem(p Product, quantity int) CartSnapshotItem {
	return CartSnapshotItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price.Amount,
		Discount:  p.Discount,
		Quantity:  quantity,
		Stock:     p.Stock,
		Image:     p.ImageURL,
	}
}

func NewCartSnapshot(cur currency.Unit, items []CartSnapshotItem, capturedAt time.Time) CartSnapshot {
	s := CartSnapshot{
		Items:              items,
		Currency:           cur.String(),
		TotalPrice:         decimal.Zero,
		TotalPriceDiscount: decimal.Zero,
		CapturedAt:         capturedAt,
	}

	if s.Items == nil {
		s.Items = []CartSnapshotItem{}
	}

	for _, item := range items {
		discounted := Product{
			Price:    Money{Amount: item.Price, Currency: cur},
			Discount: item.Discount,
		}.DiscountedPrice()

		s.TotalQuantity += item.Quantity
		s.TotalPrice = s.TotalPrice.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		s.TotalPriceDiscount = s.TotalPriceDiscount.Add(discounted.Amount.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return s
}

func (s CartSnapshot) IsEmpty() bool {
	return len(s.Items) == 0
}

// Lines returns one line per product in the order products first appear.
// Repeated entries for the same product are summed.
func (s CartSnapshot) Lines() []CartLine {
	lines := make([]CartLine, 0, len(s.Items))
	index := make(map[uuid.UUID]int, len(s.Items))

	for _, item := range s.Items {
		if i, ok := index[item.ProductID]; ok {
			lines[i].Quantity += item.Quantity
			continue
		}

		index[item.ProductID] = len(lines)
		lines = append(lines, CartLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	return lines
}

func (s CartSnapshot) ProductIDs() []uuid.UUID {
	lines := s.Lines()

	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}

	return ids
}
