package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Product is the stock ledger row. Stock counts units that can still be sold,
// StockReserved counts units promised to pending orders.
type Product struct {
	ID            uuid.UUID
	Name          string
	Price         Money
	Discount      int // percent, 0..100
	Stock         int
	StockReserved int
	Available     bool
	ImageURL      string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Product) Validate() error {
	if p.Name == "" {
		return errors.New("name is empty")
	}
	if p.Price.Amount.IsNegative() {
		return errors.New("price is negative")
	}
	if p.Discount < 0 || p.Discount > 100 {
		return fmt.Errorf("discount[%d] is out of range 0..100", p.Discount)
	}
	if p.Stock < 0 {
		return errors.New("stock is negative")
	}
	if p.StockReserved < 0 {
		return errors.New("stock reserved is negative")
	}

	return nil
}

// DiscountedPrice is the unit price after discount, rounded half up to cents.
func (p Product) DiscountedPrice() Money {
	factor := decimal.NewFromInt(int64(100 - p.Discount))

	return Money{
		Amount:   p.Price.Amount.Mul(factor).Div(hundred).Round(2),
		Currency: p.Price.Currency,
	}
}

// Reserve moves quantity units from Stock to StockReserved.
// It reports false and leaves the product untouched if the product is not
// available or there is not enough stock. Persisting is up to the caller.
func (p *Product) Reserve(quantity int) bool {
	if quantity <= 0 || !p.Available || p.Stock < quantity {
		return false
	}

	p.Stock -= quantity
	p.StockReserved += quantity

	return true
}

// Release moves quantity units from StockReserved back to Stock.
func (p *Product) Release(quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity[%d] must be positive", quantity)
	}
	if quantity > p.StockReserved {
		return fmt.Errorf("quantity[%d] exceeds reserved stock[%d]", quantity, p.StockReserved)
	}

	p.Stock += quantity
	p.StockReserved -= quantity

	return nil
}

// CheckAvailability reports whether quantity units can be sold and the current stock.
// An available product without effective stock is flipped to unavailable,
// the caller persists that change.
func (p *Product) CheckAvailability(quantity int) (bool, int) {
	effective := 0
	if p.Available {
		effective = p.Stock
	}

	if effective == 0 {
		if p.Available {
			p.Available = false
		}
		return false, p.Stock
	}

	if effective < quantity {
		return false, p.Stock
	}

	return true, p.Stock
}
