package domain_test

import (
	"testing"

	"github.com/nikolayk812/stockcheckout/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

var ars = currency.MustParseISO("ARS")

func money(amount string) domain.Money {
	return domain.Money{Amount: decimal.RequireFromString(amount), Currency: ars}
}

func TestProductReserve(t *testing.T) {
	tests := []struct {
		name         string
		product      domain.Product
		quantity     int
		wantOK       bool
		wantStock    int
		wantReserved int
	}{
		{
			name:         "enough stock: reserved",
			product:      domain.Product{Stock: 10, StockReserved: 1, Available: true},
			quantity:     4,
			wantOK:       true,
			wantStock:    6,
			wantReserved: 5,
		},
		{
			name:         "exact stock: reserved",
			product:      domain.Product{Stock: 3, Available: true},
			quantity:     3,
			wantOK:       true,
			wantStock:    0,
			wantReserved: 3,
		},
		{
			name:      "not enough stock: untouched",
			product:   domain.Product{Stock: 2, Available: true},
			quantity:  3,
			wantStock: 2,
		},
		{
			name:      "unavailable product: untouched",
			product:   domain.Product{Stock: 10, Available: false},
			quantity:  1,
			wantStock: 10,
		},
		{
			name:      "zero quantity: untouched",
			product:   domain.Product{Stock: 10, Available: true},
			quantity:  0,
			wantStock: 10,
		},
		{
			name:      "negative quantity: untouched",
			product:   domain.Product{Stock: 10, Available: true},
			quantity:  -2,
			wantStock: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.product

			ok := p.Reserve(tt.quantity)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantStock, p.Stock)
			assert.Equal(t, tt.wantReserved, p.StockReserved)
			assert.Equal(t, tt.product.Stock+tt.product.StockReserved, p.Stock+p.StockReserved, "units are conserved")
		})
	}
}

func TestProductRelease(t *testing.T) {
	p := domain.Product{Stock: 1, StockReserved: 5, Available: true}

	require.NoError(t, p.Release(2))
	assert.Equal(t, 3, p.Stock)
	assert.Equal(t, 3, p.StockReserved)

	require.EqualError(t, p.Release(4), "quantity[4] exceeds reserved stock[3]")
	require.EqualError(t, p.Release(0), "quantity[0] must be positive")
	assert.Equal(t, 3, p.Stock)
	assert.Equal(t, 3, p.StockReserved)

	require.NoError(t, p.Release(3))
	assert.Equal(t, 6, p.Stock)
	assert.Zero(t, p.StockReserved)
}

func TestProductCheckAvailability(t *testing.T) {
	tests := []struct {
		name          string
		product       domain.Product
		quantity      int
		wantOK        bool
		wantStock     int
		wantAvailable bool
	}{
		{
			name:          "enough stock: ok",
			product:       domain.Product{Stock: 5, Available: true},
			quantity:      5,
			wantOK:        true,
			wantStock:     5,
			wantAvailable: true,
		},
		{
			name:          "too many requested: not ok, stays available",
			product:       domain.Product{Stock: 5, Available: true},
			quantity:      6,
			wantStock:     5,
			wantAvailable: true,
		},
		{
			name:      "available without stock: flipped off",
			product:   domain.Product{Stock: 0, Available: true},
			quantity:  1,
			wantStock: 0,
		},
		{
			name:      "unavailable with stock: not ok, reports stock",
			product:   domain.Product{Stock: 7, Available: false},
			quantity:  1,
			wantStock: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.product

			ok, stock := p.CheckAvailability(tt.quantity)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantStock, stock)
			assert.Equal(t, tt.wantAvailable, p.Available)
		})
	}
}

func TestProductDiscountedPrice(t *testing.T) {
	tests := []struct {
		price    string
		discount int
		want     string
	}{
		{price: "100", discount: 0, want: "100"},
		{price: "100", discount: 15, want: "85"},
		{price: "100", discount: 100, want: "0"},
		{price: "19.99", discount: 10, want: "17.99"},
		{price: "0.05", discount: 50, want: "0.03"},
		{price: "33.33", discount: 33, want: "22.33"},
	}

	for _, tt := range tests {
		t.Run(tt.price+"-"+decimal.NewFromInt(int64(tt.discount)).String(), func(t *testing.T) {
			p := domain.Product{Price: money(tt.price), Discount: tt.discount}

			got := p.DiscountedPrice()

			assert.True(t, money(tt.want).Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestProductValidate(t *testing.T) {
	valid := domain.Product{Name: "Mate", Price: money("10"), Discount: 5, Stock: 1}
	require.NoError(t, valid.Validate())

	noName := valid
	noName.Name = ""
	require.EqualError(t, noName.Validate(), "name is empty")

	negativePrice := valid
	negativePrice.Price = money("-1")
	require.EqualError(t, negativePrice.Validate(), "price is negative")

	badDiscount := valid
	badDiscount.Discount = -1
	require.EqualError(t, badDiscount.Validate(), "discount[-1] is out of range 0..100")

	negativeReserved := valid
	negativeReserved.StockReserved = -3
	require.EqualError(t, negativeReserved.Validate(), "stock reserved is negative")
}
