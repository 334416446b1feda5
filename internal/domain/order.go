package domain

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	ID              uuid.UUID
	OwnerID         string
	Status          OrderStatus
	PaymentMethodID int64
	Shipment        ShipmentOrder
	Contact         Contact
	ExpireAt        time.Time
	ShipmentCost    Money
	DiscountCoupon  Money
	Total           Money
	Items           []OrderItem

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderItem prices are copied from the product at purchase time and never change afterwards.
type OrderItem struct {
	ProductID     uuid.UUID
	Quantity      int
	Discount      int
	OriginalPrice Money
	FinalPrice    Money

	CreatedAt time.Time
}

func (i OrderItem) LineTotal() Money {
	return i.FinalPrice.Mul(i.Quantity)
}

type Contact struct {
	Name        string
	Email       string
	Cellphone   string
	DNI         string
	DetailOrder string
}

type ShipmentOrder struct {
	ID         uuid.UUID
	MethodID   int64
	PickupName string
	PickupDNI  string
	Address    string
	Province   string
	City       string
	PostalCode string
	Detail     string
}
