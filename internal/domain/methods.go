package domain

import "time"

// Ids of the seeded shipment methods.
const (
	ShipmentMethodPickup     int64 = 1
	ShipmentMethodLocal      int64 = 2
	ShipmentMethodOutside    int64 = 3
	ShipmentMethodPostOffice int64 = 4
)

// Ids of the seeded payment methods.
const (
	PaymentMethodCash        int64 = 1
	PaymentMethodTransfer    int64 = 2
	PaymentMethodMercadoPago int64 = 3
	PaymentMethodCrypto      int64 = 4
)

type ShipmentMethod struct {
	ID          int64
	Name        string
	Price       Money
	IsActive    bool
	Description string
}

type PaymentMethod struct {
	ID          int64
	Name        string
	GraceHours  int
	IsActive    bool
	Description string
}

// ExpireAt is the deadline for paying an order placed at now.
func (p PaymentMethod) ExpireAt(now time.Time) time.Time {
	return now.Add(time.Duration(p.GraceHours) * time.Hour)
}
