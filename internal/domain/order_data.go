package domain

import "strings"

// OrderData is the checkout form submitted by the user.
// Pickup fields are filled for store pickup, address fields for home delivery.
type OrderData struct {
	FirstName   string
	LastName    string
	Email       string
	Cellphone   string
	DNI         string
	DetailOrder string

	PickupName string
	PickupDNI  string

	Province   string
	City       string
	Address    string
	PostalCode string
	Detail     string

	ShipmentMethodID int64
	PaymentMethodID  int64
}

func (d OrderData) Contact() Contact {
	return Contact{
		Name:        strings.TrimSpace(d.FirstName + " " + d.LastName),
		Email:       d.Email,
		Cellphone:   d.Cellphone,
		DNI:         d.DNI,
		DetailOrder: d.DetailOrder,
	}
}

func (d OrderData) ShipmentOrder() ShipmentOrder {
	return ShipmentOrder{
		MethodID:   d.ShipmentMethodID,
		PickupName: d.PickupName,
		PickupDNI:  d.PickupDNI,
		Address:    d.Address,
		Province:   d.Province,
		City:       d.City,
		PostalCode: d.PostalCode,
		Detail:     d.Detail,
	}
}
