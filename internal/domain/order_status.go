package domain

import "errors"

type OrderStatus string

// remember to add new statuses to the validOrderStatuses map
const (
	OrderStatusCancelled        OrderStatus = "cancelled"
	OrderStatusPending          OrderStatus = "pending"
	OrderStatusPaymentPending   OrderStatus = "payment_pending"
	OrderStatusPaymentConfirmed OrderStatus = "payment_confirmed"
	OrderStatusShipped          OrderStatus = "shipped"
	OrderStatusCompleted        OrderStatus = "completed"
	OrderStatusReturned         OrderStatus = "returned"
)

var validOrderStatuses = map[OrderStatus]struct{}{
	OrderStatusCancelled:        {},
	OrderStatusPending:          {},
	OrderStatusPaymentPending:   {},
	OrderStatusPaymentConfirmed: {},
	OrderStatusShipped:          {},
	OrderStatusCompleted:        {},
	OrderStatusReturned:         {},
}

func ToOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := validOrderStatuses[status]; ok {
		return status, nil
	}

	return "", errors.New("invalid order status")
}

func OrderStatuses() []OrderStatus {
	result := make([]OrderStatus, 0, len(validOrderStatuses))
	for status := range validOrderStatuses {
		result = append(result, status)
	}
	return result
}
