package domain

import "time"

// OrderStatus enumerates lifecycle states for orders.
type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "Placed"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCanceled  OrderStatus = "Canceled"
)

// Order records one product line placed by a user. Multi-product checkouts
// produce one order row per product.
type Order struct {
	ID                     int64
	FullName               string
	FullAddress            string
	ContactNumber          string
	AlternateContactNumber string
	Status                 OrderStatus
	Amount                 float64
	ProductID              int64
	ProductName            string
	Username               string
	OrderDate              time.Time
}
