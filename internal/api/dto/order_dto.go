package dto

import (
	"time"

	"github.com/spec-kit/ecommerce-service/internal/domain"
)

// OrderProductQuantity is one product line of a checkout request.
type OrderProductQuantity struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"gte=0"`
}

// PlaceOrderRequest payload for checkout.
type PlaceOrderRequest struct {
	FullName               string                 `json:"fullName" validate:"required"`
	FullAddress            string                 `json:"fullAddress" validate:"required"`
	ContactNumber          string                 `json:"contactNumber" validate:"required"`
	AlternateContactNumber string                 `json:"alternateContactNumber"`
	FromCart               bool                   `json:"fromCart"`
	Items                  []OrderProductQuantity `json:"orderProductQuantityList" validate:"required,min=1,dive"`
}

// OrderResponse response.
type OrderResponse struct {
	ID                     int64     `json:"orderId"`
	FullName               string    `json:"fullName"`
	FullAddress            string    `json:"fullAddress"`
	ContactNumber          string    `json:"contactNumber"`
	AlternateContactNumber string    `json:"alternateContactNumber"`
	Status                 string    `json:"orderStatus"`
	Amount                 float64   `json:"orderAmount"`
	ProductID              int64     `json:"productId"`
	ProductName            string    `json:"productName"`
	OrderDate              time.Time `json:"orderDate"`
}

// NewOrderResponse maps a domain order.
func NewOrderResponse(order domain.Order) OrderResponse {
	return OrderResponse{
		ID:                     order.ID,
		FullName:               order.FullName,
		FullAddress:            order.FullAddress,
		ContactNumber:          order.ContactNumber,
		AlternateContactNumber: order.AlternateContactNumber,
		Status:                 string(order.Status),
		Amount:                 order.Amount,
		ProductID:              order.ProductID,
		ProductName:            order.ProductName,
		OrderDate:              order.OrderDate,
	}
}

// NewOrderResponses maps a slice of domain orders.
func NewOrderResponses(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, NewOrderResponse(order))
	}
	return out
}
