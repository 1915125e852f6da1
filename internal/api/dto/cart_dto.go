package dto

import (
	"time"

	"github.com/spec-kit/ecommerce-service/internal/domain"
)

// CartItemResponse response.
type CartItemResponse struct {
	ID      int64           `json:"cartId"`
	Product ProductResponse `json:"product"`
	AddedAt time.Time       `json:"addedAt"`
}

// NewCartItemResponse maps a domain cart item.
func NewCartItemResponse(item domain.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:      item.ID,
		Product: NewProductResponse(item.Product),
		AddedAt: item.AddedAt,
	}
}

// NewCartItemResponses maps a slice of domain cart items.
func NewCartItemResponses(items []domain.CartItem) []CartItemResponse {
	out := make([]CartItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewCartItemResponse(item))
	}
	return out
}
