package dto

import (
	"time"

	"github.com/spec-kit/ecommerce-service/internal/domain"
)

// ProductRequest payload for create/update. The discounted price must not
// exceed the actual price.
type ProductRequest struct {
	Name            string  `json:"productName" validate:"required"`
	Description     string  `json:"productDescription" validate:"required"`
	ActualPrice     float64 `json:"productActualPrice" validate:"required,gt=0"`
	DiscountedPrice float64 `json:"productDiscountedPrice" validate:"gte=0,ltefield=ActualPrice"`
	// PreviewImages names the existing images to remove on update.
	PreviewImages []string `json:"previewImages"`
}

// ProductResponse response.
type ProductResponse struct {
	ID              int64     `json:"productId"`
	Name            string    `json:"productName"`
	Description     string    `json:"productDescription"`
	ActualPrice     float64   `json:"productActualPrice"`
	DiscountedPrice float64   `json:"productDiscountedPrice"`
	Images          []string  `json:"productImages,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// NewProductResponse maps a domain product; images become data URLs.
func NewProductResponse(product domain.Product) ProductResponse {
	resp := ProductResponse{
		ID:              product.ID,
		Name:            product.Name,
		Description:     product.Description,
		ActualPrice:     product.ActualPrice,
		DiscountedPrice: product.DiscountedPrice,
		CreatedAt:       product.CreatedAt,
		UpdatedAt:       product.UpdatedAt,
	}
	for _, image := range product.Images {
		resp.Images = append(resp.Images, ImageDataURL(image))
	}
	return resp
}

// NewProductResponses maps a slice of domain products.
func NewProductResponses(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		out = append(out, NewProductResponse(product))
	}
	return out
}
