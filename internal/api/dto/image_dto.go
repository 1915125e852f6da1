package dto

import (
	"encoding/base64"

	"github.com/spec-kit/ecommerce-service/internal/domain"
)

// ImageMetaResponse describes a stored image without its payload.
type ImageMetaResponse struct {
	ID          int64  `json:"imageId"`
	ProductID   int64  `json:"productId"`
	Name        string `json:"name"`
	ShortName   string `json:"shortName"`
	ContentType string `json:"contentType"`
}

// NewImageMetaResponses maps stored images to metadata entries.
func NewImageMetaResponses(images []domain.ProductImage) []ImageMetaResponse {
	out := make([]ImageMetaResponse, 0, len(images))
	for _, image := range images {
		out = append(out, ImageMetaResponse{
			ID:          image.ID,
			ProductID:   image.ProductID,
			Name:        image.Name,
			ShortName:   image.ShortName,
			ContentType: image.ContentType,
		})
	}
	return out
}

// ImageDataURL renders a stored image as an inline data URL.
func ImageDataURL(image domain.ProductImage) string {
	contentType := image.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(image.Data)
}
