package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ecommerce-service/internal/service"
)

// ExportHandler serves catalog report downloads.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler constructs handler.
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{service: exportService}
}

// ProductsCSV GET /export/products.csv.
func (h *ExportHandler) ProductsCSV(c *fiber.Ctx) error {
	data, err := h.service.ProductListCSV(c.Context())
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="products.csv"`)
	return c.Send(data)
}
