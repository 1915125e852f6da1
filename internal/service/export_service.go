package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"

	"github.com/spec-kit/ecommerce-service/internal/repository"
)

// ExportService renders catalog downloads.
type ExportService struct {
	products repository.ProductRepository
}

// NewExportService builds the service.
func NewExportService(products repository.ProductRepository) *ExportService {
	return &ExportService{products: products}
}

// ProductListCSV renders the full catalog as UTF-8 CSV with a BOM so
// spreadsheet tools pick up the encoding.
func (s *ExportService) ProductListCSV(ctx context.Context) ([]byte, error) {
	products, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write([]byte{0xEF, 0xBB, 0xBF})

	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Product ID", "Product Name", "Description", "Original Price", "Discounted Price"}); err != nil {
		return nil, err
	}
	for _, product := range products {
		record := []string{
			strconv.FormatInt(product.ID, 10),
			product.Name,
			product.Description,
			strconv.FormatFloat(product.ActualPrice, 'f', 2, 64),
			strconv.FormatFloat(product.DiscountedPrice, 'f', 2, 64),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
