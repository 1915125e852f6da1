package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
)

func TestProductListCSV(t *testing.T) {
	products := newFakeProductRepo()
	seedProduct(t, products, "keyboard, mechanical", 100, 80)
	svc := NewExportService(products)

	data, err := svc.ProductListCSV(context.Background())
	if err != nil {
		t.Fatalf("ProductListCSV: %v", err)
	}

	bom := []byte{0xEF, 0xBB, 0xBF}
	if !bytes.HasPrefix(data, bom) {
		t.Fatal("CSV output missing UTF-8 BOM")
	}

	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, bom))).ReadAll()
	if err != nil {
		t.Fatalf("parse CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d rows, want header plus one product", len(records))
	}

	header := records[0]
	want := []string{"Product ID", "Product Name", "Description", "Original Price", "Discounted Price"}
	for i, col := range want {
		if header[i] != col {
			t.Errorf("header[%d] = %q, want %q", i, header[i], col)
		}
	}

	row := records[1]
	if row[1] != "keyboard, mechanical" {
		t.Errorf("name column = %q, comma not preserved by quoting", row[1])
	}
	if row[3] != "100.00" || row[4] != "80.00" {
		t.Errorf("price columns = %q/%q, want 100.00/80.00", row[3], row[4])
	}
}

func TestProductListCSVEmptyCatalog(t *testing.T) {
	svc := NewExportService(newFakeProductRepo())

	data, err := svc.ProductListCSV(context.Background())
	if err != nil {
		t.Fatalf("ProductListCSV: %v", err)
	}
	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}))).ReadAll()
	if err != nil {
		t.Fatalf("parse CSV: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d rows, want header only", len(records))
	}
}
