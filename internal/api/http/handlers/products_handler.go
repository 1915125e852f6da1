package handlers

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ecommerce-service/internal/api/dto"
	"github.com/spec-kit/ecommerce-service/internal/auth"
	"github.com/spec-kit/ecommerce-service/internal/domain"
	"github.com/spec-kit/ecommerce-service/internal/service"
	apperrors "github.com/spec-kit/ecommerce-service/pkg/util"
)

// ProductsHandler manages catalog endpoints.
type ProductsHandler struct {
	service *service.ProductService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(productService *service.ProductService) *ProductsHandler {
	return &ProductsHandler{service: productService}
}

// Create POST /addNewProduct. Accepts multipart with a "product" JSON part
// and zero or more "imageFile" parts.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	req, uploads, err := parseProductForm(c)
	if err != nil {
		return err
	}

	product := &domain.Product{
		Name:            req.Name,
		Description:     req.Description,
		ActualPrice:     req.ActualPrice,
		DiscountedPrice: req.DiscountedPrice,
	}
	if err := h.service.Create(c.Context(), product, uploads); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewProductResponse(*product))
}

// Update PUT /product/:productId. The previewImages field of the JSON part
// names images to drop; any uploaded files are added.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	productID, err := parseID(c, "productId")
	if err != nil {
		return err
	}
	req, uploads, err := parseProductForm(c)
	if err != nil {
		return err
	}

	product := &domain.Product{
		ID:              productID,
		Name:            req.Name,
		Description:     req.Description,
		ActualPrice:     req.ActualPrice,
		DiscountedPrice: req.DiscountedPrice,
	}
	if err := h.service.Update(c.Context(), product, uploads, req.PreviewImages); err != nil {
		return err
	}
	return c.JSON(dto.NewProductResponse(*product))
}

// Get GET /product/:productId.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	productID, err := parseID(c, "productId")
	if err != nil {
		return err
	}
	product, err := h.service.Get(c.Context(), productID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProductResponse(*product))
}

// List GET /getAllProducts.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	products, err := h.service.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProductResponses(products))
}

// Search GET /getAllProductsPaginated.
func (h *ProductsHandler) Search(c *fiber.Ctx) error {
	page := parseIntQuery(c.Query("pageNumber"), 0)
	size := parseIntQuery(c.Query("pageSize"), 12)
	searchKey := c.Query("searchKey")

	products, total, err := h.service.Search(c.Context(), searchKey, page, size)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPageResponse(dto.NewProductResponses(products), total, page, size))
}

// Delete DELETE /deleteProductDetails/:productId.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	productID, err := parseID(c, "productId")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Context(), productID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CheckoutDetails GET /getProductDetails/:isSingleProductCheckout/:productId.
// For a cart checkout the productId segment is ignored.
func (h *ProductsHandler) CheckoutDetails(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	single, err := strconv.ParseBool(c.Params("isSingleProductCheckout"))
	if err != nil {
		return apperrors.NewValidationError("isSingleProductCheckout must be a boolean", nil)
	}
	productID, _ := strconv.ParseInt(c.Params("productId"), 10, 64)

	products, err := h.service.CheckoutDetails(c.Context(), single, productID, principal.Username)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProductResponses(products))
}

func parseProductForm(c *fiber.Ctx) (*dto.ProductRequest, []service.ImageUpload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, apperrors.NewValidationError("multipart form required", nil)
	}
	values := form.Value["product"]
	if len(values) == 0 {
		return nil, nil, apperrors.NewValidationError("product part required", nil)
	}
	var req dto.ProductRequest
	if err := json.Unmarshal([]byte(values[0]), &req); err != nil {
		return nil, nil, apperrors.NewValidationError("invalid product payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return nil, nil, err
	}

	uploads, err := readUploads(form.File["imageFile"])
	if err != nil {
		return nil, nil, err
	}
	return &req, uploads, nil
}

func readUploads(files []*multipart.FileHeader) ([]service.ImageUpload, error) {
	uploads := make([]service.ImageUpload, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			return nil, apperrors.NewValidationError("unreadable upload: "+header.Filename, nil)
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, apperrors.NewValidationError("unreadable upload: "+header.Filename, nil)
		}
		uploads = append(uploads, service.ImageUpload{
			ShortName:   header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return uploads, nil
}

func parseID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError(name+" must be a positive integer", nil)
	}
	return id, nil
}

func parseIntQuery(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}
