package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ecommerce-service/internal/api/dto"
	"github.com/spec-kit/ecommerce-service/internal/domain"
	"github.com/spec-kit/ecommerce-service/internal/service"
	apperrors "github.com/spec-kit/ecommerce-service/pkg/util"
)

// ImagesHandler manages product-image administration endpoints.
type ImagesHandler struct {
	service *service.ProductService
}

// NewImagesHandler constructs handler.
func NewImagesHandler(productService *service.ProductService) *ImagesHandler {
	return &ImagesHandler{service: productService}
}

// Upload POST /images/:productId. Accepts one "imageFile" part.
func (h *ImagesHandler) Upload(c *fiber.Ctx) error {
	productID, err := parseID(c, "productId")
	if err != nil {
		return err
	}
	form, err := c.MultipartForm()
	if err != nil {
		return apperrors.NewValidationError("multipart form required", nil)
	}
	files := form.File["imageFile"]
	if len(files) == 0 {
		return apperrors.NewValidationError("imageFile part required", nil)
	}
	uploads, err := readUploads(files[:1])
	if err != nil {
		return err
	}

	image, err := h.service.AddImage(c.Context(), productID, uploads[0])
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(imageMeta(*image))
}

// GetByID GET /images/:imageId. Streams the raw image bytes.
func (h *ImagesHandler) GetByID(c *fiber.Ctx) error {
	imageID, err := parseID(c, "imageId")
	if err != nil {
		return err
	}
	image, err := h.service.ImageByID(c.Context(), imageID)
	if err != nil {
		return err
	}
	return sendImage(c, image)
}

// GetByName GET /images/by-name/:name.
func (h *ImagesHandler) GetByName(c *fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return apperrors.NewValidationError("name required", nil)
	}
	image, err := h.service.ImageByName(c.Context(), name)
	if err != nil {
		return err
	}
	return sendImage(c, image)
}

// Delete DELETE /images/:imageId.
func (h *ImagesHandler) Delete(c *fiber.Ctx) error {
	imageID, err := parseID(c, "imageId")
	if err != nil {
		return err
	}
	if err := h.service.DeleteImage(c.Context(), imageID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListMeta GET /images. Returns metadata for every stored image.
func (h *ImagesHandler) ListMeta(c *fiber.Ctx) error {
	images, err := h.service.ImageMeta(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewImageMetaResponses(images))
}

func sendImage(c *fiber.Ctx, image *domain.ProductImage) error {
	contentType := image.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(image.Data)
}

func imageMeta(image domain.ProductImage) dto.ImageMetaResponse {
	return dto.ImageMetaResponse{
		ID:          image.ID,
		ProductID:   image.ProductID,
		Name:        image.Name,
		ShortName:   image.ShortName,
		ContentType: image.ContentType,
	}
}
