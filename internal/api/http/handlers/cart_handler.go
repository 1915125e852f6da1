package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ecommerce-service/internal/api/dto"
	"github.com/spec-kit/ecommerce-service/internal/auth"
	"github.com/spec-kit/ecommerce-service/internal/service"
	apperrors "github.com/spec-kit/ecommerce-service/pkg/util"
)

// CartHandler manages the shopping-cart endpoints.
type CartHandler struct {
	service *service.CartService
}

// NewCartHandler constructs handler.
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{service: cartService}
}

// Add POST /addToCart/:productId.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	productID, err := parseID(c, "productId")
	if err != nil {
		return err
	}

	item, err := h.service.Add(c.Context(), principal.Username, productID)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyInCart) {
			return apperrors.NewConflict("product already in cart", nil)
		}
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewCartItemResponse(*item))
}

// List GET /getCartDetails.
func (h *CartHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	items, err := h.service.List(c.Context(), principal.Username)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCartItemResponses(items))
}

// Search GET /getCartDetailsPaginated.
func (h *CartHandler) Search(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	page := parseIntQuery(c.Query("pageNumber"), 0)
	size := parseIntQuery(c.Query("pageSize"), 12)
	searchKey := c.Query("searchKey")

	items, total, err := h.service.Search(c.Context(), principal.Username, searchKey, page, size)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPageResponse(dto.NewCartItemResponses(items), total, page, size))
}

// Delete DELETE /deleteCartItem/:cartId.
func (h *CartHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	cartID, err := parseID(c, "cartId")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Context(), principal.Username, cartID); err != nil {
		if errors.Is(err, service.ErrNotCartOwner) {
			return apperrors.NewForbidden("cart item belongs to another user")
		}
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Clear DELETE /clearCart.
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	if err := h.service.Clear(c.Context(), principal.Username); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
