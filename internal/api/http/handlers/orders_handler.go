package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ecommerce-service/internal/api/dto"
	"github.com/spec-kit/ecommerce-service/internal/auth"
	"github.com/spec-kit/ecommerce-service/internal/domain"
	"github.com/spec-kit/ecommerce-service/internal/service"
	apperrors "github.com/spec-kit/ecommerce-service/pkg/util"
)

// OrdersHandler manages checkout and order administration endpoints.
type OrdersHandler struct {
	service *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orderService *service.OrderService) *OrdersHandler {
	return &OrdersHandler{service: orderService}
}

// Place POST /placeOrder.
func (h *OrdersHandler) Place(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	input := service.OrderInput{
		FullName:               req.FullName,
		FullAddress:            req.FullAddress,
		ContactNumber:          req.ContactNumber,
		AlternateContactNumber: req.AlternateContactNumber,
		FromCart:               req.FromCart,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.OrderItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	orders, err := h.service.Place(c.Context(), principal.Username, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewOrderResponses(orders))
}

// MyOrders GET /getMyOrderDetailsPaginated.
func (h *OrdersHandler) MyOrders(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	page := parseIntQuery(c.Query("pageNumber"), 0)
	size := parseIntQuery(c.Query("pageSize"), 12)
	searchKey := c.Query("searchKey")

	orders, total, err := h.service.MyOrders(c.Context(), principal.Username, searchKey, page, size)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPageResponse(dto.NewOrderResponses(orders), total, page, size))
}

// AllOrders GET /getAllOrderDetailsPaginated/:status. The status segment
// filters by lifecycle state; "all" disables the filter.
func (h *OrdersHandler) AllOrders(c *fiber.Ctx) error {
	page := parseIntQuery(c.Query("pageNumber"), 0)
	size := parseIntQuery(c.Query("pageSize"), 12)
	searchKey := c.Query("searchKey")
	status := c.Params("status")

	orders, total, err := h.service.AllOrders(c.Context(), searchKey, status, page, size)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPageResponse(dto.NewOrderResponses(orders), total, page, size))
}

// MarkDelivered GET /markOrderAsDelivered/:orderId.
func (h *OrdersHandler) MarkDelivered(c *fiber.Ctx) error {
	orderID, err := parseID(c, "orderId")
	if err != nil {
		return err
	}
	if err := h.service.ChangeStatus(c.Context(), orderID, domain.OrderStatusDelivered); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"orderId": orderID, "orderStatus": string(domain.OrderStatusDelivered)})
}
