package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ecommerce-service/internal/auth"
	"github.com/spec-kit/ecommerce-service/internal/service"
	apperrors "github.com/spec-kit/ecommerce-service/pkg/util"
)

// DashboardHandler serves the aggregated store metrics.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: dashboardService}
}

// OrdersPerMonth GET /dashboard/orders-per-month. Scoped to the caller's
// own orders.
func (h *DashboardHandler) OrdersPerMonth(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	data, err := h.service.OrdersPerMonth(c.Context(), principal.Username)
	if err != nil {
		return err
	}
	return c.JSON(data)
}

// OrdersByStatus GET /dashboard/orders-by-status. Administrators see every
// order; everyone else sees only their own.
func (h *DashboardHandler) OrdersByStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	admin := principal.HasAuthority(auth.NormalizeRole(auth.AdminRole))
	data, err := h.service.OrdersByStatus(c.Context(), principal.Username, admin)
	if err != nil {
		return err
	}
	return c.JSON(data)
}

// LastOrders GET /dashboard/last-orders.
func (h *DashboardHandler) LastOrders(c *fiber.Ctx) error {
	orders, err := h.service.LastFourOrders(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

// SalesPerMonth GET /dashboard/sales-per-month-admin.
func (h *DashboardHandler) SalesPerMonth(c *fiber.Ctx) error {
	data, err := h.service.SalesPerMonth(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(data)
}

// TopSelling GET /dashboard/top-selling.
func (h *DashboardHandler) TopSelling(c *fiber.Ctx) error {
	sellers, err := h.service.TopSelling(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(sellers)
}
