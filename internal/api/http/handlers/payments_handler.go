package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ecommerce-service/internal/api/dto"
	"github.com/spec-kit/ecommerce-service/internal/auth"
	"github.com/spec-kit/ecommerce-service/internal/service"
	apperrors "github.com/spec-kit/ecommerce-service/pkg/util"
)

// PaymentsHandler manages the payment gateway endpoints. The success and
// cancel callbacks are invoked by the gateway redirect, carrying the
// provider order id in the token query parameter.
type PaymentsHandler struct {
	service *service.PaymentService
}

// NewPaymentsHandler constructs handler.
func NewPaymentsHandler(paymentService *service.PaymentService) *PaymentsHandler {
	return &PaymentsHandler{service: paymentService}
}

// Create POST /payments.
func (h *PaymentsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	payment, err := h.service.Create(c.Context(), principal.Username, req.Amount, req.Currency)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewPaymentResponse(*payment))
}

// Success GET /payments/success.
func (h *PaymentsHandler) Success(c *fiber.Ctx) error {
	providerID := c.Query("token")
	if providerID == "" {
		return apperrors.NewValidationError("token required", nil)
	}
	payment, err := h.service.Complete(c.Context(), providerID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPaymentResponse(*payment))
}

// Cancel GET /payments/cancel.
func (h *PaymentsHandler) Cancel(c *fiber.Ctx) error {
	providerID := c.Query("token")
	if providerID == "" {
		return apperrors.NewValidationError("token required", nil)
	}
	payment, err := h.service.Cancel(c.Context(), providerID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPaymentResponse(*payment))
}

// Error GET /payments/error.
func (h *PaymentsHandler) Error(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "PAYMENT_FAILED",
			"message": "payment could not be processed",
		},
	})
}
