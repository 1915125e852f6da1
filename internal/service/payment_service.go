package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/ecommerce-service/internal/domain"
	"github.com/spec-kit/ecommerce-service/internal/events"
	"github.com/spec-kit/ecommerce-service/internal/payments"
	"github.com/spec-kit/ecommerce-service/internal/repository"
)

// PaymentService records payments and drives the external gateway.
type PaymentService struct {
	payments   repository.PaymentRepository
	gateway    payments.Gateway
	dispatcher events.Dispatcher
}

// NewPaymentService builds the service.
func NewPaymentService(repo repository.PaymentRepository, gateway payments.Gateway, dispatcher events.Dispatcher) *PaymentService {
	return &PaymentService{payments: repo, gateway: gateway, dispatcher: dispatcher}
}

// Create opens a gateway order and records it; the caller is redirected to
// the returned approval URL.
func (s *PaymentService) Create(ctx context.Context, username string, amount float64, currency string) (*domain.Payment, error) {
	order, err := s.gateway.CreateOrder(ctx, amount, currency)
	if err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		ID:          uuid.NewString(),
		Username:    username,
		ProviderID:  order.ProviderID,
		Amount:      amount,
		Currency:    currency,
		Status:      domain.PaymentStatusCreated,
		ApprovalURL: order.ApprovalURL,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// Complete captures an approved gateway order and marks the payment done.
func (s *PaymentService) Complete(ctx context.Context, providerID string) (*domain.Payment, error) {
	payment, err := s.payments.GetByProviderID(ctx, providerID)
	if err != nil {
		return nil, err
	}

	if err := s.gateway.CaptureOrder(ctx, providerID); err != nil {
		_ = s.payments.UpdateStatus(ctx, payment.ID, domain.PaymentStatusFailed)
		return nil, err
	}
	if err := s.payments.UpdateStatus(ctx, payment.ID, domain.PaymentStatusCompleted); err != nil {
		return nil, err
	}
	payment.Status = domain.PaymentStatusCompleted

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventPaymentCompleted,
			Username:  payment.Username,
			Timestamp: time.Now(),
			Payload: events.PaymentCompletedPayload{
				PaymentID: payment.ID,
				Amount:    payment.Amount,
				Currency:  payment.Currency,
			},
		})
	}
	return payment, nil
}

// Cancel marks a created payment as abandoned by the buyer.
func (s *PaymentService) Cancel(ctx context.Context, providerID string) (*domain.Payment, error) {
	payment, err := s.payments.GetByProviderID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if err := s.payments.UpdateStatus(ctx, payment.ID, domain.PaymentStatusCanceled); err != nil {
		return nil, err
	}
	payment.Status = domain.PaymentStatusCanceled
	return payment, nil
}
