package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/ecommerce-service/internal/domain"
	"github.com/spec-kit/ecommerce-service/internal/events"
	"github.com/spec-kit/ecommerce-service/internal/payments"
)

type fakePaymentRepo struct {
	records map[string]domain.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{records: map[string]domain.Payment{}}
}

func (f *fakePaymentRepo) Create(_ context.Context, payment *domain.Payment) error {
	f.records[payment.ID] = *payment
	return nil
}

func (f *fakePaymentRepo) GetByProviderID(_ context.Context, providerID string) (*domain.Payment, error) {
	for _, payment := range f.records {
		if payment.ProviderID == providerID {
			return &payment, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakePaymentRepo) UpdateStatus(_ context.Context, id string, status domain.PaymentStatus) error {
	payment, ok := f.records[id]
	if !ok {
		return pgx.ErrNoRows
	}
	payment.Status = status
	f.records[id] = payment
	return nil
}

type fakeGateway struct {
	captureErr error
	captured   []string
}

func (f *fakeGateway) CreateOrder(_ context.Context, amount float64, currency string) (*payments.GatewayOrder, error) {
	return &payments.GatewayOrder{ProviderID: "PROV-1", ApprovalURL: "https://gateway.test/approve"}, nil
}

func (f *fakeGateway) CaptureOrder(_ context.Context, providerID string) error {
	if f.captureErr != nil {
		return f.captureErr
	}
	f.captured = append(f.captured, providerID)
	return nil
}

func TestPaymentCreateAndComplete(t *testing.T) {
	repo := newFakePaymentRepo()
	gateway := &fakeGateway{}
	dispatcher := &fakeDispatcher{}
	svc := NewPaymentService(repo, gateway, dispatcher)
	ctx := context.Background()

	payment, err := svc.Create(ctx, "alice", 49.90, "USD")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if payment.Status != domain.PaymentStatusCreated {
		t.Errorf("status = %q, want CREATED", payment.Status)
	}
	if payment.ApprovalURL == "" {
		t.Error("approval URL not recorded")
	}

	completed, err := svc.Complete(ctx, payment.ProviderID)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if completed.Status != domain.PaymentStatusCompleted {
		t.Errorf("status = %q, want COMPLETED", completed.Status)
	}
	if len(gateway.captured) != 1 || gateway.captured[0] != payment.ProviderID {
		t.Errorf("captured = %v, want [%s]", gateway.captured, payment.ProviderID)
	}

	published := dispatcher.events()
	if len(published) != 1 || published[0].Type != events.EventPaymentCompleted {
		t.Fatalf("events = %v, want one payment_completed", published)
	}
}

func TestPaymentCompleteCaptureFailure(t *testing.T) {
	repo := newFakePaymentRepo()
	gateway := &fakeGateway{captureErr: errors.New("gateway unavailable")}
	svc := NewPaymentService(repo, gateway, &fakeDispatcher{})
	ctx := context.Background()

	payment, err := svc.Create(ctx, "alice", 10, "USD")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Complete(ctx, payment.ProviderID); err == nil {
		t.Fatal("Complete succeeded despite capture failure")
	}
	stored := repo.records[payment.ID]
	if stored.Status != domain.PaymentStatusFailed {
		t.Errorf("status = %q, want FAILED", stored.Status)
	}
}

func TestPaymentCancel(t *testing.T) {
	repo := newFakePaymentRepo()
	svc := NewPaymentService(repo, &fakeGateway{}, &fakeDispatcher{})
	ctx := context.Background()

	payment, err := svc.Create(ctx, "alice", 10, "USD")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	canceled, err := svc.Cancel(ctx, payment.ProviderID)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if canceled.Status != domain.PaymentStatusCanceled {
		t.Errorf("status = %q, want CANCELED", canceled.Status)
	}
}
