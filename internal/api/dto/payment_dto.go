package dto

import "github.com/spec-kit/ecommerce-service/internal/domain"

// CreatePaymentRequest payload.
type CreatePaymentRequest struct {
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Currency string  `json:"currency" validate:"required,len=3"`
}

// PaymentResponse response.
type PaymentResponse struct {
	ID          string  `json:"paymentId"`
	ProviderID  string  `json:"providerId"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Status      string  `json:"status"`
	ApprovalURL string  `json:"approvalUrl,omitempty"`
}

// NewPaymentResponse maps a domain payment.
func NewPaymentResponse(payment domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          payment.ID,
		ProviderID:  payment.ProviderID,
		Amount:      payment.Amount,
		Currency:    payment.Currency,
		Status:      string(payment.Status),
		ApprovalURL: payment.ApprovalURL,
	}
}
