package domain

import "time"

// PaymentStatus enumerates gateway payment states.
type PaymentStatus string

const (
	PaymentStatusCreated   PaymentStatus = "CREATED"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusCanceled  PaymentStatus = "CANCELED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

// Payment records one interaction with the external payment gateway.
type Payment struct {
	ID             string
	Username       string
	ProviderID     string
	Amount         float64
	Currency       string
	Status         PaymentStatus
	ApprovalURL    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
