package domain

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusExpired  PaymentStatus = "EXPIRED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

type PaymentMethod struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	AccountNumber string    `json:"accountNumber,omitempty"`
	AccountName   string    `json:"accountName,omitempty"`
}

type Payment struct {
	ID            uuid.UUID     `json:"id"`
	ReservationID uuid.UUID     `json:"reservationId"`
	MethodID      uuid.UUID     `json:"paymentMethodId"`
	Amount        int           `json:"amount"`
	Status        PaymentStatus `json:"status"`
	ProofURL      string        `json:"paymentProofUrl,omitempty"`
	ExpiresAt     time.Time     `json:"expiryDate"`
	PaidAt        *time.Time    `json:"paymentDate,omitempty"`
}
