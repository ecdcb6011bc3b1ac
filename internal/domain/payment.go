package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment records the payment of a single cuota
type Payment struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	EnrollmentID uuid.UUID       `json:"enrollment_id" db:"enrollment_id"`
	CuotaNumber  int             `json:"cuota_number" db:"cuota_number"`
	Amount       decimal.Decimal `json:"amount" db:"amount"`
	PaymentDate  time.Time       `json:"payment_date" db:"payment_date"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

type PaymentHistoryResponse struct {
	EnrollmentID uuid.UUID  `json:"enrollment_id"`
	Payments     []*Payment `json:"payments"`
}

type MakePaymentRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"decimal_gt=0"`
}
