package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Business logic constants
const (
	CuotaStatusPending = "pending"
	CuotaStatusPaid    = "paid"
	CuotaStatusOverdue = "overdue"
)

// EnrollmentCuota represents one installment owed by an enrollment
type EnrollmentCuota struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	EnrollmentID uuid.UUID       `json:"enrollment_id" db:"enrollment_id"`
	Number       int             `json:"number" db:"number"`
	DueAmount    decimal.Decimal `json:"due_amount" db:"due_amount"`
	DueDate      time.Time       `json:"due_date" db:"due_date"`
	Status       string          `json:"status" db:"status"` // pending, paid, overdue
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

// IsUnpaid reports whether the cuota still has to be paid
func (c *EnrollmentCuota) IsUnpaid() bool {
	return c.Status == CuotaStatusPending || c.Status == CuotaStatusOverdue
}

type ScheduleResponse struct {
	EnrollmentID uuid.UUID          `json:"enrollment_id"`
	Schedule     []*EnrollmentCuota `json:"schedule"`
}
