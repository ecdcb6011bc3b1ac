package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EnrollmentStatusActive    = "active"
	EnrollmentStatusCompleted = "completed"
)

// Enrollment links a student to a course and owns the cuota schedule
type Enrollment struct {
	ID         uuid.UUID `json:"id" db:"id"`
	CourseCode string    `json:"course_code" db:"course_code"`
	StudentID  string    `json:"student_id" db:"student_id"`
	Status     string    `json:"status" db:"status"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

type EnrollRequest struct {
	StudentID string `json:"student_id" validate:"required,max=64"`
}

type EnrollResponse struct {
	Enrollment *Enrollment        `json:"enrollment"`
	Schedule   []*EnrollmentCuota `json:"schedule"`
}

type OutstandingResponse struct {
	EnrollmentID uuid.UUID       `json:"enrollment_id"`
	Outstanding  decimal.Decimal `json:"outstanding"`
}

type DelinquentResponse struct {
	EnrollmentID uuid.UUID `json:"enrollment_id"`
	IsDelinquent bool      `json:"is_delinquent"`
}
