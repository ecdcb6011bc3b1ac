package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/cuota-engine/pkg/cuota"
	"github.com/shopspring/decimal"
)

const (
	CourseStatusActive = "active"
	CourseStatusClosed = "closed"
)

// Course represents a course entity billed in cuotas
type Course struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	Code         string          `json:"code" db:"code"`
	Name         string          `json:"name" db:"name"`
	StartDate    time.Time       `json:"start_date" db:"start_date"`
	EndDate      time.Time       `json:"end_date" db:"end_date"`
	MonthlyFee   decimal.Decimal `json:"monthly_fee" db:"monthly_fee"`
	Cuotas       int             `json:"cuotas" db:"cuotas"`
	TotalDays    int             `json:"total_days" db:"total_days"`
	DurationText string          `json:"duration_text" db:"duration_text"`
	TotalAmount  decimal.Decimal `json:"total_amount" db:"total_amount"`
	Status       string          `json:"status" db:"status"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

// DTOs for requests and responses

type QuoteRequest struct {
	FechaInicio string `json:"fechaInicio" validate:"fecha"`
	FechaFin    string `json:"fechaFin" validate:"fecha"`
}

type QuoteResponse = cuota.Info

type CreateCourseRequest struct {
	Code         string          `json:"code" validate:"required,max=32"`
	Name         string          `json:"name" validate:"required,max=255"`
	StartDate    string          `json:"start_date" validate:"required,notblank,fecha"`
	EndDate      string          `json:"end_date" validate:"required,notblank,fecha"`
	MonthlyFee   decimal.Decimal `json:"monthly_fee" validate:"decimal_gte=0"`
}

type CourseListResponse struct {
	Courses []*Course `json:"courses"`
	Limit   int       `json:"limit"`
	Offset  int       `json:"offset"`
}
