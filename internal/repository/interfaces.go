package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/cuota-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// CourseRepository defines the interface for course data operations
type CourseRepository interface {
	// Create creates a new course
	Create(ctx context.Context, course *domain.Course) error

	// GetByCode retrieves a course by its code
	GetByCode(ctx context.Context, code string) (*domain.Course, error)

	// List returns a page of courses ordered by start date
	List(ctx context.Context, limit, offset int) ([]*domain.Course, error)

	// CloseEnded closes active courses whose end date is before cutoff
	CloseEnded(ctx context.Context, cutoff time.Time) (int64, error)
}

// EnrollmentRepository defines the interface for enrollment and cuota schedule operations
type EnrollmentRepository interface {
	// Create stores an enrollment together with its cuota schedule
	Create(ctx context.Context, enrollment *domain.Enrollment, schedule []*domain.EnrollmentCuota) error

	// GetByID retrieves an enrollment by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Enrollment, error)

	// GetByCourseAndStudent retrieves the enrollment of a student in a course
	GetByCourseAndStudent(ctx context.Context, courseCode, studentID string) (*domain.Enrollment, error)

	// GetSchedule retrieves the cuota schedule of an enrollment
	GetSchedule(ctx context.Context, id uuid.UUID) ([]*domain.EnrollmentCuota, error)

	// MarkOverdue moves pending cuotas due before now to overdue
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	// Create stores a payment and marks the paid cuota in one transaction.
	// When completeEnrollment is set the enrollment is closed in the same transaction.
	Create(ctx context.Context, payment *domain.Payment, completeEnrollment bool) error

	// GetByEnrollmentID retrieves all payments for an enrollment
	GetByEnrollmentID(ctx context.Context, enrollmentID uuid.UUID) ([]*domain.Payment, error)

	// GetTotalPaid calculates total amount paid for an enrollment
	GetTotalPaid(ctx context.Context, enrollmentID uuid.UUID) (decimal.Decimal, error)
}
