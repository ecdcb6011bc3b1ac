package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/cuota-engine/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockCourseRepository struct {
	mock.Mock
}

func (m *MockCourseRepository) Create(ctx context.Context, course *domain.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *MockCourseRepository) GetByCode(ctx context.Context, code string) (*domain.Course, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *MockCourseRepository) List(ctx context.Context, limit, offset int) ([]*domain.Course, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Course), args.Error(1)
}

func (m *MockCourseRepository) CloseEnded(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockEnrollmentRepository struct {
	mock.Mock
}

func (m *MockEnrollmentRepository) Create(ctx context.Context, enrollment *domain.Enrollment, schedule []*domain.EnrollmentCuota) error {
	args := m.Called(ctx, enrollment, schedule)
	return args.Error(0)
}

func (m *MockEnrollmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Enrollment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) GetByCourseAndStudent(ctx context.Context, courseCode, studentID string) (*domain.Enrollment, error) {
	args := m.Called(ctx, courseCode, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) GetSchedule(ctx context.Context, id uuid.UUID) ([]*domain.EnrollmentCuota, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.EnrollmentCuota), args.Error(1)
}

func (m *MockEnrollmentRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.Payment, completeEnrollment bool) error {
	args := m.Called(ctx, payment, completeEnrollment)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByEnrollmentID(ctx context.Context, enrollmentID uuid.UUID) ([]*domain.Payment, error) {
	args := m.Called(ctx, enrollmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetTotalPaid(ctx context.Context, enrollmentID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, enrollmentID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
