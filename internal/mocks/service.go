package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/segyhp/cuota-engine/internal/domain"
	"github.com/segyhp/cuota-engine/pkg/cuota"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockBillingService struct {
	mock.Mock
}

func (m *MockBillingService) QuoteCuotas(ctx context.Context, request *domain.QuoteRequest) (cuota.Info, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(cuota.Info), args.Error(1)
}

func (m *MockBillingService) CreateCourse(ctx context.Context, request *domain.CreateCourseRequest) (*domain.Course, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *MockBillingService) GetCourse(ctx context.Context, code string) (*domain.Course, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *MockBillingService) ListCourses(ctx context.Context, limit, offset int) (*domain.CourseListResponse, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CourseListResponse), args.Error(1)
}

func (m *MockBillingService) EnrollStudent(ctx context.Context, courseCode string, request *domain.EnrollRequest) (*domain.Enrollment, []*domain.EnrollmentCuota, error) {
	args := m.Called(ctx, courseCode, request)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Enrollment), args.Get(1).([]*domain.EnrollmentCuota), args.Error(2)
}

func (m *MockBillingService) GetSchedule(ctx context.Context, enrollmentID uuid.UUID) ([]*domain.EnrollmentCuota, error) {
	args := m.Called(ctx, enrollmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.EnrollmentCuota), args.Error(1)
}

func (m *MockBillingService) GetPayments(ctx context.Context, enrollmentID uuid.UUID) ([]*domain.Payment, error) {
	args := m.Called(ctx, enrollmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Payment), args.Error(1)
}

func (m *MockBillingService) GetOutstanding(ctx context.Context, enrollmentID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, enrollmentID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBillingService) IsDelinquent(ctx context.Context, enrollmentID uuid.UUID) (bool, error) {
	args := m.Called(ctx, enrollmentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBillingService) MakePayment(ctx context.Context, enrollmentID uuid.UUID, amount decimal.Decimal) (*domain.Payment, error) {
	args := m.Called(ctx, enrollmentID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

// NewMockBillingService creates a new mock billing service instance
func NewMockBillingService() *MockBillingService {
	return &MockBillingService{}
}
