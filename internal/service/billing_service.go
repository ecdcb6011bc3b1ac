package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/cuota-engine/internal/config"
	"github.com/segyhp/cuota-engine/internal/domain"
	"github.com/segyhp/cuota-engine/internal/repository"
	"github.com/segyhp/cuota-engine/pkg/cuota"
	customError "github.com/segyhp/cuota-engine/pkg/errors"
	"github.com/segyhp/cuota-engine/pkg/utils"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	defaultDelinquencyThreshold = 2
	defaultPageSize             = 20
	maxPageSize                 = 100
)

// QuoteCache stores computed quotes; a nil cache disables caching
type QuoteCache interface {
	GetQuote(ctx context.Context, start, end *time.Time) (*cuota.Info, error)
	SetQuote(ctx context.Context, start, end *time.Time, info cuota.Info) error
}

type BillingService struct {
	CourseRepo     repository.CourseRepository
	EnrollmentRepo repository.EnrollmentRepository
	PaymentRepo    repository.PaymentRepository
	cache          QuoteCache
	config         *config.Config
	log            logrus.FieldLogger
	now            func() time.Time
}

func NewBillingService(
	courseRepo repository.CourseRepository,
	enrollmentRepo repository.EnrollmentRepository,
	paymentRepo repository.PaymentRepository,
	cache QuoteCache,
	config *config.Config,
	log logrus.FieldLogger,
) *BillingService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &BillingService{
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
		PaymentRepo:    paymentRepo,
		cache:          cache,
		config:         config,
		log:            log,
		now:            time.Now,
	}
}

// WithClock replaces the time source
func (s *BillingService) WithClock(now func() time.Time) *BillingService {
	s.now = now
	return s
}

// QuoteCuotas computes the cuota breakdown for a date span given as strings.
// Empty strings are absent bounds and produce the zero quote.
func (s *BillingService) QuoteCuotas(ctx context.Context, request *domain.QuoteRequest) (cuota.Info, error) {
	start, err := cuota.ParseOptionalDate(request.FechaInicio)
	if err != nil {
		return cuota.Info{}, customError.WrapInvalidDate(err)
	}
	end, err := cuota.ParseOptionalDate(request.FechaFin)
	if err != nil {
		return cuota.Info{}, customError.WrapInvalidDate(err)
	}

	if s.cache != nil {
		cached, err := s.cache.GetQuote(ctx, start, end)
		if err != nil {
			s.log.WithError(customError.WrapCacheError(err)).Warn("quote cache read failed")
		} else if cached != nil {
			return *cached, nil
		}
	}

	info := cuota.GetInfo(start, end)

	if s.cache != nil {
		if err := s.cache.SetQuote(ctx, start, end, info); err != nil {
			s.log.WithError(customError.WrapCacheError(err)).Warn("quote cache write failed")
		}
	}

	return info, nil
}

// CreateCourse creates a new course and prices it in cuotas
func (s *BillingService) CreateCourse(ctx context.Context, request *domain.CreateCourseRequest) (*domain.Course, error) {
	// 1. Normalise dates
	start, err := cuota.ParseDate(request.StartDate)
	if err != nil {
		return nil, customError.WrapInvalidDate(err)
	}
	end, err := cuota.ParseDate(request.EndDate)
	if err != nil {
		return nil, customError.WrapInvalidDate(err)
	}

	// 2. A zero count means the range is inverted
	cuotas := cuota.Calculate(&start, &end)
	if cuotas == 0 {
		return nil, customError.WrapInvalidCourseRange(request.StartDate, request.EndDate)
	}

	// 3. Check if course already exists
	existing, err := s.CourseRepo.GetByCode(ctx, request.Code)
	if err == nil && existing != nil {
		return nil, customError.WrapCourseAlreadyExists(request.Code)
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}

	fee := request.MonthlyFee
	if fee.IsZero() {
		fee = s.defaultMonthlyFee()
	}

	now := s.now()
	course := &domain.Course{
		ID:           uuid.New(),
		Code:         request.Code,
		Name:         request.Name,
		StartDate:    start,
		EndDate:      end,
		MonthlyFee:   fee,
		Cuotas:       cuotas,
		TotalDays:    cuota.TotalDays(start, end),
		DurationText: cuota.DurationText(start, end),
		TotalAmount:  utils.CalculateTotalAmount(fee, cuotas),
		Status:       domain.CourseStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// 4. Save course to database
	if err = s.CourseRepo.Create(ctx, course); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.log.WithFields(logrus.Fields{
		"course": course.Code,
		"cuotas": course.Cuotas,
	}).Info("course created")

	return course, nil
}

// GetCourse returns a course by code
func (s *BillingService) GetCourse(ctx context.Context, code string) (*domain.Course, error) {
	course, err := s.CourseRepo.GetByCode(ctx, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapCourseNotFound(code)
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return course, nil
}

// ListCourses returns one page of courses
func (s *BillingService) ListCourses(ctx context.Context, limit, offset int) (*domain.CourseListResponse, error) {
	if limit <= 0 {
		limit = s.pageSize()
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	courses, err := s.CourseRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &domain.CourseListResponse{Courses: courses, Limit: limit, Offset: offset}, nil
}

// EnrollStudent enrolls a student in a course and generates the cuota schedule
func (s *BillingService) EnrollStudent(ctx context.Context, courseCode string, request *domain.EnrollRequest) (*domain.Enrollment, []*domain.EnrollmentCuota, error) {
	course, err := s.GetCourse(ctx, courseCode)
	if err != nil {
		return nil, nil, err
	}
	if course.Status == domain.CourseStatusClosed {
		return nil, nil, customError.WrapCourseClosed(courseCode)
	}

	existing, err := s.EnrollmentRepo.GetByCourseAndStudent(ctx, courseCode, request.StudentID)
	if err == nil && existing != nil {
		return nil, nil, customError.WrapEnrollmentAlreadyExists(courseCode, request.StudentID)
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, nil, customError.WrapDatabaseError(err)
	}

	now := s.now()
	enrollment := &domain.Enrollment{
		ID:         uuid.New(),
		CourseCode: courseCode,
		StudentID:  request.StudentID,
		Status:     domain.EnrollmentStatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	schedule := buildSchedule(course, enrollment.ID, now)

	if err = s.EnrollmentRepo.Create(ctx, enrollment, schedule); err != nil {
		return nil, nil, customError.WrapDatabaseError(err)
	}

	return enrollment, schedule, nil
}

// buildSchedule lays out one cuota per accounting month starting at the course start date
func buildSchedule(course *domain.Course, enrollmentID uuid.UUID, now time.Time) []*domain.EnrollmentCuota {
	schedule := make([]*domain.EnrollmentCuota, 0, course.Cuotas)
	for number := 1; number <= course.Cuotas; number++ {
		schedule = append(schedule, &domain.EnrollmentCuota{
			ID:           uuid.New(),
			EnrollmentID: enrollmentID,
			Number:       number,
			DueAmount:    course.MonthlyFee,
			DueDate:      utils.CalculateDueDate(course.StartDate, number),
			Status:       domain.CuotaStatusPending,
			CreatedAt:    now,
		})
	}
	return schedule
}

// GetSchedule returns the cuota schedule of an enrollment
func (s *BillingService) GetSchedule(ctx context.Context, enrollmentID uuid.UUID) ([]*domain.EnrollmentCuota, error) {
	if _, err := s.getEnrollment(ctx, enrollmentID); err != nil {
		return nil, err
	}

	schedule, err := s.EnrollmentRepo.GetSchedule(ctx, enrollmentID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return schedule, nil
}

// GetPayments returns the payments made for an enrollment, oldest cuota first
func (s *BillingService) GetPayments(ctx context.Context, enrollmentID uuid.UUID) ([]*domain.Payment, error) {
	if _, err := s.getEnrollment(ctx, enrollmentID); err != nil {
		return nil, err
	}

	payments, err := s.PaymentRepo.GetByEnrollmentID(ctx, enrollmentID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if payments == nil {
		payments = []*domain.Payment{}
	}
	return payments, nil
}

// GetOutstanding calculates and returns the outstanding balance for an enrollment
func (s *BillingService) GetOutstanding(ctx context.Context, enrollmentID uuid.UUID) (decimal.Decimal, error) {
	schedule, err := s.GetSchedule(ctx, enrollmentID)
	if err != nil {
		return decimal.Zero, err
	}

	totalPaid, err := s.PaymentRepo.GetTotalPaid(ctx, enrollmentID)
	if err != nil {
		return decimal.Zero, customError.WrapDatabaseError(err)
	}

	// Outstanding = Sum of scheduled cuotas - Total Payments
	totalDue := decimal.Zero
	for _, c := range schedule {
		totalDue = totalDue.Add(c.DueAmount)
	}

	return totalDue.Sub(totalPaid), nil
}

// IsDelinquent checks if a student missed DELINQUENCY_THRESHOLD consecutive cuotas
func (s *BillingService) IsDelinquent(ctx context.Context, enrollmentID uuid.UUID) (bool, error) {
	schedule, err := s.GetSchedule(ctx, enrollmentID)
	if err != nil {
		return false, err
	}

	now := s.now()
	threshold := s.delinquencyThreshold()
	consecutiveMissed := 0

	for _, c := range schedule {
		if !utils.IsDateOverdue(c.DueDate, now) {
			break // Don't check future cuotas
		}

		if c.IsUnpaid() {
			consecutiveMissed++
		} else {
			consecutiveMissed = 0 // Reset counter if payment was made
		}

		if consecutiveMissed >= threshold {
			return true, nil
		}
	}

	return false, nil
}

// MakePayment pays the earliest unpaid cuota of an enrollment
func (s *BillingService) MakePayment(ctx context.Context, enrollmentID uuid.UUID, amount decimal.Decimal) (*domain.Payment, error) {
	if !amount.IsPositive() {
		return nil, customError.WrapInvalidPaymentAmount(amount.String())
	}

	// 1. Validate enrollment exists and is active
	enrollment, err := s.getEnrollment(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	if enrollment.Status == domain.EnrollmentStatusCompleted {
		return nil, customError.WrapEnrollmentClosed(enrollmentID.String())
	}

	// 2. Find the earliest unpaid cuota in the schedule
	schedule, err := s.EnrollmentRepo.GetSchedule(ctx, enrollmentID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	var earliestUnpaid *domain.EnrollmentCuota
	remaining := 0
	for _, c := range schedule {
		if !c.IsUnpaid() {
			continue
		}
		if earliestUnpaid == nil {
			earliestUnpaid = c
		}
		remaining++
	}
	if earliestUnpaid == nil {
		return nil, customError.WrapNoOutstandingBalance(enrollmentID.String())
	}

	// 3. Validate payment amount matches the cuota amount exactly
	if !amount.Equal(earliestUnpaid.DueAmount) {
		return nil, customError.WrapPaymentAmountMismatch(earliestUnpaid.DueAmount.String(), amount.String())
	}

	// 4. Create payment record, mark the cuota as paid and, on the last cuota,
	// complete the enrollment in the same transaction
	now := s.now()
	payment := &domain.Payment{
		ID:           uuid.New(),
		EnrollmentID: enrollmentID,
		CuotaNumber:  earliestUnpaid.Number,
		Amount:       amount,
		PaymentDate:  now,
		CreatedAt:    now,
	}
	if err = s.PaymentRepo.Create(ctx, payment, remaining == 1); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return payment, nil
}

// MarkOverdueCuotas flags every pending cuota whose due date passed before now
func (s *BillingService) MarkOverdueCuotas(ctx context.Context, now time.Time) (int64, error) {
	affected, err := s.EnrollmentRepo.MarkOverdue(ctx, now)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	s.log.WithField("cuotas", affected).Info("overdue cuotas marked")
	return affected, nil
}

// CloseEndedCourses closes every active course whose last day ended before now.
// Closed courses stop accepting enrollments.
func (s *BillingService) CloseEndedCourses(ctx context.Context, now time.Time) (int64, error) {
	affected, err := s.CourseRepo.CloseEnded(ctx, utils.StartOfDay(now))
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	s.log.WithField("courses", affected).Info("ended courses closed")
	return affected, nil
}

func (s *BillingService) getEnrollment(ctx context.Context, enrollmentID uuid.UUID) (*domain.Enrollment, error) {
	enrollment, err := s.EnrollmentRepo.GetByID(ctx, enrollmentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapEnrollmentNotFound(enrollmentID.String())
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return enrollment, nil
}

func (s *BillingService) defaultMonthlyFee() decimal.Decimal {
	if s.config == nil {
		return decimal.Zero
	}
	return s.config.GetDefaultMonthlyFee()
}

func (s *BillingService) delinquencyThreshold() int {
	if s.config == nil || s.config.Business.DelinquencyThreshold <= 0 {
		return defaultDelinquencyThreshold
	}
	return s.config.Business.DelinquencyThreshold
}

func (s *BillingService) pageSize() int {
	if s.config == nil || s.config.Business.DefaultPageSize <= 0 {
		return defaultPageSize
	}
	return s.config.Business.DefaultPageSize
}
