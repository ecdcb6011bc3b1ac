package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/segyhp/cuota-engine/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "postgres"), mock
}

func TestCourseRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCourseRepository(db)

	course := &domain.Course{
		ID:           uuid.New(),
		Code:         "MAT-101",
		Name:         "Matemática I",
		StartDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2024, 2, 16, 0, 0, 0, 0, time.UTC),
		MonthlyFee:   decimal.NewFromInt(25000),
		Cuotas:       2,
		TotalDays:    47,
		DurationText: "1 mes y 17 días",
		TotalAmount:  decimal.NewFromInt(50000),
		Status:       domain.CourseStatusActive,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO courses")).
		WithArgs(course.ID, "MAT-101", "Matemática I", course.StartDate, course.EndDate,
			sqlmock.AnyArg(), 2, 47, "1 mes y 17 días", sqlmock.AnyArg(), domain.CourseStatusActive,
			sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), course))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepository_GetByCode(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCourseRepository(db)

	id := uuid.New()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 16, 0, 0, 0, 0, time.UTC)
	columns := []string{"id", "code", "name", "start_date", "end_date", "monthly_fee", "cuotas",
		"total_days", "duration_text", "total_amount", "status", "created_at", "updated_at"}

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM courses")).
			WithArgs("MAT-101").
			WillReturnRows(sqlmock.NewRows(columns).AddRow(
				id.String(), "MAT-101", "Matemática I", start, end, "25000.00", 2,
				47, "1 mes y 17 días", "50000.00", "active", start, start))

		course, err := repo.GetByCode(context.Background(), "MAT-101")
		require.NoError(t, err)
		assert.Equal(t, id, course.ID)
		assert.Equal(t, 2, course.Cuotas)
		assert.True(t, course.MonthlyFee.Equal(decimal.NewFromInt(25000)))
		assert.True(t, course.TotalAmount.Equal(decimal.NewFromInt(50000)))
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM courses")).
			WithArgs("NOPE").
			WillReturnRows(sqlmock.NewRows(columns))

		course, err := repo.GetByCode(context.Background(), "NOPE")
		assert.Nil(t, course)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCourseRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $1 OFFSET $2")).
		WithArgs(20, 40).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code"}))

	courses, err := repo.List(context.Background(), 20, 40)
	require.NoError(t, err)
	assert.NotNil(t, courses)
	assert.Empty(t, courses)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepository_CloseEnded(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCourseRepository(db)

	cutoff := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("SET status = 'closed'")).
		WithArgs(cutoff, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))

	affected, err := repo.CloseEnded(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepository_Create(t *testing.T) {
	enrollment := &domain.Enrollment{
		ID:         uuid.New(),
		CourseCode: "MAT-101",
		StudentID:  "STU-1",
		Status:     domain.EnrollmentStatusActive,
	}
	schedule := []*domain.EnrollmentCuota{
		{ID: uuid.New(), EnrollmentID: enrollment.ID, Number: 1, DueAmount: decimal.NewFromInt(100), Status: domain.CuotaStatusPending},
		{ID: uuid.New(), EnrollmentID: enrollment.ID, Number: 2, DueAmount: decimal.NewFromInt(100), Status: domain.CuotaStatusPending},
	}

	t.Run("commits enrollment and schedule", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewEnrollmentRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO enrollments")).
			WithArgs(enrollment.ID, "MAT-101", "STU-1", "active", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		for _, c := range schedule {
			mock.ExpectExec(regexp.QuoteMeta("INSERT INTO enrollment_cuotas")).
				WithArgs(c.ID, enrollment.ID, c.Number, sqlmock.AnyArg(), sqlmock.AnyArg(), "pending", sqlmock.AnyArg()).
				WillReturnResult(sqlmock.NewResult(0, 1))
		}
		mock.ExpectCommit()

		require.NoError(t, repo.Create(context.Background(), enrollment, schedule))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when a cuota fails", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewEnrollmentRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO enrollments")).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO enrollment_cuotas")).
			WillReturnError(errors.New("duplicate key"))
		mock.ExpectRollback()

		err := repo.Create(context.Background(), enrollment, schedule)
		assert.EqualError(t, err, "duplicate key")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEnrollmentRepository_GetSchedule(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEnrollmentRepository(db)

	enrollmentID := uuid.New()
	due := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM enrollment_cuotas")).
		WithArgs(enrollmentID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "enrollment_id", "number", "due_amount", "due_date", "status", "created_at"}).
			AddRow(uuid.New().String(), enrollmentID.String(), 1, "100.00", due, "paid", due).
			AddRow(uuid.New().String(), enrollmentID.String(), 2, "100.00", due.AddDate(0, 0, 30), "pending", due))

	schedule, err := repo.GetSchedule(context.Background(), enrollmentID)
	require.NoError(t, err)
	require.Len(t, schedule, 2)
	assert.Equal(t, 1, schedule[0].Number)
	assert.Equal(t, domain.CuotaStatusPending, schedule[1].Status)
	assert.True(t, schedule[1].IsUnpaid())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepository_MarkOverdue(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEnrollmentRepository(db)

	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("SET status = 'overdue'")).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 4))

	affected, err := repo.MarkOverdue(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(4), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepository_Create(t *testing.T) {
	payment := &domain.Payment{
		ID:           uuid.New(),
		EnrollmentID: uuid.New(),
		CuotaNumber:  3,
		Amount:       decimal.NewFromInt(100),
		CreatedAt:    time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
	}

	expectPayment := func(mock sqlmock.Sqlmock) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO payments")).
			WithArgs(payment.ID, payment.EnrollmentID, 3, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta("SET status = 'paid'")).
			WithArgs(payment.EnrollmentID, 3).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	t.Run("intermediate cuota leaves the enrollment alone", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPaymentRepository(db)

		expectPayment(mock)
		mock.ExpectCommit()

		require.NoError(t, repo.Create(context.Background(), payment, false))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("last cuota completes the enrollment in the same transaction", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPaymentRepository(db)

		expectPayment(mock)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE enrollments")).
			WithArgs(payment.EnrollmentID, domain.EnrollmentStatusCompleted, payment.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Create(context.Background(), payment, true))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failed completion rolls back the payment", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPaymentRepository(db)

		expectPayment(mock)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE enrollments")).
			WillReturnError(errors.New("deadlock detected"))
		mock.ExpectRollback()

		err := repo.Create(context.Background(), payment, true)
		assert.EqualError(t, err, "deadlock detected")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPaymentRepository_GetByEnrollmentID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPaymentRepository(db)

	enrollmentID := uuid.New()
	paidAt := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY cuota_number")).
		WithArgs(enrollmentID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "enrollment_id", "cuota_number", "amount", "payment_date", "created_at"}).
			AddRow(uuid.New().String(), enrollmentID.String(), 1, "100.00", paidAt, paidAt).
			AddRow(uuid.New().String(), enrollmentID.String(), 2, "100.00", paidAt.AddDate(0, 1, 0), paidAt.AddDate(0, 1, 0)))

	payments, err := repo.GetByEnrollmentID(context.Background(), enrollmentID)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, 2, payments[1].CuotaNumber)
	assert.True(t, payments[0].Amount.Equal(decimal.NewFromInt(100)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepository_GetTotalPaid(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPaymentRepository(db)

	enrollmentID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(amount), 0)")).
		WithArgs(enrollmentID).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("250.50"))

	total, err := repo.GetTotalPaid(context.Background(), enrollmentID)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("250.50")))
	assert.NoError(t, mock.ExpectationsWereMet())
}
