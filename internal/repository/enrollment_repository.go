package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/cuota-engine/internal/domain"

	"github.com/jmoiron/sqlx"
)

type enrollmentRepository struct {
	db *sqlx.DB
}

func NewEnrollmentRepository(db *sqlx.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *domain.Enrollment, schedule []*domain.EnrollmentCuota) error {
	enrollmentQuery := `
		INSERT INTO enrollments (id, course_code, student_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	cuotaQuery := `
		INSERT INTO enrollment_cuotas (id, enrollment_id, number, due_amount, due_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, enrollmentQuery,
		enrollment.ID,
		enrollment.CourseCode,
		enrollment.StudentID,
		enrollment.Status,
		enrollment.CreatedAt,
		enrollment.UpdatedAt,
	)
	if err != nil {
		return err
	}

	for _, c := range schedule {
		_, err = tx.ExecContext(ctx, cuotaQuery,
			c.ID,
			c.EnrollmentID,
			c.Number,
			c.DueAmount,
			c.DueDate,
			c.Status,
			c.CreatedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *enrollmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Enrollment, error) {
	query := `
		SELECT id, course_code, student_id, status, created_at, updated_at
		FROM enrollments
		WHERE id = $1
	`

	var enrollment domain.Enrollment
	err := r.db.GetContext(ctx, &enrollment, query, id)
	if err != nil {
		return nil, err
	}

	return &enrollment, nil
}

func (r *enrollmentRepository) GetByCourseAndStudent(ctx context.Context, courseCode, studentID string) (*domain.Enrollment, error) {
	query := `
		SELECT id, course_code, student_id, status, created_at, updated_at
		FROM enrollments
		WHERE course_code = $1 AND student_id = $2
	`

	var enrollment domain.Enrollment
	err := r.db.GetContext(ctx, &enrollment, query, courseCode, studentID)
	if err != nil {
		return nil, err
	}

	return &enrollment, nil
}

func (r *enrollmentRepository) GetSchedule(ctx context.Context, id uuid.UUID) ([]*domain.EnrollmentCuota, error) {
	query := `
		SELECT id, enrollment_id, number, due_amount, due_date, status, created_at
		FROM enrollment_cuotas
		WHERE enrollment_id = $1
		ORDER BY number
	`

	var schedule []*domain.EnrollmentCuota
	err := r.db.SelectContext(ctx, &schedule, query, id)
	if err != nil {
		return nil, err
	}

	return schedule, nil
}

func (r *enrollmentRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE enrollment_cuotas
		SET status = 'overdue'
		WHERE status = 'pending' AND due_date < $1
	`

	result, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
