package repository

import (
	"context"
	"time"

	"github.com/segyhp/cuota-engine/internal/domain"

	"github.com/jmoiron/sqlx"
)

type courseRepository struct {
	db *sqlx.DB
}

func NewCourseRepository(db *sqlx.DB) CourseRepository {
	return &courseRepository{db: db}
}

const courseColumns = `id, code, name, start_date, end_date, monthly_fee, cuotas, total_days, duration_text, total_amount, status, created_at, updated_at`

func (r *courseRepository) Create(ctx context.Context, course *domain.Course) error {
	query := `
		INSERT INTO courses (` + courseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.ExecContext(ctx, query,
		course.ID,
		course.Code,
		course.Name,
		course.StartDate,
		course.EndDate,
		course.MonthlyFee,
		course.Cuotas,
		course.TotalDays,
		course.DurationText,
		course.TotalAmount,
		course.Status,
		course.CreatedAt,
		course.UpdatedAt,
	)

	return err
}

func (r *courseRepository) GetByCode(ctx context.Context, code string) (*domain.Course, error) {
	query := `
		SELECT ` + courseColumns + `
		FROM courses
		WHERE code = $1
	`

	var course domain.Course
	err := r.db.GetContext(ctx, &course, query, code)
	if err != nil {
		return nil, err
	}

	return &course, nil
}

func (r *courseRepository) List(ctx context.Context, limit, offset int) ([]*domain.Course, error) {
	query := `
		SELECT ` + courseColumns + `
		FROM courses
		ORDER BY start_date, code
		LIMIT $1 OFFSET $2
	`

	courses := []*domain.Course{}
	err := r.db.SelectContext(ctx, &courses, query, limit, offset)
	if err != nil {
		return nil, err
	}

	return courses, nil
}

func (r *courseRepository) CloseEnded(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		UPDATE courses
		SET status = 'closed', updated_at = $2
		WHERE status = 'active' AND end_date < $1
	`

	result, err := r.db.ExecContext(ctx, query, cutoff, time.Now())
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
