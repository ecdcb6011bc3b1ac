package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/segyhp/cuota-engine/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type paymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment, completeEnrollment bool) error {
	paymentQuery := `
		INSERT INTO payments (id, enrollment_id, cuota_number, amount, payment_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	cuotaQuery := `
		UPDATE enrollment_cuotas
		SET status = 'paid'
		WHERE enrollment_id = $1 AND number = $2
	`
	enrollmentQuery := `
		UPDATE enrollments
		SET status = $2, updated_at = $3
		WHERE id = $1
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, paymentQuery,
		payment.ID,
		payment.EnrollmentID,
		payment.CuotaNumber,
		payment.Amount,
		payment.PaymentDate,
		payment.CreatedAt,
	)
	if err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, cuotaQuery, payment.EnrollmentID, payment.CuotaNumber); err != nil {
		return err
	}

	if completeEnrollment {
		_, err = tx.ExecContext(ctx, enrollmentQuery, payment.EnrollmentID, domain.EnrollmentStatusCompleted, payment.CreatedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *paymentRepository) GetByEnrollmentID(ctx context.Context, enrollmentID uuid.UUID) ([]*domain.Payment, error) {
	query := `
		SELECT id, enrollment_id, cuota_number, amount, payment_date, created_at
		FROM payments
		WHERE enrollment_id = $1
		ORDER BY cuota_number
	`

	var payments []*domain.Payment
	err := r.db.SelectContext(ctx, &payments, query, enrollmentID)
	if err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepository) GetTotalPaid(ctx context.Context, enrollmentID uuid.UUID) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE enrollment_id = $1
	`

	var total decimal.Decimal
	err := r.db.GetContext(ctx, &total, query, enrollmentID)
	if err != nil {
		return decimal.Zero, err
	}

	return total, nil
}
