package utils

import (
	"time"

	"github.com/segyhp/cuota-engine/pkg/cuota"

	"github.com/shopspring/decimal"
)

// CalculateTotalAmount calculates what a course costs over all its cuotas
// Formula: MonthlyFee * Cuotas
func CalculateTotalAmount(monthlyFee decimal.Decimal, cuotas int) decimal.Decimal {
	total := monthlyFee.Mul(decimal.NewFromInt(int64(cuotas)))

	// Round to 2 decimal places
	return total.Round(2)
}

// CalculateDueDate calculates the due date for a specific cuota
// Cuota 1 is due on the start date, cuota 2 one accounting month later, etc.
func CalculateDueDate(startDate time.Time, cuotaNumber int) time.Time {
	days := (cuotaNumber - 1) * cuota.DaysPerMonth
	return startDate.AddDate(0, 0, days)
}

// IsDateOverdue checks if a due date has passed at the given instant
func IsDateOverdue(dueDate, now time.Time) bool {
	return now.After(dueDate)
}

// StartOfDay truncates t to midnight in its own location
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
