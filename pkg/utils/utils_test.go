package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateTotalAmount(t *testing.T) {
	tests := []struct {
		name     string
		fee      decimal.Decimal
		cuotas   int
		expected decimal.Decimal
	}{
		{
			name:     "standard course",
			fee:      decimal.NewFromInt(25000),
			cuotas:   4,
			expected: decimal.NewFromInt(100000),
		},
		{
			name:     "fee with cents",
			fee:      decimal.RequireFromString("1999.995"),
			cuotas:   2,
			expected: decimal.RequireFromString("3999.99"),
		},
		{
			name:     "free course",
			fee:      decimal.Zero,
			cuotas:   6,
			expected: decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateTotalAmount(tt.fee, tt.cuotas)
			assert.True(t, result.Equal(tt.expected),
				"Expected %v, but got %v", tt.expected, result)
		})
	}
}

func TestCalculateDueDate(t *testing.T) {
	baseDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		startDate   time.Time
		cuotaNumber int
		expected    time.Time
	}{
		{
			name:        "first cuota is due at start",
			startDate:   baseDate,
			cuotaNumber: 1,
			expected:    baseDate,
		},
		{
			name:        "second cuota",
			startDate:   baseDate,
			cuotaNumber: 2,
			expected:    time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:        "twelfth cuota",
			startDate:   baseDate,
			cuotaNumber: 12,
			expected:    baseDate.AddDate(0, 0, 330),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateDueDate(tt.startDate, tt.cuotaNumber)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestIsDateOverdue(t *testing.T) {
	due := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.False(t, IsDateOverdue(due, due))
	assert.False(t, IsDateOverdue(due, due.Add(-time.Hour)))
	assert.True(t, IsDateOverdue(due, due.Add(time.Second)))
}

func TestStartOfDay(t *testing.T) {
	instant := time.Date(2024, 5, 17, 18, 45, 12, 99, time.UTC)
	assert.Equal(t, time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC), StartOfDay(instant))
}
