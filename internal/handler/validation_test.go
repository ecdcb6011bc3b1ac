package handler

import (
	"testing"

	"github.com/segyhp/cuota-engine/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidator_Fecha(t *testing.T) {
	v := newValidator()

	tests := []struct {
		name    string
		request domain.QuoteRequest
		valid   bool
	}{
		{name: "both dates", request: domain.QuoteRequest{FechaInicio: "2024-01-01", FechaFin: "2024-02-16T10:30:00Z"}, valid: true},
		{name: "both absent", request: domain.QuoteRequest{}, valid: true},
		{name: "whitespace is absent", request: domain.QuoteRequest{FechaInicio: "  ", FechaFin: "\t"}, valid: true},
		{name: "padded date", request: domain.QuoteRequest{FechaInicio: " 2024-01-01 "}, valid: true},
		{name: "day first", request: domain.QuoteRequest{FechaInicio: "16/02/2024"}, valid: false},
		{name: "impossible day", request: domain.QuoteRequest{FechaFin: "2024-02-30"}, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(&tt.request)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidator_CourseDates(t *testing.T) {
	v := newValidator()
	base := domain.CreateCourseRequest{
		Code:       "MAT-101",
		Name:       "Matemática I",
		StartDate:  "2024-01-01",
		EndDate:    "2024-02-16",
		MonthlyFee: decimal.NewFromInt(25000),
	}

	assert.NoError(t, v.Struct(&base))

	blank := base
	blank.EndDate = "   "
	assert.Error(t, v.Struct(&blank))

	negative := base
	negative.MonthlyFee = decimal.NewFromInt(-1)
	assert.Error(t, v.Struct(&negative))
}
