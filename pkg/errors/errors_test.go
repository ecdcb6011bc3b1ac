package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusinessError_Unwrap(t *testing.T) {
	err := WrapCourseNotFound("MAT-101")

	assert.True(t, errors.Is(err, ErrCourseNotFound))
	assert.Equal(t, "COURSE_NOT_FOUND: Course with code MAT-101 not found (course not found)", err.Error())

	wrapped := fmt.Errorf("service: %w", err)
	var businessErr *BusinessError
	assert.True(t, errors.As(wrapped, &businessErr))
	assert.Equal(t, ErrCodeCourseNotFound, businessErr.Code)
}

func TestBusinessError_WithoutCause(t *testing.T) {
	err := NewBusinessError("CUSTOM", "something happened", nil)
	assert.Equal(t, "CUSTOM: something happened", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "not found", err: WrapEnrollmentNotFound("abc"), expected: http.StatusNotFound},
		{name: "conflict", err: WrapCourseAlreadyExists("MAT-101"), expected: http.StatusConflict},
		{name: "mismatch", err: WrapPaymentAmountMismatch("100", "90"), expected: http.StatusUnprocessableEntity},
		{name: "invalid date", err: WrapInvalidDate(errors.New("bad")), expected: http.StatusBadRequest},
		{name: "range", err: WrapInvalidCourseRange("2024-02-01", "2024-01-01"), expected: http.StatusBadRequest},
		{name: "database", err: WrapDatabaseError(errors.New("boom")), expected: http.StatusInternalServerError},
		{name: "plain error", err: errors.New("boom"), expected: http.StatusInternalServerError},
		{name: "wrapped business error", err: fmt.Errorf("ctx: %w", WrapCourseClosed("X")), expected: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestWrapInvalidDate_KeepsSentinel(t *testing.T) {
	err := WrapInvalidDate(errors.New(`invalid date: "2024/01/01"`))
	assert.ErrorIs(t, err, ErrInvalidDate)
}
