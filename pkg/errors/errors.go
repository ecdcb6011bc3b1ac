package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors
var (
	ErrCourseNotFound          = errors.New("course not found")
	ErrCourseAlreadyExists     = errors.New("course already exists")
	ErrCourseClosed            = errors.New("course is closed")
	ErrInvalidCourseRange      = errors.New("course end date must not be before start date")
	ErrInvalidDate             = errors.New("invalid date")
	ErrEnrollmentNotFound      = errors.New("enrollment not found")
	ErrEnrollmentAlreadyExists = errors.New("enrollment already exists")
	ErrEnrollmentClosed        = errors.New("enrollment is already completed")
	ErrInvalidPaymentAmount    = errors.New("invalid payment amount")
	ErrPaymentAmountMismatch   = errors.New("payment amount must match cuota amount exactly")
	ErrNoOutstandingBalance    = errors.New("no outstanding balance")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeCourseNotFound          = "COURSE_NOT_FOUND"
	ErrCodeCourseAlreadyExists     = "COURSE_ALREADY_EXISTS"
	ErrCodeCourseClosed            = "COURSE_CLOSED"
	ErrCodeInvalidCourseRange      = "INVALID_COURSE_RANGE"
	ErrCodeInvalidDate             = "INVALID_DATE"
	ErrCodeEnrollmentNotFound      = "ENROLLMENT_NOT_FOUND"
	ErrCodeEnrollmentAlreadyExists = "ENROLLMENT_ALREADY_EXISTS"
	ErrCodeEnrollmentClosed        = "ENROLLMENT_CLOSED"
	ErrCodeInvalidPaymentAmount    = "INVALID_PAYMENT_AMOUNT"
	ErrCodePaymentAmountMismatch   = "PAYMENT_AMOUNT_MISMATCH"
	ErrCodeNoOutstandingBalance    = "NO_OUTSTANDING_BALANCE"
	ErrCodeDatabaseError           = "DATABASE_ERROR"
	ErrCodeCacheError              = "CACHE_ERROR"
)

var statusByCode = map[string]int{
	ErrCodeCourseNotFound:          http.StatusNotFound,
	ErrCodeEnrollmentNotFound:      http.StatusNotFound,
	ErrCodeCourseAlreadyExists:     http.StatusConflict,
	ErrCodeEnrollmentAlreadyExists: http.StatusConflict,
	ErrCodeCourseClosed:            http.StatusUnprocessableEntity,
	ErrCodeEnrollmentClosed:        http.StatusUnprocessableEntity,
	ErrCodeNoOutstandingBalance:    http.StatusUnprocessableEntity,
	ErrCodePaymentAmountMismatch:   http.StatusUnprocessableEntity,
	ErrCodeInvalidCourseRange:      http.StatusBadRequest,
	ErrCodeInvalidDate:             http.StatusBadRequest,
	ErrCodeInvalidPaymentAmount:    http.StatusBadRequest,
}

// HTTPStatus maps an error to the status code a handler should answer with
func HTTPStatus(err error) int {
	var businessErr *BusinessError
	if errors.As(err, &businessErr) {
		if status, ok := statusByCode[businessErr.Code]; ok {
			return status
		}
	}
	return http.StatusInternalServerError
}

// Wrap common errors with business context
func WrapCourseNotFound(code string) *BusinessError {
	return NewBusinessError(
		ErrCodeCourseNotFound,
		fmt.Sprintf("Course with code %s not found", code),
		ErrCourseNotFound,
	)
}

func WrapCourseAlreadyExists(code string) *BusinessError {
	return NewBusinessError(
		ErrCodeCourseAlreadyExists,
		fmt.Sprintf("Course with code %s already exists", code),
		ErrCourseAlreadyExists,
	)
}

func WrapCourseClosed(code string) *BusinessError {
	return NewBusinessError(
		ErrCodeCourseClosed,
		fmt.Sprintf("Course with code %s is closed", code),
		ErrCourseClosed,
	)
}

func WrapInvalidCourseRange(start, end string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidCourseRange,
		fmt.Sprintf("End date %s is before start date %s", end, start),
		ErrInvalidCourseRange,
	)
}

func WrapInvalidDate(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidDate,
		"Dates must be YYYY-MM-DD or ISO-8601 timestamps",
		fmt.Errorf("%w: %v", ErrInvalidDate, err),
	)
}

func WrapEnrollmentNotFound(enrollmentID string) *BusinessError {
	return NewBusinessError(
		ErrCodeEnrollmentNotFound,
		fmt.Sprintf("Enrollment with ID %s not found", enrollmentID),
		ErrEnrollmentNotFound,
	)
}

func WrapEnrollmentAlreadyExists(courseCode, studentID string) *BusinessError {
	return NewBusinessError(
		ErrCodeEnrollmentAlreadyExists,
		fmt.Sprintf("Student %s is already enrolled in course %s", studentID, courseCode),
		ErrEnrollmentAlreadyExists,
	)
}

func WrapEnrollmentClosed(enrollmentID string) *BusinessError {
	return NewBusinessError(
		ErrCodeEnrollmentClosed,
		fmt.Sprintf("Enrollment with ID %s is already completed", enrollmentID),
		ErrEnrollmentClosed,
	)
}

func WrapPaymentAmountMismatch(expected, actual string) *BusinessError {
	return NewBusinessError(
		ErrCodePaymentAmountMismatch,
		fmt.Sprintf("Payment amount %s does not match expected cuota amount %s", actual, expected),
		ErrPaymentAmountMismatch,
	)
}

func WrapInvalidPaymentAmount(amount string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidPaymentAmount,
		fmt.Sprintf("Invalid payment amount: %s", amount),
		ErrInvalidPaymentAmount,
	)
}

func WrapNoOutstandingBalance(enrollmentID string) *BusinessError {
	return NewBusinessError(
		ErrCodeNoOutstandingBalance,
		fmt.Sprintf("Enrollment with ID %s has no outstanding balance", enrollmentID),
		ErrNoOutstandingBalance,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}
