package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/segyhp/cuota-engine/internal/domain"
	"github.com/segyhp/cuota-engine/pkg/cuota"
	"github.com/segyhp/cuota-engine/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// BillingService is the behaviour the HTTP layer needs from the service layer
type BillingService interface {
	QuoteCuotas(ctx context.Context, request *domain.QuoteRequest) (cuota.Info, error)
	CreateCourse(ctx context.Context, request *domain.CreateCourseRequest) (*domain.Course, error)
	GetCourse(ctx context.Context, code string) (*domain.Course, error)
	ListCourses(ctx context.Context, limit, offset int) (*domain.CourseListResponse, error)
	EnrollStudent(ctx context.Context, courseCode string, request *domain.EnrollRequest) (*domain.Enrollment, []*domain.EnrollmentCuota, error)
	GetSchedule(ctx context.Context, enrollmentID uuid.UUID) ([]*domain.EnrollmentCuota, error)
	GetPayments(ctx context.Context, enrollmentID uuid.UUID) ([]*domain.Payment, error)
	GetOutstanding(ctx context.Context, enrollmentID uuid.UUID) (decimal.Decimal, error)
	IsDelinquent(ctx context.Context, enrollmentID uuid.UUID) (bool, error)
	MakePayment(ctx context.Context, enrollmentID uuid.UUID, amount decimal.Decimal) (*domain.Payment, error)
}

type BillingHandler struct {
	service   BillingService
	validator *validator.Validate
}

func NewBillingHandler(service BillingService) *BillingHandler {
	return &BillingHandler{
		service:   service,
		validator: newValidator(),
	}
}

// RegisterRoutes mounts the billing endpoints on the given router
func (h *BillingHandler) RegisterRoutes(api *mux.Router) {
	api.HandleFunc("/cuotas/quote", h.QuoteCuotas).Methods(http.MethodPost)

	api.HandleFunc("/courses", h.CreateCourse).Methods(http.MethodPost)
	api.HandleFunc("/courses", h.ListCourses).Methods(http.MethodGet)
	api.HandleFunc("/courses/{code}", h.GetCourse).Methods(http.MethodGet)
	api.HandleFunc("/courses/{code}/enrollments", h.EnrollStudent).Methods(http.MethodPost)

	api.HandleFunc("/enrollments/{enrollmentId}/schedule", h.GetSchedule).Methods(http.MethodGet)
	api.HandleFunc("/enrollments/{enrollmentId}/payments", h.GetPayments).Methods(http.MethodGet)
	api.HandleFunc("/enrollments/{enrollmentId}/outstanding", h.GetOutstanding).Methods(http.MethodGet)
	api.HandleFunc("/enrollments/{enrollmentId}/delinquent", h.IsDelinquent).Methods(http.MethodGet)
	api.HandleFunc("/enrollments/{enrollmentId}/payment", h.MakePayment).Methods(http.MethodPost)
}

// QuoteCuotas returns the cuota breakdown for a date span
func (h *BillingHandler) QuoteCuotas(w http.ResponseWriter, r *http.Request) {
	var request domain.QuoteRequest
	if !h.decode(w, r, &request) {
		return
	}

	info, err := h.service.QuoteCuotas(r.Context(), &request)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.Success(w, info)
}

// CreateCourse creates a course priced in cuotas
func (h *BillingHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateCourseRequest
	if !h.decode(w, r, &request) {
		return
	}

	course, err := h.service.CreateCourse(r.Context(), &request)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.Created(w, course)
}

// ListCourses returns one page of courses
func (h *BillingHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		response.BadRequest(w, "limit must be an integer", err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		response.BadRequest(w, "offset must be an integer", err)
		return
	}

	page, err := h.service.ListCourses(r.Context(), limit, offset)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.Success(w, page)
}

// GetCourse returns a single course
func (h *BillingHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	course, err := h.service.GetCourse(r.Context(), mux.Vars(r)["code"])
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.Success(w, course)
}

// EnrollStudent enrolls a student and returns the cuota schedule
func (h *BillingHandler) EnrollStudent(w http.ResponseWriter, r *http.Request) {
	var request domain.EnrollRequest
	if !h.decode(w, r, &request) {
		return
	}

	enrollment, schedule, err := h.service.EnrollStudent(r.Context(), mux.Vars(r)["code"], &request)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.Created(w, domain.EnrollResponse{Enrollment: enrollment, Schedule: schedule})
}

// GetSchedule returns the cuota schedule of an enrollment
func (h *BillingHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	enrollmentID, ok := enrollmentIDFromPath(w, r)
	if !ok {
		return
	}

	schedule, err := h.service.GetSchedule(r.Context(), enrollmentID)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.Success(w, domain.ScheduleResponse{EnrollmentID: enrollmentID, Schedule: schedule})
}

// GetPayments returns the payment history of an enrollment
func (h *BillingHandler) GetPayments(w http.ResponseWriter, r *http.Request) {
	enrollmentID, ok := enrollmentIDFromPath(w, r)
	if !ok {
		return
	}

	payments, err := h.service.GetPayments(r.Context(), enrollmentID)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.Success(w, domain.PaymentHistoryResponse{EnrollmentID: enrollmentID, Payments: payments})
}

// GetOutstanding returns the unpaid balance of an enrollment
func (h *BillingHandler) GetOutstanding(w http.ResponseWriter, r *http.Request) {
	enrollmentID, ok := enrollmentIDFromPath(w, r)
	if !ok {
		return
	}

	outstanding, err := h.service.GetOutstanding(r.Context(), enrollmentID)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.Success(w, domain.OutstandingResponse{EnrollmentID: enrollmentID, Outstanding: outstanding})
}

// IsDelinquent reports whether the student missed too many consecutive cuotas
func (h *BillingHandler) IsDelinquent(w http.ResponseWriter, r *http.Request) {
	enrollmentID, ok := enrollmentIDFromPath(w, r)
	if !ok {
		return
	}

	delinquent, err := h.service.IsDelinquent(r.Context(), enrollmentID)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.Success(w, domain.DelinquentResponse{EnrollmentID: enrollmentID, IsDelinquent: delinquent})
}

// MakePayment pays the next cuota of an enrollment
func (h *BillingHandler) MakePayment(w http.ResponseWriter, r *http.Request) {
	enrollmentID, ok := enrollmentIDFromPath(w, r)
	if !ok {
		return
	}

	var request domain.MakePaymentRequest
	if !h.decode(w, r, &request) {
		return
	}

	payment, err := h.service.MakePayment(r.Context(), enrollmentID, request.Amount)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.Created(w, payment)
}

// decode reads and validates a JSON body, answering 400 on failure
func (h *BillingHandler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return false
	}
	if err := h.validator.Struct(dst); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return false
	}
	return true
}

func enrollmentIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	enrollmentID, err := uuid.Parse(mux.Vars(r)["enrollmentId"])
	if err != nil {
		response.BadRequest(w, "Invalid enrollment ID", err)
		return uuid.Nil, false
	}
	return enrollmentID, true
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
