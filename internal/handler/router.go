package handler

import (
	"net/http"

	"github.com/segyhp/cuota-engine/pkg/response"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// NewRouter mounts health and billing routes and returns the full handler
// chain. CORS wraps the router from outside so preflight requests are
// answered even though no route accepts OPTIONS.
func NewRouter(billing *BillingHandler, health *HealthHandler, log logrus.FieldLogger) http.Handler {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware(log))

	// Health check
	router.HandleFunc("/health", health.Health).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", health.Ready).Methods(http.MethodGet)

	// API routes
	billing.RegisterRoutes(router.PathPrefix("/api/v1").Subrouter())

	return response.CORSMiddleware(router)
}
