package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/pantrypal/onboarding-backend/internal/api/docs"
	"github.com/pantrypal/onboarding-backend/internal/api/middleware"
	onboardingapi "github.com/pantrypal/onboarding-backend/internal/api/onboarding"
	userapi "github.com/pantrypal/onboarding-backend/internal/api/user"
	"github.com/pantrypal/onboarding-backend/internal/pkg/metrics"
	"github.com/pantrypal/onboarding-backend/internal/pkg/response"
	"go.uber.org/zap"
)

// HealthInfo is reported by GET /health
type HealthInfo struct {
	ApplicationName string `json:"applicationName"`
	Environment     string `json:"environment"`
	Status          string `json:"status"`
	Timestamp       string `json:"timestamp"`
}

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	onboardingHandler *onboardingapi.Handler,
	userHandler *userapi.Handler,
	m *metrics.Metrics,
	appName, environment string,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.RequestID)   // Add request ID
	r.Use(middleware.Logger(logger)) // Log requests
	r.Use(middleware.CORS)           // Handle CORS
	r.Use(middleware.Recoverer)      // Recover from panics
	r.Use(middleware.Metrics(m))     // Count requests

	r.NotFound(routeNotFound)
	r.MethodNotAllowed(routeNotFound)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctxzap.Debug(r.Context(), "HealthCheck invoked")
		response.Success(w, HealthInfo{
			ApplicationName: appName,
			Environment:     environment,
			Status:          "healthy",
			Timestamp:       time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	r.Method(http.MethodGet, "/metrics", m.Handler())

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	userapi.RegisterRoutes(r, userHandler)
	onboardingapi.RegisterRoutes(r, onboardingHandler)

	return r
}

func routeNotFound(w http.ResponseWriter, _ *http.Request) {
	response.Error(w, http.StatusNotFound, response.MessageRouteNotFound)
}
