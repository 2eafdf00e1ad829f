package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/varunrevoori/harmony/internal/appointment"
	"github.com/varunrevoori/harmony/internal/availability"
)

type RouterConfig struct {
	Appointments *appointment.Service
	Availability *availability.Service
	PgPool       *pgxpool.Pool
	Redis        *redis.Client
	JWTSecret    string
	Env          string
	Version      string
	Log          zerolog.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Log))

	// Health endpoints
	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	auth := AuthMiddleware(cfg.JWTSecret)

	// User-facing endpoints
	r.Route("/api/user", func(r chi.Router) {
		r.Use(auth)

		r.Get("/providers", listProvidersHandler(cfg.Appointments))
		r.Get("/providers/{id}/availability", availabilityHandler(cfg.Appointments))
		r.Get("/providers/{id}/availability/range", availabilityRangeHandler(cfg.Appointments))
		r.Get("/providers/{id}/slot-check", checkSlotHandler(cfg.Appointments))

		r.Post("/appointments", bookAppointmentHandler(cfg.Appointments))
		r.Get("/appointments", listMyAppointmentsHandler(cfg.Appointments))
		r.Get("/appointments/{id}", getAppointmentHandler(cfg.Appointments))
		r.Post("/appointments/{id}/cancel", cancelAppointmentHandler(cfg.Appointments))
		r.Post("/appointments/{id}/reschedule", rescheduleAppointmentHandler(cfg.Appointments))
	})

	// Provider endpoints
	r.Route("/api/provider", func(r chi.Router) {
		r.Use(auth)
		r.Use(RequireRole(appointment.RoleServiceProvider))

		r.Get("/appointments", providerAppointmentsHandler(cfg.Appointments))
		r.Post("/appointments/{id}/status", transitionHandler(cfg.Appointments))
		r.Get("/stats", providerStatsHandler(cfg.Appointments))

		r.Get("/availability", listRulesHandler(cfg.Appointments, cfg.Availability))
		r.Post("/availability/windows", addWindowHandler(cfg.Appointments, cfg.Availability))
		r.Delete("/availability/windows", removeWindowHandler(cfg.Appointments, cfg.Availability))
		r.Patch("/availability/{weekday}", setRuleActiveHandler(cfg.Appointments, cfg.Availability))
		r.Post("/availability/exceptions", addExceptionHandler(cfg.Appointments, cfg.Availability))
		r.Get("/availability/exceptions", listExceptionsHandler(cfg.Appointments, cfg.Availability))
	})

	// Admin endpoints
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(auth)
		r.Use(RequireRole(appointment.RoleSystemAdmin))

		r.Post("/providers/{id}/verify", verifyProviderHandler(cfg.Appointments))
		r.Get("/providers/{id}/appointments", adminListProviderAppointmentsHandler(cfg.Appointments))
		r.Get("/appointments/{id}", getAppointmentHandler(cfg.Appointments))
		r.Post("/appointments/{id}/status", transitionHandler(cfg.Appointments))
	})

	return r
}
