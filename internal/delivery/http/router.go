package http

import (
	"net/http"

	"go-clinic-scheduling/internal/delivery/http/handler"
	"go-clinic-scheduling/internal/delivery/http/middleware"
	"go-clinic-scheduling/internal/infrastructure/metrics"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	healthHandler      *handler.HealthHandler
	authHandler        *handler.AuthHandler
	roomHandler        *handler.RoomHandler
	appointmentHandler *handler.AppointmentHandler
	dashboardHandler   *handler.DashboardHandler
	auditLogHandler    *handler.AuditLogHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
	metrics            *metrics.Collector
}

func NewRouter(
	healthHandler *handler.HealthHandler,
	authHandler *handler.AuthHandler,
	roomHandler *handler.RoomHandler,
	appointmentHandler *handler.AppointmentHandler,
	dashboardHandler *handler.DashboardHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	metricsCollector *metrics.Collector,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		healthHandler:      healthHandler,
		authHandler:        authHandler,
		roomHandler:        roomHandler,
		appointmentHandler: appointmentHandler,
		dashboardHandler:   dashboardHandler,
		auditLogHandler:    auditLogHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
		metrics:            metricsCollector,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check and metrics
	api.HandleFunc("/health", r.healthHandler.Check).Methods(http.MethodGet)
	api.Handle("/metrics", r.metrics.Handler()).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Room management (admin)
	roomsAdmin := api.PathPrefix("/rooms").Subrouter()
	roomsAdmin.Use(r.authMiddleware.Authenticate)
	roomsAdmin.Use(middleware.RequireAdmin)
	roomsAdmin.HandleFunc("", r.roomHandler.CreateRoom).Methods(http.MethodPost)
	roomsAdmin.HandleFunc("/{id}/hours", r.roomHandler.UpdateHours).Methods(http.MethodPut)
	roomsAdmin.HandleFunc("/{id}", r.roomHandler.DeactivateRoom).Methods(http.MethodDelete)

	// Room queries (any authenticated user); static paths before {id}
	rooms := api.PathPrefix("/rooms").Subrouter()
	rooms.Use(r.authMiddleware.Authenticate)
	rooms.HandleFunc("", r.roomHandler.ListRooms).Methods(http.MethodGet)
	rooms.HandleFunc("/availability/{day}", r.roomHandler.GetDayAvailability).Methods(http.MethodGet)
	rooms.HandleFunc("/weekly-schedule", r.roomHandler.GetWeeklySchedule).Methods(http.MethodGet)
	rooms.HandleFunc("/{id}", r.roomHandler.GetRoom).Methods(http.MethodGet)
	rooms.HandleFunc("/{id}/slots", r.roomHandler.GetSlots).Methods(http.MethodGet)

	// Appointments
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.HandleFunc("", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	appointments.HandleFunc("", r.appointmentHandler.ListAppointments).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodPut)

	// Dashboard
	dashboard := api.PathPrefix("/dashboard").Subrouter()
	dashboard.Use(r.authMiddleware.Authenticate)
	dashboard.HandleFunc("/stats", r.dashboardHandler.GetStats).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.ListAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Preflight requests terminate in the CORS middleware
	r.router.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Global middleware
	r.router.Use(r.metrics.HTTPMiddleware)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}
