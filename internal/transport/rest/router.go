package rest

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/attendance-tracker/internal/attendance"
	"github.com/frahmantamala/attendance-tracker/internal/auth"
	"github.com/frahmantamala/attendance-tracker/internal/employee"
	"github.com/frahmantamala/attendance-tracker/internal/transport"
	"github.com/frahmantamala/attendance-tracker/internal/transport/middleware"
	"github.com/frahmantamala/attendance-tracker/internal/transport/swagger"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

type Routes struct {
	Health     *HealthHandler
	Auth       *auth.Handler
	Roles      *auth.RoleAuthorization
	Attendance *attendance.Handler
	Employee   *employee.Handler
	OpenAPI    *openapi3.T
	Origins    []string
	Logger     *slog.Logger
}

func RegisterAllRoutes(router *chi.Mux, routes Routes) {
	// Apply global middleware
	router.Use(middleware.CORS(routes.Origins))
	router.Use(middleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RecoveryMiddleware(routes.Logger))
	router.Use(middleware.LoggingMiddleware(routes.Logger))

	notFound := func(w http.ResponseWriter, r *http.Request) {
		transport.WriteErrorBody(w, http.StatusNotFound, "Route not found")
	}
	router.NotFound(notFound)
	router.MethodNotAllowed(notFound)

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"Attendance API running"}` + "\n"))
	})

	if routes.OpenAPI != nil {
		router.Get(swagger.SpecPath, swagger.SpecHandler(routes.OpenAPI))
		router.Handle("/swagger/*", swagger.Handler())
	}

	// Operational endpoints live under /api/v1
	if routes.Health != nil {
		router.Route("/api/v1", func(r chi.Router) {
			r.Get("/health", routes.Health.Health)
			r.Get("/ping", routes.Health.Ping)
		})
	}

	router.Route("/auth", func(ar chi.Router) {
		ar.Post("/login", routes.Auth.Login)
		ar.With(routes.Auth.AuthMiddleware).Post("/logout", routes.Auth.Logout)
	})

	// Protected routes that require authentication
	router.Group(func(pr chi.Router) {
		pr.Use(routes.Auth.AuthMiddleware)

		pr.Route("/attendance", func(atr chi.Router) {
			// Self-service lifecycle requires an active account
			atr.Group(func(sr chi.Router) {
				sr.Use(routes.Roles.RequireActiveUser())
				sr.Post("/check-in", routes.Attendance.CheckIn)
				sr.Post("/check-out", routes.Attendance.CheckOut)
				sr.Get("/me", routes.Attendance.MyAttendance)
			})

			atr.Group(func(mr chi.Router) {
				mr.Use(routes.Roles.RequireAdmin())
				mr.Get("/employee/{id}", routes.Attendance.EmployeeAttendance)
				mr.Get("/employee/{id}/export", routes.Attendance.ExportEmployeeAttendance)
				mr.Get("/day", routes.Attendance.DayAttendance)
			})
		})

		pr.Route("/employees", func(er chi.Router) {
			er.Use(routes.Roles.RequireAdmin())
			er.Get("/", routes.Employee.List)
			er.Post("/", routes.Employee.Create)
			er.Put("/{id}", routes.Employee.Update)
			er.Delete("/{id}", routes.Employee.Delete)
		})
	})
}
