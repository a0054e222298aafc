package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tutoring-service/internal/api/http/handlers"
	"github.com/spec-kit/tutoring-service/internal/auth"
	"github.com/spec-kit/tutoring-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	Teachers    *handlers.TeachersHandler
	Students    *handlers.StudentsHandler
	Groups      *handlers.GroupsHandler
	Traits      *handlers.TraitsHandler
	Evaluations *handlers.EvaluationsHandler
	Plans       *handlers.PlansHandler
	Dashboard   *handlers.DashboardHandler
	AuthGate    *auth.Middleware
}

// RegisterRoutes wires HTTP routes. The authentication gate runs on every
// request; role guards on route groups turn "unauthenticated" into 401/403.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.AuthGate.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Post("/logout", cfg.Auth.Logout)

	// Plan catalog reads are public; writes are admin-only.
	app.Get("/plans", cfg.Plans.List)
	app.Get("/plans/:id", cfg.Plans.Get)
	planAdmin := app.Group("/plans", auth.RequireRole(domain.RoleAdmin))
	planAdmin.Post("", cfg.Plans.Create)
	planAdmin.Put("/:id", cfg.Plans.Update)

	teaching := auth.RequireRole(domain.RoleTeacher, domain.RoleAdmin)

	teachers := app.Group("/teachers", auth.RequireAuthenticated())
	teachers.Get("/me", cfg.Teachers.Me)
	teachers.Put("/me", cfg.Teachers.UpdateMe)
	teachers.Get("", auth.RequireRole(domain.RoleAdmin), cfg.Teachers.List)

	students := app.Group("/students", teaching)
	students.Post("", cfg.Students.Create)
	students.Get("", cfg.Students.List)
	students.Get("/:id", cfg.Students.Get)
	students.Put("/:id", cfg.Students.Update)
	students.Delete("/:id", cfg.Students.Delete)
	students.Post("/:id/plan", cfg.Students.AssignPlan)
	students.Post("/:id/evaluations", cfg.Evaluations.Record)
	students.Get("/:id/evaluations", cfg.Evaluations.List)

	groups := app.Group("/groups", teaching)
	groups.Post("", cfg.Groups.Create)
	groups.Get("", cfg.Groups.List)
	groups.Get("/:id", cfg.Groups.Get)
	groups.Put("/:id", cfg.Groups.Update)
	groups.Delete("/:id", cfg.Groups.Delete)
	groups.Post("/:id/students/:studentId", cfg.Groups.AddStudent)
	groups.Delete("/:id/students/:studentId", cfg.Groups.RemoveStudent)

	traits := app.Group("/traits", teaching)
	traits.Get("", cfg.Traits.List)
	traits.Post("", auth.RequireRole(domain.RoleAdmin), cfg.Traits.Create)
	traits.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Traits.Delete)

	app.Get("/dashboard/summary", teaching, cfg.Dashboard.Summary)
}
