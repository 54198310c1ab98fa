package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/O-KenneDevWorks/Employee-Manager/internal/api/http/handlers"
	"github.com/O-KenneDevWorks/Employee-Manager/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Employees   *handlers.EmployeesHandler
	Departments *handlers.DepartmentsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/employees", cfg.Employees.List)
	app.Post("/department", cfg.Departments.Create)
}

// AppConfig configures NewApp.
type AppConfig struct {
	Name    string
	Timeout time.Duration
	Logger  *zap.Logger
	Metrics *observability.Metrics
}

// NewApp builds a fiber app with the global middlewares and routes attached.
func NewApp(cfg AppConfig, routes RouteConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.Name,
		DisableStartupMessage: true,
	})
	RegisterMiddlewares(app, cfg.Logger, cfg.Metrics, cfg.Timeout)
	RegisterRoutes(app, routes)
	return app
}
