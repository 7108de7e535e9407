package routes

import (
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
	v1 "jobboard/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Health        *handler.HealthHandler
	Auth          *handler.AuthHandler
	Users         *handler.UserHandler
	Jobs          *handler.JobHandler
	Applications  *handler.ApplicationHandler
	Stats         *handler.StatsHandler
	Notifications fiber.Handler
}

type Registry struct {
	h    Handlers
	auth *middleware.AuthMiddleware
}

func NewRegistry(h Handlers, auth *middleware.AuthMiddleware) *Registry {
	return &Registry{h: h, auth: auth}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerRealtime(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.h.Health != nil {
		r.h.Health.RegisterRoutes(app)
	}
}

func (r *Registry) registerRealtime(app *fiber.App) {
	if r.h.Notifications != nil {
		app.Get("/ws/notifications", r.h.Notifications)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	v1.Register(api.Group("/v1"), v1.Deps{
		Auth:         r.h.Auth,
		Users:        r.h.Users,
		Jobs:         r.h.Jobs,
		Applications: r.h.Applications,
		Stats:        r.h.Stats,
		Authenticate: r.auth.Middleware(),
	})
}
