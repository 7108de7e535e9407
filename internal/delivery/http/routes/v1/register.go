package v1

import (
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Auth         *handler.AuthHandler
	Users        *handler.UserHandler
	Jobs         *handler.JobHandler
	Applications *handler.ApplicationHandler
	Stats        *handler.StatsHandler
	Authenticate fiber.Handler
}

var (
	adminOnly       = middleware.RequireRole(jwt.RoleAdmin)
	employerOrAdmin = middleware.RequireRole(jwt.RoleAdmin, jwt.RoleEmployer)
)

func Register(r fiber.Router, d Deps) {
	if r == nil {
		return
	}

	if d.Auth != nil {
		d.Auth.RegisterRoutes(r.Group("/auth"))
	}

	RegisterJobs(r.Group("/jobs"), d.Jobs, d.Authenticate)
	RegisterUsers(r.Group("/users", d.Authenticate), d.Users)
	RegisterApplications(r.Group("/applications", d.Authenticate), d.Applications)

	if d.Stats != nil {
		r.Get("/count", d.Authenticate, adminOnly, d.Stats.Counts)
	}
}
