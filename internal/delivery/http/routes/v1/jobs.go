package v1

import (
	"jobboard/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

// RegisterJobs mounts the job routes. Browsing and search are public.
func RegisterJobs(r fiber.Router, h *handler.JobHandler, authenticate fiber.Handler) {
	if r == nil || h == nil {
		return
	}

	r.Get("/", h.ListJobs)
	r.Get("/jobId/:jobId", h.GetJob)
	r.Post("/search", h.SearchJobs)

	r.Get("/recommended/:userId", authenticate, h.Recommended)
	r.Get("/employer/:employerId", authenticate, employerOrAdmin, h.EmployerJobs)
	r.Post("/", authenticate, employerOrAdmin, h.CreateJob)
	r.Patch("/:jobId", authenticate, employerOrAdmin, h.UpdateJob)
	r.Delete("/:jobId", authenticate, employerOrAdmin, h.DeleteJob)
}
