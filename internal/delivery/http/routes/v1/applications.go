package v1

import (
	"jobboard/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterApplications(r fiber.Router, h *handler.ApplicationHandler) {
	if r == nil || h == nil {
		return
	}

	r.Post("/", h.Apply)
	r.Get("/", adminOnly, h.ListApplications)
	r.Get("/check", h.Check)
	r.Get("/user/:userId", h.UserApplications)
	r.Get("/employer/:employerId", employerOrAdmin, h.EmployerApplications)
	r.Get("/applicationId/:applicationId", h.GetApplication)
	r.Get("/downloadFile/:applicationFileId", h.DownloadFile)
	r.Patch("/:applicationId", h.UpdateStatus)
	r.Delete("/:applicationId", h.DeleteApplication)
}
