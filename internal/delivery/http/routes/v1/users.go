package v1

import (
	"jobboard/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterUsers(r fiber.Router, h *handler.UserHandler) {
	if r == nil || h == nil {
		return
	}

	r.Get("/", adminOnly, h.ListUsers)
	r.Get("/userId/:userId", h.GetUser)
	r.Patch("/userId/:userId", h.UpdateProfile)
	r.Patch("/change-password", h.ChangePassword)
	r.Patch("/interaction/:userId", h.RecordInteraction)
	r.Get("/resume/:userFileId", h.DownloadResume)
	r.Delete("/:userId", adminOnly, h.DeleteUser)
}
