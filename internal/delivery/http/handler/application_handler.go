package handler

import (
	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ApplicationHandler struct {
	uc usecase.ApplicationUsecase
}

func NewApplicationHandler(uc usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

// Apply reads a multipart form: job_id, user_id, contact fields, and either
// a "resume" file or a resume_file_id pointing at the stored profile resume.
func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	form, err := c.MultipartForm()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	jobID, err := uuid.Parse(formValue(form, "job_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job_id", nil, err)
	}
	userID := actor.UserID
	if raw := formValue(form, "user_id"); raw != "" {
		if userID, err = uuid.Parse(raw); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid user_id", nil, err)
		}
	}

	in := usecase.ApplyInput{
		JobID:    jobID,
		UserID:   userID,
		Email:    formValue(form, "email"),
		Name:     formValue(form, "name"),
		Phone:    formValue(form, "phone"),
		Location: formValue(form, "location"),
	}
	if in.Resume, err = formUpload(form, "resume"); err != nil {
		return err
	}
	if in.CoverLetter, err = formUpload(form, "cover_letter"); err != nil {
		return err
	}
	if raw := formValue(form, "resume_file_id"); raw != "" && in.Resume == nil {
		id, err := uuid.Parse(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid resume_file_id", nil, err)
		}
		in.ResumeFileID = &id
	}

	a, err := h.uc.Apply(c.Context(), actor, in)
	if err != nil {
		return mapCommonUsecaseError(err)
	}
	return response.Created(c, "Application submitted", dto.NewApplicationResponse(a))
}

func (h *ApplicationHandler) Check(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	jobID, err := uuid.Parse(c.Query("job_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job_id", nil, err)
	}
	userID := actor.UserID
	if raw := c.Query("user_id"); raw != "" {
		if userID, err = uuid.Parse(raw); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid user_id", nil, err)
		}
	}

	res, err := h.uc.Check(c.Context(), actor, userID, jobID)
	if err != nil {
		return mapCommonUsecaseError(err)
	}
	out := dto.ApplicationCheckResponse{Applied: res.Applied}
	if res.Applied {
		out.ApplicationID = &res.ApplicationID
	}
	return ok(c, out)
}

func (h *ApplicationHandler) ListApplications(c fiber.Ctx) error {
	views, err := h.uc.ListApplications(c.Context())
	if err != nil {
		return mapCommonUsecaseError(err)
	}
	return ok(c, dto.NewApplicationViewResponses(views))
}

func (h *ApplicationHandler) UserApplications(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "userId")
	if err != nil {
		return err
	}
	views, err := h.uc.ListUserApplications(c.Context(), actor, id)
	if err != nil {
		return mapCommonUsecaseError(err)
	}
	return ok(c, dto.NewApplicationViewResponses(views))
}

func (h *ApplicationHandler) EmployerApplications(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "employerId")
	if err != nil {
		return err
	}
	views, err := h.uc.ListEmployerApplications(c.Context(), actor, id)
	if err != nil {
		return mapCommonUsecaseError(err)
	}
	return ok(c, dto.NewApplicationViewResponses(views))
}

func (h *ApplicationHandler) GetApplication(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "applicationId")
	if err != nil {
		return err
	}
	v, err := h.uc.GetApplication(c.Context(), actor, id)
	if err != nil {
		return mapCommonUsecaseError(err)
	}
	return ok(c, dto.NewApplicationViewResponse(v))
}

func (h *ApplicationHandler) DownloadFile(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "applicationFileId")
	if err != nil {
		return err
	}
	f, err := h.uc.GetFile(c.Context(), actor, id)
	if err != nil {
		return mapCommonUsecaseError(err)
	}
	return sendFile(c, f.Name, f.ContentType, f.Data)
}

func (h *ApplicationHandler) UpdateStatus(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "applicationId")
	if err != nil {
		return err
	}
	var req dto.StatusUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	a, err := h.uc.UpdateStatus(c.Context(), actor, id, req.Status)
	if err != nil {
		return mapCommonUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Status updated", dto.NewApplicationResponse(a))
}

func (h *ApplicationHandler) DeleteApplication(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "applicationId")
	if err != nil {
		return err
	}
	a, err := h.uc.DeleteApplication(c.Context(), actor, id)
	if err != nil {
		return mapCommonUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Application deleted", dto.NewApplicationResponse(a))
}
