package handler

import (
	"encoding/json"
	"errors"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"
	ucuser "jobboard/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc usecase.UserUsecase
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) ListUsers(c fiber.Ctx) error {
	users, err := h.uc.ListUsers(c.Context())
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return ok(c, dto.NewUserResponses(users))
}

func (h *UserHandler) GetUser(c fiber.Ctx) error {
	id, err := uuidParam(c, "userId")
	if err != nil {
		return err
	}
	usr, err := h.uc.GetUser(c.Context(), id)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return ok(c, dto.NewUserResponse(usr))
}

// UpdateProfile accepts either a JSON body or a multipart form carrying the
// JSON profile in a "data" field and an optional "resume" file.
func (h *UserHandler) UpdateProfile(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "userId")
	if err != nil {
		return err
	}

	var (
		req    dto.ProfileUpdateRequest
		resume *usecase.Upload
	)
	if isMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
		if raw := formValue(form, "data"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &req); err != nil {
				return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
			}
		}
		if resume, err = formUpload(form, "resume"); err != nil {
			return err
		}
		if err := validateRequest(&req); err != nil {
			return err
		}
	} else if err := bindJSON(c, &req); err != nil {
		return err
	}

	in := ucuser.UpdateProfileInput{
		Name:       req.Name,
		Phone:      req.Phone,
		Location:   req.Location,
		Experience: req.Experience,
		Skills:     req.Skills,
	}
	if req.Preferences != nil {
		in.Preferences = &user.Preferences{
			JobTypes:   req.Preferences.JobTypes,
			Industries: req.Preferences.Industries,
			Locations:  req.Preferences.Locations,
			Salary:     req.Preferences.Salary,
		}
	}
	if resume != nil {
		in.Resume = &ucuser.Resume{Name: resume.Name, ContentType: resume.ContentType, Data: resume.Data}
	}

	usr, err := h.uc.UpdateProfile(c.Context(), actor, id, in)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Profile updated", dto.NewUserResponse(usr))
}

func (h *UserHandler) ChangePassword(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.PasswordRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := h.uc.ChangePassword(c.Context(), actor, req.Password); err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Password updated", nil)
}

func (h *UserHandler) RecordInteraction(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "userId")
	if err != nil {
		return err
	}
	var req dto.InteractionRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	usr, added, err := h.uc.RecordInteraction(c.Context(), actor, id, req.JobID)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	if !added {
		return response.Success(c, fiber.StatusOK, "Already exists", dto.NewUserResponse(usr))
	}
	return response.Success(c, fiber.StatusOK, "Interaction recorded", dto.NewUserResponse(usr))
}

func (h *UserHandler) DownloadResume(c fiber.Ctx) error {
	id, err := uuidParam(c, "userFileId")
	if err != nil {
		return err
	}
	f, err := h.uc.GetResume(c.Context(), id)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return sendFile(c, f.Name, f.ContentType, f.Data)
}

func (h *UserHandler) DeleteUser(c fiber.Ctx) error {
	id, err := uuidParam(c, "userId")
	if err != nil {
		return err
	}
	usr, err := h.uc.DeleteUser(c.Context(), id)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "User deleted", dto.NewUserResponse(usr))
}

func mapUserUsecaseError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ucuser.ErrSamePassword) {
		return middleware.NewAppError(fiber.StatusBadRequest, "New password must differ from the current one", nil, err)
	}
	return mapCommonUsecaseError(err)
}
