package handler

import (
	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/domain/job"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobHandler struct {
	jobs usecase.JobUsecase
	rec  usecase.JobRecommendationUsecase
}

func NewJobHandler(jobs usecase.JobUsecase, rec usecase.JobRecommendationUsecase) *JobHandler {
	return &JobHandler{jobs: jobs, rec: rec}
}

func (h *JobHandler) ListJobs(c fiber.Ctx) error {
	jobs, err := h.jobs.ListJobs(c.Context())
	if err != nil {
		return mapCommonUsecaseError(err)
	}
	return ok(c, dto.NewJobResponses(jobs))
}

func (h *JobHandler) GetJob(c fiber.Ctx) error {
	id, err := uuidParam(c, "jobId")
	if err != nil {
		return err
	}
	j, err := h.jobs.GetJob(c.Context(), id)
	if err != nil {
		return mapCommonUsecaseError(err)
	}
	return ok(c, dto.NewJobResponse(j))
}

func (h *JobHandler) SearchJobs(c fiber.Ctx) error {
	var req dto.JobSearchRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	jobs, err := h.jobs.SearchJobs(c.Context(), job.SearchFilter{
		JobTypes:   req.JobTypes,
		Locations:  req.Locations,
		Industries: req.Industries,
		SalaryMin:  req.SalaryMin,
		SalaryMax:  req.SalaryMax,
	})
	if err != nil {
		return mapCommonUsecaseError(err)
	}
	return ok(c, dto.NewJobResponses(jobs))
}

func (h *JobHandler) Recommended(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "userId")
	if err != nil {
		return err
	}
	jobs, err := h.rec.GetRecommendations(c.Context(), actor, id)
	if err != nil {
		return mapCommonUsecaseError(err)
	}
	return ok(c, dto.NewJobResponses(jobs))
}

func (h *JobHandler) EmployerJobs(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "employerId")
	if err != nil {
		return err
	}
	jobs, err := h.jobs.ListEmployerJobs(c.Context(), actor, id)
	if err != nil {
		return mapCommonUsecaseError(err)
	}
	return ok(c, dto.NewJobResponses(jobs))
}

func (h *JobHandler) CreateJob(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.JobCreateRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	j, err := h.jobs.CreateJob(c.Context(), actor, usecase.JobInput{
		Title:            req.Title,
		Description:      req.Description,
		Company:          req.Company,
		Location:         req.Location,
		Industry:         req.Industry,
		JobType:          req.JobType,
		Salary:           req.Salary,
		Skills:           req.Skills,
		Requirements:     req.Requirements,
		Responsibilities: req.Responsibilities,
		Deadline:         req.Deadline,
	})
	if err != nil {
		return mapCommonUsecaseError(err)
	}
	return response.Created(c, "Job created", dto.NewJobResponse(j))
}

func (h *JobHandler) UpdateJob(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "jobId")
	if err != nil {
		return err
	}
	var req dto.JobUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	j, err := h.jobs.UpdateJob(c.Context(), actor, id, job.Update{
		Title:            req.Title,
		Description:      req.Description,
		Company:          req.Company,
		Location:         req.Location,
		Industry:         req.Industry,
		JobType:          req.JobType,
		Salary:           req.Salary,
		Skills:           req.Skills,
		Requirements:     req.Requirements,
		Responsibilities: req.Responsibilities,
		Deadline:         req.Deadline,
	})
	if err != nil {
		return mapCommonUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job updated", dto.NewJobResponse(j))
}

func (h *JobHandler) DeleteJob(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "jobId")
	if err != nil {
		return err
	}
	j, err := h.jobs.DeleteJob(c.Context(), actor, id)
	if err != nil {
		return mapCommonUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job deleted", dto.NewJobResponse(j))
}
