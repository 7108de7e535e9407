package handler

import (
	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type StatsHandler struct {
	uc usecase.StatsUsecase
}

func NewStatsHandler(uc usecase.StatsUsecase) *StatsHandler {
	return &StatsHandler{uc: uc}
}

func (h *StatsHandler) Counts(c fiber.Ctx) error {
	counts, err := h.uc.Counts(c.Context())
	if err != nil {
		return mapCommonUsecaseError(err)
	}
	return ok(c, dto.CountsResponse{
		JobSeekers:   counts.JobSeekers,
		Jobs:         counts.Jobs,
		Applications: counts.Applications,
	})
}
