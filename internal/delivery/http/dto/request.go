package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs the struct's validate tags.
func Validate(v any) error {
	return validate.Struct(v)
}

type ProfileUpdateRequest struct {
	Name        *string             `json:"name" validate:"omitempty,min=1"`
	Phone       *string             `json:"phone" validate:"omitempty,min=1"`
	Location    *string             `json:"location"`
	Experience  *int                `json:"experience" validate:"omitempty,gte=0"`
	Skills      []string            `json:"skills"`
	Preferences *PreferencesPayload `json:"preferences"`
}

type InteractionRequest struct {
	JobID uuid.UUID `json:"job_id" validate:"required"`
}

type JobCreateRequest struct {
	Title            string     `json:"title" validate:"required"`
	Description      string     `json:"description"`
	Company          string     `json:"company" validate:"required"`
	Location         string     `json:"location" validate:"required"`
	Industry         string     `json:"industry" validate:"required"`
	JobType          string     `json:"job_type" validate:"required"`
	Salary           *float64   `json:"salary" validate:"omitempty,gte=0"`
	Skills           []string   `json:"skills"`
	Requirements     []string   `json:"requirements"`
	Responsibilities []string   `json:"responsibilities"`
	Deadline         *time.Time `json:"deadline"`
}

type JobUpdateRequest struct {
	Title            *string    `json:"title" validate:"omitempty,min=1"`
	Description      *string    `json:"description"`
	Company          *string    `json:"company" validate:"omitempty,min=1"`
	Location         *string    `json:"location" validate:"omitempty,min=1"`
	Industry         *string    `json:"industry" validate:"omitempty,min=1"`
	JobType          *string    `json:"job_type" validate:"omitempty,min=1"`
	Salary           *float64   `json:"salary" validate:"omitempty,gte=0"`
	Skills           []string   `json:"skills"`
	Requirements     []string   `json:"requirements"`
	Responsibilities []string   `json:"responsibilities"`
	Deadline         *time.Time `json:"deadline"`
}

type JobSearchRequest struct {
	JobTypes   []string `json:"job_types"`
	Locations  []string `json:"locations"`
	Industries []string `json:"industries"`
	SalaryMin  *float64 `json:"salary_min" validate:"omitempty,gte=0"`
	SalaryMax  *float64 `json:"salary_max" validate:"omitempty,gte=0"`
}

type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}
