package dto

import (
	"time"

	"jobboard/internal/domain/job"

	"github.com/google/uuid"
)

type JobResponse struct {
	ID               uuid.UUID  `json:"id"`
	OwnerID          uuid.UUID  `json:"owner_id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Company          string     `json:"company"`
	Location         string     `json:"location"`
	Industry         string     `json:"industry"`
	JobType          string     `json:"job_type"`
	Salary           *float64   `json:"salary"`
	Skills           []string   `json:"skills"`
	Requirements     []string   `json:"requirements"`
	Responsibilities []string   `json:"responsibilities"`
	PostedDate       time.Time  `json:"posted_date"`
	Deadline         *time.Time `json:"deadline"`
}

func NewJobResponse(j job.Job) JobResponse {
	return JobResponse{
		ID:               j.ID,
		OwnerID:          j.OwnerID,
		Title:            j.Title,
		Description:      j.Description,
		Company:          j.Company,
		Location:         j.Location,
		Industry:         j.Industry,
		JobType:          j.JobType,
		Salary:           j.Salary,
		Skills:           nonNilStrings(j.Skills),
		Requirements:     nonNilStrings(j.Requirements),
		Responsibilities: nonNilStrings(j.Responsibilities),
		PostedDate:       j.PostedDate,
		Deadline:         j.Deadline,
	}
}

func NewJobResponses(jobs []job.Job) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, NewJobResponse(j))
	}
	return out
}
