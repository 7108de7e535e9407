package job

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("job not found")

type Job struct {
	ID               uuid.UUID
	OwnerID          uuid.UUID
	Title            string
	Description      string
	Company          string
	Location         string
	Industry         string
	JobType          string
	Salary           *float64
	Skills           []string
	Requirements     []string
	Responsibilities []string
	PostedDate       time.Time
	Deadline         *time.Time
	UpdatedAt        time.Time
}

// HasSalary reports whether the posting advertises a positive annual salary.
func (j Job) HasSalary() bool {
	return j.Salary != nil && *j.Salary > 0
}

type SearchFilter struct {
	JobTypes   []string
	Locations  []string
	Industries []string
	SalaryMin  *float64
	SalaryMax  *float64
}

// Update carries a partial job change; nil fields are left untouched.
type Update struct {
	Title            *string
	Description      *string
	Company          *string
	Location         *string
	Industry         *string
	JobType          *string
	Salary           *float64
	Skills           []string
	Requirements     []string
	Responsibilities []string
	Deadline         *time.Time
}

func (u Update) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Company == nil && u.Location == nil &&
		u.Industry == nil && u.JobType == nil && u.Salary == nil && u.Skills == nil &&
		u.Requirements == nil && u.Responsibilities == nil && u.Deadline == nil
}
