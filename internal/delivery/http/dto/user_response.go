package dto

import (
	"time"

	"jobboard/internal/domain/user"

	"github.com/google/uuid"
)

type PreferencesPayload struct {
	JobTypes   []string `json:"job_types"`
	Industries []string `json:"industries"`
	Locations  []string `json:"locations"`
	Salary     *float64 `json:"salary" validate:"omitempty,gte=0"`
}

type FileRefResponse struct {
	FileID uuid.UUID `json:"file_id"`
	Name   string    `json:"name"`
}

// UserResponse hides seeker-only fields for admins and employers.
type UserResponse struct {
	ID           uuid.UUID           `json:"id"`
	Email        string              `json:"email"`
	Name         string              `json:"name"`
	Phone        string              `json:"phone"`
	IsAdmin      bool                `json:"is_admin"`
	IsEmployer   bool                `json:"is_employer"`
	Location     *string             `json:"location,omitempty"`
	Experience   *int                `json:"experience,omitempty"`
	Skills       []string            `json:"skills,omitempty"`
	Preferences  *PreferencesPayload `json:"preferences,omitempty"`
	Resume       *FileRefResponse    `json:"resume,omitempty"`
	Interactions []uuid.UUID         `json:"interactions,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

func NewUserResponse(u user.User) UserResponse {
	out := UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Phone:      u.Phone,
		IsAdmin:    u.IsAdmin,
		IsEmployer: u.IsEmployer,
		CreatedAt:  u.CreatedAt,
	}
	if !u.IsJobSeeker() {
		return out
	}

	out.Location = u.Location
	out.Experience = u.Experience
	out.Skills = nonNilStrings(u.Skills)
	out.Interactions = u.Interactions
	if out.Interactions == nil {
		out.Interactions = []uuid.UUID{}
	}
	if u.Preferences != nil {
		out.Preferences = &PreferencesPayload{
			JobTypes:   nonNilStrings(u.Preferences.JobTypes),
			Industries: nonNilStrings(u.Preferences.Industries),
			Locations:  nonNilStrings(u.Preferences.Locations),
			Salary:     u.Preferences.Salary,
		}
	}
	if u.Resume != nil {
		out.Resume = &FileRefResponse{FileID: u.Resume.FileID, Name: u.Resume.Name}
	}
	return out
}

func NewUserResponses(users []user.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

type CountsResponse struct {
	JobSeekers   int `json:"job_seekers"`
	Jobs         int `json:"jobs"`
	Applications int `json:"applications"`
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
