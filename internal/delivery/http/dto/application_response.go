package dto

import (
	"time"

	"jobboard/internal/domain/application"

	"github.com/google/uuid"
)

type ApplicantResponse struct {
	Email       string           `json:"email"`
	Name        string           `json:"name"`
	Phone       string           `json:"phone"`
	Location    string           `json:"location"`
	Resume      *FileRefResponse `json:"resume"`
	CoverLetter *FileRefResponse `json:"cover_letter"`
}

type ApplicationResponse struct {
	ID        uuid.UUID         `json:"id"`
	JobID     uuid.UUID         `json:"job_id"`
	UserID    uuid.UUID         `json:"user_id"`
	JobTitle  string            `json:"job_title,omitempty"`
	Company   string            `json:"company,omitempty"`
	Status    string            `json:"status"`
	AppliedAt time.Time         `json:"applied_at"`
	Applicant ApplicantResponse `json:"applicant"`
}

type ApplicationCheckResponse struct {
	Applied       bool       `json:"applied"`
	ApplicationID *uuid.UUID `json:"application_id"`
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:        a.ID,
		JobID:     a.JobID,
		UserID:    a.UserID,
		Status:    a.Status,
		AppliedAt: a.AppliedAt,
		Applicant: newApplicantResponse(a.Applicant),
	}
}

func NewApplicationViewResponse(v application.View) ApplicationResponse {
	return ApplicationResponse{
		ID:        v.ApplicationID,
		JobID:     v.JobID,
		UserID:    v.UserID,
		JobTitle:  v.JobTitle,
		Company:   v.JobCompany,
		Status:    v.Status,
		AppliedAt: v.AppliedAt,
		Applicant: newApplicantResponse(v.Applicant),
	}
}

func NewApplicationViewResponses(views []application.View) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(views))
	for _, v := range views {
		out = append(out, NewApplicationViewResponse(v))
	}
	return out
}

func newApplicantResponse(a application.Applicant) ApplicantResponse {
	return ApplicantResponse{
		Email:       a.Email,
		Name:        a.Name,
		Phone:       a.Phone,
		Location:    a.Location,
		Resume:      fileRef(a.Resume),
		CoverLetter: fileRef(a.CoverLetter),
	}
}

func fileRef(ref *application.FileRef) *FileRefResponse {
	if ref == nil {
		return nil
	}
	return &FileRefResponse{FileID: ref.FileID, Name: ref.Name}
}
