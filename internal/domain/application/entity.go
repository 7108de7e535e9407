package application

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const StatusPending = "Pending"

var (
	ErrNotFound     = errors.New("application not found")
	ErrFileNotFound = errors.New("application file not found")
	ErrDuplicate    = errors.New("application already exists")
)

type FileRef struct {
	FileID uuid.UUID
	Name   string
}

// Applicant is the contact snapshot submitted with an application.
type Applicant struct {
	Email       string
	Name        string
	Phone       string
	Location    string
	Resume      *FileRef
	CoverLetter *FileRef
}

type Application struct {
	ID        uuid.UUID
	JobID     uuid.UUID
	UserID    uuid.UUID
	Applicant Applicant
	Status    string
	AppliedAt time.Time
	UpdatedAt time.Time
}

// View is an application joined with the title and company of its job.
type View struct {
	ApplicationID uuid.UUID
	JobID         uuid.UUID
	UserID        uuid.UUID
	JobTitle      string
	JobCompany    string
	Status        string
	AppliedAt     time.Time
	Applicant     Applicant
}

type File struct {
	ID            uuid.UUID
	ApplicationID uuid.UUID
	UserID        uuid.UUID
	Name          string
	ContentType   string
	Data          []byte
}
