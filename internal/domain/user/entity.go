package user

import (
	"time"

	"github.com/google/uuid"
)

type Preferences struct {
	JobTypes   []string
	Industries []string
	Locations  []string
	// Salary is the minimum annual salary the user accepts; nil means no floor.
	Salary *float64
}

func (p Preferences) IsZero() bool {
	return len(p.JobTypes) == 0 && len(p.Industries) == 0 && len(p.Locations) == 0 && p.Salary == nil
}

type FileRef struct {
	FileID uuid.UUID
	Name   string
}

type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Phone        string
	IsAdmin      bool
	IsEmployer   bool
	Location     *string
	Experience   *int
	Skills       []string
	Preferences  *Preferences
	Resume       *FileRef
	Interactions []uuid.UUID

	ResetToken       *string
	ResetTokenExpiry *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u User) IsJobSeeker() bool {
	return !u.IsAdmin && !u.IsEmployer
}

func (u User) HasInteracted(jobID uuid.UUID) bool {
	for _, id := range u.Interactions {
		if id == jobID {
			return true
		}
	}
	return false
}

type File struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	ContentType string
	Data        []byte
}

type ProfileUpdate struct {
	Name        *string
	Phone       *string
	Location    *string
	Experience  *int
	Skills      []string
	Preferences *Preferences
	Resume      *FileRef
}

type Counts struct {
	JobSeekers   int
	Jobs         int
	Applications int
}
