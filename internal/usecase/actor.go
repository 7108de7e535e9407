package usecase

import (
	"github.com/google/uuid"
)

// Actor is the authenticated caller of a usecase.
type Actor struct {
	UserID   uuid.UUID
	Admin    bool
	Employer bool
}

func (a Actor) IsSeeker() bool {
	return !a.Admin && !a.Employer
}

// CanActFor reports whether the actor may act on userID's own resources.
func (a Actor) CanActFor(userID uuid.UUID) bool {
	return a.Admin || (a.UserID != uuid.Nil && a.UserID == userID)
}

// Upload is a file received from a client.
type Upload struct {
	Name        string
	ContentType string
	Data        []byte
}

func (u *Upload) valid() bool {
	return u != nil && u.Name != "" && len(u.Data) > 0
}

func (u *Upload) contentType() string {
	if u.ContentType == "" {
		return "application/octet-stream"
	}
	return u.ContentType
}
