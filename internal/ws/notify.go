package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const EventJobMatched = "job_matched"

type JobMatchedEvent struct {
	Type      string    `json:"type"`
	JobID     uuid.UUID `json:"job_id"`
	Title     string    `json:"title"`
	Company   string    `json:"company"`
	Location  string    `json:"location"`
	URL       string    `json:"url"`
	Timestamp string    `json:"timestamp"`
}

func NewJobMatchedEvent(jobID uuid.UUID, title, company, location, url string, at time.Time) JobMatchedEvent {
	return JobMatchedEvent{
		Type:      EventJobMatched,
		JobID:     jobID,
		Title:     title,
		Company:   company,
		Location:  location,
		URL:       url,
		Timestamp: at.UTC().Format(time.RFC3339),
	}
}

// PushJobMatched tells the user's open sockets about a job that matched
// their profile. Users without a socket are skipped.
func (h *Hub) PushJobMatched(userID uuid.UUID, evt JobMatchedEvent) error {
	if !h.UserConnected(userID) {
		return nil
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	h.SendToUser(userID, b)
	return nil
}
