package models

import "time"

// Event is a planned gathering owned by its organizer.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	StartsAt    time.Time `json:"startsAt"`
	CreatedBy   string    `json:"createdById"`
	CreatedAt   time.Time `json:"createdAt"`
}

// EventSummary is the lightweight projection returned by the conflicts
// endpoint: just enough for a caller to render "already busy at ...".
type EventSummary struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
}

// Summary projects an event to its conflict-response shape.
func (e Event) Summary() EventSummary {
	return EventSummary{ID: e.ID, Title: e.Title, Date: e.StartsAt}
}

// EventCreateRequest is the POST /events payload. startsAt must be RFC3339.
type EventCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	StartsAt    string `json:"startsAt"`
}

// ConflictRequest is the POST /events/conflicts payload.
// date is a calendar date (YYYY-MM-DD) with no time component.
type ConflictRequest struct {
	UserIDs []string `json:"userIds"`
	Date    string   `json:"date"`
}

// ConflictResponse maps each requested user to the events that user is
// already committed to on the requested date.
type ConflictResponse struct {
	Conflicts map[string][]EventSummary `json:"conflicts"`
}
