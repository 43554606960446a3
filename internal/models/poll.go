package models

import "time"

// Poll lets invitees vote between candidate start times for an event.
type Poll struct {
	ID      string       `json:"id"`
	EventID string       `json:"eventId"`
	Title   string       `json:"title"`
	Closed  bool         `json:"closed"`
	Options []PollOption `json:"options"`
}

// PollOption is one candidate start time together with its vote count.
type PollOption struct {
	ID       string    `json:"id"`
	StartsAt time.Time `json:"startsAt"`
	Votes    int       `json:"votes"`
}

// PollCreateRequest is the POST /events/:id/polls payload.
// Each option is an RFC3339 candidate start time.
type PollCreateRequest struct {
	Title   string   `json:"title"`
	Options []string `json:"options"`
}

// VoteRequest is the POST /polls/:id/vote payload.
type VoteRequest struct {
	OptionID string `json:"optionId"`
}
