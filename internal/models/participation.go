package models

import "time"

// Participation statuses. Only accepted records count toward conflicts.
const (
	ParticipationPending  = "pending"
	ParticipationAccepted = "accepted"
	ParticipationDeclined = "declined"
)

// ValidParticipationStatus reports whether s is one of the known statuses.
func ValidParticipationStatus(s string) bool {
	return s == ParticipationPending || s == ParticipationAccepted || s == ParticipationDeclined
}

// Participation links a user to an event with an RSVP status.
type Participation struct {
	ID        string    `json:"id"`
	EventID   string    `json:"eventId"`
	UserID    string    `json:"userId"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Invite is a pending participation joined with its event, as listed by
// GET /invites.
type Invite struct {
	ID    string       `json:"id"`
	Event EventSummary `json:"event"`
}

// InviteRequest is the POST /events/:id/invites payload.
type InviteRequest struct {
	UserID string `json:"userId"`
}

// InviteResponseRequest is the POST /invites/:id/respond payload.
type InviteResponseRequest struct {
	Status string `json:"status"`
}
