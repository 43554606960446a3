package models

// PushSubscription is a browser push endpoint registered by a user.
// The service only stores these; delivery happens elsewhere.
type PushSubscription struct {
	UserID   string `json:"-"`
	Endpoint string `json:"endpoint"`
	P256dh   string `json:"p256dh"`
	Auth     string `json:"auth"`
}
