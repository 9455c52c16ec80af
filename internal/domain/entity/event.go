package entity

import "time"

// AuthEventType names an audit event emitted by the authentication flow.
type AuthEventType string

const (
	AuthEventRegistered     AuthEventType = "user.registered"
	AuthEventLoginSucceeded AuthEventType = "user.login_succeeded"
	AuthEventLoginFailed    AuthEventType = "user.login_failed"
)

// AuthEvent is an audit record of an authentication attempt.
type AuthEvent struct {
	ID         string        `json:"id"`
	RequestID  string        `json:"request_id,omitempty"`
	Type       AuthEventType `json:"type"`
	Username   string        `json:"username"`
	UserID     string        `json:"user_id,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}
