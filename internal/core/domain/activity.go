package domain

import "time"

// ActivityKind labels a tracked user action.
type ActivityKind string

const (
	ActivityLogin       ActivityKind = "login"
	ActivityLogout      ActivityKind = "logout"
	ActivityCartUpdated ActivityKind = "cart_updated"
	ActivityCheckout    ActivityKind = "checkout"
	ActivityPageView    ActivityKind = "page_view"
)

// ActivityEvent records a single user action flowing through the activity
// pipeline. Events for one session are applied in the order they occurred.
type ActivityEvent struct {
	ID         string       `json:"id"`
	SessionID  string       `json:"session_id"`
	IdentityID string       `json:"identity_id,omitempty"`
	Kind       ActivityKind `json:"kind"`
	Path       string       `json:"path,omitempty"`
	OccurredAt time.Time    `json:"occurred_at"`
}
