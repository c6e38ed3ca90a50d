package domain

import "time"

// Session holds the authenticated identity plus the upstream token pair.
// Created on login, restored from the session store across gateway restarts,
// rewritten by a refresh, and destroyed on logout or an unrecoverable
// refresh failure.
type Session struct {
	ID           string    `json:"id"`
	Identity     Identity  `json:"identity"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// Expired reports whether the upstream access token has passed its expiry.
// An expired session is not destroyed eagerly; the next upstream call
// triggers a refresh.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
