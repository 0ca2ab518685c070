package entity

import "time"

// LoginSession is the server-side record of a login attempt. Token is the
// opaque identifier handed to the client; ID is an internal record id used
// for logging.
type LoginSession struct {
	ID         int64
	Token      string
	Email      string
	Status     SessionStatus
	ExpiresAt  time.Time
	VerifiedAt time.Time
}

// Expired reports whether the session deadline has passed at the given time.
func (s LoginSession) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// OtpChallenge is the pending one-time passcode for a login session.
// There is at most one live challenge per session token.
type OtpChallenge struct {
	SessionToken string
	Code         int
	ExpiresAt    time.Time
}
