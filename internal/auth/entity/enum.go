package entity

type SessionStatus int16

const (
	// SessionStatusUnknown is mean status is not known / not set.
	SessionStatusUnknown SessionStatus = 0

	// SessionStatusPendingOtp mean the session exists but the passcode has not been verified yet.
	SessionStatusPendingOtp SessionStatus = 1

	// SessionStatusVerified mean the passcode was verified and the session may be exchanged for a token.
	SessionStatusVerified SessionStatus = 2
)

func (ss SessionStatus) String() string {
	switch ss {
	case SessionStatusPendingOtp:
		return "PendingOtp"
	case SessionStatusVerified:
		return "Verified"
	default:
		return "Unknown"
	}
}

func (ss SessionStatus) IsUnknown() bool {
	switch ss {
	case SessionStatusPendingOtp, SessionStatusVerified:
		return false
	default:
		return true
	}
}
