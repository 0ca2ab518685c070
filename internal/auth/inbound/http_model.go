package inbound

import (
	"net/http"

	"github.com/hanifkusuma/otpgate/internal/auth/entity"
)

// SessionCookieName is the cookie carrying the verified session token.
const SessionCookieName = "session_token"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message        string `json:"message"`
	LoginSessionID string `json:"loginSessionId"`
}

type VerifyOtpRequest struct {
	LoginSessionID string         `json:"loginSessionId"`
	Otp            entity.OtpCode `json:"otp"`
}

type VerifyOtpResponse struct {
	Message string `json:"message"`

	sessionToken string
	cookieMaxAge int
}

// Cookies sets the HttpOnly session cookie on the response.
func (r VerifyOtpResponse) Cookies() []*http.Cookie {
	return []*http.Cookie{{
		Name:     SessionCookieName,
		Value:    r.sessionToken,
		Path:     "/",
		MaxAge:   r.cookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}}
}

type IssueTokenResponse struct {
	AccessToken string `json:"access_token"`
}

type ResourceUser struct {
	Email     string `json:"email"`
	SessionID string `json:"sessionId"`
}

type ResourceResponse struct {
	Message     string       `json:"message"`
	User        ResourceUser `json:"user"`
	SuccessFlag string       `json:"success_flag"`
}

type ChallengeResponse struct {
	Challenge string `json:"challenge"`
}
