package inbound

import (
	"github.com/hanifkusuma/otpgate/internal/auth/usecase"
	"github.com/hanifkusuma/otpgate/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for the authentication flow.
type HTTPEndpoint struct {
	uc uc
}

// Login validates credentials, opens a login session, and triggers
// out-of-band passcode delivery. The passcode itself never appears in the
// response.
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{
		Message:        "OTP sent",
		LoginSessionID: resp.LoginSessionID,
	}, nil
}

// VerifyOtp checks the submitted passcode and sets the session cookie on
// success.
func (h *HTTPEndpoint) VerifyOtp(r *router.Request) (any, error) {
	var req VerifyOtpRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.VerifyOtp(r.Context(), usecase.VerifyOtpInput{
		LoginSessionID: req.LoginSessionID,
		Code:           req.Otp.Int(),
	})
	if err != nil {
		return nil, err
	}

	return VerifyOtpResponse{
		Message:      "OTP verified",
		sessionToken: resp.SessionToken,
		cookieMaxAge: int(resp.CookieMaxAge.Seconds()),
	}, nil
}

// IssueToken exchanges the session cookie for a signed access token.
func (h *HTTPEndpoint) IssueToken(r *router.Request) (any, error) {
	resp, err := h.uc.IssueToken(r.Context(), usecase.IssueTokenInput{
		SessionToken: r.GetCookie(SessionCookieName),
	})
	if err != nil {
		return nil, err
	}

	return IssueTokenResponse{AccessToken: resp.AccessToken}, nil
}

// Resource serves the protected payload for an authenticated bearer token.
func (h *HTTPEndpoint) Resource(r *router.Request) (any, error) {
	resp, err := h.uc.Resource(r.Context())
	if err != nil {
		return nil, err
	}

	return ResourceResponse{
		Message: "access granted",
		User: ResourceUser{
			Email:     resp.Email,
			SessionID: resp.SessionID,
		},
		SuccessFlag: resp.SuccessFlag,
	}, nil
}

// Challenge describes the flow for clients landing on the root endpoint.
func (h *HTTPEndpoint) Challenge(r *router.Request) (any, error) {
	resp, err := h.uc.Challenge(r.Context())
	if err != nil {
		return nil, err
	}

	return ChallengeResponse{Challenge: resp.Challenge}, nil
}
