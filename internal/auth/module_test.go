package auth_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hanifkusuma/otpgate/internal/auth"
	"github.com/hanifkusuma/otpgate/internal/auth/inbound"
	"github.com/hanifkusuma/otpgate/internal/pkg/clock"
	"github.com/hanifkusuma/otpgate/internal/pkg/config"
	"github.com/hanifkusuma/otpgate/internal/pkg/goroutine"
	"github.com/hanifkusuma/otpgate/internal/pkg/instrument"
	"github.com/hanifkusuma/otpgate/internal/pkg/jwt"
	"github.com/hanifkusuma/otpgate/internal/pkg/router"
	"github.com/hanifkusuma/otpgate/internal/pkg/uid"
	"github.com/hanifkusuma/otpgate/internal/pkg/validator"
)

const flowConfigYAML = `
modules:
  auth:
    enabled: true
    session_ttl_minutes: 2
    cookie_ttl_minutes: 15
    sweep_interval_seconds: 0
    otp_delivery:
      driver: log
`

type fixedOtp struct {
	code int
}

func (f fixedOtp) Generate() (int, error) {
	return f.code, nil
}

func newFlowRouter(t *testing.T) *router.Router {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(flowConfigYAML))
	if err != nil {
		t.Fatalf("failed to build config: %v", err)
	}
	t.Cleanup(func() { _ = cfg.Close() })

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	signer, err := jwt.NewSymmetric([]byte(strings.Repeat("s", 64)), "otpgate", 15*time.Minute)
	if err != nil {
		t.Fatalf("failed to build jwt: %v", err)
	}

	snowflake, err := uid.NewSnowflake()
	if err != nil {
		t.Fatalf("failed to build snowflake: %v", err)
	}

	oid, err := uid.NewObjectIDGenerator()
	if err != nil {
		t.Fatalf("failed to build object id generator: %v", err)
	}

	ins := instrument.NewNoop()

	rtr := router.NewRouter(router.Config{
		Config:     cfg,
		UUID:       uid.NewUUID(),
		JWT:        signer,
		Instrument: ins,
		PublicEndpoints: map[string]map[string]struct{}{
			http.MethodGet: {
				"/": {},
			},
			http.MethodPost: {
				"/auth/login":      {},
				"/auth/verify-otp": {},
				"/auth/token":      {},
			},
		},
	})

	err = auth.New(auth.Dependency{
		Ctx:        context.Background(),
		Goroutine:  goroutine.NewManager(4),
		Router:     rtr,
		Config:     cfg,
		Instrument: ins,
		Otp:        fixedOtp{code: 123456},
		UID:        snowflake,
		OID:        oid,
		Clock:      clock.New(),
		Validator:  v10,
		JWT:        signer,
	})
	if err != nil {
		t.Fatalf("failed to build auth module: %v", err)
	}

	return rtr
}

func doJSON(t *testing.T, rtr *router.Router, req *http.Request, out any) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	rtr.ServeHTTP(rec, req)

	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec
}

func TestAuthenticationFlow(t *testing.T) {
	rtr := newFlowRouter(t)

	// Login opens a pending session.
	var login struct {
		Message        string `json:"message"`
		LoginSessionID string `json:"loginSessionId"`
	}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@b.com","password":"hunter2"}`))
	rec := doJSON(t, rtr, req, &login)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status %d, body %s", rec.Code, rec.Body.String())
	}
	if login.Message != "OTP sent" || login.LoginSessionID == "" {
		t.Fatalf("unexpected login response: %+v", login)
	}

	// Verify the passcode and collect the session cookie.
	var verify struct {
		Message string `json:"message"`
	}
	req = httptest.NewRequest(http.MethodPost, "/auth/verify-otp", strings.NewReader(`{"loginSessionId":"`+login.LoginSessionID+`","otp":"123456"}`))
	rec = doJSON(t, rtr, req, &verify)
	if rec.Code != http.StatusOK {
		t.Fatalf("verify status %d, body %s", rec.Code, rec.Body.String())
	}
	if verify.Message != "OTP verified" {
		t.Fatalf("unexpected verify response: %+v", verify)
	}

	cookies := (&http.Response{Header: rec.Header()}).Cookies()
	var session *http.Cookie
	for _, c := range cookies {
		if c.Name == inbound.SessionCookieName {
			session = c
		}
	}
	if session == nil {
		t.Fatalf("expected a %s cookie, got %v", inbound.SessionCookieName, cookies)
	}
	if !session.HttpOnly || session.Value != login.LoginSessionID {
		t.Fatalf("unexpected session cookie: %+v", session)
	}
	if session.MaxAge != int((15 * time.Minute).Seconds()) {
		t.Fatalf("unexpected cookie max age: %d", session.MaxAge)
	}

	// Exchange the cookie for an access token.
	var token struct {
		AccessToken string `json:"access_token"`
	}
	req = httptest.NewRequest(http.MethodPost, "/auth/token", nil)
	req.AddCookie(session)
	rec = doJSON(t, rtr, req, &token)
	if rec.Code != http.StatusOK {
		t.Fatalf("token status %d, body %s", rec.Code, rec.Body.String())
	}
	if token.AccessToken == "" {
		t.Fatal("expected an access token")
	}

	// The bearer token opens the protected resource.
	var resource struct {
		Message string `json:"message"`
		User    struct {
			Email     string `json:"email"`
			SessionID string `json:"sessionId"`
		} `json:"user"`
		SuccessFlag string `json:"success_flag"`
	}
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	rec = doJSON(t, rtr, req, &resource)
	if rec.Code != http.StatusOK {
		t.Fatalf("protected status %d, body %s", rec.Code, rec.Body.String())
	}
	if resource.Message != "access granted" {
		t.Fatalf("unexpected protected response: %+v", resource)
	}
	if resource.User.Email != "a@b.com" || resource.User.SessionID != login.LoginSessionID {
		t.Fatalf("unexpected identity: %+v", resource.User)
	}
	if want := base64.StdEncoding.EncodeToString([]byte("a@b.com_COMPLETED")); resource.SuccessFlag != want {
		t.Fatalf("expected success flag %q, got %q", want, resource.SuccessFlag)
	}
}

func TestAuthenticationFlowRejections(t *testing.T) {
	rtr := newFlowRouter(t)

	t.Run("LoginWithoutCredentials", func(t *testing.T) {
		var resp struct {
			Message string `json:"message"`
			Reason  string `json:"reason"`
		}
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{}`))
		rec := doJSON(t, rtr, req, &resp)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
		}
		if resp.Message != "email and password are required" || resp.Reason != "MissingCredentials" {
			t.Fatalf("unexpected response: %+v", resp)
		}
	})

	t.Run("VerifyUnknownSession", func(t *testing.T) {
		var resp struct {
			Message string `json:"message"`
			Reason  string `json:"reason"`
		}
		req := httptest.NewRequest(http.MethodPost, "/auth/verify-otp", strings.NewReader(`{"loginSessionId":"missing","otp":"123456"}`))
		rec := doJSON(t, rtr, req, &resp)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
		}
		if resp.Message != "invalid or expired login session" || resp.Reason != "InvalidOrExpiredSession" {
			t.Fatalf("unexpected response: %+v", resp)
		}
	})

	t.Run("TokenWithoutCookie", func(t *testing.T) {
		var resp struct {
			Message string `json:"message"`
			Reason  string `json:"reason"`
		}
		req := httptest.NewRequest(http.MethodPost, "/auth/token", nil)
		rec := doJSON(t, rtr, req, &resp)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
		}
		if resp.Message != "no session cookie" || resp.Reason != "NoSessionCookie" {
			t.Fatalf("unexpected response: %+v", resp)
		}
	})

	t.Run("ProtectedWithoutToken", func(t *testing.T) {
		var resp struct {
			Message string `json:"message"`
			Reason  string `json:"reason"`
		}
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		rec := doJSON(t, rtr, req, &resp)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
		}
		if resp.Message != "no token" || resp.Reason != "Unauthorized" {
			t.Fatalf("unexpected response: %+v", resp)
		}
	})

	t.Run("ProtectedWithGarbageToken", func(t *testing.T) {
		var resp struct {
			Message string `json:"message"`
			Reason  string `json:"reason"`
		}
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := doJSON(t, rtr, req, &resp)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
		}
		if resp.Message != "invalid token" || resp.Reason != "Unauthorized" {
			t.Fatalf("unexpected response: %+v", resp)
		}
	})

	t.Run("RootChallenge", func(t *testing.T) {
		var resp struct {
			Challenge string `json:"challenge"`
		}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := doJSON(t, rtr, req, &resp)
		if rec.Code != http.StatusOK {
			t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
		}
		if resp.Challenge == "" {
			t.Fatal("expected a challenge description")
		}
	})
}
