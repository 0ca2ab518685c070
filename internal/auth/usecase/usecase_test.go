package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/hanifkusuma/otpgate/internal/auth/outbound/store"
	"github.com/hanifkusuma/otpgate/internal/pkg/config"
	"github.com/hanifkusuma/otpgate/internal/pkg/goerror"
	"github.com/hanifkusuma/otpgate/internal/pkg/instrument"
	"github.com/hanifkusuma/otpgate/internal/pkg/jwt"
	"github.com/hanifkusuma/otpgate/internal/pkg/validator"
)

const testConfigYAML = `
modules:
  auth:
    session_ttl_minutes: 2
    cookie_ttl_minutes: 15
`

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

type fakeNumberID struct {
	next int64
}

func (f *fakeNumberID) Generate() int64 {
	f.next++
	return f.next
}

type fakeStringID struct {
	prefix string
	next   int
}

func (f *fakeStringID) Generate() string {
	f.next++
	return fmt.Sprintf("%s-%d", f.prefix, f.next)
}

type fakeOtp struct {
	code int
	err  error
}

func (f *fakeOtp) Generate() (int, error) {
	return f.code, f.err
}

type captureNotifier struct {
	events []OtpIssuedEvent
	err    error
}

func (c *captureNotifier) NotifyOtpIssued(_ context.Context, ev OtpIssuedEvent) error {
	if c.err != nil {
		return c.err
	}
	c.events = append(c.events, ev)
	return nil
}

type fixture struct {
	uc       *Usecase
	store    *store.Store
	clock    *fakeClock
	otp      *fakeOtp
	notifier *captureNotifier
	jwt      jwt.JWT
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfigYAML))
	if err != nil {
		t.Fatalf("failed to build config: %v", err)
	}
	t.Cleanup(func() { _ = cfg.Close() })

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	clk := &fakeClock{now: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)}

	signer, err := jwt.NewSymmetric([]byte(strings.Repeat("s", 64)), "otpgate", 15*time.Minute, jwt.WithClock(clk))
	if err != nil {
		t.Fatalf("failed to build jwt: %v", err)
	}

	st := store.New()
	gen := &fakeOtp{code: 123456}
	notifier := &captureNotifier{}

	uc := New(Dependency{
		Store:      st,
		Notifier:   notifier,
		Validator:  v10,
		Config:     cfg,
		Otp:        gen,
		UID:        &fakeNumberID{},
		OID:        &fakeStringID{prefix: "sess"},
		Clock:      clk,
		JWT:        signer,
		Instrument: instrument.NewNoop(),
	})

	return &fixture{
		uc:       uc,
		store:    st,
		clock:    clk,
		otp:      gen,
		notifier: notifier,
		jwt:      signer,
	}
}

func assertReason(t *testing.T, err error, reason string) {
	t.Helper()

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected a structured error, got %v", err)
	}
	if gerr.Reason() != reason {
		t.Fatalf("expected reason %q, got %q (err: %v)", reason, gerr.Reason(), err)
	}
}
