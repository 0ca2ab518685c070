package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hanifkusuma/otpgate/internal/pkg/goerror"
)

type VerifyOtpInput struct {
	LoginSessionID string
	Code           int `validate:"otpcode"`
}

type VerifyOtpOutput struct {
	SessionToken string
	CookieMaxAge time.Duration
}

// VerifyOtp checks a submitted passcode against the pending session. The
// session expiry is enforced before the code is even looked at, so an
// expired session fails the same way regardless of code correctness. A
// correct code is consumed on match; a wrong one leaves the challenge in
// place for another attempt.
func (s *Usecase) VerifyOtp(ctx context.Context, in VerifyOtpInput) (*VerifyOtpOutput, error) {
	ctx, span := s.startSpan(ctx, "VerifyOtp")
	defer span.End()

	sess, err := s.store.GetSession(ctx, in.LoginSessionID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "login session not found")
		return nil, goerror.NewBusiness("invalid or expired login session", "InvalidOrExpiredSession", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get login session", "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	if sess.Expired(now) {
		if err := s.store.DeleteSession(ctx, sess.Token); err != nil {
			slog.ErrorContext(ctx, "failed to evict expired session", "session_id", sess.ID, "error", err)
			return nil, goerror.NewServer(err)
		}

		slog.WarnContext(ctx, "login session has expired", "session_id", sess.ID)
		return nil, goerror.NewBusiness("invalid or expired login session", "InvalidOrExpiredSession", goerror.CodeUnauthorized)
	}

	// An out-of-range submission can never match a live challenge.
	if err := s.validator.Validate(in); err != nil {
		slog.WarnContext(ctx, "submitted otp is out of range", "session_id", sess.ID)
		return nil, goerror.NewBusiness("invalid otp", "InvalidOtp", goerror.CodeUnauthorized)
	}

	ok, err := s.store.ConsumeOtpChallenge(ctx, sess.Token, in.Code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to consume otp challenge", "session_id", sess.ID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !ok {
		slog.WarnContext(ctx, "submitted otp does not match", "session_id", sess.ID)
		return nil, goerror.NewBusiness("invalid otp", "InvalidOtp", goerror.CodeUnauthorized)
	}

	if err := s.store.MarkVerified(ctx, sess.Token, now); err != nil {
		slog.ErrorContext(ctx, "failed to mark session verified", "session_id", sess.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &VerifyOtpOutput{
		SessionToken: sess.Token,
		CookieMaxAge: s.cfg.GetMinute("modules.auth.cookie_ttl_minutes"),
	}, nil
}
