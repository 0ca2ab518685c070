package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/hanifkusuma/otpgate/internal/auth/entity"
	"github.com/hanifkusuma/otpgate/internal/pkg/goerror"
	"github.com/hanifkusuma/otpgate/internal/pkg/validator"
)

type LoginInput struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

type LoginOutput struct {
	LoginSessionID string
}

// Login checks credential presence, opens a pending login session, and
// hands the passcode to the out-of-band notifier. The passcode is never
// part of the output.
func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.WarnContext(ctx, "login request is missing credentials")

		berr := goerror.NewBusiness("email and password are required", "MissingCredentials", goerror.CodeInvalidInput)

		var errValidate validator.V10ValidationError
		if errors.As(err, &errValidate) {
			return nil, goerror.WithFields(berr, errValidate.Values())
		}

		return nil, berr
	}

	email := strings.TrimSpace(in.Email)
	now := s.clock.Now()
	expiresAt := now.Add(s.cfg.GetMinute("modules.auth.session_ttl_minutes"))

	code, err := s.otp.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "error", err)
		return nil, goerror.NewServer(err)
	}

	sess := entity.LoginSession{
		ID:        s.uid.Generate(),
		Token:     s.oid.Generate(),
		Email:     email,
		Status:    entity.SessionStatusPendingOtp,
		ExpiresAt: expiresAt,
	}

	if err := s.store.SaveLogin(ctx, sess, entity.OtpChallenge{
		SessionToken: sess.Token,
		Code:         code,
		ExpiresAt:    expiresAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to store login session", "session_id", sess.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.notifier.NotifyOtpIssued(ctx, OtpIssuedEvent{
		SessionID: sess.Token,
		Email:     email,
		Code:      code,
		ExpiresAt: expiresAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to deliver otp", "session_id", sess.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LoginOutput{LoginSessionID: sess.Token}, nil
}
