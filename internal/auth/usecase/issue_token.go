package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hanifkusuma/otpgate/internal/auth/entity"
	"github.com/hanifkusuma/otpgate/internal/pkg/goerror"
)

type IssueTokenInput struct {
	SessionToken string
}

type IssueTokenOutput struct {
	AccessToken string
}

// IssueToken exchanges a verified session cookie for a signed access
// token. The session must have completed passcode verification; holding a
// cookie that names a live but unverified session is not enough.
func (s *Usecase) IssueToken(ctx context.Context, in IssueTokenInput) (*IssueTokenOutput, error) {
	ctx, span := s.startSpan(ctx, "IssueToken")
	defer span.End()

	if in.SessionToken == "" {
		slog.WarnContext(ctx, "token request without session cookie")
		return nil, goerror.NewBusiness("no session cookie", "NoSessionCookie", goerror.CodeUnauthorized)
	}

	sess, err := s.store.GetSession(ctx, in.SessionToken)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "session cookie references no live session")
		return nil, goerror.NewBusiness("invalid session", "InvalidSession", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get login session", "error", err)
		return nil, goerror.NewServer(err)
	}

	if sess.Status != entity.SessionStatusVerified {
		slog.WarnContext(ctx, "session has not completed otp verification", "session_id", sess.ID, "status", sess.Status.String())
		return nil, goerror.NewBusiness("invalid session", "InvalidSession", goerror.CodeUnauthorized)
	}

	token, err := s.jwt.Generate(sess.Token, sess.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to sign access token", "session_id", sess.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &IssueTokenOutput{AccessToken: token}, nil
}
