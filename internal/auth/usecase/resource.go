package usecase

import (
	"context"
	"encoding/base64"
	"log/slog"

	"github.com/hanifkusuma/otpgate/internal/pkg/goerror"
	"github.com/hanifkusuma/otpgate/internal/pkg/jwt"
)

// successFlagSuffix is appended to the email before encoding so that any
// holder of the encoding rule can recompute the flag for a given identity.
const successFlagSuffix = "_COMPLETED"

type ResourceOutput struct {
	Email       string
	SessionID   string
	SuccessFlag string
}

// Resource returns the authenticated identity together with a
// deterministic completion artifact derived from it.
func (s *Usecase) Resource(ctx context.Context) (*ResourceOutput, error) {
	ctx, span := s.startSpan(ctx, "Resource")
	defer span.End()

	claims := jwt.GetAuth(ctx)
	if claims == nil {
		slog.WarnContext(ctx, "protected resource reached without claims")
		return nil, goerror.NewBusiness("no token", "Unauthorized", goerror.CodeUnauthorized)
	}

	flag := base64.StdEncoding.EncodeToString([]byte(claims.Email + successFlagSuffix))

	return &ResourceOutput{
		Email:       claims.Email,
		SessionID:   claims.SessionID,
		SuccessFlag: flag,
	}, nil
}
