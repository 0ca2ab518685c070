package notify

import (
	"context"
	"log/slog"

	"github.com/hanifkusuma/otpgate/internal/auth/usecase"
	"github.com/hanifkusuma/otpgate/internal/pkg/instrument"
)

// Log writes issued passcodes to the operational log. This is the default
// channel for local development and the reference deployment.
type Log struct {
	ins instrument.Instrumentation
}

func NewLog(ins instrument.Instrumentation) *Log {
	return &Log{ins: ins}
}

func (l *Log) NotifyOtpIssued(ctx context.Context, ev usecase.OtpIssuedEvent) error {
	ctx, span := l.ins.Tracer("auth.outbound.notify").Start(ctx, "NotifyOtpIssued")
	defer span.End()

	// The code is logged deliberately; this channel IS the delivery.
	slog.InfoContext(ctx, "otp issued",
		"session_id", ev.SessionID,
		"email", ev.Email,
		"code", ev.Code,
		"expires_at", ev.ExpiresAt,
	)

	return nil
}
