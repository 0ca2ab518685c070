package notify

import (
	"context"
	"fmt"

	"github.com/hanifkusuma/otpgate/internal/auth/usecase"
	"github.com/hanifkusuma/otpgate/internal/pkg/instrument"
	"github.com/hanifkusuma/otpgate/internal/pkg/mail"
	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel/codes"
)

// Mail sends issued passcodes to the login email address over SMTP.
type Mail struct {
	client mail.Mail
	ins    instrument.Instrumentation
}

func NewMail(client mail.Mail, ins instrument.Instrumentation) *Mail {
	return &Mail{client: client, ins: ins}
}

func (m *Mail) NotifyOtpIssued(ctx context.Context, ev usecase.OtpIssuedEvent) error {
	ctx, span := m.ins.Tracer("auth.outbound.notify").Start(ctx, "NotifyOtpIssued")
	defer span.End()

	msg := mail.Message{
		To:      []string{ev.Email},
		Subject: "Your one-time passcode",
		Body: fmt.Sprintf(
			"Your login code is %06d. It expires at %s.",
			ev.Code,
			ev.ExpiresAt.Format("15:04:05 MST"),
		),
	}

	err := retry.Do(ctx, sendBackoff(), func(ctx context.Context) error {
		return retry.RetryableError(m.client.Send(ctx, msg))
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
