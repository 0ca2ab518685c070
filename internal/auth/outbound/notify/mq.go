package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hanifkusuma/otpgate/internal/auth/usecase"
	"github.com/hanifkusuma/otpgate/internal/pkg/instrument"
	"github.com/hanifkusuma/otpgate/internal/pkg/messaging"
	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID = "cID"

// otpIssuedMessage is the wire shape published for downstream delivery
// workers (SMS/email gateways).
type otpIssuedMessage struct {
	SessionID string    `json:"session_id"`
	Email     string    `json:"email"`
	Code      int       `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MQ publishes issued passcodes to a message broker topic.
type MQ struct {
	client      messaging.Publisher
	destination string
	ins         instrument.Instrumentation
}

func NewMQ(client messaging.Publisher, destination string, ins instrument.Instrumentation) *MQ {
	return &MQ{client: client, destination: destination, ins: ins}
}

func (m *MQ) NotifyOtpIssued(ctx context.Context, ev usecase.OtpIssuedEvent) error {
	ctx, span := m.ins.Tracer("auth.outbound.notify").Start(ctx, "NotifyOtpIssued")
	defer span.End()

	body, err := json.Marshal(otpIssuedMessage{
		SessionID: ev.SessionID,
		Email:     ev.Email,
		Code:      ev.Code,
		ExpiresAt: ev.ExpiresAt,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	msg := messaging.OutgoingMessage{
		Body:    body,
		Key:     []byte(ev.SessionID),
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}

	err = retry.Do(ctx, sendBackoff(), func(ctx context.Context) error {
		_, perr := m.client.Publish(ctx, m.destination, msg)
		return retry.RetryableError(perr)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
