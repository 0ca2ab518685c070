// Package notify delivers issued passcodes over an out-of-band channel.
// The channel is chosen by configuration: the operational log (default),
// email, or a message broker feeding an external delivery pipeline.
package notify

import (
	"context"
	"time"

	"github.com/hanifkusuma/otpgate/internal/auth/usecase"
	"github.com/sethvargo/go-retry"
)

const (
	// DriverLog writes the passcode to the operational log.
	DriverLog = "log"
	// DriverMail sends the passcode by email.
	DriverMail = "mail"
	// DriverMQ publishes the passcode event to a message broker.
	DriverMQ = "mq"
)

// Notifier is the delivery contract consumed by the usecase layer.
type Notifier interface {
	NotifyOtpIssued(ctx context.Context, ev usecase.OtpIssuedEvent) error
}

// sendBackoff bounds retries for network-backed channels. Delivery still
// fails the login when the last attempt errors.
func sendBackoff() retry.Backoff {
	b := retry.NewExponential(200 * time.Millisecond)
	b = retry.WithMaxRetries(3, b)
	return retry.WithCappedDuration(2*time.Second, b)
}
