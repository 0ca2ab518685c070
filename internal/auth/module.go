// Package auth implements the multi-step authentication flow: password
// login, passcode challenge, session cookie, and signed access token.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/hanifkusuma/otpgate/internal/auth/inbound"
	"github.com/hanifkusuma/otpgate/internal/auth/outbound/notify"
	"github.com/hanifkusuma/otpgate/internal/auth/outbound/store"
	"github.com/hanifkusuma/otpgate/internal/auth/usecase"
	"github.com/hanifkusuma/otpgate/internal/pkg/clock"
	"github.com/hanifkusuma/otpgate/internal/pkg/config"
	"github.com/hanifkusuma/otpgate/internal/pkg/goroutine"
	"github.com/hanifkusuma/otpgate/internal/pkg/instrument"
	"github.com/hanifkusuma/otpgate/internal/pkg/jwt"
	"github.com/hanifkusuma/otpgate/internal/pkg/mail"
	"github.com/hanifkusuma/otpgate/internal/pkg/messaging"
	"github.com/hanifkusuma/otpgate/internal/pkg/otp"
	"github.com/hanifkusuma/otpgate/internal/pkg/router"
	"github.com/hanifkusuma/otpgate/internal/pkg/uid"
	"github.com/hanifkusuma/otpgate/internal/pkg/validator"
)

type Dependency struct {
	Ctx        context.Context            `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	Otp        otp.Generator              `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	OID        uid.StringID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`

	// Mail and Messaging are only required for their matching delivery
	// drivers, so they are validated at selection time instead of here.
	Mail      mail.Mail
	Messaging messaging.Publisher
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	notifier, err := newNotifier(dep)
	if err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		Store:      store.New(),
		Notifier:   notifier,
		Validator:  dep.Validator,
		Config:     dep.Config,
		Otp:        dep.Otp,
		UID:        dep.UID,
		OID:        dep.OID,
		Clock:      dep.Clock,
		JWT:        dep.JWT,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	if interval := dep.Config.GetSecond("modules.auth.sweep_interval_seconds"); interval > 0 {
		startSweeper(dep, uc, interval)
	}

	return nil
}

func newNotifier(dep Dependency) (notify.Notifier, error) {
	driver := dep.Config.GetString("modules.auth.otp_delivery.driver")
	switch driver {
	case "", notify.DriverLog:
		return notify.NewLog(dep.Instrument), nil
	case notify.DriverMail:
		if dep.Mail == nil {
			return nil, fmt.Errorf("auth: otp delivery driver %q requires a mail client", driver)
		}
		return notify.NewMail(dep.Mail, dep.Instrument), nil
	case notify.DriverMQ:
		if dep.Messaging == nil {
			return nil, fmt.Errorf("auth: otp delivery driver %q requires a messaging client", driver)
		}
		destination := dep.Config.GetString("modules.auth.otp_delivery.mq.destination")
		return notify.NewMQ(dep.Messaging, destination, dep.Instrument), nil
	default:
		return nil, fmt.Errorf("auth: unknown otp delivery driver %q", driver)
	}
}

func startSweeper(dep Dependency, uc *usecase.Usecase, interval time.Duration) {
	dep.Goroutine.Go(dep.Ctx, func(ctx context.Context) error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				//nolint:errcheck // sweep failures are logged, never fatal
				uc.SweepExpired(ctx)
			}
		}
	})
}
