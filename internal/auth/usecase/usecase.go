package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/hanifkusuma/otpgate/internal/auth/entity"
	"github.com/hanifkusuma/otpgate/internal/pkg/clock"
	"github.com/hanifkusuma/otpgate/internal/pkg/config"
	"github.com/hanifkusuma/otpgate/internal/pkg/instrument"
	"github.com/hanifkusuma/otpgate/internal/pkg/jwt"
	"github.com/hanifkusuma/otpgate/internal/pkg/otp"
	"github.com/hanifkusuma/otpgate/internal/pkg/uid"
	"github.com/hanifkusuma/otpgate/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

// OtpIssuedEvent describes a freshly issued passcode handed to the
// out-of-band delivery channel.
type OtpIssuedEvent struct {
	SessionID string
	Email     string
	Code      int
	ExpiresAt time.Time
}

type repoStore interface {
	SaveLogin(ctx context.Context, sess entity.LoginSession, chal entity.OtpChallenge) error
	GetSession(ctx context.Context, token string) (*entity.LoginSession, error)
	ConsumeOtpChallenge(ctx context.Context, token string, code int) (bool, error)
	MarkVerified(ctx context.Context, token string, at time.Time) error
	DeleteSession(ctx context.Context, token string) error
	SweepExpired(ctx context.Context, now time.Time, verifiedTTL time.Duration) (int, error)
}

type otpNotifier interface {
	NotifyOtpIssued(ctx context.Context, ev OtpIssuedEvent) error
}

type Usecase struct {
	store     repoStore
	notifier  otpNotifier
	validator validator.Validator
	cfg       config.Config
	otp       otp.Generator
	uid       uid.NumberID
	oid       uid.StringID
	clock     clock.Clocker
	jwt       jwt.JWT
	ins       instrument.Instrumentation
}

type Dependency struct {
	Store      repoStore
	Notifier   otpNotifier
	Validator  validator.Validator
	Config     config.Config
	Otp        otp.Generator
	UID        uid.NumberID
	OID        uid.StringID
	Clock      clock.Clocker
	JWT        jwt.JWT
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		store:     dep.Store,
		notifier:  dep.Notifier,
		validator: dep.Validator,
		cfg:       dep.Config,
		otp:       dep.Otp,
		uid:       dep.UID,
		oid:       dep.OID,
		clock:     dep.Clock,
		jwt:       dep.JWT,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.usecase").Start(ctx, name)
}

// SweepExpired removes stale sessions and challenges. It is called on an
// interval by the module when sweeping is enabled.
func (s *Usecase) SweepExpired(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "SweepExpired")
	defer span.End()

	verifiedTTL := s.cfg.GetMinute("modules.auth.cookie_ttl_minutes")

	removed, err := s.store.SweepExpired(ctx, s.clock.Now(), verifiedTTL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to sweep expired sessions", "error", err)
		return err
	}

	if removed > 0 {
		slog.InfoContext(ctx, "swept expired login sessions", "removed", removed)
	}

	return nil
}
