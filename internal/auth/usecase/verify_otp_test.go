package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hanifkusuma/otpgate/internal/auth/entity"
	"github.com/hanifkusuma/otpgate/internal/pkg/goerror"
)

func TestVerifyOtp(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		login, err := f.uc.Login(context.Background(), LoginInput{Email: "a@b.com", Password: "x"})
		if err != nil {
			t.Fatalf("login failed: %v", err)
		}

		// Act
		out, err := f.uc.VerifyOtp(context.Background(), VerifyOtpInput{
			LoginSessionID: login.LoginSessionID,
			Code:           123456,
		})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.SessionToken != login.LoginSessionID {
			t.Fatalf("expected session token %q, got %q", login.LoginSessionID, out.SessionToken)
		}
		if out.CookieMaxAge != 15*time.Minute {
			t.Fatalf("expected 15m cookie max age, got %v", out.CookieMaxAge)
		}

		sess, err := f.store.GetSession(context.Background(), out.SessionToken)
		if err != nil {
			t.Fatalf("session gone after verify: %v", err)
		}
		if sess.Status != entity.SessionStatusVerified {
			t.Fatalf("expected verified status, got %v", sess.Status)
		}
	})

	t.Run("UnknownSession", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		_, err := f.uc.VerifyOtp(context.Background(), VerifyOtpInput{
			LoginSessionID: "no-such-session",
			Code:           123456,
		})

		// Assert
		assertReason(t, err, "InvalidOrExpiredSession")
	})

	t.Run("ExpiredSessionEvenWithCorrectCode", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		login, err := f.uc.Login(context.Background(), LoginInput{Email: "a@b.com", Password: "x"})
		if err != nil {
			t.Fatalf("login failed: %v", err)
		}
		f.clock.now = f.clock.now.Add(3 * time.Minute)

		// Act
		_, err = f.uc.VerifyOtp(context.Background(), VerifyOtpInput{
			LoginSessionID: login.LoginSessionID,
			Code:           123456,
		})

		// Assert
		assertReason(t, err, "InvalidOrExpiredSession")

		if _, err := f.store.GetSession(context.Background(), login.LoginSessionID); !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("expected expired session to be evicted, got %v", err)
		}
	})

	t.Run("WrongCodeRetainsChallenge", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		login, err := f.uc.Login(context.Background(), LoginInput{Email: "a@b.com", Password: "x"})
		if err != nil {
			t.Fatalf("login failed: %v", err)
		}

		// Act
		_, err = f.uc.VerifyOtp(context.Background(), VerifyOtpInput{
			LoginSessionID: login.LoginSessionID,
			Code:           654321,
		})

		// Assert
		assertReason(t, err, "InvalidOtp")

		// The challenge survives a mismatch, so the correct code still works.
		out, err := f.uc.VerifyOtp(context.Background(), VerifyOtpInput{
			LoginSessionID: login.LoginSessionID,
			Code:           123456,
		})
		if err != nil {
			t.Fatalf("correct code after mismatch failed: %v", err)
		}
		if out.SessionToken != login.LoginSessionID {
			t.Fatalf("unexpected session token %q", out.SessionToken)
		}
	})

	t.Run("OutOfRangeCode", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		login, err := f.uc.Login(context.Background(), LoginInput{Email: "a@b.com", Password: "x"})
		if err != nil {
			t.Fatalf("login failed: %v", err)
		}

		for _, code := range []int{0, 99999, 1000000, -123456} {
			// Act
			_, err := f.uc.VerifyOtp(context.Background(), VerifyOtpInput{
				LoginSessionID: login.LoginSessionID,
				Code:           code,
			})

			// Assert
			assertReason(t, err, "InvalidOtp")
		}
	})

	t.Run("Replay", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		login, err := f.uc.Login(context.Background(), LoginInput{Email: "a@b.com", Password: "x"})
		if err != nil {
			t.Fatalf("login failed: %v", err)
		}
		if _, err := f.uc.VerifyOtp(context.Background(), VerifyOtpInput{
			LoginSessionID: login.LoginSessionID,
			Code:           123456,
		}); err != nil {
			t.Fatalf("first verify failed: %v", err)
		}

		// Act
		_, err = f.uc.VerifyOtp(context.Background(), VerifyOtpInput{
			LoginSessionID: login.LoginSessionID,
			Code:           123456,
		})

		// Assert
		assertReason(t, err, "InvalidOtp")
	})
}
