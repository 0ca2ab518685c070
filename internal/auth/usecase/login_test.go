package usecase

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		out, err := f.uc.Login(context.Background(), LoginInput{Email: "a@b.com", Password: "x"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.LoginSessionID == "" {
			t.Fatal("expected a login session id")
		}

		sess, err := f.store.GetSession(context.Background(), out.LoginSessionID)
		if err != nil {
			t.Fatalf("session not stored: %v", err)
		}
		if sess.Email != "a@b.com" {
			t.Fatalf("unexpected email: %q", sess.Email)
		}
		if want := f.clock.now.Add(2 * time.Minute); !sess.ExpiresAt.Equal(want) {
			t.Fatalf("expected expiry %v, got %v", want, sess.ExpiresAt)
		}

		if len(f.notifier.events) != 1 {
			t.Fatalf("expected 1 delivery, got %d", len(f.notifier.events))
		}
		ev := f.notifier.events[0]
		if ev.SessionID != out.LoginSessionID || ev.Email != "a@b.com" || ev.Code != 123456 {
			t.Fatalf("unexpected delivery event: %+v", ev)
		}
	})

	t.Run("DistinctSessionIDs", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		in := LoginInput{Email: "a@b.com", Password: "x"}

		// Act
		first, err := f.uc.Login(context.Background(), in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := f.uc.Login(context.Background(), in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Assert
		if first.LoginSessionID == second.LoginSessionID {
			t.Fatal("expected distinct session ids for repeated logins")
		}
	})

	t.Run("MissingCredentials", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		tests := []LoginInput{
			{},
			{Email: "a@b.com"},
			{Password: "x"},
		}

		for _, in := range tests {
			// Act
			_, err := f.uc.Login(context.Background(), in)

			// Assert
			assertReason(t, err, "MissingCredentials")
		}

		if len(f.notifier.events) != 0 {
			t.Fatalf("expected no delivery, got %d", len(f.notifier.events))
		}
	})

	t.Run("DeliveryFailure", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.notifier.err = errors.New("smtp down")

		// Act
		_, err := f.uc.Login(context.Background(), LoginInput{Email: "a@b.com", Password: "x"})

		// Assert
		assertReason(t, err, "InternalError")
	})

	t.Run("OtpGenerationFailure", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.otp.err = errors.New("entropy exhausted")

		// Act
		_, err := f.uc.Login(context.Background(), LoginInput{Email: "a@b.com", Password: "x"})

		// Assert
		assertReason(t, err, "InternalError")
	})
}
