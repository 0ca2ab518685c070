package usecase

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/hanifkusuma/otpgate/internal/pkg/jwt"
)

func TestResource(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		ctx := jwt.SetAuth(context.Background(), &jwt.Claims{
			Email:     "a@b.com",
			SessionID: "sess-1",
		})

		// Act
		out, err := f.uc.Resource(ctx)

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Email != "a@b.com" || out.SessionID != "sess-1" {
			t.Fatalf("unexpected identity: %+v", out)
		}
		if want := base64.StdEncoding.EncodeToString([]byte("a@b.com_COMPLETED")); out.SuccessFlag != want {
			t.Fatalf("expected success flag %q, got %q", want, out.SuccessFlag)
		}
	})

	t.Run("NoClaims", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		_, err := f.uc.Resource(context.Background())

		// Assert
		assertReason(t, err, "Unauthorized")
	})
}

func TestChallenge(t *testing.T) {
	// Arrange
	f := newFixture(t)

	// Act
	out, err := f.uc.Challenge(context.Background())

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Challenge == "" {
		t.Fatal("expected a challenge description")
	}
}
