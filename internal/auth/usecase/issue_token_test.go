package usecase

import (
	"context"
	"testing"
)

func TestIssueToken(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
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
			t.Fatalf("verify failed: %v", err)
		}

		// Act
		out, err := f.uc.IssueToken(context.Background(), IssueTokenInput{SessionToken: login.LoginSessionID})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.AccessToken == "" {
			t.Fatal("expected a signed access token")
		}

		claims, err := f.jwt.Verify(out.AccessToken)
		if err != nil {
			t.Fatalf("issued token does not verify: %v", err)
		}
		if claims.Email != "a@b.com" {
			t.Fatalf("unexpected email claim: %q", claims.Email)
		}
		if claims.SessionID != login.LoginSessionID {
			t.Fatalf("unexpected session claim: %q", claims.SessionID)
		}
	})

	t.Run("NoCookie", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		_, err := f.uc.IssueToken(context.Background(), IssueTokenInput{})

		// Assert
		assertReason(t, err, "NoSessionCookie")
	})

	t.Run("UnknownSession", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		_, err := f.uc.IssueToken(context.Background(), IssueTokenInput{SessionToken: "no-such-session"})

		// Assert
		assertReason(t, err, "InvalidSession")
	})

	t.Run("UnverifiedSession", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		login, err := f.uc.Login(context.Background(), LoginInput{Email: "a@b.com", Password: "x"})
		if err != nil {
			t.Fatalf("login failed: %v", err)
		}

		// Act
		_, err = f.uc.IssueToken(context.Background(), IssueTokenInput{SessionToken: login.LoginSessionID})

		// Assert
		assertReason(t, err, "InvalidSession")
	})
}
