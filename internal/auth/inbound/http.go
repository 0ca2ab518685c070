package inbound

import (
	"context"

	"github.com/hanifkusuma/otpgate/internal/auth/usecase"
	"github.com/hanifkusuma/otpgate/internal/pkg/router"
)

type uc interface {
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	VerifyOtp(ctx context.Context, in usecase.VerifyOtpInput) (*usecase.VerifyOtpOutput, error)
	IssueToken(ctx context.Context, in usecase.IssueTokenInput) (*usecase.IssueTokenOutput, error)
	Resource(ctx context.Context) (*usecase.ResourceOutput, error)
	Challenge(ctx context.Context) (*usecase.ChallengeOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/auth/login", end.Login)
	r.POST("/auth/verify-otp", end.VerifyOtp)
	r.POST("/auth/token", end.IssueToken)

	// Needs a bearer access token (guarded by the router middleware).
	r.GET("/protected", end.Resource)

	r.GET("/", end.Challenge)
}
