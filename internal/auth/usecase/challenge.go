package usecase

import "context"

type ChallengeOutput struct {
	Challenge string
}

// Challenge describes the authentication flow for clients landing on the
// root endpoint.
func (s *Usecase) Challenge(ctx context.Context) (*ChallengeOutput, error) {
	_, span := s.startSpan(ctx, "Challenge")
	defer span.End()

	return &ChallengeOutput{
		Challenge: "POST /auth/login with {email, password}, verify the passcode at " +
			"POST /auth/verify-otp, exchange the session cookie at POST /auth/token, " +
			"then GET /protected with the bearer token.",
	}, nil
}
