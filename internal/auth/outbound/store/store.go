// Package store holds all login session and passcode state for the
// lifetime of the process. Nothing is persisted; a restart drops every
// pending and verified session.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/hanifkusuma/otpgate/internal/auth/entity"
	"github.com/hanifkusuma/otpgate/internal/pkg/goerror"
	"github.com/samber/lo"
)

// Store is a concurrency-safe in-memory container for login sessions and
// their one-time passcode challenges, both keyed by session token.
type Store struct {
	mu         sync.RWMutex
	sessions   map[string]entity.LoginSession
	challenges map[string]entity.OtpChallenge
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		sessions:   make(map[string]entity.LoginSession),
		challenges: make(map[string]entity.OtpChallenge),
	}
}

// SaveLogin records a new login session together with its passcode
// challenge in one step.
func (s *Store) SaveLogin(_ context.Context, sess entity.LoginSession, chal entity.OtpChallenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sess.Token] = sess
	s.challenges[chal.SessionToken] = chal

	return nil
}

// GetSession returns the session for the given token, or
// goerror.ErrNotFound when no such session exists.
func (s *Store) GetSession(_ context.Context, token string) (*entity.LoginSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[token]
	if !ok {
		return nil, goerror.ErrNotFound
	}

	return &sess, nil
}

// ConsumeOtpChallenge atomically compares the submitted code against the
// live challenge for the session and deletes the challenge on a match.
// It reports false without side effects when the challenge is absent or
// the code differs, keeping the challenge usable for a later attempt.
func (s *Store) ConsumeOtpChallenge(_ context.Context, token string, code int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chal, ok := s.challenges[token]
	if !ok || chal.Code != code {
		return false, nil
	}

	delete(s.challenges, token)

	return true, nil
}

// MarkVerified transitions the session to Verified and records the
// verification time.
func (s *Store) MarkVerified(_ context.Context, token string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return goerror.ErrNotFound
	}

	sess.Status = entity.SessionStatusVerified
	sess.VerifiedAt = at
	s.sessions[token] = sess

	return nil
}

// DeleteSession removes the session and any live challenge for the token.
// Deleting an absent token is a no-op.
func (s *Store) DeleteSession(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	delete(s.challenges, token)

	return nil
}

// SweepExpired removes sessions whose useful life has ended: pending ones
// past their deadline and verified ones older than the cookie lifetime.
// It returns how many sessions were removed.
func (s *Store) SweepExpired(_ context.Context, now time.Time, verifiedTTL time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stale := lo.PickBy(s.sessions, func(_ string, sess entity.LoginSession) bool {
		if sess.Status == entity.SessionStatusVerified {
			return now.After(sess.VerifiedAt.Add(verifiedTTL))
		}
		return sess.Expired(now)
	})

	for token := range stale {
		delete(s.sessions, token)
		delete(s.challenges, token)
	}

	return len(stale), nil
}

// Len reports how many sessions are currently held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}
