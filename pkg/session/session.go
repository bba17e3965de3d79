// Package session persists analysis results across invocations so a
// rendered journey can be reopened without re-ingesting the dataset.
// Two backends: a JSON file store for single-host use and Redis for
// shared deployments.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/caseflow/caseflow/internal/model"
)

var (
	// ErrNotFound is returned when a session id does not exist or has
	// expired.
	ErrNotFound = errors.New("session: not found")
)

// Session is one stored analysis run.
type Session struct {
	ID        string                `json:"id"`
	Dataset   string                `json:"dataset"`
	CreatedAt time.Time             `json:"created_at"`
	ExpiresAt time.Time             `json:"expires_at,omitempty"`
	Result    *model.AnalysisResult `json:"result"`
}

// Expired reports whether the session's TTL has lapsed at now.
// Sessions without an expiry never expire.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Store is the session persistence contract shared by all backends.
type Store interface {
	// Create stores the result under a fresh session id and returns
	// the session.
	Create(ctx context.Context, dataset string, result *model.AnalysisResult, ttl time.Duration) (*Session, error)

	// Get returns the session by id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// List returns all live sessions ordered by creation time.
	List(ctx context.Context) ([]*Session, error)

	// Delete removes a session. Deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error

	// Close flushes and releases backend resources.
	Close() error
}

// newSession builds a session envelope with a fresh id.
func newSession(dataset string, result *model.AnalysisResult, ttl time.Duration, now time.Time) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		Dataset:   dataset,
		CreatedAt: now,
		Result:    result,
	}
	if ttl > 0 {
		s.ExpiresAt = now.Add(ttl)
	}
	return s
}
