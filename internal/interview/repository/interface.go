package repository

import (
	"context"

	"deadline-doom/internal/interview"
)

// Repository is the composed interface for the interview session store.
type Repository interface {
	SessionRepository
}

// SessionRepository keeps live sessions addressable by id.
type SessionRepository interface {
	CreateSession(ctx context.Context, opt CreateSessionOptions) (*interview.Session, error)
	GetSession(ctx context.Context, id string) (*interview.Session, error)
	DeleteSession(ctx context.Context, id string) error
	CountSessions(ctx context.Context) int
}
