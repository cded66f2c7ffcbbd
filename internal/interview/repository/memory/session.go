package memory

import (
	"context"
	"fmt"

	"deadline-doom/internal/interview"
	"deadline-doom/internal/interview/repository"
)

func (r *implRepository) CreateSession(ctx context.Context, opt repository.CreateSessionOptions) (*interview.Session, error) {
	if opt.ID == "" || opt.Controller == nil {
		return nil, repository.ErrInvalidOption
	}
	if _, ok := r.sessions.Peek(opt.ID); ok {
		return nil, fmt.Errorf("%w: %s", repository.ErrAlreadyExists, opt.ID)
	}
	// Drop an expired entry the sweeper has not reached yet.
	r.sessions.Remove(opt.ID)

	s := &interview.Session{
		ID:         opt.ID,
		Controller: opt.Controller,
		CreatedAt:  opt.Now,
		UpdatedAt:  opt.Now,
	}
	if evicted := r.sessions.Add(opt.ID, s); evicted {
		r.l.Debugf(ctx, "repository.memory.CreateSession: evicted oldest session to store %s", opt.ID)
	}
	return s, nil
}

// GetSession returns the session and restarts its expiry clock.
func (r *implRepository) GetSession(ctx context.Context, id string) (*interview.Session, error) {
	s, ok := r.sessions.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", repository.ErrNotFound, id)
	}
	r.sessions.Add(id, s)
	return s, nil
}

func (r *implRepository) DeleteSession(ctx context.Context, id string) error {
	if !r.sessions.Remove(id) {
		return fmt.Errorf("%w: %s", repository.ErrNotFound, id)
	}
	return nil
}

func (r *implRepository) CountSessions(ctx context.Context) int {
	return r.sessions.Len()
}
