package usecase

import (
	"context"
	"errors"

	"deadline-doom/internal/interview"
	"deadline-doom/internal/interview/repository"
)

// Create starts a new interview on the landing step.
func (uc *implUseCase) Create(ctx context.Context) (interview.Snapshot, error) {
	s, err := uc.repo.CreateSession(ctx, repository.CreateSessionOptions{
		ID:         uc.newID(),
		Controller: uc.newController(),
		Now:        uc.now(),
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Create CreateSession: %v", err)
		return interview.Snapshot{}, err
	}

	s.Mu.Lock()
	defer s.Mu.Unlock()
	return snapshotOf(s), nil
}

// Resume returns the interview with id, creating it when missing.
func (uc *implUseCase) Resume(ctx context.Context, id string) (interview.Snapshot, error) {
	snap, err := uc.Detail(ctx, id)
	if !errors.Is(err, interview.ErrSessionNotFound) {
		return snap, err
	}

	s, err := uc.repo.CreateSession(ctx, repository.CreateSessionOptions{
		ID:         id,
		Controller: uc.newController(),
		Now:        uc.now(),
	})
	if errors.Is(err, repository.ErrAlreadyExists) {
		// Lost a race with another request for the same id.
		return uc.Detail(ctx, id)
	}
	if err != nil {
		uc.l.Errorf(ctx, "uc.Resume CreateSession: %v", err)
		return interview.Snapshot{}, err
	}

	s.Mu.Lock()
	defer s.Mu.Unlock()
	return snapshotOf(s), nil
}

// Detail returns a snapshot of the interview.
func (uc *implUseCase) Detail(ctx context.Context, id string) (interview.Snapshot, error) {
	s, err := uc.getSession(ctx, id)
	if err != nil {
		return interview.Snapshot{}, err
	}
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return snapshotOf(s), nil
}

// Delete drops the interview and stops its timers.
func (uc *implUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.DeleteSession(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return interview.ErrSessionNotFound
		}
		uc.l.Errorf(ctx, "uc.Delete DeleteSession: %v", err)
		return err
	}
	return nil
}

// Start leaves the landing step.
func (uc *implUseCase) Start(ctx context.Context, id string) (interview.Snapshot, error) {
	return uc.withSession(ctx, "Start", id, func(s *interview.Session) error {
		return s.Controller.Start()
	})
}

// Restart clears a finished interview.
func (uc *implUseCase) Restart(ctx context.Context, id string) (interview.Snapshot, error) {
	return uc.withSession(ctx, "Restart", id, func(s *interview.Session) error {
		if err := s.Controller.Restart(); err != nil {
			return err
		}
		s.Issues = nil
		return nil
	})
}

// OnReset registers f on the interview's controller.
func (uc *implUseCase) OnReset(ctx context.Context, id string, f func()) error {
	_, err := uc.withSession(ctx, "OnReset", id, func(s *interview.Session) error {
		s.Controller.OnReset(f)
		return nil
	})
	return err
}
