package usecase

import (
	"context"
	"errors"

	"deadline-doom/internal/interview"
	"deadline-doom/internal/interview/repository"
	"deadline-doom/internal/wizard"
)

func (uc *implUseCase) getSession(ctx context.Context, id string) (*interview.Session, error) {
	s, err := uc.repo.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, interview.ErrSessionNotFound
		}
		uc.l.Errorf(ctx, "uc.getSession GetSession: %v", err)
		return nil, err
	}
	return s, nil
}

// withSession runs fn under the session lock and returns the resulting
// snapshot. The repository is never called while the lock is held.
func (uc *implUseCase) withSession(ctx context.Context, op, id string, fn func(s *interview.Session) error) (interview.Snapshot, error) {
	s, err := uc.getSession(ctx, id)
	if err != nil {
		return interview.Snapshot{}, err
	}

	s.Mu.Lock()
	defer s.Mu.Unlock()

	if err := fn(s); err != nil {
		uc.logFailure(ctx, op, err)
		return interview.Snapshot{}, err
	}
	s.UpdatedAt = uc.now()
	return snapshotOf(s), nil
}

// logFailure logs rejections at warn and everything else at error.
func (uc *implUseCase) logFailure(ctx context.Context, op string, err error) {
	if errors.Is(err, wizard.ErrRejected) ||
		errors.Is(err, wizard.ErrDraftIndex) ||
		errors.Is(err, wizard.ErrDraftField) ||
		errors.Is(err, wizard.ErrDraftValue) {
		uc.l.Warnf(ctx, "uc.%s rejected: %v", op, err)
		return
	}
	uc.l.Errorf(ctx, "uc.%s: %v", op, err)
}

// snapshotOf copies s. The caller holds s.Mu.
func snapshotOf(s *interview.Session) interview.Snapshot {
	sess := s.Controller.Session()
	return interview.Snapshot{
		ID:        s.ID,
		Step:      sess.Step,
		Drafts:    s.Controller.Drafts(),
		Tasks:     sess.Tasks,
		Quiz:      s.Controller.Quiz(),
		Habits:    sess.Habits,
		Result:    sess.Result,
		Issues:    append([]wizard.DraftIssue(nil), s.Issues...),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
