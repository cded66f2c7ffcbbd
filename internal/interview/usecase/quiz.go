package usecase

import (
	"context"

	"deadline-doom/internal/interview"
	"deadline-doom/internal/wizard"
)

// Quiz returns the state of the habit quiz.
func (uc *implUseCase) Quiz(ctx context.Context, id string) (wizard.QuizState, error) {
	snap, err := uc.Detail(ctx, id)
	if err != nil {
		return wizard.QuizState{}, err
	}
	return snap.Quiz, nil
}

// SelectOption answers the current choice question.
func (uc *implUseCase) SelectOption(ctx context.Context, input interview.SelectOptionInput) (interview.Snapshot, error) {
	return uc.withSession(ctx, "SelectOption", input.ID, func(s *interview.Session) error {
		return s.Controller.SelectOption(input.OptionID)
	})
}

// SetValue answers the current range question.
func (uc *implUseCase) SetValue(ctx context.Context, input interview.SetValueInput) (interview.Snapshot, error) {
	return uc.withSession(ctx, "SetValue", input.ID, func(s *interview.Session) error {
		return s.Controller.SetValue(input.Value)
	})
}

// NextQuestion moves the quiz forward.
func (uc *implUseCase) NextQuestion(ctx context.Context, id string) (interview.Snapshot, error) {
	return uc.withSession(ctx, "NextQuestion", id, func(s *interview.Session) error {
		return s.Controller.NextQuestion()
	})
}

// PreviousQuestion moves the quiz back.
func (uc *implUseCase) PreviousQuestion(ctx context.Context, id string) (interview.Snapshot, error) {
	return uc.withSession(ctx, "PreviousQuestion", id, func(s *interview.Session) error {
		return s.Controller.PreviousQuestion()
	})
}

// Back returns from the quiz to task collection.
func (uc *implUseCase) Back(ctx context.Context, id string) (interview.Snapshot, error) {
	return uc.withSession(ctx, "Back", id, func(s *interview.Session) error {
		return s.Controller.Back()
	})
}
