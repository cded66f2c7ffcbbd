package usecase

import (
	"context"

	"deadline-doom/internal/interview"
	"deadline-doom/internal/risk"
	"deadline-doom/internal/wizard"
)

// CompleteQuiz submits the quiz answers gathered so far.
func (uc *implUseCase) CompleteQuiz(ctx context.Context, id string) (interview.ResultOutput, error) {
	var res risk.Result
	_, err := uc.withSession(ctx, "CompleteQuiz", id, func(s *interview.Session) error {
		var err error
		res, err = s.Controller.CompleteQuiz()
		return err
	})
	if err != nil {
		return interview.ResultOutput{}, err
	}
	return interview.ResultOutput{ID: id, View: uc.pres.Present(res)}, nil
}

// SubmitHabits submits an explicit answer map.
func (uc *implUseCase) SubmitHabits(ctx context.Context, input interview.SubmitHabitsInput) (interview.ResultOutput, error) {
	var res risk.Result
	_, err := uc.withSession(ctx, "SubmitHabits", input.ID, func(s *interview.Session) error {
		var err error
		res, err = s.Controller.SubmitHabits(input.Answers)
		return err
	})
	if err != nil {
		return interview.ResultOutput{}, err
	}
	return interview.ResultOutput{ID: input.ID, View: uc.pres.Present(res)}, nil
}

// Result returns the result of a finished interview.
func (uc *implUseCase) Result(ctx context.Context, id string) (interview.ResultOutput, error) {
	var res risk.Result
	_, err := uc.withSession(ctx, "Result", id, func(s *interview.Session) error {
		var ok bool
		res, ok = s.Controller.Result()
		if !ok {
			return &wizard.RejectionError{Reason: wizard.ReasonWrongStep, Step: s.Controller.Step()}
		}
		return nil
	})
	if err != nil {
		return interview.ResultOutput{}, err
	}
	return interview.ResultOutput{ID: id, View: uc.pres.Present(res)}, nil
}

// Score runs the same validation and scoring as an interview, in one call.
func (uc *implUseCase) Score(ctx context.Context, input interview.ScoreInput) (interview.ScoreOutput, error) {
	tasks, issues := wizard.FilterDrafts(input.Drafts, uc.dates, uc.now())
	if len(tasks) == 0 {
		rej := &wizard.RejectionError{Reason: wizard.ReasonNoValidTasks, Issues: issues}
		uc.logFailure(ctx, "Score", rej)
		return interview.ScoreOutput{}, rej
	}

	profile, rej := wizard.ProfileFromAnswers(wizard.DefaultQuestions(), input.Answers)
	if rej != nil {
		uc.logFailure(ctx, "Score", rej)
		return interview.ScoreOutput{}, rej
	}

	res, err := risk.Compute(tasks, profile, uc.now())
	if err != nil {
		uc.l.Errorf(ctx, "uc.Score Compute: %v", err)
		return interview.ScoreOutput{}, err
	}

	return interview.ScoreOutput{View: uc.pres.Present(res), Skipped: issues}, nil
}
