package interview

import (
	"context"

	"deadline-doom/internal/wizard"
)

type UseCase interface {
	// Session lifecycle
	Create(ctx context.Context) (Snapshot, error)
	// Resume returns the session with id, creating it on the landing step
	// when it does not exist.
	Resume(ctx context.Context, id string) (Snapshot, error)
	Detail(ctx context.Context, id string) (Snapshot, error)
	Delete(ctx context.Context, id string) error
	Start(ctx context.Context, id string) (Snapshot, error)
	Restart(ctx context.Context, id string) (Snapshot, error)

	// Task collection
	AddDraft(ctx context.Context, id string) (Snapshot, error)
	UpdateDraft(ctx context.Context, input UpdateDraftInput) (Snapshot, error)
	RemoveDraft(ctx context.Context, input RemoveDraftInput) (RemoveDraftOutput, error)
	ImportCalendar(ctx context.Context, input ImportCalendarInput) (ImportCalendarOutput, error)
	SubmitTasks(ctx context.Context, input SubmitTasksInput) (Snapshot, error)

	// Habit quiz
	Quiz(ctx context.Context, id string) (wizard.QuizState, error)
	SelectOption(ctx context.Context, input SelectOptionInput) (Snapshot, error)
	SetValue(ctx context.Context, input SetValueInput) (Snapshot, error)
	NextQuestion(ctx context.Context, id string) (Snapshot, error)
	PreviousQuestion(ctx context.Context, id string) (Snapshot, error)
	Back(ctx context.Context, id string) (Snapshot, error)
	CompleteQuiz(ctx context.Context, id string) (ResultOutput, error)
	SubmitHabits(ctx context.Context, input SubmitHabitsInput) (ResultOutput, error)

	// Results
	Result(ctx context.Context, id string) (ResultOutput, error)
	Score(ctx context.Context, input ScoreInput) (ScoreOutput, error)
	// OnReset runs f once when the session is next restarted, closed or evicted.
	OnReset(ctx context.Context, id string, f func()) error
}
