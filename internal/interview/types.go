package interview

import (
	"sync"
	"time"

	"deadline-doom/internal/presenter"
	"deadline-doom/internal/risk"
	"deadline-doom/internal/wizard"
)

// --- Session ---

// Session is one live interview. Mu serialises every operation on
// Controller, which is not safe for concurrent use.
type Session struct {
	Mu         sync.Mutex
	ID         string
	Controller *wizard.Controller
	CreatedAt  time.Time
	UpdatedAt  time.Time
	// Issues are the drafts dropped by the last task submission.
	Issues []wizard.DraftIssue
}

// Close stops every timer the interview owns.
func (s *Session) Close() {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	s.Controller.Close()
}

// Snapshot is a read-only copy of a session.
type Snapshot struct {
	ID        string
	Step      wizard.Step
	Drafts    []wizard.Draft
	Tasks     []risk.Task
	Quiz      wizard.QuizState
	Habits    *risk.HabitProfile
	Result    *risk.Result
	Issues    []wizard.DraftIssue
	CreatedAt time.Time
	UpdatedAt time.Time
}

// --- UseCase Inputs ---

type UpdateDraftInput struct {
	ID    string
	Index int
	Field wizard.Field
	Value string
}

type RemoveDraftInput struct {
	ID    string
	Index int
}

// SubmitTasksInput submits Drafts, or the session's own drafts when Drafts is nil.
type SubmitTasksInput struct {
	ID     string
	Drafts []wizard.Draft
}

type SelectOptionInput struct {
	ID       string
	OptionID string
}

type SetValueInput struct {
	ID    string
	Value int
}

type SubmitHabitsInput struct {
	ID      string
	Answers wizard.Answers
}

// ImportCalendarInput pulls events starting within Days from now. Zero uses
// the configured lookahead.
type ImportCalendarInput struct {
	ID   string
	Days int
}

// ScoreInput is a one-shot scoring request that never touches a session.
type ScoreInput struct {
	Drafts  []wizard.Draft
	Answers wizard.Answers
}

// --- UseCase Outputs ---

type RemoveDraftOutput struct {
	Snapshot Snapshot
	Removed  bool
}

type ImportCalendarOutput struct {
	Snapshot Snapshot
	Imported int
}

type ResultOutput struct {
	ID   string
	View presenter.View
}

type ScoreOutput struct {
	View    presenter.View
	Skipped []wizard.DraftIssue
}
