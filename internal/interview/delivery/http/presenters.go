package http

import (
	"fmt"
	"time"

	"deadline-doom/internal/interview"
	"deadline-doom/internal/presenter"
	"deadline-doom/internal/risk"
	"deadline-doom/internal/wizard"
	"deadline-doom/pkg/response"
)

// --- Request DTOs ---

type updateDraftReq struct {
	ID    string       `json:"-"`
	Index int          `json:"-"`
	Field wizard.Field `json:"field" binding:"required"`
	Value string       `json:"value"`
}

func (r updateDraftReq) validate() error {
	switch r.Field {
	case wizard.FieldTitle, wizard.FieldDeadline, wizard.FieldHours, wizard.FieldType:
		return nil
	default:
		return fmt.Errorf("%w: %q", wizard.ErrDraftField, r.Field)
	}
}

func (r updateDraftReq) toInput() interview.UpdateDraftInput {
	return interview.UpdateDraftInput{
		ID:    r.ID,
		Index: r.Index,
		Field: r.Field,
		Value: r.Value,
	}
}

// ---

type importCalendarReq struct {
	ID   string `json:"-"`
	Days int    `json:"days"`
}

func (r importCalendarReq) validate() error {
	if r.Days < 0 {
		return fmt.Errorf("%w: days must not be negative", interview.ErrInvalidPayload)
	}
	return nil
}

func (r importCalendarReq) toInput() interview.ImportCalendarInput {
	return interview.ImportCalendarInput{ID: r.ID, Days: r.Days}
}

// ---

// submitTasksReq submits Drafts, or the session's drafts when the field is absent.
type submitTasksReq struct {
	ID     string         `json:"-"`
	Drafts []wizard.Draft `json:"drafts"`
}

func (r submitTasksReq) toInput() interview.SubmitTasksInput {
	return interview.SubmitTasksInput{ID: r.ID, Drafts: r.Drafts}
}

// ---

type selectOptionReq struct {
	ID       string `json:"-"`
	OptionID string `json:"option_id" binding:"required"`
}

func (r selectOptionReq) toInput() interview.SelectOptionInput {
	return interview.SelectOptionInput{ID: r.ID, OptionID: r.OptionID}
}

// ---

type setValueReq struct {
	ID    string `json:"-"`
	Value *int   `json:"value" binding:"required"`
}

func (r setValueReq) toInput() interview.SetValueInput {
	return interview.SetValueInput{ID: r.ID, Value: *r.Value}
}

// ---

type submitHabitsReq struct {
	ID      string         `json:"-"`
	Answers wizard.Answers `json:"answers"`
}

func (r submitHabitsReq) toInput() interview.SubmitHabitsInput {
	return interview.SubmitHabitsInput{ID: r.ID, Answers: r.Answers}
}

// ---

type scoreReq struct {
	Tasks   []wizard.Draft `json:"tasks"`
	Answers wizard.Answers `json:"answers"`
}

func (r scoreReq) toInput() interview.ScoreInput {
	return interview.ScoreInput{Drafts: r.Tasks, Answers: r.Answers}
}

// --- Response DTOs ---

type taskResp struct {
	Title     string        `json:"title"`
	Deadline  string        `json:"deadline"`
	Hours     int           `json:"hours"`
	Type      risk.TaskType `json:"type"`
	TypeLabel string        `json:"type_label"`
	TypeEmoji string        `json:"type_emoji"`
}

func newTaskResp(t risk.Task) taskResp {
	return taskResp{
		Title:     t.Title,
		Deadline:  t.Deadline.Format(response.DateFormat),
		Hours:     t.Hours,
		Type:      t.Type,
		TypeLabel: t.Type.Label(),
		TypeEmoji: t.Type.Emoji(),
	}
}

type habitsResp struct {
	Procrastination risk.Procrastination `json:"procrastination"`
	Multitasking    risk.Multitasking    `json:"multitasking"`
	Productivity    int                  `json:"productivity"`
	Caffeine        risk.Caffeine        `json:"caffeine,omitempty"`
}

type quizResp struct {
	Question wizard.Question `json:"question"`
	Index    int             `json:"index"`
	Total    int             `json:"total"`
	Progress float64         `json:"progress"`
	IsLast   bool            `json:"is_last"`
	Pending  bool            `json:"pending_advance"`
	Answers  wizard.Answers  `json:"answers"`
}

func newQuizResp(q wizard.QuizState) quizResp {
	answers := q.Answers
	if answers == nil {
		answers = wizard.Answers{}
	}
	return quizResp{
		Question: q.Question,
		Index:    q.Index,
		Total:    q.Total,
		Progress: q.Progress,
		IsLast:   q.IsLast,
		Pending:  q.Pending,
		Answers:  answers,
	}
}

type snapshotResp struct {
	ID        string              `json:"id"`
	Step      wizard.Step         `json:"step"`
	Drafts    []wizard.Draft      `json:"drafts"`
	Tasks     []taskResp          `json:"tasks"`
	Quiz      quizResp            `json:"quiz"`
	Habits    *habitsResp         `json:"habits,omitempty"`
	Result    *risk.Result        `json:"result,omitempty"`
	Skipped   []wizard.DraftIssue `json:"skipped,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func newSnapshotResp(s interview.Snapshot) snapshotResp {
	tasks := make([]taskResp, len(s.Tasks))
	for i, t := range s.Tasks {
		tasks[i] = newTaskResp(t)
	}

	var habits *habitsResp
	if s.Habits != nil {
		habits = &habitsResp{
			Procrastination: s.Habits.Procrastination,
			Multitasking:    s.Habits.Multitasking,
			Productivity:    s.Habits.Productivity,
			Caffeine:        s.Habits.Caffeine,
		}
	}

	return snapshotResp{
		ID:        s.ID,
		Step:      s.Step,
		Drafts:    s.Drafts,
		Tasks:     tasks,
		Quiz:      newQuizResp(s.Quiz),
		Habits:    habits,
		Result:    s.Result,
		Skipped:   s.Issues,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

type removeDraftResp struct {
	Removed   bool         `json:"removed"`
	Interview snapshotResp `json:"interview"`
}

func (h *handler) newRemoveDraftResp(out interview.RemoveDraftOutput) removeDraftResp {
	return removeDraftResp{Removed: out.Removed, Interview: newSnapshotResp(out.Snapshot)}
}

type importCalendarResp struct {
	Imported  int          `json:"imported"`
	Interview snapshotResp `json:"interview"`
}

func (h *handler) newImportCalendarResp(out interview.ImportCalendarOutput) importCalendarResp {
	return importCalendarResp{Imported: out.Imported, Interview: newSnapshotResp(out.Snapshot)}
}

type resultResp struct {
	ID string `json:"id,omitempty"`
	presenter.View
}

func (h *handler) newResultResp(out interview.ResultOutput) resultResp {
	return resultResp{ID: out.ID, View: out.View}
}

type scoreResp struct {
	presenter.View
	Skipped []wizard.DraftIssue `json:"skipped,omitempty"`
}

func (h *handler) newScoreResp(out interview.ScoreOutput) scoreResp {
	return scoreResp{View: out.View, Skipped: out.Skipped}
}
