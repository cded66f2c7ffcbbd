package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"deadline-doom/internal/interview"
	"deadline-doom/internal/interview/repository"
	"deadline-doom/internal/interview/usecase"
	"deadline-doom/internal/presenter"
	"deadline-doom/internal/risk"
	"deadline-doom/internal/wizard"
	"deadline-doom/pkg/gcalendar"
)

// mock dependencies

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

type mockRepo struct {
	mu       sync.Mutex
	sessions map[string]*interview.Session
	fail     bool
}

func newMockRepo() *mockRepo {
	return &mockRepo{sessions: map[string]*interview.Session{}}
}

func (m *mockRepo) CreateSession(ctx context.Context, opt repository.CreateSessionOptions) (*interview.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, errors.New("store full")
	}
	if _, ok := m.sessions[opt.ID]; ok {
		return nil, repository.ErrAlreadyExists
	}
	s := &interview.Session{ID: opt.ID, Controller: opt.Controller, CreatedAt: opt.Now, UpdatedAt: opt.Now}
	m.sessions[opt.ID] = s
	return s, nil
}

func (m *mockRepo) GetSession(ctx context.Context, id string) (*interview.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", repository.ErrNotFound, id)
	}
	return s, nil
}

func (m *mockRepo) DeleteSession(ctx context.Context, id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return repository.ErrNotFound
	}
	s.Close()
	return nil
}

func (m *mockRepo) CountSessions(ctx context.Context) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

type mockCalendar struct {
	events []gcalendar.Event
	fail   bool
	got    gcalendar.ListEventsRequest
}

func (m *mockCalendar) ListEvents(ctx context.Context, req gcalendar.ListEventsRequest) ([]gcalendar.Event, error) {
	m.got = req
	if m.fail {
		return nil, errors.New("calendar down")
	}
	return m.events, nil
}

type firstQuote struct{}

func (firstQuote) IntN(int) int { return 0 }

var testNow = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

func newUC(cal usecase.Calendar) (*mockRepo, interview.UseCase) {
	repo := newMockRepo()
	seq := 0
	uc := usecase.New(&mockLogger{}, repo, usecase.Config{
		Presenter:        presenter.New(firstQuote{}),
		Calendar:         cal,
		CalendarID:       "team",
		LookaheadDays:    7,
		AutoAdvanceDelay: 0,
		Clock:            func() time.Time { return testNow },
		NewID: func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		},
	})
	return repo, uc
}

func reasonOf(t *testing.T, err error) wizard.Reason {
	t.Helper()
	rej, ok := wizard.AsRejection(err)
	if !ok {
		t.Fatalf("error = %v, want rejection", err)
	}
	return rej.Reason
}

// startedWithTask returns an interview that has accepted one heavy task.
func startedWithTask(t *testing.T, uc interview.UseCase) string {
	t.Helper()
	ctx := context.Background()
	snap, err := uc.Create(ctx)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := uc.Start(ctx, snap.ID); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	_, err = uc.SubmitTasks(ctx, interview.SubmitTasksInput{
		ID:     snap.ID,
		Drafts: []wizard.Draft{{Title: "Thesis", Deadline: "2026-03-12", Hours: 10, Type: risk.TypeAssignment}},
	})
	if err != nil {
		t.Fatalf("SubmitTasks() error = %v", err)
	}
	return snap.ID
}

func TestFullInterview(t *testing.T) {
	ctx := context.Background()
	_, uc := newUC(nil)

	snap, err := uc.Create(ctx)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if snap.ID != "id-1" || snap.Step != wizard.StepLanding {
		t.Fatalf("Create() = %s/%s", snap.ID, snap.Step)
	}
	id := snap.ID

	if _, err := uc.Start(ctx, id); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	for _, u := range []interview.UpdateDraftInput{
		{ID: id, Index: 0, Field: wizard.FieldTitle, Value: "Thesis"},
		{ID: id, Index: 0, Field: wizard.FieldDeadline, Value: "2026-03-12"},
		{ID: id, Index: 0, Field: wizard.FieldHours, Value: "10"},
	} {
		if _, err := uc.UpdateDraft(ctx, u); err != nil {
			t.Fatalf("UpdateDraft(%s) error = %v", u.Field, err)
		}
	}
	snap, err = uc.SubmitTasks(ctx, interview.SubmitTasksInput{ID: id})
	if err != nil {
		t.Fatalf("SubmitTasks() error = %v", err)
	}
	if snap.Step != wizard.StepCollectingHabits || len(snap.Tasks) != 1 {
		t.Fatalf("after SubmitTasks: %s with %d tasks", snap.Step, len(snap.Tasks))
	}

	for _, opt := range []string{"lastmin", "often"} {
		if _, err := uc.SelectOption(ctx, interview.SelectOptionInput{ID: id, OptionID: opt}); err != nil {
			t.Fatalf("SelectOption(%s) error = %v", opt, err)
		}
	}
	if _, err := uc.SetValue(ctx, interview.SetValueInput{ID: id, Value: 2}); err != nil {
		t.Fatalf("SetValue() error = %v", err)
	}
	snap, err = uc.NextQuestion(ctx, id)
	if err != nil {
		t.Fatalf("NextQuestion() error = %v", err)
	}
	if !snap.Quiz.IsLast || snap.Quiz.Progress != 100 {
		t.Errorf("quiz = %+v, want last question at 100%%", snap.Quiz)
	}

	out, err := uc.CompleteQuiz(ctx, id)
	if err != nil {
		t.Fatalf("CompleteQuiz() error = %v", err)
	}
	if out.View.Result.Score != 100 || out.View.Result.Level != risk.LevelHigh {
		t.Errorf("result = %d %s, want 100 High", out.View.Result.Score, out.View.Result.Level)
	}
	if out.View.Theme.Background != presenter.BackgroundBad {
		t.Errorf("background = %s", out.View.Theme.Background)
	}
	if out.View.Quote != presenter.ThemeFor(risk.LevelHigh).Quotes[0] {
		t.Errorf("quote = %q", out.View.Quote)
	}

	again, err := uc.Result(ctx, id)
	if err != nil || again.View.Result.Score != 100 {
		t.Errorf("Result() = %+v, %v", again, err)
	}

	snap, err = uc.Restart(ctx, id)
	if err != nil {
		t.Fatalf("Restart() error = %v", err)
	}
	if snap.Step != wizard.StepLanding || snap.Tasks != nil || snap.Habits != nil {
		t.Errorf("after Restart: %+v", snap)
	}

	_, err = uc.SubmitHabits(ctx, interview.SubmitHabitsInput{
		ID:      id,
		Answers: wizard.Answers{"procrastination": {Option: "early"}},
	})
	if reasonOf(t, err) != wizard.ReasonWrongStep {
		t.Errorf("SubmitHabits() after restart = %v", err)
	}
	if _, err := uc.Result(ctx, id); reasonOf(t, err) != wizard.ReasonWrongStep {
		t.Errorf("Result() after restart = %v", err)
	}
}

func TestUnknownSession(t *testing.T) {
	ctx := context.Background()
	_, uc := newUC(nil)

	if _, err := uc.Detail(ctx, "nope"); !errors.Is(err, interview.ErrSessionNotFound) {
		t.Errorf("Detail() error = %v", err)
	}
	if _, err := uc.Start(ctx, "nope"); !errors.Is(err, interview.ErrSessionNotFound) {
		t.Errorf("Start() error = %v", err)
	}
	if err := uc.Delete(ctx, "nope"); !errors.Is(err, interview.ErrSessionNotFound) {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestCreate_RepoFailure(t *testing.T) {
	repo, uc := newUC(nil)
	repo.fail = true
	if _, err := uc.Create(context.Background()); err == nil {
		t.Error("Create() should surface repository errors")
	}
}

func TestSubmitTasks_RejectsAndKeepsStep(t *testing.T) {
	ctx := context.Background()
	_, uc := newUC(nil)
	snap, _ := uc.Create(ctx)
	_, _ = uc.Start(ctx, snap.ID)

	_, err := uc.SubmitTasks(ctx, interview.SubmitTasksInput{ID: snap.ID, Drafts: []wizard.Draft{}})
	if reasonOf(t, err) != wizard.ReasonNoValidTasks {
		t.Errorf("SubmitTasks([]) = %v", err)
	}

	// Nil drafts fall back to the session's single blank draft, which is invalid too.
	_, err = uc.SubmitTasks(ctx, interview.SubmitTasksInput{ID: snap.ID})
	rej, ok := wizard.AsRejection(err)
	if !ok || len(rej.Issues) != 1 || rej.Issues[0].Field != wizard.FieldTitle {
		t.Errorf("SubmitTasks(nil) = %v", err)
	}

	got, _ := uc.Detail(ctx, snap.ID)
	if got.Step != wizard.StepCollectingTasks {
		t.Errorf("Step = %s, want collecting_tasks", got.Step)
	}
}

func TestSubmitTasks_RecordsSkippedDrafts(t *testing.T) {
	ctx := context.Background()
	_, uc := newUC(nil)
	snap, _ := uc.Create(ctx)
	_, _ = uc.Start(ctx, snap.ID)

	got, err := uc.SubmitTasks(ctx, interview.SubmitTasksInput{ID: snap.ID, Drafts: []wizard.Draft{
		{Title: "Keep", Deadline: "tomorrow", Hours: 2},
		{Title: "Late", Deadline: "yesterday", Hours: 2},
	}})
	if err != nil {
		t.Fatalf("SubmitTasks() error = %v", err)
	}
	if len(got.Issues) != 1 || got.Issues[0].Problem != wizard.ProblemInPast {
		t.Errorf("Issues = %+v", got.Issues)
	}
}

func TestSubmitHabits_MissingField(t *testing.T) {
	ctx := context.Background()
	_, uc := newUC(nil)
	id := startedWithTask(t, uc)

	_, err := uc.SubmitHabits(ctx, interview.SubmitHabitsInput{
		ID:      id,
		Answers: wizard.Answers{"procrastination": {Option: "lastmin"}},
	})
	rej, ok := wizard.AsRejection(err)
	if !ok || rej.Reason != wizard.ReasonMissingField || rej.Field != "multitasking" {
		t.Fatalf("SubmitHabits() = %v", err)
	}
	snap, _ := uc.Detail(ctx, id)
	if snap.Step != wizard.StepCollectingHabits {
		t.Errorf("Step = %s", snap.Step)
	}
}

func TestBackKeepsAnswers(t *testing.T) {
	ctx := context.Background()
	_, uc := newUC(nil)
	id := startedWithTask(t, uc)

	_, _ = uc.SelectOption(ctx, interview.SelectOptionInput{ID: id, OptionID: "early"})
	snap, err := uc.Back(ctx, id)
	if err != nil {
		t.Fatalf("Back() error = %v", err)
	}
	if snap.Step != wizard.StepCollectingTasks || len(snap.Quiz.Answers) != 1 {
		t.Errorf("after Back: %s, answers %v", snap.Step, snap.Quiz.Answers)
	}
	if _, err := uc.PreviousQuestion(ctx, id); reasonOf(t, err) != wizard.ReasonWrongStep {
		t.Errorf("PreviousQuestion() outside quiz = %v", err)
	}
}

func TestRemoveDraft(t *testing.T) {
	ctx := context.Background()
	_, uc := newUC(nil)
	snap, _ := uc.Create(ctx)
	_, _ = uc.Start(ctx, snap.ID)

	out, err := uc.RemoveDraft(ctx, interview.RemoveDraftInput{ID: snap.ID, Index: 0})
	if err != nil || out.Removed {
		t.Errorf("removing the only draft = %v, %v", out.Removed, err)
	}
	_, _ = uc.AddDraft(ctx, snap.ID)
	out, err = uc.RemoveDraft(ctx, interview.RemoveDraftInput{ID: snap.ID, Index: 1})
	if err != nil || !out.Removed || len(out.Snapshot.Drafts) != 1 {
		t.Errorf("RemoveDraft() = %+v, %v", out, err)
	}
	if _, err := uc.RemoveDraft(ctx, interview.RemoveDraftInput{ID: snap.ID, Index: 5}); !errors.Is(err, wizard.ErrDraftIndex) {
		t.Errorf("RemoveDraft(5) error = %v", err)
	}
}

func TestResume(t *testing.T) {
	ctx := context.Background()
	repo, uc := newUC(nil)

	snap, err := uc.Resume(ctx, "chat-1")
	if err != nil || snap.ID != "chat-1" || snap.Step != wizard.StepLanding {
		t.Fatalf("Resume() = %+v, %v", snap, err)
	}
	_, _ = uc.Start(ctx, "chat-1")

	snap, err = uc.Resume(ctx, "chat-1")
	if err != nil || snap.Step != wizard.StepCollectingTasks {
		t.Errorf("second Resume() = %s, %v", snap.Step, err)
	}
	if n := repo.CountSessions(ctx); n != 1 {
		t.Errorf("sessions = %d, want 1", n)
	}
}

func TestOnResetRunsOnRestartAndDelete(t *testing.T) {
	ctx := context.Background()
	_, uc := newUC(nil)
	id := startedWithTask(t, uc)

	_, err := uc.SubmitHabits(ctx, interview.SubmitHabitsInput{ID: id, Answers: wizard.Answers{
		"procrastination": {Option: "early"},
		"multitasking":    {Option: "never"},
		"productivity":    {Value: 8},
	}})
	if err != nil {
		t.Fatal(err)
	}

	calls := 0
	if err := uc.OnReset(ctx, id, func() { calls++ }); err != nil {
		t.Fatalf("OnReset() error = %v", err)
	}
	if _, err := uc.Restart(ctx, id); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("hook calls after restart = %d, want 1", calls)
	}

	_ = uc.OnReset(ctx, id, func() { calls++ })
	if err := uc.Delete(ctx, id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if calls != 2 {
		t.Errorf("hook calls after delete = %d, want 2", calls)
	}
}

func TestImportCalendar(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	cal := &mockCalendar{events: []gcalendar.Event{
		{Summary: "Sprint review", Start: day.Add(9 * time.Hour), End: day.Add(11*time.Hour + 30*time.Minute)},
		{Summary: "  ", Start: day, End: day.AddDate(0, 0, 1), AllDay: true},
	}}
	_, uc := newUC(cal)

	snap, _ := uc.Create(ctx)
	if _, err := uc.ImportCalendar(ctx, interview.ImportCalendarInput{ID: snap.ID}); reasonOf(t, err) != wizard.ReasonWrongStep {
		t.Errorf("import on landing = %v", err)
	}
	_, _ = uc.Start(ctx, snap.ID)

	out, err := uc.ImportCalendar(ctx, interview.ImportCalendarInput{ID: snap.ID})
	if err != nil {
		t.Fatalf("ImportCalendar() error = %v", err)
	}
	if out.Imported != 2 {
		t.Errorf("Imported = %d, want 2", out.Imported)
	}
	if cal.got.CalendarID != "team" || !cal.got.TimeMax.Equal(testNow.AddDate(0, 0, 7)) {
		t.Errorf("ListEvents request = %+v", cal.got)
	}

	want := []wizard.Draft{
		{Title: "Sprint review", Deadline: "2026-03-12", Hours: 3, Type: risk.TypeWork},
		{Title: "Untitled event", Deadline: "2026-03-12", Hours: 1, Type: risk.TypeWork},
	}
	if len(out.Snapshot.Drafts) != len(want) {
		t.Fatalf("Drafts = %+v", out.Snapshot.Drafts)
	}
	for i := range want {
		if out.Snapshot.Drafts[i] != want[i] {
			t.Errorf("draft %d = %+v, want %+v", i, out.Snapshot.Drafts[i], want[i])
		}
	}
}

func TestImportCalendar_Errors(t *testing.T) {
	ctx := context.Background()

	_, noCal := newUC(nil)
	if _, err := noCal.ImportCalendar(ctx, interview.ImportCalendarInput{ID: "x"}); !errors.Is(err, interview.ErrCalendarUnavailable) {
		t.Errorf("without calendar = %v", err)
	}

	_, uc := newUC(&mockCalendar{fail: true})
	snap, _ := uc.Create(ctx)
	_, _ = uc.Start(ctx, snap.ID)
	if _, err := uc.ImportCalendar(ctx, interview.ImportCalendarInput{ID: snap.ID, Days: 3}); err == nil {
		t.Error("calendar failure should surface")
	}
}

func TestScore(t *testing.T) {
	ctx := context.Background()
	_, uc := newUC(nil)

	calm := wizard.Answers{
		"procrastination": {Option: "early"},
		"multitasking":    {Option: "never"},
		"productivity":    {Value: 8},
	}

	out, err := uc.Score(ctx, interview.ScoreInput{
		Drafts: []wizard.Draft{
			{Title: "Read", Deadline: "2026-03-20", Hours: 1},
			{Title: "", Deadline: "2026-03-20", Hours: 1},
		},
		Answers: calm,
	})
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if out.View.Result.Score != 1 || out.View.Result.Level != risk.LevelSafe {
		t.Errorf("result = %d %s, want 1 Safe", out.View.Result.Score, out.View.Result.Level)
	}
	if len(out.Skipped) != 1 {
		t.Errorf("Skipped = %v", out.Skipped)
	}

	_, err = uc.Score(ctx, interview.ScoreInput{Answers: calm})
	if reasonOf(t, err) != wizard.ReasonNoValidTasks {
		t.Errorf("Score() without tasks = %v", err)
	}

	_, err = uc.Score(ctx, interview.ScoreInput{
		Drafts:  []wizard.Draft{{Title: "Read", Deadline: "2026-03-20", Hours: 1}},
		Answers: wizard.Answers{"procrastination": {Option: "lastmin"}},
	})
	if reasonOf(t, err) != wizard.ReasonMissingField {
		t.Errorf("Score() with partial answers = %v", err)
	}
}
