package wizard

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"deadline-doom/internal/risk"
)

func rejectionReason(t *testing.T, err error) Reason {
	t.Helper()
	rej, ok := AsRejection(err)
	if !ok {
		t.Fatalf("error = %v, want *RejectionError", err)
	}
	return rej.Reason
}

func TestDefaultQuestions_Order(t *testing.T) {
	var ids []string
	for _, q := range DefaultQuestions() {
		ids = append(ids, q.ID)
	}
	want := []string{QuestionProcrastination, QuestionMultitasking, QuestionProductivity, QuestionCaffeine}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("question order mismatch (-want +got):\n%s", diff)
	}
}

func TestHabitCollector_ChoiceAutoAdvances(t *testing.T) {
	sched := &fakeScheduler{}
	c := NewHabitCollector(DefaultQuestions(), sched, DefaultAutoAdvanceDelay)

	if err := c.Select("lastmin"); err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if c.Index() != 0 || !c.Pending() {
		t.Fatalf("advance should be pending, index=%d pending=%v", c.Index(), c.Pending())
	}
	if sched.delays[0] != DefaultAutoAdvanceDelay {
		t.Errorf("scheduled after %v, want %v", sched.delays[0], DefaultAutoAdvanceDelay)
	}

	sched.fire()

	if c.Index() != 1 {
		t.Errorf("Index() = %d after timer, want 1", c.Index())
	}
	if c.Pending() {
		t.Error("Pending() should be false after firing")
	}
	if got := c.Answers()[QuestionProcrastination]; got != (Answer{Option: "lastmin", Value: 1.5}) {
		t.Errorf("answer = %+v", got)
	}
}

func TestHabitCollector_ZeroDelayAdvancesImmediately(t *testing.T) {
	c := NewHabitCollector(DefaultQuestions(), &fakeScheduler{}, 0)
	if err := c.Select("early"); err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if c.Index() != 1 {
		t.Errorf("Index() = %d, want 1", c.Index())
	}
}

func TestHabitCollector_BackCancelsPendingAdvance(t *testing.T) {
	sched := &fakeScheduler{}
	c := NewHabitCollector(DefaultQuestions(), sched, DefaultAutoAdvanceDelay)

	if err := c.Select("early"); err != nil {
		t.Fatal(err)
	}
	sched.fire()
	if err := c.Select("often"); err != nil {
		t.Fatal(err)
	}
	if err := c.Back(); err != nil {
		t.Fatalf("Back() error = %v", err)
	}
	if !sched.timers[1].stopped {
		t.Error("Back() should stop the pending timer")
	}

	// The callback was already running when Back stopped it.
	sched.fireLate(1)

	if c.Index() != 0 {
		t.Errorf("stale timer moved the quiz to %d", c.Index())
	}
	if _, ok := c.Answers()[QuestionMultitasking]; !ok {
		t.Error("Back() should keep answers")
	}
}

func TestHabitCollector_ReselectReplacesTimer(t *testing.T) {
	sched := &fakeScheduler{}
	c := NewHabitCollector(DefaultQuestions(), sched, DefaultAutoAdvanceDelay)

	_ = c.Select("early")
	_ = c.Select("after")
	sched.fireLate(0)
	if c.Index() != 0 {
		t.Fatalf("first timer should be stale, index=%d", c.Index())
	}
	sched.fire()
	if c.Index() != 1 {
		t.Errorf("Index() = %d, want 1", c.Index())
	}
	if got := c.Answers()[QuestionProcrastination].Option; got != "after" {
		t.Errorf("answer = %q, want after", got)
	}
}

func TestHabitCollector_RangeDoesNotAdvance(t *testing.T) {
	c := NewHabitCollector(DefaultQuestions(), &fakeScheduler{}, 0)
	_ = c.Select("early")
	_ = c.Select("never")

	if err := c.SetValue(6); err != nil {
		t.Fatalf("SetValue() error = %v", err)
	}
	if c.Index() != 2 || c.Pending() {
		t.Errorf("range answer moved quiz: index=%d pending=%v", c.Index(), c.Pending())
	}

	for _, v := range []int{-1, 13} {
		if err := c.SetValue(v); rejectionReason(t, err) != ReasonInvalidValue {
			t.Errorf("SetValue(%d) error = %v", v, err)
		}
	}
	if got := c.Answers()[QuestionProductivity].Value; got != 6 {
		t.Errorf("productivity = %v, want 6", got)
	}
}

func TestHabitCollector_NextRequiresAnswer(t *testing.T) {
	c := NewHabitCollector(DefaultQuestions(), &fakeScheduler{}, 0)

	if err := c.Next(); rejectionReason(t, err) != ReasonUnanswered {
		t.Errorf("Next() on unanswered question: %v", err)
	}
	_ = c.Select("ontime")
	_ = c.Back()
	if err := c.Next(); err != nil {
		t.Errorf("Next() on answered question error = %v", err)
	}
}

func TestHabitCollector_Boundaries(t *testing.T) {
	c := NewHabitCollector(DefaultQuestions(), &fakeScheduler{}, 0)

	if err := c.Back(); rejectionReason(t, err) != ReasonFirstQuestion {
		t.Errorf("Back() on first question: %v", err)
	}
	if _, err := c.Finish(); rejectionReason(t, err) != ReasonQuizOpen {
		t.Errorf("Finish() before last question: %v", err)
	}

	_ = c.Select("ontime")
	_ = c.Select("sometimes")
	_ = c.SetValue(5)
	if err := c.Next(); err != nil {
		t.Fatal(err)
	}
	if !c.IsLast() {
		t.Fatal("expected to be on the last question")
	}
	if err := c.Next(); rejectionReason(t, err) != ReasonLastQuestion {
		t.Errorf("Next() on last question: %v", err)
	}

	// Choosing on the final question records without scheduling.
	_ = c.Select("lots")
	if c.Pending() {
		t.Error("final question should not auto-advance")
	}
	if got := c.Progress(); got != 100 {
		t.Errorf("Progress() = %v, want 100", got)
	}

	answers, err := c.Finish()
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if len(answers) != 4 {
		t.Errorf("Finish() = %d answers, want 4", len(answers))
	}
}

func TestHabitCollector_SelectRejectsWrongInput(t *testing.T) {
	c := NewHabitCollector(DefaultQuestions(), &fakeScheduler{}, 0)
	if err := c.Select("sometimes"); rejectionReason(t, err) != ReasonInvalidValue {
		t.Errorf("Select() with foreign option: %v", err)
	}
	if err := c.SetValue(3); rejectionReason(t, err) != ReasonInvalidValue {
		t.Errorf("SetValue() on choice question: %v", err)
	}
	if len(c.Answers()) != 0 {
		t.Error("rejected input was recorded")
	}
}

func TestHabitCollector_ResetCancels(t *testing.T) {
	sched := &fakeScheduler{}
	c := NewHabitCollector(DefaultQuestions(), sched, DefaultAutoAdvanceDelay)
	_ = c.Select("early")
	c.Reset()
	sched.fireLate(0)

	if c.Index() != 0 || len(c.Answers()) != 0 {
		t.Errorf("Reset() left index=%d answers=%v", c.Index(), c.Answers())
	}
}

func TestProfileFromAnswers(t *testing.T) {
	qs := DefaultQuestions()

	tests := []struct {
		name       string
		answers    Answers
		want       risk.HabitProfile
		wantReason Reason
		wantField  string
	}{
		{
			name: "all answered",
			answers: Answers{
				QuestionProcrastination: {Option: "lastmin", Value: 1.5},
				QuestionMultitasking:    {Option: "often", Value: 1.3},
				QuestionProductivity:    {Value: 2},
				QuestionCaffeine:        {Option: "danger", Value: 1.6},
			},
			want: risk.HabitProfile{
				Procrastination: risk.ProcrastinationLastMin,
				Multitasking:    risk.MultitaskingOften,
				Productivity:    2,
				Caffeine:        risk.CaffeineDanger,
			},
		},
		{
			name: "weights only, caffeine skipped",
			answers: Answers{
				QuestionProcrastination: {Value: 0.8},
				QuestionMultitasking:    {Value: 1.7},
				QuestionProductivity:    {Value: 0},
			},
			want: risk.HabitProfile{
				Procrastination: risk.ProcrastinationEarly,
				Multitasking:    risk.MultitaskingAlways,
			},
		},
		{
			name:       "only procrastination",
			answers:    Answers{QuestionProcrastination: {Option: "lastmin"}},
			wantReason: ReasonMissingField,
			wantField:  QuestionMultitasking,
		},
		{
			name: "missing productivity",
			answers: Answers{
				QuestionProcrastination: {Option: "early"},
				QuestionMultitasking:    {Option: "never"},
			},
			wantReason: ReasonMissingField,
			wantField:  QuestionProductivity,
		},
		{
			name: "unknown option",
			answers: Answers{
				QuestionProcrastination: {Option: "whenever"},
				QuestionMultitasking:    {Option: "never"},
				QuestionProductivity:    {Value: 4},
			},
			wantReason: ReasonInvalidValue,
			wantField:  QuestionProcrastination,
		},
		{
			name: "fractional productivity",
			answers: Answers{
				QuestionProcrastination: {Option: "early"},
				QuestionMultitasking:    {Option: "never"},
				QuestionProductivity:    {Value: 4.5},
			},
			wantReason: ReasonInvalidValue,
			wantField:  QuestionProductivity,
		},
		{
			name: "productivity out of range",
			answers: Answers{
				QuestionProcrastination: {Option: "early"},
				QuestionMultitasking:    {Option: "never"},
				QuestionProductivity:    {Value: 13},
			},
			wantReason: ReasonInvalidValue,
			wantField:  QuestionProductivity,
		},
		{
			name: "unknown question",
			answers: Answers{
				"mood": {Value: 1},
			},
			wantReason: ReasonUnknownField,
			wantField:  "mood",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rej := ProfileFromAnswers(qs, tt.answers)
			if tt.wantReason == "" {
				if rej != nil {
					t.Fatalf("ProfileFromAnswers() rejected: %v", rej)
				}
				if diff := cmp.Diff(tt.want, got); diff != "" {
					t.Errorf("profile mismatch (-want +got):\n%s", diff)
				}
				return
			}
			if rej == nil {
				t.Fatalf("ProfileFromAnswers() accepted %v", tt.answers)
			}
			if rej.Reason != tt.wantReason || rej.Field != tt.wantField {
				t.Errorf("rejection = %s/%s, want %s/%s", rej.Reason, rej.Field, tt.wantReason, tt.wantField)
			}
			if !errors.Is(rej, ErrRejected) {
				t.Error("rejection should match ErrRejected")
			}
		})
	}
}
