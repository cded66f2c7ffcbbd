package wizard

import (
	"time"

	"deadline-doom/internal/risk"
	"deadline-doom/pkg/datemath"
)

// Session is the state one interview has accepted so far. Tasks and Habits
// are replaced wholesale on every accepted submission.
type Session struct {
	Step   Step
	Tasks  []risk.Task
	Habits *risk.HabitProfile
	Result *risk.Result
}

// QuizState describes where the habit quiz stands.
type QuizState struct {
	Question Question
	Index    int
	Total    int
	Progress float64
	IsLast   bool
	Pending  bool
	Answers  Answers
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithClock sets the clock used for task validation and scoring.
func WithClock(now func() time.Time) ControllerOption {
	return func(c *Controller) { c.now = now }
}

// WithScheduler sets the scheduler behind quiz auto-advance.
func WithScheduler(s Scheduler) ControllerOption {
	return func(c *Controller) { c.sched = s }
}

// WithAutoAdvanceDelay sets the pause before a chosen answer advances the quiz.
func WithAutoAdvanceDelay(d time.Duration) ControllerOption {
	return func(c *Controller) { c.delay = d }
}

// WithDates sets the deadline parser, which also fixes the collection timezone.
func WithDates(p *datemath.Parser) ControllerOption {
	return func(c *Controller) { c.dates = p }
}

// WithQuestions replaces the default question list.
func WithQuestions(qs []Question) ControllerOption {
	return func(c *Controller) { c.questions = qs }
}

// Controller is the interview state machine:
//
//	Landing -> CollectingTasks -> CollectingHabits -> ShowingResults -> Landing
//
// with CollectingHabits -> CollectingTasks on Back. A rejected call leaves
// every piece of state as it was. A Controller is not safe for concurrent
// use; callers serialise access per interview.
type Controller struct {
	step   Step
	tasks  []risk.Task
	habits *risk.HabitProfile
	result *risk.Result

	drafts    *TaskCollector
	quiz      *HabitCollector
	questions []Question
	dates     *datemath.Parser
	now       func() time.Time
	sched     Scheduler
	delay     time.Duration
	onReset   []func()
}

// NewController returns a controller on the landing step.
func NewController(opts ...ControllerOption) *Controller {
	c := &Controller{
		step:      StepLanding,
		questions: DefaultQuestions(),
		now:       time.Now,
		delay:     DefaultAutoAdvanceDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.dates == nil {
		c.dates = datemath.MustParser("UTC")
	}
	if c.sched == nil {
		c.sched = NewScheduler()
	}
	c.drafts = NewTaskCollector()
	c.quiz = NewHabitCollector(c.questions, c.sched, c.delay)
	return c
}

// Step returns the current step.
func (c *Controller) Step() Step {
	return c.step
}

// Session returns a copy of the accepted state.
func (c *Controller) Session() Session {
	s := Session{Step: c.step}
	if c.tasks != nil {
		s.Tasks = make([]risk.Task, len(c.tasks))
		copy(s.Tasks, c.tasks)
	}
	if c.habits != nil {
		h := *c.habits
		s.Habits = &h
	}
	if c.result != nil {
		r := c.result.Clone()
		s.Result = &r
	}
	return s
}

// Drafts returns the draft list being edited.
func (c *Controller) Drafts() []Draft {
	return c.drafts.Drafts()
}

// Quiz returns the state of the habit quiz.
func (c *Controller) Quiz() QuizState {
	return QuizState{
		Question: c.quiz.Current(),
		Index:    c.quiz.Index(),
		Total:    len(c.questions),
		Progress: c.quiz.Progress(),
		IsLast:   c.quiz.IsLast(),
		Pending:  c.quiz.Pending(),
		Answers:  c.quiz.Answers(),
	}
}

// OnReset registers f to run once, on the next Restart or Close.
// Presentation loops tied to the result use it to stop.
func (c *Controller) OnReset(f func()) {
	c.onReset = append(c.onReset, f)
}

// Start leaves the landing step.
func (c *Controller) Start() error {
	if err := c.expect(StepLanding); err != nil {
		return err
	}
	c.step = StepCollectingTasks
	return nil
}

// AddDraft appends a blank draft.
func (c *Controller) AddDraft() (int, error) {
	if err := c.expect(StepCollectingTasks); err != nil {
		return 0, err
	}
	return c.drafts.Add(), nil
}

// AppendDraft appends a prefilled draft.
func (c *Controller) AppendDraft(d Draft) (int, error) {
	if err := c.expect(StepCollectingTasks); err != nil {
		return 0, err
	}
	return c.drafts.Append(d), nil
}

// UpdateDraft sets one field of one draft.
func (c *Controller) UpdateDraft(index int, field Field, value string) error {
	if err := c.expect(StepCollectingTasks); err != nil {
		return err
	}
	return c.drafts.Update(index, field, value)
}

// RemoveDraft deletes one draft. The last remaining draft is kept.
func (c *Controller) RemoveDraft(index int) (bool, error) {
	if err := c.expect(StepCollectingTasks); err != nil {
		return false, err
	}
	return c.drafts.Remove(index)
}

// SubmitTasks validates drafts and, when at least one survives, stores the
// survivors as the task list and moves on to the quiz. The issues of dropped
// drafts are returned either way.
func (c *Controller) SubmitTasks(drafts []Draft) ([]DraftIssue, error) {
	if err := c.expect(StepCollectingTasks); err != nil {
		return nil, err
	}

	tasks, issues := FilterDrafts(drafts, c.dates, c.now())
	if len(tasks) == 0 {
		rej := reject(c.step, ReasonNoValidTasks, "")
		rej.Issues = issues
		return issues, rej
	}

	c.tasks = tasks
	c.step = StepCollectingHabits
	return issues, nil
}

// SubmitDrafts submits the collector's own drafts.
func (c *Controller) SubmitDrafts() ([]DraftIssue, error) {
	return c.SubmitTasks(c.drafts.Drafts())
}

// Back returns from the quiz to task collection. Quiz answers and position
// are kept.
func (c *Controller) Back() error {
	if err := c.expect(StepCollectingHabits); err != nil {
		return err
	}
	c.quiz.Cancel()
	c.step = StepCollectingTasks
	return nil
}

// SelectOption answers the current choice question.
func (c *Controller) SelectOption(optionID string) error {
	if err := c.expect(StepCollectingHabits); err != nil {
		return err
	}
	return c.quiz.Select(optionID)
}

// SetValue answers the current range question.
func (c *Controller) SetValue(v int) error {
	if err := c.expect(StepCollectingHabits); err != nil {
		return err
	}
	return c.quiz.SetValue(v)
}

// NextQuestion moves the quiz forward.
func (c *Controller) NextQuestion() error {
	if err := c.expect(StepCollectingHabits); err != nil {
		return err
	}
	return c.quiz.Next()
}

// PreviousQuestion moves the quiz back.
func (c *Controller) PreviousQuestion() error {
	if err := c.expect(StepCollectingHabits); err != nil {
		return err
	}
	return c.quiz.Back()
}

// CompleteQuiz submits the quiz answers from the final question.
func (c *Controller) CompleteQuiz() (risk.Result, error) {
	if err := c.expect(StepCollectingHabits); err != nil {
		return risk.Result{}, err
	}
	answers, err := c.quiz.Finish()
	if err != nil {
		return risk.Result{}, err
	}
	return c.SubmitHabits(answers)
}

// SubmitHabits validates answers, scores the stored tasks against them and
// shows the result. An error wrapping risk.ErrPrecondition means the stored
// state was inconsistent and is never expected.
func (c *Controller) SubmitHabits(answers Answers) (risk.Result, error) {
	if err := c.expect(StepCollectingHabits); err != nil {
		return risk.Result{}, err
	}
	if len(c.tasks) == 0 {
		return risk.Result{}, reject(c.step, ReasonNoTasks, "")
	}

	profile, rej := ProfileFromAnswers(c.questions, answers)
	if rej != nil {
		return risk.Result{}, rej
	}

	res, err := risk.Compute(c.tasks, profile, c.now())
	if err != nil {
		return risk.Result{}, err
	}

	c.quiz.Cancel()
	c.habits = &profile
	c.result = &res
	c.step = StepShowingResults
	return res.Clone(), nil
}

// Result returns the computed result while it is being shown.
func (c *Controller) Result() (risk.Result, bool) {
	if c.step != StepShowingResults || c.result == nil {
		return risk.Result{}, false
	}
	return c.result.Clone(), true
}

// Restart clears the interview and returns to the landing step.
func (c *Controller) Restart() error {
	if err := c.expect(StepShowingResults); err != nil {
		return err
	}
	c.reset()
	return nil
}

// Close stops every timer and hook owned by the interview. The controller
// is back on the landing step afterwards.
func (c *Controller) Close() {
	c.reset()
}

func (c *Controller) reset() {
	c.quiz.Reset()
	c.drafts.Reset()
	c.tasks = nil
	c.habits = nil
	c.result = nil
	c.step = StepLanding
	hooks := c.onReset
	c.onReset = nil
	for _, f := range hooks {
		f()
	}
}

func (c *Controller) expect(step Step) error {
	if c.step != step {
		return reject(c.step, ReasonWrongStep, "")
	}
	return nil
}
