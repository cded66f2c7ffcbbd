package wizard

import (
	"sync"
	"time"
)

// DefaultAutoAdvanceDelay is how long a choice stays on screen before the
// quiz moves on by itself.
const DefaultAutoAdvanceDelay = 300 * time.Millisecond

// HabitCollector walks the question list and accumulates answers.
//
// Choosing an option on a choice question schedules a move to the next
// question. The move is tied to a sequence number: any later navigation,
// answer, Cancel or Reset bumps the number, so a timer firing late finds a
// stale token and does nothing.
type HabitCollector struct {
	mu        sync.Mutex
	questions []Question
	answers   Answers
	index     int

	delay   time.Duration
	sched   Scheduler
	pending Timer
	seq     uint64
}

// NewHabitCollector creates a collector over questions. A delay <= 0 makes
// choice answers advance immediately.
func NewHabitCollector(questions []Question, sched Scheduler, delay time.Duration) *HabitCollector {
	if sched == nil {
		sched = NewScheduler()
	}
	qs := make([]Question, len(questions))
	copy(qs, questions)
	return &HabitCollector{
		questions: qs,
		answers:   Answers{},
		delay:     delay,
		sched:     sched,
	}
}

// Questions returns the question list.
func (c *HabitCollector) Questions() []Question {
	out := make([]Question, len(c.questions))
	copy(out, c.questions)
	return out
}

// Index returns the position of the current question.
func (c *HabitCollector) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Current returns the question being asked.
func (c *HabitCollector) Current() Question {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.questions[c.index]
}

// Progress returns quiz progress as a percentage.
func (c *HabitCollector) Progress() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return float64(c.index+1) / float64(len(c.questions)) * 100
}

// IsLast reports whether the current question is the final one.
func (c *HabitCollector) IsLast() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isLast()
}

// Pending reports whether an auto-advance is scheduled.
func (c *HabitCollector) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}

// Answers returns a copy of the answers recorded so far.
func (c *HabitCollector) Answers() Answers {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.answers.Clone()
}

// Select records optionID for the current choice question.
func (c *HabitCollector) Select(optionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	q := c.questions[c.index]
	if q.Kind != KindChoice {
		return reject(StepCollectingHabits, ReasonInvalidValue, q.ID)
	}
	o, ok := q.Option(optionID)
	if !ok {
		return reject(StepCollectingHabits, ReasonInvalidValue, q.ID)
	}

	c.cancelLocked()
	c.answers[q.ID] = Answer{Option: o.ID, Value: o.Weight}
	if c.isLast() {
		return nil
	}
	if c.delay <= 0 {
		c.index++
		return nil
	}

	token := c.seq
	c.pending = c.sched.AfterFunc(c.delay, func() { c.advance(token) })
	return nil
}

// SetValue records v for the current range question. It never advances.
func (c *HabitCollector) SetValue(v int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	q := c.questions[c.index]
	if q.Kind != KindRange || v < q.Min || v > q.Max {
		return reject(StepCollectingHabits, ReasonInvalidValue, q.ID)
	}
	c.cancelLocked()
	c.answers[q.ID] = Answer{Value: float64(v)}
	return nil
}

// Next moves forward. The current question must be answered unless it is
// optional.
func (c *HabitCollector) Next() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	q := c.questions[c.index]
	if c.isLast() {
		return reject(StepCollectingHabits, ReasonLastQuestion, q.ID)
	}
	if _, ok := c.answers[q.ID]; !ok && q.Required {
		return reject(StepCollectingHabits, ReasonUnanswered, q.ID)
	}
	c.cancelLocked()
	c.index++
	return nil
}

// Back moves to the previous question, keeping every answer.
func (c *HabitCollector) Back() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.index == 0 {
		return reject(StepCollectingHabits, ReasonFirstQuestion, c.questions[0].ID)
	}
	c.cancelLocked()
	c.index--
	return nil
}

// Finish returns the answer map for submission. It is only allowed on the
// final question.
func (c *HabitCollector) Finish() (Answers, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isLast() {
		return nil, reject(StepCollectingHabits, ReasonQuizOpen, c.questions[c.index].ID)
	}
	c.cancelLocked()
	return c.answers.Clone(), nil
}

// Cancel drops any scheduled auto-advance.
func (c *HabitCollector) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
}

// Reset clears answers and returns to the first question.
func (c *HabitCollector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
	c.answers = Answers{}
	c.index = 0
}

func (c *HabitCollector) advance(token uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.seq {
		return
	}
	c.pending = nil
	if !c.isLast() {
		c.index++
	}
}

func (c *HabitCollector) cancelLocked() {
	c.seq++
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

func (c *HabitCollector) isLast() bool {
	return c.index == len(c.questions)-1
}
