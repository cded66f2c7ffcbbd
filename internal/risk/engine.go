package risk

import (
	"fmt"
	"math"
	"time"
)

const (
	day = 24 * time.Hour

	// loadToScore converts hours-per-day into base score points.
	loadToScore  = 10.0
	maxBaseScore = 100.0
	minScore     = 0
	maxScore     = 100
)

// multiplier is one conditional habit penalty.
type multiplier struct {
	Name    string
	Factor  float64
	Applies func(HabitProfile) bool
}

// multipliers are applied to every task's base score in this exact order.
var multipliers = []multiplier{
	{
		Name:    "procrastination_lastmin",
		Factor:  1.5,
		Applies: func(h HabitProfile) bool { return h.Procrastination == ProcrastinationLastMin },
	},
	{
		Name:    "multitasking_often",
		Factor:  1.2,
		Applies: func(h HabitProfile) bool { return h.Multitasking == MultitaskingOften },
	},
	{
		Name:    "low_productivity",
		Factor:  1.3,
		Applies: func(h HabitProfile) bool { return h.Productivity < 4 },
	},
}

// Validate reports whether the profile carries every field Compute needs.
func (h HabitProfile) Validate() error {
	if !h.Procrastination.IsValid() {
		return fmt.Errorf("%w: procrastination %q", ErrIncompleteProfile, h.Procrastination)
	}
	if !h.Multitasking.IsValid() {
		return fmt.Errorf("%w: multitasking %q", ErrIncompleteProfile, h.Multitasking)
	}
	if h.Productivity < MinProductivity || h.Productivity > MaxProductivity {
		return fmt.Errorf("%w: productivity %d outside [%d,%d]", ErrIncompleteProfile, h.Productivity, MinProductivity, MaxProductivity)
	}
	if !h.Caffeine.IsValid() {
		return fmt.Errorf("%w: caffeine %q", ErrIncompleteProfile, h.Caffeine)
	}
	return nil
}

// Compute scores tasks against habits as of now. It never reads the clock and
// never mutates its inputs, so identical arguments always give identical results.
//
// An error wrapping ErrPrecondition means the caller forwarded input the
// wizard should have rejected.
func Compute(tasks []Task, habits HabitProfile, now time.Time) (Result, error) {
	if len(tasks) == 0 {
		return Result{}, ErrNoTasks
	}
	if err := habits.Validate(); err != nil {
		return Result{}, err
	}

	breakdown := make([]TaskScore, 0, len(tasks))
	total := 0.0
	for i, t := range tasks {
		if t.Hours <= 0 {
			return Result{}, fmt.Errorf("%w: task %d has %d hours", ErrPrecondition, i, t.Hours)
		}
		ts := scoreTask(t, habits, now)
		ts.Index = i
		breakdown = append(breakdown, ts)
		total += ts.Score
	}

	score := clamp(int(math.Round(total/float64(len(tasks)))), minScore, maxScore)

	return Result{
		Score:     score,
		Level:     LevelFor(score),
		Breakdown: breakdown,
	}, nil
}

// scoreTask computes the composed (unclamped) score of a single task.
func scoreTask(t Task, habits HabitProfile, now time.Time) TaskScore {
	daysLeft := DaysLeft(t.Deadline, now)
	load := float64(t.Hours) / float64(daysLeft)
	base := math.Min(load*loadToScore, maxBaseScore)

	score := base
	var applied []string
	for _, m := range multipliers {
		if m.Applies(habits) {
			score *= m.Factor
			applied = append(applied, m.Name)
		}
	}

	return TaskScore{
		Title:       t.Title,
		DaysLeft:    daysLeft,
		DailyLoad:   load,
		BaseScore:   base,
		Multipliers: applied,
		Score:       score,
	}
}

// DaysLeft is the number of started days between now and deadline, never less
// than one so that tasks due today or already overdue still divide cleanly.
func DaysLeft(deadline, now time.Time) int {
	days := int(math.Ceil(float64(deadline.Sub(now)) / float64(day)))
	if days < 1 {
		return 1
	}
	return days
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
