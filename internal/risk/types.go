// Package risk scores how likely a set of tasks is to blow past its deadlines
// given the owner's self-reported work habits.
package risk

import "time"

// --- Task type enum ---

// TaskType categorises a task. It is descriptive only and does not affect scoring.
type TaskType string

const (
	TypeAssignment TaskType = "assignment"
	TypePersonal   TaskType = "personal"
	TypeWork       TaskType = "work"
	TypeExam       TaskType = "exam"
)

// IsValid reports whether t is a known task type.
func (t TaskType) IsValid() bool {
	switch t {
	case TypeAssignment, TypeWork, TypePersonal, TypeExam:
		return true
	default:
		return false
	}
}

// Label returns the human readable name of the task type.
func (t TaskType) Label() string {
	switch t {
	case TypeAssignment:
		return "Assignment"
	case TypeWork:
		return "Work Project"
	case TypePersonal:
		return "Personal"
	case TypeExam:
		return "Exam"
	default:
		return string(t)
	}
}

// Emoji returns the icon shown next to the task type.
func (t TaskType) Emoji() string {
	switch t {
	case TypeAssignment:
		return "📝"
	case TypeWork:
		return "💼"
	case TypePersonal:
		return "🏠"
	case TypeExam:
		return "📚"
	default:
		return ""
	}
}

// TaskTypes lists every task type in display order.
func TaskTypes() []TaskType {
	return []TaskType{TypeAssignment, TypeWork, TypePersonal, TypeExam}
}

// Task is an accepted unit of pending work.
type Task struct {
	Title    string
	Deadline time.Time // start of the due day
	Hours    int
	Type     TaskType
}

// --- Habit enums ---

// Procrastination is when the user usually starts working on a task.
type Procrastination string

const (
	ProcrastinationEarly   Procrastination = "early"
	ProcrastinationOnTime  Procrastination = "ontime"
	ProcrastinationLastMin Procrastination = "lastmin"
	ProcrastinationAfter   Procrastination = "after"
)

// IsValid reports whether p is a known answer.
func (p Procrastination) IsValid() bool {
	switch p {
	case ProcrastinationEarly, ProcrastinationOnTime, ProcrastinationLastMin, ProcrastinationAfter:
		return true
	default:
		return false
	}
}

// Multitasking is how often the user works with distractions.
type Multitasking string

const (
	MultitaskingNever     Multitasking = "never"
	MultitaskingSometimes Multitasking = "sometimes"
	MultitaskingOften     Multitasking = "often"
	MultitaskingAlways    Multitasking = "always"
)

// IsValid reports whether m is a known answer.
func (m Multitasking) IsValid() bool {
	switch m {
	case MultitaskingNever, MultitaskingSometimes, MultitaskingOften, MultitaskingAlways:
		return true
	default:
		return false
	}
}

// Caffeine is the optional caffeine intake answer. The empty value means unanswered.
type Caffeine string

const (
	CaffeineNone   Caffeine = "none"
	CaffeineSome   Caffeine = "some"
	CaffeineLots   Caffeine = "lots"
	CaffeineDanger Caffeine = "danger"
)

// IsValid reports whether c is a known answer or unset.
func (c Caffeine) IsValid() bool {
	switch c {
	case "", CaffeineNone, CaffeineSome, CaffeineLots, CaffeineDanger:
		return true
	default:
		return false
	}
}

// Productivity bounds, in hours per day.
const (
	MinProductivity = 0
	MaxProductivity = 12
)

// HabitProfile is the user's self-reported work habits.
type HabitProfile struct {
	Procrastination Procrastination
	Multitasking    Multitasking
	Productivity    int
	Caffeine        Caffeine
}

// --- Result ---

// Level is the qualitative bucket of a score.
type Level string

const (
	LevelSafe     Level = "Safe"
	LevelModerate Level = "Moderate"
	LevelHigh     Level = "High"
)

// Level thresholds (lower bounds, inclusive).
const (
	ModerateThreshold = 30
	HighThreshold     = 70
)

// LevelFor maps a score onto its level.
func LevelFor(score int) Level {
	switch {
	case score < ModerateThreshold:
		return LevelSafe
	case score < HighThreshold:
		return LevelModerate
	default:
		return LevelHigh
	}
}

// TaskScore is one row of the per-task breakdown.
type TaskScore struct {
	Index       int      `json:"index"`
	Title       string   `json:"title"`
	DaysLeft    int      `json:"days_left"`
	DailyLoad   float64  `json:"daily_load"`
	BaseScore   float64  `json:"base_score"`
	Multipliers []string `json:"multipliers,omitempty"`
	Score       float64  `json:"score"` // composed, may exceed 100
}

// Result is the outcome of Compute.
type Result struct {
	Score     int         `json:"score"`
	Level     Level       `json:"level"`
	Breakdown []TaskScore `json:"breakdown"`
}

// Clone returns a deep copy of r.
func (r Result) Clone() Result {
	out := r
	if r.Breakdown != nil {
		out.Breakdown = make([]TaskScore, len(r.Breakdown))
		for i, ts := range r.Breakdown {
			ts.Multipliers = append([]string(nil), ts.Multipliers...)
			out.Breakdown[i] = ts
		}
	}
	return out
}
