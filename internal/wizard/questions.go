package wizard

import (
	"math"

	"deadline-doom/internal/risk"
)

// Question ids.
const (
	QuestionProcrastination = "procrastination"
	QuestionMultitasking    = "multitasking"
	QuestionProductivity    = "productivity"
	QuestionCaffeine        = "caffeine"
)

// QuestionKind tells how a question is answered.
type QuestionKind string

const (
	KindChoice QuestionKind = "choice"
	KindRange  QuestionKind = "range"
)

// Option is one labelled answer of a choice question.
type Option struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Emoji  string  `json:"emoji"`
	Weight float64 `json:"weight"`
}

// Question is one step of the habit quiz.
type Question struct {
	ID       string       `json:"id"`
	Prompt   string       `json:"prompt"`
	Emoji    string       `json:"emoji,omitempty"`
	Kind     QuestionKind `json:"kind"`
	Options  []Option     `json:"options,omitempty"`
	Min      int          `json:"min,omitempty"`
	Max      int          `json:"max,omitempty"`
	Required bool         `json:"required"`
}

// Option looks up an option by id.
func (q Question) Option(id string) (Option, bool) {
	for _, o := range q.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// optionByWeight resolves answers that only carry the recorded weight.
func (q Question) optionByWeight(w float64) (Option, bool) {
	for _, o := range q.Options {
		if math.Abs(o.Weight-w) < 1e-9 {
			return o, true
		}
	}
	return Option{}, false
}

// DefaultQuestions returns the habit quiz in the order it is asked.
func DefaultQuestions() []Question {
	return []Question{
		{
			ID:       QuestionProcrastination,
			Prompt:   "When do you usually start your tasks?",
			Kind:     KindChoice,
			Required: true,
			Options: []Option{
				{ID: string(risk.ProcrastinationEarly), Label: "Way before deadline", Emoji: "🦉", Weight: 0.8},
				{ID: string(risk.ProcrastinationOnTime), Label: "Right on schedule", Emoji: "⏱️", Weight: 1},
				{ID: string(risk.ProcrastinationLastMin), Label: "Last possible minute", Emoji: "🔥", Weight: 1.5},
				{ID: string(risk.ProcrastinationAfter), Label: "After deadline passed", Emoji: "💀", Weight: 2},
			},
		},
		{
			ID:       QuestionMultitasking,
			Prompt:   "How often do you multitask with distractions?",
			Kind:     KindChoice,
			Required: true,
			Options: []Option{
				{ID: string(risk.MultitaskingNever), Label: "Never, fully focused", Emoji: "🧘", Weight: 0.9},
				{ID: string(risk.MultitaskingSometimes), Label: "Sometimes", Emoji: "🤔", Weight: 1.1},
				{ID: string(risk.MultitaskingOften), Label: "Often", Emoji: "📺", Weight: 1.3},
				{ID: string(risk.MultitaskingAlways), Label: "Always, what's focus?", Emoji: "🌀", Weight: 1.7},
			},
		},
		{
			ID:       QuestionProductivity,
			Prompt:   "Your typical productive hours per day?",
			Emoji:    "⏳",
			Kind:     KindRange,
			Min:      risk.MinProductivity,
			Max:      risk.MaxProductivity,
			Required: true,
		},
		{
			ID:     QuestionCaffeine,
			Prompt: "How much caffeine fuels your deadlines?",
			Kind:   KindChoice,
			Options: []Option{
				{ID: string(risk.CaffeineNone), Label: "None", Emoji: "💧", Weight: 1},
				{ID: string(risk.CaffeineSome), Label: "Some coffee", Emoji: "☕", Weight: 1.1},
				{ID: string(risk.CaffeineLots), Label: "Energy drinks", Emoji: "🥤", Weight: 1.3},
				{ID: string(risk.CaffeineDanger), Label: "IV drip of espresso", Emoji: "💉", Weight: 1.6},
			},
		},
	}
}

// Answer is the recorded answer to one question. Choice answers carry the
// option id and its weight; range answers carry only the value.
type Answer struct {
	Option string  `json:"option,omitempty"`
	Value  float64 `json:"value"`
}

// Answers maps question id to answer.
type Answers map[string]Answer

// Clone returns an independent copy.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// ProfileFromAnswers validates answers against questions and builds the
// habit profile. Every required question must be answered; unknown ids,
// unknown options and out-of-range values are rejected.
func ProfileFromAnswers(questions []Question, answers Answers) (risk.HabitProfile, *RejectionError) {
	byID := make(map[string]Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	for id := range answers {
		if _, ok := byID[id]; !ok {
			return risk.HabitProfile{}, reject(StepCollectingHabits, ReasonUnknownField, id)
		}
	}

	resolved := make(map[string]Answer, len(answers))
	for _, q := range questions {
		a, ok := answers[q.ID]
		if !ok {
			if q.Required {
				return risk.HabitProfile{}, reject(StepCollectingHabits, ReasonMissingField, q.ID)
			}
			continue
		}
		r, ok := resolveAnswer(q, a)
		if !ok {
			return risk.HabitProfile{}, reject(StepCollectingHabits, ReasonInvalidValue, q.ID)
		}
		resolved[q.ID] = r
	}

	return risk.HabitProfile{
		Procrastination: risk.Procrastination(resolved[QuestionProcrastination].Option),
		Multitasking:    risk.Multitasking(resolved[QuestionMultitasking].Option),
		Productivity:    int(resolved[QuestionProductivity].Value),
		Caffeine:        risk.Caffeine(resolved[QuestionCaffeine].Option),
	}, nil
}

// resolveAnswer normalises a against q: choice answers end up with both the
// option id and weight set, range answers with an integral in-range value.
func resolveAnswer(q Question, a Answer) (Answer, bool) {
	switch q.Kind {
	case KindChoice:
		var (
			o  Option
			ok bool
		)
		if a.Option != "" {
			o, ok = q.Option(a.Option)
		} else {
			o, ok = q.optionByWeight(a.Value)
		}
		if !ok {
			return Answer{}, false
		}
		return Answer{Option: o.ID, Value: o.Weight}, true
	case KindRange:
		if a.Option != "" || a.Value != math.Trunc(a.Value) {
			return Answer{}, false
		}
		if a.Value < float64(q.Min) || a.Value > float64(q.Max) {
			return Answer{}, false
		}
		return Answer{Value: a.Value}, true
	default:
		return Answer{}, false
	}
}
