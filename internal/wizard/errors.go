package wizard

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRejected is matched by every *RejectionError via errors.Is.
var ErrRejected = errors.New("wizard: submission rejected")

// Draft editing errors.
var (
	ErrDraftIndex = errors.New("draft index out of range")
	ErrDraftField = errors.New("unknown draft field")
	ErrDraftValue = errors.New("invalid draft value")
	ErrDraftLine  = errors.New("draft line must be: title | deadline | hours [| type]")
)

// Reason is the machine-checkable cause of a rejection.
type Reason string

const (
	ReasonWrongStep     Reason = "wrong_step"
	ReasonNoValidTasks  Reason = "no_valid_tasks"
	ReasonNoTasks       Reason = "no_tasks_captured"
	ReasonMissingField  Reason = "missing_field"
	ReasonInvalidValue  Reason = "invalid_value"
	ReasonUnknownField  Reason = "unknown_field"
	ReasonUnanswered    Reason = "unanswered"
	ReasonFirstQuestion Reason = "first_question"
	ReasonLastQuestion  Reason = "last_question"
	ReasonQuizOpen      Reason = "quiz_incomplete"
)

// Problem describes why a single draft was dropped during submission.
type Problem string

const (
	ProblemEmpty       Problem = "empty"
	ProblemNotPositive Problem = "not_positive"
	ProblemUnparseable Problem = "unparseable"
	ProblemInPast      Problem = "in_past"
	ProblemUnknown     Problem = "unknown"
)

// DraftIssue records the first failed check of one draft.
type DraftIssue struct {
	Index   int     `json:"index"`
	Field   Field   `json:"field"`
	Problem Problem `json:"problem"`
}

// RejectionError is returned when a wizard operation refuses its input.
// The controller state is untouched whenever one is returned.
type RejectionError struct {
	Reason Reason
	Step   Step
	Field  string
	Issues []DraftIssue
}

func (e *RejectionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "wizard: rejected in %s: %s", e.Step, e.Reason)
	if e.Field != "" {
		fmt.Fprintf(&b, " (%s)", e.Field)
	}
	if len(e.Issues) > 0 {
		fmt.Fprintf(&b, ", %d draft(s) invalid", len(e.Issues))
	}
	return b.String()
}

// Is makes errors.Is(err, ErrRejected) hold.
func (e *RejectionError) Is(target error) bool {
	return target == ErrRejected
}

func reject(step Step, reason Reason, field string) *RejectionError {
	return &RejectionError{Step: step, Reason: reason, Field: field}
}

// AsRejection unwraps err into a *RejectionError when it is one.
func AsRejection(err error) (*RejectionError, bool) {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}
