package telegram

import (
	"errors"
	"fmt"

	"deadline-doom/internal/interview"
	"deadline-doom/internal/wizard"
)

// errorMessage returns a user-facing text for err.
func errorMessage(err error) string {
	if rej, ok := wizard.AsRejection(err); ok {
		switch rej.Reason {
		case wizard.ReasonWrongStep:
			return "That doesn't fit where you are right now. Send /start to pick up where you left off."
		case wizard.ReasonNoValidTasks:
			return "None of your tasks are complete yet.\n" + issuesText(rej.Issues)
		case wizard.ReasonNoTasks:
			return "Add some tasks first."
		case wizard.ReasonUnanswered:
			return "Pick an answer first."
		case wizard.ReasonFirstQuestion:
			return "This is already the first question."
		case wizard.ReasonLastQuestion:
			return "This is the last question, tap Finish."
		case wizard.ReasonQuizOpen:
			return "Answer the remaining questions first."
		case wizard.ReasonMissingField:
			return fmt.Sprintf("The %s question still needs an answer.", rej.Field)
		case wizard.ReasonInvalidValue:
			return "That answer doesn't fit this question."
		}
	}

	switch {
	case errors.Is(err, interview.ErrCalendarUnavailable):
		return "Calendar import is not set up on this bot."
	case errors.Is(err, wizard.ErrDraftLine):
		return "I couldn't read that task. Use: title | deadline | hours | type"
	case errors.Is(err, wizard.ErrDraftValue):
		return "One of the values doesn't look right: " + err.Error()
	}
	return "Something went wrong, please try again."
}
