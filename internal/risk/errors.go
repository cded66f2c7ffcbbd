package risk

import (
	"errors"
	"fmt"
)

// ErrPrecondition marks a call that the wizard should never have let through.
var ErrPrecondition = errors.New("risk: precondition violated")

var (
	ErrNoTasks           = fmt.Errorf("%w: task list is empty", ErrPrecondition)
	ErrIncompleteProfile = fmt.Errorf("%w: habit profile is incomplete", ErrPrecondition)
)
