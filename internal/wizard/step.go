package wizard

// Step is one state of the interview state machine.
type Step string

const (
	StepLanding          Step = "landing"
	StepCollectingTasks  Step = "collecting_tasks"
	StepCollectingHabits Step = "collecting_habits"
	StepShowingResults   Step = "showing_results"
)

// String implements fmt.Stringer.
func (s Step) String() string {
	return string(s)
}
