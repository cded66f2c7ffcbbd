package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"deadline-doom/internal/presenter"
	"deadline-doom/internal/risk"
	"deadline-doom/internal/wizard"
	"deadline-doom/pkg/datemath"
)

type scoreOptions struct {
	tasks           []string
	procrastination string
	multitasking    string
	productivity    int
	caffeine        string
	asJSON          bool
}

func newScoreCmd(root *rootOptions) *cobra.Command {
	opts := &scoreOptions{}
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score tasks and habits given as flags",
		Example: `  doom score -t "Thesis | 2026-04-01 | 12" -t "Report | in 3 days | 4 | work" \
    --procrastination lastmin --multitasking often --productivity 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScore(cmd, root, opts)
		},
	}

	f := cmd.Flags()
	f.StringArrayVarP(&opts.tasks, "task", "t", nil, `task as "title | deadline | hours [| type]", repeatable`)
	f.StringVar(&opts.procrastination, "procrastination", "", "when you start: early, ontime, lastmin or after")
	f.StringVar(&opts.multitasking, "multitasking", "", "how often you get distracted: never, sometimes, often or always")
	f.IntVar(&opts.productivity, "productivity", 0, "productive hours per day (0-12)")
	f.StringVar(&opts.caffeine, "caffeine", "", "optional: none, some, lots or danger")
	f.BoolVar(&opts.asJSON, "json", false, "print the result as JSON")
	return cmd
}

func runScore(cmd *cobra.Command, root *rootOptions, opts *scoreOptions) error {
	dates, err := datemath.NewParser(root.timezone)
	if err != nil {
		return err
	}

	drafts := make([]wizard.Draft, 0, len(opts.tasks))
	for i, line := range opts.tasks {
		d, err := wizard.ParseDraftLine(line)
		if err != nil {
			return fmt.Errorf("task %d: %w", i+1, err)
		}
		drafts = append(drafts, d)
	}

	now := root.now()
	tasks, issues := wizard.FilterDrafts(drafts, dates, now)
	if len(tasks) == 0 {
		if len(issues) == 0 {
			return errors.New("no tasks given, pass at least one --task")
		}
		return fmt.Errorf("no valid tasks:\n%s", issuesText(issues))
	}

	profile, rej := wizard.ProfileFromAnswers(wizard.DefaultQuestions(), scoreAnswers(cmd, opts))
	if rej != nil {
		return habitError(rej)
	}

	res, err := risk.Compute(tasks, profile, now)
	if err != nil {
		return err
	}
	view := presenter.New(nil).Present(res)

	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			presenter.View
			Skipped []wizard.DraftIssue `json:"skipped,omitempty"`
		}{view, issues})
	}

	if len(issues) > 0 {
		fmt.Fprintln(out, warnStyle.Render("Skipped:\n"+issuesText(issues)))
	}
	fmt.Fprintln(out, renderResult(view))
	return nil
}

// scoreAnswers maps the habit flags onto quiz answers. Unset flags stay
// unanswered so required questions are reported as missing.
func scoreAnswers(cmd *cobra.Command, opts *scoreOptions) wizard.Answers {
	answers := wizard.Answers{}
	choices := []struct {
		question string
		value    string
	}{
		{wizard.QuestionProcrastination, opts.procrastination},
		{wizard.QuestionMultitasking, opts.multitasking},
		{wizard.QuestionCaffeine, opts.caffeine},
	}
	for _, c := range choices {
		if c.value != "" {
			answers[c.question] = wizard.Answer{Option: c.value}
		}
	}
	if cmd.Flags().Changed("productivity") {
		answers[wizard.QuestionProductivity] = wizard.Answer{Value: float64(opts.productivity)}
	}
	return answers
}

func habitError(rej *wizard.RejectionError) error {
	switch rej.Reason {
	case wizard.ReasonMissingField:
		return fmt.Errorf("missing --%s", rej.Field)
	case wizard.ReasonInvalidValue:
		return fmt.Errorf("invalid --%s", rej.Field)
	default:
		return rej
	}
}
