package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"deadline-doom/internal/presenter"
	"deadline-doom/internal/wizard"
	"deadline-doom/pkg/datemath"
)

var errInputClosed = errors.New("input ended before the interview finished")

type interviewOptions struct {
	noReveal bool
	reveal   time.Duration
}

func newInterviewCmd(root *rootOptions) *cobra.Command {
	opts := &interviewOptions{}
	cmd := &cobra.Command{
		Use:   "interview",
		Short: "Walk through the wizard step by step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInterview(cmd, root, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.noReveal, "no-reveal", false, "skip the score animation")
	cmd.Flags().DurationVar(&opts.reveal, "reveal", presenter.DefaultRevealDuration, "length of the score animation")
	return cmd
}

// session drives one controller from line-oriented input.
type session struct {
	cmd  *cobra.Command
	in   *bufio.Scanner
	out  io.Writer
	ctrl *wizard.Controller
	opts *interviewOptions
}

func runInterview(cmd *cobra.Command, root *rootOptions, opts *interviewOptions) error {
	dates, err := datemath.NewParser(root.timezone)
	if err != nil {
		return err
	}

	ctrl := wizard.NewController(
		wizard.WithClock(root.now),
		wizard.WithDates(dates),
		wizard.WithAutoAdvanceDelay(0),
	)
	defer ctrl.Close()

	s := &session{
		cmd:  cmd,
		in:   bufio.NewScanner(cmd.InOrStdin()),
		out:  cmd.OutOrStdout(),
		ctrl: ctrl,
		opts: opts,
	}

	fmt.Fprintln(s.out, titleStyle.Render("💀 Deadline Doom"))
	fmt.Fprintln(s.out, mutedStyle.Render("Find out how likely you are to miss your deadlines."))
	if err := ctrl.Start(); err != nil {
		return err
	}

	for {
		var err error
		switch ctrl.Step() {
		case wizard.StepCollectingTasks:
			err = s.collectTasks()
		case wizard.StepCollectingHabits:
			err = s.askHabits()
		case wizard.StepShowingResults:
			var again bool
			again, err = s.showResult()
			if err == nil && !again {
				return nil
			}
		default:
			return fmt.Errorf("unexpected step %s", ctrl.Step())
		}
		if err != nil {
			return err
		}
	}
}

func (s *session) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *session) collectTasks() error {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, titleStyle.Render("Your tasks"))
	fmt.Fprintln(s.out, mutedStyle.Render("One per line: title | deadline | hours [| type]. Empty line when done."))
	if drafts := s.ctrl.Drafts(); len(drafts) > 0 && drafts[0] != wizard.NewDraft() {
		for i, d := range drafts {
			fmt.Fprintf(s.out, "%d. %s %s, due %s, %dh\n", i+1, d.Type.Emoji(), d.Title, d.Deadline, d.Hours)
		}
	}

	for {
		line, err := s.readLine("> ")
		if err != nil {
			return err
		}
		if line == "" {
			break
		}
		d, err := wizard.ParseDraftLine(line)
		if err != nil {
			fmt.Fprintln(s.out, warnStyle.Render(err.Error()))
			continue
		}
		if _, err := s.ctrl.AppendDraft(d); err != nil {
			return err
		}
	}

	if drafts := s.ctrl.Drafts(); len(drafts) == 1 && drafts[0] == wizard.NewDraft() {
		fmt.Fprintln(s.out, warnStyle.Render("Add at least one task first."))
		return nil
	}

	issues, err := s.ctrl.SubmitDrafts()
	if rej, ok := wizard.AsRejection(err); ok {
		fmt.Fprintln(s.out, warnStyle.Render("None of those tasks can be scored:\n"+issuesText(rej.Issues)))
		return nil
	}
	if err != nil {
		return err
	}
	if len(issues) > 0 {
		fmt.Fprintln(s.out, warnStyle.Render("Skipped:\n"+issuesText(issues)))
	}
	return nil
}

func (s *session) askHabits() error {
	q := s.ctrl.Quiz()
	cur := q.Question

	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, mutedStyle.Render(fmt.Sprintf("Question %d/%d (%.0f%%)", q.Index+1, q.Total, q.Progress)))
	fmt.Fprintln(s.out, titleStyle.Render(strings.TrimSpace(cur.Emoji+" "+cur.Prompt)))

	hint := "b to go back"
	if !cur.Required {
		hint += ", empty line to skip"
	}
	switch cur.Kind {
	case wizard.KindChoice:
		for i, o := range cur.Options {
			fmt.Fprintf(s.out, "  %d) %s %s\n", i+1, o.Emoji, o.Label)
		}
		hint = "pick 1-" + strconv.Itoa(len(cur.Options)) + ", " + hint
	case wizard.KindRange:
		hint = fmt.Sprintf("enter %d-%d, %s", cur.Min, cur.Max, hint)
	}

	line, err := s.readLine(mutedStyle.Render("("+hint+")") + " ")
	if err != nil {
		return err
	}

	switch {
	case line == "b":
		if q.Index == 0 {
			return s.ctrl.Back()
		}
		return s.ctrl.PreviousQuestion()
	case line == "":
		if cur.Required {
			fmt.Fprintln(s.out, warnStyle.Render("This one needs an answer."))
			return nil
		}
		return s.advance(q)
	}

	n, err := strconv.Atoi(line)
	if err != nil {
		fmt.Fprintln(s.out, warnStyle.Render("Enter a number."))
		return nil
	}
	switch cur.Kind {
	case wizard.KindChoice:
		if n < 1 || n > len(cur.Options) {
			fmt.Fprintln(s.out, warnStyle.Render("No such option."))
			return nil
		}
		// Choices move on by themselves except on the final question.
		if err := s.ctrl.SelectOption(cur.Options[n-1].ID); err != nil {
			return s.quizRejected(err)
		}
		if q.IsLast {
			return s.finish()
		}
		return nil
	default:
		if err := s.ctrl.SetValue(n); err != nil {
			return s.quizRejected(err)
		}
		return s.advance(q)
	}
}

func (s *session) advance(q wizard.QuizState) error {
	if q.IsLast {
		return s.finish()
	}
	return s.quizRejected(s.ctrl.NextQuestion())
}

func (s *session) finish() error {
	_, err := s.ctrl.CompleteQuiz()
	return s.quizRejected(err)
}

// quizRejected prints rejections and keeps the quiz going; other errors stop
// the interview.
func (s *session) quizRejected(err error) error {
	rej, ok := wizard.AsRejection(err)
	if !ok {
		return err
	}
	switch rej.Reason {
	case wizard.ReasonInvalidValue:
		fmt.Fprintln(s.out, warnStyle.Render("That value is out of range."))
	case wizard.ReasonMissingField, wizard.ReasonUnanswered:
		fmt.Fprintln(s.out, warnStyle.Render("Question "+rej.Field+" still needs an answer."))
	default:
		fmt.Fprintln(s.out, warnStyle.Render(rej.Error()))
	}
	return nil
}

func (s *session) showResult() (bool, error) {
	res, ok := s.ctrl.Result()
	if !ok {
		return false, errors.New("no result to show")
	}
	view := presenter.New(nil).Present(res)

	fmt.Fprintln(s.out)
	if !s.opts.noReveal {
		r := presenter.NewRevealer(s.opts.reveal, 0)
		err := r.Run(s.cmd.Context(), res.Score, func(frame int) {
			fmt.Fprintf(s.out, "\r🎲 Calculating your doom... %3d%%", frame)
		})
		fmt.Fprintln(s.out)
		if err != nil {
			return false, err
		}
	}
	fmt.Fprintln(s.out, renderResult(view))

	line, err := s.readLine("Try again? [y/N] ")
	if errors.Is(err, errInputClosed) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !strings.EqualFold(line, "y") {
		return false, nil
	}
	if err := s.ctrl.Restart(); err != nil {
		return false, err
	}
	return true, s.ctrl.Start()
}
