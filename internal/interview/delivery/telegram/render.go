package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"deadline-doom/internal/interview"
	"deadline-doom/internal/presenter"
	"deadline-doom/internal/wizard"
	pkgTelegram "deadline-doom/pkg/telegram"
)

// Callback data prefixes and actions.
const (
	cbOption  = "opt"
	cbValue   = "val"
	cbNext    = "next"
	cbPrev    = "prev"
	cbTasks   = "tasks"
	cbFinish  = "finish"
	cbRestart = "restart"

	valuesPerRow = 5
)

const welcomeText = `💀 Deadline Doom

Tell me what's on your plate and I'll tell you how doomed you are.

Send one task per line:
  title | deadline | hours | type
e.g.
  Thesis draft | 2026-04-01 | 12 | assignment
  Team report | in 3 days | 4

Deadlines take YYYY-MM-DD, today, tomorrow, in N days, next friday.
Types: assignment, work, personal, exam.

/tasks shows your list, /calendar imports upcoming events, /done starts the quiz.`

const helpText = `/start   begin or continue
/tasks   show your task drafts
/calendar  import upcoming calendar events
/done    lock in the tasks and take the habit quiz
/back    return from the quiz to your tasks
/result  show your last result
/restart start over`

var problemText = map[wizard.Problem]string{
	wizard.ProblemEmpty:       "is missing",
	wizard.ProblemNotPositive: "must be at least 1",
	wizard.ProblemUnparseable: "isn't a date I understand",
	wizard.ProblemInPast:      "is in the past",
	wizard.ProblemUnknown:     "isn't a known type",
}

func issuesText(issues []wizard.DraftIssue) string {
	var b strings.Builder
	for _, is := range issues {
		fmt.Fprintf(&b, "• Task %d: %s %s\n", is.Index+1, is.Field, problemText[is.Problem])
	}
	return strings.TrimRight(b.String(), "\n")
}

func draftsText(snap interview.Snapshot) string {
	if len(snap.Drafts) == 1 && snap.Drafts[0] == wizard.NewDraft() {
		return "No tasks yet. Send one per line: title | deadline | hours | type"
	}

	var b strings.Builder
	b.WriteString("Your tasks:\n")
	for i, d := range snap.Drafts {
		title := d.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(&b, "%d. %s %s, due %s, %dh\n", i+1, d.Type.Emoji(), title, d.Deadline, d.Hours)
	}
	b.WriteString("\nSend /done when the list is complete.")
	return b.String()
}

func questionText(q wizard.QuizState) string {
	return fmt.Sprintf("Question %d/%d (%.0f%%)\n\n%s %s",
		q.Index+1, q.Total, q.Progress, q.Question.Emoji, q.Question.Prompt)
}

func questionKeyboard(q wizard.QuizState) *pkgTelegram.InlineKeyboardMarkup {
	cur := q.Question
	answer, answered := q.Answers[cur.ID]

	var rows [][]pkgTelegram.InlineKeyboardButton
	switch cur.Kind {
	case wizard.KindChoice:
		for _, o := range cur.Options {
			label := o.Emoji + " " + o.Label
			if answered && answer.Option == o.ID {
				label = "✅ " + label
			}
			rows = append(rows, []pkgTelegram.InlineKeyboardButton{
				{Text: label, CallbackData: cbOption + ":" + o.ID},
			})
		}
	case wizard.KindRange:
		var row []pkgTelegram.InlineKeyboardButton
		for v := cur.Min; v <= cur.Max; v++ {
			label := strconv.Itoa(v)
			if answered && int(answer.Value) == v {
				label = "✅ " + label
			}
			row = append(row, pkgTelegram.InlineKeyboardButton{Text: label, CallbackData: cbValue + ":" + strconv.Itoa(v)})
			if len(row) == valuesPerRow {
				rows = append(rows, row)
				row = nil
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}

	var nav []pkgTelegram.InlineKeyboardButton
	if q.Index > 0 {
		nav = append(nav, pkgTelegram.InlineKeyboardButton{Text: "⬅️ Back", CallbackData: cbPrev})
	} else {
		nav = append(nav, pkgTelegram.InlineKeyboardButton{Text: "⬅️ Tasks", CallbackData: cbTasks})
	}
	switch {
	case q.IsLast:
		nav = append(nav, pkgTelegram.InlineKeyboardButton{Text: "🏁 Finish", CallbackData: cbFinish})
	case answered || !cur.Required:
		nav = append(nav, pkgTelegram.InlineKeyboardButton{Text: "Next ➡️", CallbackData: cbNext})
	}
	rows = append(rows, nav)

	return &pkgTelegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func restartKeyboard() *pkgTelegram.InlineKeyboardMarkup {
	return &pkgTelegram.InlineKeyboardMarkup{InlineKeyboard: [][]pkgTelegram.InlineKeyboardButton{
		{{Text: "🔄 Try again", CallbackData: cbRestart}},
	}}
}

func revealText(frame int) string {
	return fmt.Sprintf("🎲 Calculating your doom... %d%%", frame)
}

func resultText(v presenter.View) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Doom risk: %d%% (%s)\n%s\n", v.Theme.Emoji, v.Result.Score, v.Theme.Label, v.Theme.Feedback)

	if len(v.Result.Breakdown) > 0 {
		b.WriteString("\nBreakdown:\n")
		for _, ts := range v.Result.Breakdown {
			fmt.Fprintf(&b, "• %s: %s left, %.1fh/day, %.0f pts\n", ts.Title, daysText(ts.DaysLeft), ts.DailyLoad, ts.Score)
		}
	}
	if v.Quote != "" {
		fmt.Fprintf(&b, "\n“%s”", v.Quote)
	}
	return b.String()
}

func daysText(n int) string {
	if n == 1 {
		return "1 day"
	}
	return strconv.Itoa(n) + " days"
}

