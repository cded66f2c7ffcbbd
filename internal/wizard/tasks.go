package wizard

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"deadline-doom/internal/risk"
	"deadline-doom/pkg/datemath"
)

// Field names an editable draft attribute.
type Field string

const (
	FieldTitle    Field = "title"
	FieldDeadline Field = "deadline"
	FieldHours    Field = "hours"
	FieldType     Field = "type"
)

// Draft is a task as the user is still typing it in.
type Draft struct {
	Title    string        `json:"title"`
	Deadline string        `json:"deadline"`
	Hours    int           `json:"hours"`
	Type     risk.TaskType `json:"type"`
}

// NewDraft returns the blank draft shown for every new row.
func NewDraft() Draft {
	return Draft{Hours: 1, Type: risk.TypeAssignment}
}

// TaskCollector holds the ordered, editable draft list. It always keeps at
// least one draft.
type TaskCollector struct {
	drafts []Draft
}

// NewTaskCollector returns a collector with a single blank draft.
func NewTaskCollector() *TaskCollector {
	return &TaskCollector{drafts: []Draft{NewDraft()}}
}

// Drafts returns a copy of the current drafts.
func (c *TaskCollector) Drafts() []Draft {
	out := make([]Draft, len(c.drafts))
	copy(out, c.drafts)
	return out
}

// Len returns the number of drafts.
func (c *TaskCollector) Len() int {
	return len(c.drafts)
}

// Add appends a blank draft and returns its index.
func (c *TaskCollector) Add() int {
	c.drafts = append(c.drafts, NewDraft())
	return len(c.drafts) - 1
}

// Append adds a prefilled draft. A lone untouched blank draft is replaced
// instead of being kept in front of it.
func (c *TaskCollector) Append(d Draft) int {
	if len(c.drafts) == 1 && c.drafts[0] == NewDraft() {
		c.drafts[0] = d
		return 0
	}
	c.drafts = append(c.drafts, d)
	return len(c.drafts) - 1
}

// Update sets one field of the draft at index from its text form.
func (c *TaskCollector) Update(index int, field Field, value string) error {
	if index < 0 || index >= len(c.drafts) {
		return fmt.Errorf("%w: %d", ErrDraftIndex, index)
	}

	d := &c.drafts[index]
	switch field {
	case FieldTitle:
		d.Title = value
	case FieldDeadline:
		d.Deadline = strings.TrimSpace(value)
	case FieldHours:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: hours %q", ErrDraftValue, value)
		}
		d.Hours = n
	case FieldType:
		t := risk.TaskType(strings.ToLower(strings.TrimSpace(value)))
		if !t.IsValid() {
			return fmt.Errorf("%w: type %q", ErrDraftValue, value)
		}
		d.Type = t
	default:
		return fmt.Errorf("%w: %q", ErrDraftField, field)
	}
	return nil
}

// Remove deletes the draft at index. Removing the last remaining draft is a
// no-op and reports false.
func (c *TaskCollector) Remove(index int) (bool, error) {
	if index < 0 || index >= len(c.drafts) {
		return false, fmt.Errorf("%w: %d", ErrDraftIndex, index)
	}
	if len(c.drafts) <= 1 {
		return false, nil
	}
	c.drafts = append(c.drafts[:index], c.drafts[index+1:]...)
	return true, nil
}

// Reset brings the collector back to a single blank draft.
func (c *TaskCollector) Reset() {
	c.drafts = []Draft{NewDraft()}
}

// ParseDraftLine reads a one-line draft of the form
// "title | deadline | hours [| type]". The deadline is kept as typed and only
// checked on submission.
func ParseDraftLine(line string) (Draft, error) {
	parts := strings.Split(line, "|")
	if len(parts) < 3 || len(parts) > 4 {
		return Draft{}, ErrDraftLine
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	d := NewDraft()
	d.Title, d.Deadline = parts[0], parts[1]
	if d.Title == "" || d.Deadline == "" {
		return Draft{}, ErrDraftLine
	}

	hours, err := strconv.Atoi(parts[2])
	if err != nil {
		return Draft{}, fmt.Errorf("%w: hours %q is not a whole number", ErrDraftValue, parts[2])
	}
	d.Hours = hours

	if len(parts) == 4 && parts[3] != "" {
		t := risk.TaskType(strings.ToLower(parts[3]))
		if !t.IsValid() {
			return Draft{}, fmt.Errorf("%w: type %q", ErrDraftValue, parts[3])
		}
		d.Type = t
	}
	return d, nil
}

// CheckDraft converts d into a Task, or reports the first check it fails.
// today must be the start of the collection day.
func CheckDraft(d Draft, dates *datemath.Parser, today time.Time) (risk.Task, *DraftIssue) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return risk.Task{}, &DraftIssue{Field: FieldTitle, Problem: ProblemEmpty}
	}
	if strings.TrimSpace(d.Deadline) == "" {
		return risk.Task{}, &DraftIssue{Field: FieldDeadline, Problem: ProblemEmpty}
	}
	if d.Hours <= 0 {
		return risk.Task{}, &DraftIssue{Field: FieldHours, Problem: ProblemNotPositive}
	}

	taskType := d.Type
	if taskType == "" {
		taskType = risk.TypeAssignment
	}
	if !taskType.IsValid() {
		return risk.Task{}, &DraftIssue{Field: FieldType, Problem: ProblemUnknown}
	}

	deadline, err := dates.Parse(d.Deadline, today)
	if err != nil {
		return risk.Task{}, &DraftIssue{Field: FieldDeadline, Problem: ProblemUnparseable}
	}
	if deadline.Before(today) {
		return risk.Task{}, &DraftIssue{Field: FieldDeadline, Problem: ProblemInPast}
	}

	return risk.Task{
		Title:    title,
		Deadline: deadline,
		Hours:    d.Hours,
		Type:     taskType,
	}, nil
}

// FilterDrafts keeps the drafts that pass CheckDraft, in order, and returns
// the issues of the ones it dropped.
func FilterDrafts(drafts []Draft, dates *datemath.Parser, now time.Time) ([]risk.Task, []DraftIssue) {
	today := dates.StartOfDay(now)

	tasks := make([]risk.Task, 0, len(drafts))
	var issues []DraftIssue
	for i, d := range drafts {
		t, issue := CheckDraft(d, dates, today)
		if issue != nil {
			issue.Index = i
			issues = append(issues, *issue)
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, issues
}
