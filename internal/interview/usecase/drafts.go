package usecase

import (
	"context"
	"math"
	"strings"

	"deadline-doom/internal/interview"
	"deadline-doom/internal/risk"
	"deadline-doom/internal/wizard"
	"deadline-doom/pkg/gcalendar"
)

const untitledEvent = "Untitled event"

// AddDraft appends a blank draft.
func (uc *implUseCase) AddDraft(ctx context.Context, id string) (interview.Snapshot, error) {
	return uc.withSession(ctx, "AddDraft", id, func(s *interview.Session) error {
		_, err := s.Controller.AddDraft()
		return err
	})
}

// UpdateDraft edits one field of one draft.
func (uc *implUseCase) UpdateDraft(ctx context.Context, input interview.UpdateDraftInput) (interview.Snapshot, error) {
	return uc.withSession(ctx, "UpdateDraft", input.ID, func(s *interview.Session) error {
		return s.Controller.UpdateDraft(input.Index, input.Field, input.Value)
	})
}

// RemoveDraft deletes one draft unless it is the last one.
func (uc *implUseCase) RemoveDraft(ctx context.Context, input interview.RemoveDraftInput) (interview.RemoveDraftOutput, error) {
	var removed bool
	snap, err := uc.withSession(ctx, "RemoveDraft", input.ID, func(s *interview.Session) error {
		var err error
		removed, err = s.Controller.RemoveDraft(input.Index)
		return err
	})
	if err != nil {
		return interview.RemoveDraftOutput{}, err
	}
	return interview.RemoveDraftOutput{Snapshot: snap, Removed: removed}, nil
}

// SubmitTasks hands the drafts to the wizard. Dropped drafts are kept on the
// session so the caller can show why.
func (uc *implUseCase) SubmitTasks(ctx context.Context, input interview.SubmitTasksInput) (interview.Snapshot, error) {
	return uc.withSession(ctx, "SubmitTasks", input.ID, func(s *interview.Session) error {
		var (
			issues []wizard.DraftIssue
			err    error
		)
		if input.Drafts == nil {
			issues, err = s.Controller.SubmitDrafts()
		} else {
			issues, err = s.Controller.SubmitTasks(input.Drafts)
		}
		if err != nil {
			return err
		}
		s.Issues = issues
		return nil
	})
}

// ImportCalendar turns upcoming calendar events into drafts.
func (uc *implUseCase) ImportCalendar(ctx context.Context, input interview.ImportCalendarInput) (interview.ImportCalendarOutput, error) {
	if uc.cal == nil {
		return interview.ImportCalendarOutput{}, interview.ErrCalendarUnavailable
	}
	days := input.Days
	if days <= 0 {
		days = uc.ahead
	}

	// Fail fast on a wrong step before calling out.
	if _, err := uc.withSession(ctx, "ImportCalendar", input.ID, func(s *interview.Session) error {
		if step := s.Controller.Step(); step != wizard.StepCollectingTasks {
			return &wizard.RejectionError{Reason: wizard.ReasonWrongStep, Step: step}
		}
		return nil
	}); err != nil {
		return interview.ImportCalendarOutput{}, err
	}

	now := uc.now()
	events, err := uc.cal.ListEvents(ctx, gcalendar.ListEventsRequest{
		CalendarID: uc.calID,
		TimeMin:    now,
		TimeMax:    now.AddDate(0, 0, days),
		Location:   uc.dates.Location(),
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.ImportCalendar ListEvents: %v", err)
		return interview.ImportCalendarOutput{}, err
	}

	snap, err := uc.withSession(ctx, "ImportCalendar", input.ID, func(s *interview.Session) error {
		for _, ev := range events {
			if _, err := s.Controller.AppendDraft(uc.draftFromEvent(ev)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return interview.ImportCalendarOutput{}, err
	}

	uc.l.Infof(ctx, "uc.ImportCalendar: imported %d event(s) into %s", len(events), input.ID)
	return interview.ImportCalendarOutput{Snapshot: snap, Imported: len(events)}, nil
}

// draftFromEvent maps an event onto a draft due on the event's day. Timed
// events need their length in whole hours; all-day events get one hour for
// the user to adjust.
func (uc *implUseCase) draftFromEvent(ev gcalendar.Event) wizard.Draft {
	title := strings.TrimSpace(ev.Summary)
	if title == "" {
		title = untitledEvent
	}

	hours := 1
	if !ev.AllDay {
		if h := int(math.Ceil(ev.Duration().Hours())); h > 1 {
			hours = h
		}
	}

	return wizard.Draft{
		Title:    title,
		Deadline: uc.dates.Format(ev.Start),
		Hours:    hours,
		Type:     risk.TypeWork,
	}
}

