package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"deadline-doom/internal/interview/repository"
	"deadline-doom/internal/presenter"
	"deadline-doom/internal/wizard"
	"deadline-doom/pkg/datemath"
	"deadline-doom/pkg/gcalendar"
	"deadline-doom/pkg/log"
)

const defaultLookaheadDays = 14

// Calendar lists upcoming events for import.
type Calendar interface {
	ListEvents(ctx context.Context, req gcalendar.ListEventsRequest) ([]gcalendar.Event, error)
}

// Config carries the collaborators of the use case. Zero values fall back to
// UTC dates, the default presenter, the wall clock and random UUIDs; a nil
// Calendar disables import.
type Config struct {
	Dates            *datemath.Parser
	Presenter        *presenter.Presenter
	Calendar         Calendar
	CalendarID       string
	LookaheadDays    int
	AutoAdvanceDelay time.Duration
	Scheduler        wizard.Scheduler
	Clock            func() time.Time
	NewID            func() string
}

// implUseCase is the private implementation of interview.UseCase.
type implUseCase struct {
	repo  repository.Repository
	l     log.Logger
	dates *datemath.Parser
	pres  *presenter.Presenter
	cal   Calendar
	calID string
	ahead int
	delay time.Duration
	sched wizard.Scheduler
	now   func() time.Time
	newID func() string
}

// New creates a new interview UseCase implementation.
func New(l log.Logger, repo repository.Repository, cfg Config) *implUseCase {
	uc := &implUseCase{
		repo:  repo,
		l:     l,
		dates: cfg.Dates,
		pres:  cfg.Presenter,
		cal:   cfg.Calendar,
		calID: cfg.CalendarID,
		ahead: cfg.LookaheadDays,
		delay: cfg.AutoAdvanceDelay,
		sched: cfg.Scheduler,
		now:   cfg.Clock,
		newID: cfg.NewID,
	}
	if uc.dates == nil {
		uc.dates = datemath.MustParser("UTC")
	}
	if uc.pres == nil {
		uc.pres = presenter.New(nil)
	}
	if uc.ahead <= 0 {
		uc.ahead = defaultLookaheadDays
	}
	if uc.sched == nil {
		uc.sched = wizard.NewScheduler()
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	if uc.newID == nil {
		uc.newID = uuid.NewString
	}
	return uc
}

func (uc *implUseCase) newController() *wizard.Controller {
	return wizard.NewController(
		wizard.WithClock(uc.now),
		wizard.WithDates(uc.dates),
		wizard.WithScheduler(uc.sched),
		wizard.WithAutoAdvanceDelay(uc.delay),
	)
}
