package gcalendar

import "time"

// Event is a simplified representation of a Google Calendar event.
type Event struct {
	ID       string
	Summary  string
	Start    time.Time
	End      time.Time
	AllDay   bool
	HtmlLink string
}

// Duration is End minus Start, never negative.
func (e Event) Duration() time.Duration {
	if e.End.Before(e.Start) {
		return 0
	}
	return e.End.Sub(e.Start)
}

// ListEventsRequest is the input for listing Google Calendar events.
type ListEventsRequest struct {
	CalendarID string
	TimeMin    time.Time
	TimeMax    time.Time
	MaxResults int64
	// Location interprets all-day dates. Defaults to UTC.
	Location *time.Location
}
