package interview

import "errors"

var (
	ErrSessionNotFound     = errors.New("interview not found")
	ErrCalendarUnavailable = errors.New("calendar import is not configured")
	ErrInvalidPayload      = errors.New("invalid payload")
)
