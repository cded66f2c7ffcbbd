package http

import (
	"deadline-doom/internal/interview"
	"deadline-doom/pkg/log"
)

type handler struct {
	l  log.Logger
	uc interview.UseCase
}

// New creates a new HTTP handler for interviews.
func New(l log.Logger, uc interview.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
