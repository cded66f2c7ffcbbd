package repository

import (
	"time"

	"deadline-doom/internal/wizard"
)

// CreateSessionOptions holds parameters for storing a new session.
type CreateSessionOptions struct {
	ID         string
	Controller *wizard.Controller
	Now        time.Time
}
