package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"deadline-doom/internal/interview"
	"deadline-doom/internal/wizard"
	"deadline-doom/pkg/response"
)

var (
	errInvalidID    = errors.New("id is required")
	errInvalidIndex = errors.New("index must be a non-negative integer")
)

// rejectionResp is the errors payload of a 422.
type rejectionResp struct {
	Reason wizard.Reason       `json:"reason"`
	Step   wizard.Step         `json:"step,omitempty"`
	Field  string              `json:"field,omitempty"`
	Issues []wizard.DraftIssue `json:"issues,omitempty"`
}

// mapError writes err with the status it deserves.
func (h *handler) mapError(c *gin.Context, err error) {
	if rej, ok := wizard.AsRejection(err); ok {
		response.Rejected(c, err, rejectionResp{
			Reason: rej.Reason,
			Step:   rej.Step,
			Field:  rej.Field,
			Issues: rej.Issues,
		})
		return
	}

	switch {
	case errors.Is(err, interview.ErrSessionNotFound):
		response.NotFound(c, err)
	case errors.Is(err, errInvalidID),
		errors.Is(err, errInvalidIndex),
		errors.Is(err, interview.ErrInvalidPayload),
		errors.Is(err, interview.ErrCalendarUnavailable),
		errors.Is(err, wizard.ErrDraftIndex),
		errors.Is(err, wizard.ErrDraftField),
		errors.Is(err, wizard.ErrDraftValue):
		response.Error(c, err, nil)
	default:
		// Includes risk.ErrPrecondition: the wizard let bad input through.
		h.l.Errorf(c.Request.Context(), "interview.delivery.http: %v", err)
		response.InternalError(c, err)
	}
}
