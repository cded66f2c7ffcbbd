package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"deadline-doom/internal/interview"
	"deadline-doom/pkg/response"
)

// runSnapshot handles the routes that only need the path id and answer with
// the session snapshot.
func (h *handler) runSnapshot(c *gin.Context, op func(ctx context.Context, id string) (interview.Snapshot, error)) {
	id, err := h.processID(c)
	if err != nil {
		h.mapError(c, err)
		return
	}

	snap, err := op(c.Request.Context(), id)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.OK(c, newSnapshotResp(snap))
}

// Create godoc
// @Summary     Create an interview
// @Description Opens a new interview on the landing step.
// @Tags        Interview
// @Produce     json
// @Success     201 {object} snapshotResp
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/interviews [POST]
func (h *handler) Create(c *gin.Context) {
	snap, err := h.uc.Create(c.Request.Context())
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Created(c, newSnapshotResp(snap))
}

// Detail godoc
// @Summary     Get an interview
// @Description Returns the current step, drafts, tasks, quiz state and result.
// @Tags        Interview
// @Produce     json
// @Param       id path string true "Interview ID"
// @Success     200 {object} snapshotResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/interviews/{id} [GET]
func (h *handler) Detail(c *gin.Context) {
	h.runSnapshot(c, h.uc.Detail)
}

// Delete godoc
// @Summary     Delete an interview
// @Tags        Interview
// @Produce     json
// @Param       id path string true "Interview ID"
// @Success     200 {object} response.Resp "OK"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/interviews/{id} [DELETE]
func (h *handler) Delete(c *gin.Context) {
	id, err := h.processID(c)
	if err != nil {
		h.mapError(c, err)
		return
	}

	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		h.mapError(c, err)
		return
	}

	response.OK(c, nil)
}

// Start godoc
// @Summary     Start collecting tasks
// @Tags        Interview
// @Produce     json
// @Param       id path string true "Interview ID"
// @Success     200 {object} snapshotResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     422 {object} response.Resp "Rejected - wrong step"
// @Router      /api/v1/interviews/{id}/start [POST]
func (h *handler) Start(c *gin.Context) {
	h.runSnapshot(c, h.uc.Start)
}

// Back godoc
// @Summary     Return from the quiz to the task list
// @Description Keeps the quiz answers and position.
// @Tags        Interview
// @Produce     json
// @Param       id path string true "Interview ID"
// @Success     200 {object} snapshotResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     422 {object} response.Resp "Rejected - wrong step"
// @Router      /api/v1/interviews/{id}/back [POST]
func (h *handler) Back(c *gin.Context) {
	h.runSnapshot(c, h.uc.Back)
}

// Restart godoc
// @Summary     Restart a finished interview
// @Description Clears tasks, habits and result and returns to the landing step.
// @Tags        Interview
// @Produce     json
// @Param       id path string true "Interview ID"
// @Success     200 {object} snapshotResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     422 {object} response.Resp "Rejected - wrong step"
// @Router      /api/v1/interviews/{id}/restart [POST]
func (h *handler) Restart(c *gin.Context) {
	h.runSnapshot(c, h.uc.Restart)
}

// AddDraft godoc
// @Summary     Add a blank task draft
// @Tags        Drafts
// @Produce     json
// @Param       id path string true "Interview ID"
// @Success     200 {object} snapshotResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     422 {object} response.Resp "Rejected - wrong step"
// @Router      /api/v1/interviews/{id}/drafts [POST]
func (h *handler) AddDraft(c *gin.Context) {
	h.runSnapshot(c, h.uc.AddDraft)
}

// UpdateDraft godoc
// @Summary     Edit one field of a task draft
// @Tags        Drafts
// @Accept      json
// @Produce     json
// @Param       id    path string         true "Interview ID"
// @Param       index path int            true "Draft index"
// @Param       body  body updateDraftReq true "Field and its text value"
// @Success     200 {object} snapshotResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     422 {object} response.Resp "Rejected - wrong step"
// @Router      /api/v1/interviews/{id}/drafts/{index} [PATCH]
func (h *handler) UpdateDraft(c *gin.Context) {
	req, err := h.processUpdateDraftReq(c)
	if err != nil {
		h.mapError(c, err)
		return
	}

	snap, err := h.uc.UpdateDraft(c.Request.Context(), req.toInput())
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.OK(c, newSnapshotResp(snap))
}

// RemoveDraft godoc
// @Summary     Remove a task draft
// @Description The last remaining draft is never removed; removed is false then.
// @Tags        Drafts
// @Produce     json
// @Param       id    path string true "Interview ID"
// @Param       index path int    true "Draft index"
// @Success     200 {object} removeDraftResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/interviews/{id}/drafts/{index} [DELETE]
func (h *handler) RemoveDraft(c *gin.Context) {
	input, err := h.processRemoveDraftReq(c)
	if err != nil {
		h.mapError(c, err)
		return
	}

	out, err := h.uc.RemoveDraft(c.Request.Context(), input)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newRemoveDraftResp(out))
}

// ImportCalendar godoc
// @Summary     Import upcoming calendar events as drafts
// @Tags        Drafts
// @Accept      json
// @Produce     json
// @Param       id   path string            true  "Interview ID"
// @Param       body body importCalendarReq false "Lookahead window"
// @Success     200 {object} importCalendarResp
// @Failure     400 {object} response.Resp "Calendar not configured"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     422 {object} response.Resp "Rejected - wrong step"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/interviews/{id}/drafts/import-calendar [POST]
func (h *handler) ImportCalendar(c *gin.Context) {
	req, err := h.processImportCalendarReq(c)
	if err != nil {
		h.mapError(c, err)
		return
	}

	out, err := h.uc.ImportCalendar(c.Request.Context(), req.toInput())
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newImportCalendarResp(out))
}

// SubmitTasks godoc
// @Summary     Submit the task list
// @Description Submits the given drafts, or the interview's own drafts when the body is empty.
// @Tags        Interview
// @Accept      json
// @Produce     json
// @Param       id   path string         true  "Interview ID"
// @Param       body body submitTasksReq false "Drafts"
// @Success     200 {object} snapshotResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     422 {object} response.Resp "Rejected - no valid tasks"
// @Router      /api/v1/interviews/{id}/tasks [POST]
func (h *handler) SubmitTasks(c *gin.Context) {
	req, err := h.processSubmitTasksReq(c)
	if err != nil {
		h.mapError(c, err)
		return
	}

	snap, err := h.uc.SubmitTasks(c.Request.Context(), req.toInput())
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.OK(c, newSnapshotResp(snap))
}

// Quiz godoc
// @Summary     Get the quiz state
// @Tags        Quiz
// @Produce     json
// @Param       id path string true "Interview ID"
// @Success     200 {object} quizResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/interviews/{id}/quiz [GET]
func (h *handler) Quiz(c *gin.Context) {
	id, err := h.processID(c)
	if err != nil {
		h.mapError(c, err)
		return
	}

	q, err := h.uc.Quiz(c.Request.Context(), id)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.OK(c, newQuizResp(q))
}

// SelectOption godoc
// @Summary     Answer the current choice question
// @Description Records the option and advances after a short delay unless on the last question.
// @Tags        Quiz
// @Accept      json
// @Produce     json
// @Param       id   path string          true "Interview ID"
// @Param       body body selectOptionReq true "Option"
// @Success     200 {object} snapshotResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     422 {object} response.Resp "Rejected - invalid value or wrong step"
// @Router      /api/v1/interviews/{id}/quiz/select [POST]
func (h *handler) SelectOption(c *gin.Context) {
	req, err := h.processSelectOptionReq(c)
	if err != nil {
		h.mapError(c, err)
		return
	}

	snap, err := h.uc.SelectOption(c.Request.Context(), req.toInput())
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.OK(c, newSnapshotResp(snap))
}

// SetValue godoc
// @Summary     Answer the current range question
// @Tags        Quiz
// @Accept      json
// @Produce     json
// @Param       id   path string      true "Interview ID"
// @Param       body body setValueReq true "Value"
// @Success     200 {object} snapshotResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     422 {object} response.Resp "Rejected - invalid value or wrong step"
// @Router      /api/v1/interviews/{id}/quiz/value [POST]
func (h *handler) SetValue(c *gin.Context) {
	req, err := h.processSetValueReq(c)
	if err != nil {
		h.mapError(c, err)
		return
	}

	snap, err := h.uc.SetValue(c.Request.Context(), req.toInput())
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.OK(c, newSnapshotResp(snap))
}

// NextQuestion godoc
// @Summary     Move to the next question
// @Tags        Quiz
// @Produce     json
// @Param       id path string true "Interview ID"
// @Success     200 {object} snapshotResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     422 {object} response.Resp "Rejected - unanswered or last question"
// @Router      /api/v1/interviews/{id}/quiz/next [POST]
func (h *handler) NextQuestion(c *gin.Context) {
	h.runSnapshot(c, h.uc.NextQuestion)
}

// PreviousQuestion godoc
// @Summary     Move to the previous question
// @Tags        Quiz
// @Produce     json
// @Param       id path string true "Interview ID"
// @Success     200 {object} snapshotResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     422 {object} response.Resp "Rejected - first question"
// @Router      /api/v1/interviews/{id}/quiz/back [POST]
func (h *handler) PreviousQuestion(c *gin.Context) {
	h.runSnapshot(c, h.uc.PreviousQuestion)
}

// CompleteQuiz godoc
// @Summary     Finish the quiz and score the interview
// @Tags        Quiz
// @Produce     json
// @Param       id path string true "Interview ID"
// @Success     200 {object} resultResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     422 {object} response.Resp "Rejected - quiz incomplete or missing answers"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/interviews/{id}/quiz/complete [POST]
func (h *handler) CompleteQuiz(c *gin.Context) {
	id, err := h.processID(c)
	if err != nil {
		h.mapError(c, err)
		return
	}

	out, err := h.uc.CompleteQuiz(c.Request.Context(), id)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newResultResp(out))
}

// SubmitHabits godoc
// @Summary     Submit every habit answer at once
// @Tags        Interview
// @Accept      json
// @Produce     json
// @Param       id   path string          true "Interview ID"
// @Param       body body submitHabitsReq true "Answers keyed by question id"
// @Success     200 {object} resultResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     422 {object} response.Resp "Rejected - missing or invalid answer"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/interviews/{id}/habits [POST]
func (h *handler) SubmitHabits(c *gin.Context) {
	req, err := h.processSubmitHabitsReq(c)
	if err != nil {
		h.mapError(c, err)
		return
	}

	out, err := h.uc.SubmitHabits(c.Request.Context(), req.toInput())
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newResultResp(out))
}

// Result godoc
// @Summary     Get the risk result
// @Description Returns the score, level, breakdown, theme and a quote.
// @Tags        Interview
// @Produce     json
// @Param       id path string true "Interview ID"
// @Success     200 {object} resultResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     422 {object} response.Resp "Rejected - no result yet"
// @Router      /api/v1/interviews/{id}/result [GET]
func (h *handler) Result(c *gin.Context) {
	id, err := h.processID(c)
	if err != nil {
		h.mapError(c, err)
		return
	}

	out, err := h.uc.Result(c.Request.Context(), id)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newResultResp(out))
}

// Score godoc
// @Summary     Score tasks and habits in one call
// @Description Runs the interview's validation and scoring without creating a session.
// @Tags        Risk
// @Accept      json
// @Produce     json
// @Param       body body scoreReq true "Tasks and answers"
// @Success     200 {object} scoreResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     422 {object} response.Resp "Rejected"
// @Router      /api/v1/risk/score [POST]
func (h *handler) Score(c *gin.Context) {
	req, err := h.processScoreReq(c)
	if err != nil {
		h.mapError(c, err)
		return
	}

	out, err := h.uc.Score(c.Request.Context(), req.toInput())
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newScoreResp(out))
}
