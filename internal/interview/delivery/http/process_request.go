package http

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"deadline-doom/internal/interview"
)

func (h *handler) processID(c *gin.Context) (string, error) {
	id := c.Param("id")
	if id == "" {
		return "", errInvalidID
	}
	return id, nil
}

func (h *handler) processIndex(c *gin.Context) (int, error) {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil || idx < 0 {
		return 0, errInvalidIndex
	}
	return idx, nil
}

// bindJSON decodes the body into req. An empty body leaves req untouched
// when optional is set.
func bindJSON[T any](c *gin.Context, req *T, optional bool) error {
	if optional && c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(req); err != nil {
		return fmt.Errorf("%w: %v", interview.ErrInvalidPayload, err)
	}
	return nil
}

func (h *handler) processUpdateDraftReq(c *gin.Context) (updateDraftReq, error) {
	var req updateDraftReq
	id, err := h.processID(c)
	if err != nil {
		return req, err
	}
	idx, err := h.processIndex(c)
	if err != nil {
		return req, err
	}
	if err := bindJSON(c, &req, false); err != nil {
		return req, err
	}
	req.ID, req.Index = id, idx
	return req, req.validate()
}

func (h *handler) processRemoveDraftReq(c *gin.Context) (interview.RemoveDraftInput, error) {
	id, err := h.processID(c)
	if err != nil {
		return interview.RemoveDraftInput{}, err
	}
	idx, err := h.processIndex(c)
	if err != nil {
		return interview.RemoveDraftInput{}, err
	}
	return interview.RemoveDraftInput{ID: id, Index: idx}, nil
}

func (h *handler) processImportCalendarReq(c *gin.Context) (importCalendarReq, error) {
	var req importCalendarReq
	id, err := h.processID(c)
	if err != nil {
		return req, err
	}
	if err := bindJSON(c, &req, true); err != nil {
		return req, err
	}
	req.ID = id
	return req, req.validate()
}

func (h *handler) processSubmitTasksReq(c *gin.Context) (submitTasksReq, error) {
	var req submitTasksReq
	id, err := h.processID(c)
	if err != nil {
		return req, err
	}
	if err := bindJSON(c, &req, true); err != nil {
		return req, err
	}
	req.ID = id
	return req, nil
}

func (h *handler) processSelectOptionReq(c *gin.Context) (selectOptionReq, error) {
	var req selectOptionReq
	id, err := h.processID(c)
	if err != nil {
		return req, err
	}
	if err := bindJSON(c, &req, false); err != nil {
		return req, err
	}
	req.ID = id
	return req, nil
}

func (h *handler) processSetValueReq(c *gin.Context) (setValueReq, error) {
	var req setValueReq
	id, err := h.processID(c)
	if err != nil {
		return req, err
	}
	if err := bindJSON(c, &req, false); err != nil {
		return req, err
	}
	req.ID = id
	return req, nil
}

func (h *handler) processSubmitHabitsReq(c *gin.Context) (submitHabitsReq, error) {
	var req submitHabitsReq
	id, err := h.processID(c)
	if err != nil {
		return req, err
	}
	if err := bindJSON(c, &req, false); err != nil {
		return req, err
	}
	req.ID = id
	return req, nil
}

func (h *handler) processScoreReq(c *gin.Context) (scoreReq, error) {
	var req scoreReq
	if err := bindJSON(c, &req, false); err != nil {
		return req, err
	}
	return req, nil
}
