package http

import (
	"github.com/gin-gonic/gin"

	"deadline-doom/internal/middleware"
)

// RegisterRoutes maps the interview API onto rg. Every route is rate limited.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	interviews := rg.Group("/interviews", mw.RateLimit())
	{
		interviews.POST("", h.Create)
		interviews.GET("/:id", h.Detail)
		interviews.DELETE("/:id", h.Delete)
		interviews.POST("/:id/start", h.Start)
		interviews.POST("/:id/back", h.Back)
		interviews.POST("/:id/restart", h.Restart)

		interviews.POST("/:id/drafts", h.AddDraft)
		interviews.POST("/:id/drafts/import-calendar", h.ImportCalendar)
		interviews.PATCH("/:id/drafts/:index", h.UpdateDraft)
		interviews.DELETE("/:id/drafts/:index", h.RemoveDraft)
		interviews.POST("/:id/tasks", h.SubmitTasks)

		interviews.GET("/:id/quiz", h.Quiz)
		interviews.POST("/:id/quiz/select", h.SelectOption)
		interviews.POST("/:id/quiz/value", h.SetValue)
		interviews.POST("/:id/quiz/next", h.NextQuestion)
		interviews.POST("/:id/quiz/back", h.PreviousQuestion)
		interviews.POST("/:id/quiz/complete", h.CompleteQuiz)

		interviews.POST("/:id/habits", h.SubmitHabits)
		interviews.GET("/:id/result", h.Result)
	}

	rg.POST("/risk/score", mw.RateLimit(), h.Score)
}
