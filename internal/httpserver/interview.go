package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	interviewHTTP "deadline-doom/internal/interview/delivery/http"
	"deadline-doom/internal/middleware"
)

// setupInterviewDomain registers /api/v1/interviews and /api/v1/risk. The
// use case is built by the caller because the Telegram front end shares it.
func (srv HTTPServer) setupInterviewDomain(ctx context.Context, api *gin.RouterGroup, mw middleware.Middleware) error {
	h := interviewHTTP.New(srv.l, srv.interviewUC)
	interviewHTTP.RegisterRoutes(api, h, mw)

	srv.l.Infof(ctx, "Interview domain registered")
	return nil
}
