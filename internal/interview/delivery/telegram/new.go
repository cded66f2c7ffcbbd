package telegram

import (
	"context"

	"github.com/gin-gonic/gin"

	"deadline-doom/internal/interview"
	"deadline-doom/internal/presenter"
	pkgLog "deadline-doom/pkg/log"
	pkgTelegram "deadline-doom/pkg/telegram"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
	HandleUpdate(ctx context.Context, update pkgTelegram.Update) error
}

type handler struct {
	l      pkgLog.Logger
	uc     interview.UseCase
	bot    *pkgTelegram.Bot
	reveal *presenter.Revealer
}

// New creates a new Telegram delivery handler. uc should create sessions
// without an auto-advance delay: every tap re-renders the quiz right away.
func New(l pkgLog.Logger, uc interview.UseCase, bot *pkgTelegram.Bot, reveal *presenter.Revealer) Handler {
	if reveal == nil {
		reveal = presenter.NewRevealer(0, 0)
	}
	return &handler{
		l:      l,
		uc:     uc,
		bot:    bot,
		reveal: reveal,
	}
}
