package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"deadline-doom/internal/interview"
	"deadline-doom/internal/wizard"
	pkgResponse "deadline-doom/pkg/response"
	pkgTelegram "deadline-doom/pkg/telegram"
)

// HandleWebhook acknowledges the update right away and processes it in the
// background. Telegram retries updates that are not answered quickly.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Warnf(ctx, "telegram.HandleWebhook: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	if update.Message == nil && update.CallbackQuery == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	go func() {
		// The request context is cancelled once the response is written.
		bgCtx := context.Background()
		if err := h.HandleUpdate(bgCtx, update); err != nil {
			h.l.Errorf(bgCtx, "telegram.HandleWebhook: update %d: %v", update.UpdateID, err)
		}
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// HandleUpdate processes one update synchronously.
func (h *handler) HandleUpdate(ctx context.Context, update pkgTelegram.Update) error {
	switch {
	case update.CallbackQuery != nil:
		return h.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.Chat != nil:
		return h.handleMessage(ctx, update.Message)
	default:
		return nil
	}
}

// --- Messages ---

func (h *handler) handleMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return nil
	}
	chatID := msg.Chat.ID

	snap, err := h.uc.Resume(ctx, SessionID(chatID))
	if err != nil {
		return h.fail(ctx, chatID, err)
	}

	if strings.HasPrefix(text, "/") {
		return h.handleCommand(ctx, chatID, snap, command(text))
	}
	if snap.Step != wizard.StepCollectingTasks {
		return h.bot.SendText(ctx, chatID, "Send /start to begin, or /help to see what I can do.")
	}
	return h.addTasks(ctx, chatID, snap, text)
}

// command strips arguments and a trailing @botname.
func command(text string) string {
	cmd, _, _ := strings.Cut(text, " ")
	cmd, _, _ = strings.Cut(cmd, "@")
	return strings.ToLower(cmd)
}

func (h *handler) handleCommand(ctx context.Context, chatID int64, snap interview.Snapshot, cmd string) error {
	id := snap.ID

	switch cmd {
	case "/start":
		return h.start(ctx, chatID, snap)
	case "/help":
		return h.bot.SendText(ctx, chatID, helpText)
	case "/tasks":
		if snap.Step != wizard.StepCollectingTasks {
			return h.bot.SendText(ctx, chatID, "You're not editing tasks right now. Send /start to continue.")
		}
		return h.bot.SendText(ctx, chatID, draftsText(snap))
	case "/calendar":
		out, err := h.uc.ImportCalendar(ctx, interview.ImportCalendarInput{ID: id})
		if err != nil {
			return h.fail(ctx, chatID, err)
		}
		return h.bot.SendText(ctx, chatID, fmt.Sprintf("📅 Imported %d event(s).\n\n%s", out.Imported, draftsText(out.Snapshot)))
	case "/done":
		return h.submitTasks(ctx, chatID, id)
	case "/back":
		snap, err := h.uc.Back(ctx, id)
		if err != nil {
			return h.fail(ctx, chatID, err)
		}
		return h.bot.SendText(ctx, chatID, draftsText(snap))
	case "/result":
		out, err := h.uc.Result(ctx, id)
		if err != nil {
			return h.fail(ctx, chatID, err)
		}
		_, err = h.send(ctx, chatID, resultText(out.View), restartKeyboard())
		return err
	case "/restart":
		return h.restart(ctx, chatID, snap)
	default:
		return h.bot.SendText(ctx, chatID, "Unknown command.\n\n"+helpText)
	}
}

// start moves the chat to wherever it can take input next.
func (h *handler) start(ctx context.Context, chatID int64, snap interview.Snapshot) error {
	var err error
	if snap.Step == wizard.StepShowingResults {
		if snap, err = h.uc.Restart(ctx, snap.ID); err != nil {
			return h.fail(ctx, chatID, err)
		}
	}
	if snap.Step == wizard.StepLanding {
		if snap, err = h.uc.Start(ctx, snap.ID); err != nil {
			return h.fail(ctx, chatID, err)
		}
	}

	if snap.Step == wizard.StepCollectingHabits {
		_, err = h.send(ctx, chatID, questionText(snap.Quiz), questionKeyboard(snap.Quiz))
		return err
	}
	return h.bot.SendText(ctx, chatID, welcomeText)
}

func (h *handler) restart(ctx context.Context, chatID int64, snap interview.Snapshot) error {
	if snap.Step != wizard.StepShowingResults {
		return h.start(ctx, chatID, snap)
	}
	snap, err := h.uc.Restart(ctx, snap.ID)
	if err != nil {
		return h.fail(ctx, chatID, err)
	}
	return h.start(ctx, chatID, snap)
}

// addTasks turns each line of text into a draft. Lines that cannot be read
// are reported and skipped.
func (h *handler) addTasks(ctx context.Context, chatID int64, snap interview.Snapshot, text string) error {
	var (
		added    int
		problems []string
	)
	for n, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		d, err := wizard.ParseDraftLine(line)
		if err != nil {
			problems = append(problems, fmt.Sprintf("Line %d: %s", n+1, errorMessage(err)))
			continue
		}
		if snap, err = h.addDraft(ctx, snap, d); err != nil {
			return h.fail(ctx, chatID, err)
		}
		added++
	}

	var b strings.Builder
	if added > 0 {
		fmt.Fprintf(&b, "➕ Added %d task(s).\n\n%s", added, draftsText(snap))
	}
	if len(problems) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(strings.Join(problems, "\n"))
	}
	return h.bot.SendText(ctx, chatID, b.String())
}

// addDraft fills the untouched blank draft when there is one and appends a
// new draft otherwise.
func (h *handler) addDraft(ctx context.Context, snap interview.Snapshot, d wizard.Draft) (interview.Snapshot, error) {
	index := len(snap.Drafts)
	if len(snap.Drafts) == 1 && snap.Drafts[0] == wizard.NewDraft() {
		index = 0
	} else {
		var err error
		if snap, err = h.uc.AddDraft(ctx, snap.ID); err != nil {
			return snap, err
		}
	}

	fields := map[wizard.Field]string{
		wizard.FieldTitle:    d.Title,
		wizard.FieldDeadline: d.Deadline,
		wizard.FieldHours:    strconv.Itoa(d.Hours),
		wizard.FieldType:     string(d.Type),
	}
	var err error
	for _, f := range []wizard.Field{wizard.FieldTitle, wizard.FieldDeadline, wizard.FieldHours, wizard.FieldType} {
		snap, err = h.uc.UpdateDraft(ctx, interview.UpdateDraftInput{ID: snap.ID, Index: index, Field: f, Value: fields[f]})
		if err != nil {
			return snap, err
		}
	}
	return snap, nil
}

func (h *handler) submitTasks(ctx context.Context, chatID int64, id string) error {
	snap, err := h.uc.SubmitTasks(ctx, interview.SubmitTasksInput{ID: id})
	if err != nil {
		return h.fail(ctx, chatID, err)
	}

	msg := fmt.Sprintf("🔒 Locked in %d task(s). Now a few questions about your habits.", len(snap.Tasks))
	if len(snap.Issues) > 0 {
		msg += "\n\nSkipped:\n" + issuesText(snap.Issues)
	}
	if err := h.bot.SendText(ctx, chatID, msg); err != nil {
		return err
	}
	_, err = h.send(ctx, chatID, questionText(snap.Quiz), questionKeyboard(snap.Quiz))
	return err
}

// --- Callbacks ---

func (h *handler) handleCallback(ctx context.Context, cq *pkgTelegram.CallbackQuery) error {
	if cq.Message == nil || cq.Message.Chat == nil {
		return h.bot.AnswerCallbackQuery(ctx, cq.ID, "")
	}
	chatID, msgID := cq.Message.Chat.ID, cq.Message.MessageID
	id := SessionID(chatID)
	action, arg, _ := strings.Cut(cq.Data, ":")

	var (
		snap interview.Snapshot
		err  error
	)
	switch action {
	case cbOption:
		snap, err = h.uc.SelectOption(ctx, interview.SelectOptionInput{ID: id, OptionID: arg})
	case cbValue:
		snap, err = h.setValue(ctx, id, arg)
	case cbNext:
		snap, err = h.uc.NextQuestion(ctx, id)
	case cbPrev:
		snap, err = h.uc.PreviousQuestion(ctx, id)
	case cbTasks:
		if snap, err = h.uc.Back(ctx, id); err == nil {
			h.ack(ctx, cq.ID, "")
			return h.edit(ctx, chatID, msgID, draftsText(snap), nil)
		}
	case cbFinish:
		var out interview.ResultOutput
		if out, err = h.uc.CompleteQuiz(ctx, id); err == nil {
			h.ack(ctx, cq.ID, "")
			return h.showResult(ctx, chatID, msgID, out)
		}
	case cbRestart:
		if snap, err = h.uc.Resume(ctx, id); err == nil {
			h.ack(ctx, cq.ID, "")
			return h.restart(ctx, chatID, snap)
		}
	default:
		err = fmt.Errorf("%w: callback %q", interview.ErrInvalidPayload, cq.Data)
	}

	if err != nil {
		h.logFailure(ctx, err)
		h.ack(ctx, cq.ID, errorMessage(err))
		return nil
	}
	h.ack(ctx, cq.ID, "")
	return h.edit(ctx, chatID, msgID, questionText(snap.Quiz), questionKeyboard(snap.Quiz))
}

// setValue answers a range question and moves on unless it is the last one.
func (h *handler) setValue(ctx context.Context, id, arg string) (interview.Snapshot, error) {
	v, err := strconv.Atoi(arg)
	if err != nil {
		return interview.Snapshot{}, fmt.Errorf("%w: value %q", interview.ErrInvalidPayload, arg)
	}
	snap, err := h.uc.SetValue(ctx, interview.SetValueInput{ID: id, Value: v})
	if err != nil || snap.Quiz.IsLast {
		return snap, err
	}
	return h.uc.NextQuestion(ctx, id)
}

// showResult closes the quiz message and counts the score up in a new one.
// The reveal stops when the interview is restarted or dropped.
func (h *handler) showResult(ctx context.Context, chatID, quizMsgID int64, out interview.ResultOutput) error {
	if err := h.edit(ctx, chatID, quizMsgID, "✅ Quiz complete.", nil); err != nil {
		h.l.Warnf(ctx, "telegram.showResult: closing quiz message: %v", err)
	}

	msg, err := h.send(ctx, chatID, revealText(0), nil)
	if err != nil {
		return err
	}

	// The message already shows frame 0; the final frame is rendered once.
	score, last, done := out.View.Result.Score, 0, false
	stop := h.reveal.Start(context.Background(), score, func(frame int) {
		if done || (frame == last && frame != score) {
			return
		}
		last, done = frame, frame == score

		text, kb := revealText(frame), (*pkgTelegram.InlineKeyboardMarkup)(nil)
		if frame == score {
			text, kb = resultText(out.View), restartKeyboard()
		}
		if err := h.edit(context.Background(), chatID, msg.MessageID, text, kb); err != nil {
			h.l.Warnf(context.Background(), "telegram.showResult: frame %d: %v", frame, err)
		}
	})

	if err := h.uc.OnReset(ctx, out.ID, stop); err != nil {
		stop()
		return err
	}
	h.l.Infof(ctx, "telegram.showResult: chat %d scored %d (%s)", chatID, score, out.View.Result.Level)
	return nil
}

// --- Helpers ---

func (h *handler) send(ctx context.Context, chatID int64, text string, kb *pkgTelegram.InlineKeyboardMarkup) (pkgTelegram.Message, error) {
	return h.bot.SendMessage(ctx, pkgTelegram.SendMessageRequest{ChatID: chatID, Text: text, ReplyMarkup: kb})
}

func (h *handler) edit(ctx context.Context, chatID, msgID int64, text string, kb *pkgTelegram.InlineKeyboardMarkup) error {
	return h.bot.EditMessageText(ctx, pkgTelegram.EditMessageTextRequest{
		ChatID:      chatID,
		MessageID:   msgID,
		Text:        text,
		ReplyMarkup: kb,
	})
}

func (h *handler) ack(ctx context.Context, callbackID, text string) {
	if err := h.bot.AnswerCallbackQuery(ctx, callbackID, text); err != nil {
		h.l.Warnf(ctx, "telegram.ack: %v", err)
	}
}

// fail tells the chat what went wrong. Only transport errors are returned.
func (h *handler) fail(ctx context.Context, chatID int64, err error) error {
	h.logFailure(ctx, err)
	return h.bot.SendText(ctx, chatID, errorMessage(err))
}

func (h *handler) logFailure(ctx context.Context, err error) {
	if errors.Is(err, wizard.ErrRejected) || errors.Is(err, interview.ErrCalendarUnavailable) {
		h.l.Warnf(ctx, "telegram: %v", err)
		return
	}
	h.l.Errorf(ctx, "telegram: %v", err)
}
