package telegram_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"deadline-doom/internal/interview/delivery/telegram"
	"deadline-doom/internal/interview/repository/memory"
	"deadline-doom/internal/interview/usecase"
	"deadline-doom/internal/presenter"
	"deadline-doom/pkg/log"
	pkgTelegram "deadline-doom/pkg/telegram"
)

const chatID int64 = 4242

// ── Fake Telegram API ──────────────────────────────────────────────────────

type apiCall struct {
	Method  string
	Payload map[string]any
}

type fakeAPI struct {
	mu     sync.Mutex
	calls  []apiCall
	nextID int64
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	_ = json.NewDecoder(r.Body).Decode(&payload)
	method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]

	f.mu.Lock()
	f.calls = append(f.calls, apiCall{Method: method, Payload: payload})
	f.nextID++
	id := f.nextID
	f.mu.Unlock()

	if method == "sendMessage" {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":     true,
			"result": map[string]any{"message_id": id, "chat": map[string]any{"id": chatID, "type": "private"}},
		})
		return
	}
	_, _ = w.Write([]byte(`{"ok": true, "result": true}`))
}

// since returns the calls recorded after the first n.
func (f *fakeAPI) since(n int) []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]apiCall(nil), f.calls[n:]...)
}

func (f *fakeAPI) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func texts(calls []apiCall, method string) []string {
	var out []string
	for _, c := range calls {
		if c.Method == method {
			out = append(out, c.Payload["text"].(string))
		}
	}
	return out
}

// ── Helpers ────────────────────────────────────────────────────────────────

type firstQuote struct{}

func (firstQuote) IntN(int) int { return 0 }

func newHandler(t *testing.T) (telegram.Handler, *fakeAPI) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := &fakeAPI{}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	bot := pkgTelegram.NewBot("test-token")
	bot.SetAPIURL(srv.URL)

	l := log.NewNop()
	uc := usecase.New(l, memory.New(l, 10, time.Hour), usecase.Config{
		Presenter: presenter.New(firstQuote{}),
		Clock:     func() time.Time { return time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC) },
	})
	return telegram.New(l, uc, bot, presenter.NewRevealer(20*time.Millisecond, 5*time.Millisecond)), api
}

func message(text string) pkgTelegram.Update {
	return pkgTelegram.Update{Message: &pkgTelegram.Message{
		MessageID: 1,
		Chat:      &pkgTelegram.Chat{ID: chatID, Type: "private"},
		Text:      text,
	}}
}

func callback(data string, msgID int64) pkgTelegram.Update {
	return pkgTelegram.Update{CallbackQuery: &pkgTelegram.CallbackQuery{
		ID:      "cb",
		Data:    data,
		Message: &pkgTelegram.Message{MessageID: msgID, Chat: &pkgTelegram.Chat{ID: chatID}},
	}}
}

func mustHandle(t *testing.T, h telegram.Handler, u pkgTelegram.Update) {
	t.Helper()
	if err := h.HandleUpdate(context.Background(), u); err != nil {
		t.Fatalf("HandleUpdate() error = %v", err)
	}
}

func lastText(t *testing.T, calls []apiCall, method string) string {
	t.Helper()
	got := texts(calls, method)
	if len(got) == 0 {
		t.Fatalf("no %s call in %+v", method, calls)
	}
	return got[len(got)-1]
}

// ── Tests ──────────────────────────────────────────────────────────────────

func TestSessionID(t *testing.T) {
	if telegram.SessionID(1) != telegram.SessionID(1) {
		t.Error("SessionID should be deterministic")
	}
	if telegram.SessionID(1) == telegram.SessionID(2) {
		t.Error("different chats should get different sessions")
	}
}

func TestChatInterview(t *testing.T) {
	h, api := newHandler(t)

	mustHandle(t, h, message("/start"))
	if got := lastText(t, api.since(0), "sendMessage"); !strings.Contains(got, "Deadline Doom") {
		t.Errorf("welcome = %q", got)
	}

	n := api.count()
	mustHandle(t, h, message("Thesis | 2026-03-12 | 10\nnot a task"))
	got := lastText(t, api.since(n), "sendMessage")
	if !strings.Contains(got, "Added 1 task(s)") || !strings.Contains(got, "1. 📝 Thesis, due 2026-03-12, 10h") {
		t.Errorf("add reply = %q", got)
	}
	if !strings.Contains(got, "Line 2: I couldn't read that task") {
		t.Errorf("add reply should report line 2: %q", got)
	}

	n = api.count()
	mustHandle(t, h, message("/done"))
	sent := texts(api.since(n), "sendMessage")
	if len(sent) != 2 || !strings.Contains(sent[0], "Locked in 1 task(s)") || !strings.HasPrefix(sent[1], "Question 1/4") {
		t.Fatalf("/done replies = %q", sent)
	}

	for _, step := range []struct {
		data string
		want string
	}{
		{"opt:lastmin", "Question 2/4"},
		{"opt:often", "Question 3/4"},
		{"val:2", "Question 4/4"},
	} {
		n = api.count()
		mustHandle(t, h, callback(step.data, 50))
		if got := lastText(t, api.since(n), "editMessageText"); !strings.HasPrefix(got, step.want) {
			t.Errorf("after %s: %q, want prefix %q", step.data, got, step.want)
		}
	}

	n = api.count()
	mustHandle(t, h, callback("finish", 50))

	deadline := time.Now().Add(2 * time.Second)
	for {
		edits := texts(api.since(n), "editMessageText")
		if len(edits) > 0 && strings.Contains(edits[len(edits)-1], "Doom risk: 100% (High)") {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("reveal never reached the result, edits = %q", edits)
		}
		time.Sleep(5 * time.Millisecond)
	}
	if first := texts(api.since(n), "sendMessage"); len(first) != 1 || first[0] != "🎲 Calculating your doom... 0%" {
		t.Errorf("reveal message = %q", first)
	}

	n = api.count()
	mustHandle(t, h, callback("restart", 99))
	if got := lastText(t, api.since(n), "sendMessage"); !strings.Contains(got, "Deadline Doom") {
		t.Errorf("restart reply = %q", got)
	}
}

func TestCallbackRejected(t *testing.T) {
	h, api := newHandler(t)
	mustHandle(t, h, message("/start"))
	mustHandle(t, h, message("Read | tomorrow | 1"))
	mustHandle(t, h, message("/done"))

	n := api.count()
	mustHandle(t, h, callback("next", 7))
	calls := api.since(n)
	if len(calls) != 1 || calls[0].Method != "answerCallbackQuery" {
		t.Fatalf("calls = %+v", calls)
	}
	if calls[0].Payload["text"] != "Pick an answer first." {
		t.Errorf("callback answer = %v", calls[0].Payload["text"])
	}
}

func TestDoneWithoutTasks(t *testing.T) {
	h, api := newHandler(t)
	mustHandle(t, h, message("/start"))

	n := api.count()
	mustHandle(t, h, message("/done"))
	got := lastText(t, api.since(n), "sendMessage")
	if !strings.Contains(got, "None of your tasks are complete yet") || !strings.Contains(got, "Task 1: title is missing") {
		t.Errorf("reply = %q", got)
	}
}

func TestHandleWebhook(t *testing.T) {
	h, _ := newHandler(t)
	r := gin.New()
	r.POST("/webhook/telegram", h.HandleWebhook)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed", `{"update_id":`, http.StatusBadRequest},
		{"ignored", `{"update_id": 1}`, http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/webhook/telegram", bytes.NewBufferString(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Errorf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}
