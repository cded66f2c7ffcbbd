package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 10 * time.Second

// Bot is the Telegram Bot API client.
type Bot struct {
	token      string
	apiURL     string
	httpClient *http.Client
}

// NewBot creates a new Telegram Bot client with the given token.
func NewBot(token string) *Bot {
	return &Bot{
		token:      token,
		apiURL:     fmt.Sprintf("https://api.telegram.org/bot%s", token),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// SetAPIURL overrides the default Telegram API URL for testing purposes.
func (b *Bot) SetAPIURL(url string) {
	b.apiURL = url
}

// SetWebhook registers the webhook URL with Telegram.
func (b *Bot) SetWebhook(ctx context.Context, webhookURL string) error {
	if err := b.call(ctx, "setWebhook", map[string]string{"url": webhookURL}, nil); err != nil {
		return fmt.Errorf("telegram setWebhook failed: %w", err)
	}
	return nil
}

// SendMessage sends a message and returns it as stored by Telegram.
func (b *Bot) SendMessage(ctx context.Context, req SendMessageRequest) (Message, error) {
	var msg Message
	if err := b.call(ctx, "sendMessage", req, &msg); err != nil {
		return Message{}, fmt.Errorf("telegram sendMessage failed: %w", err)
	}
	return msg, nil
}

// SendText sends a plain text message.
func (b *Bot) SendText(ctx context.Context, chatID int64, text string) error {
	_, err := b.SendMessage(ctx, SendMessageRequest{ChatID: chatID, Text: text})
	return err
}

// EditMessageText replaces the text (and keyboard) of a sent message.
func (b *Bot) EditMessageText(ctx context.Context, req EditMessageTextRequest) error {
	if err := b.call(ctx, "editMessageText", req, nil); err != nil {
		return fmt.Errorf("telegram editMessageText failed: %w", err)
	}
	return nil
}

// AnswerCallbackQuery acknowledges a button press.
func (b *Bot) AnswerCallbackQuery(ctx context.Context, id, text string) error {
	req := answerCallbackRequest{CallbackQueryID: id, Text: text}
	if err := b.call(ctx, "answerCallbackQuery", req, nil); err != nil {
		return fmt.Errorf("telegram answerCallbackQuery failed: %w", err)
	}
	return nil
}

// call posts payload to method and decodes the result into out when non-nil.
func (b *Bot) call(ctx context.Context, method string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.apiURL+"/"+method, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(raw, &apiResp); err != nil {
		return fmt.Errorf("API error %d: %s", resp.StatusCode, string(raw))
	}
	if !apiResp.OK {
		return fmt.Errorf("API error %d: %s", resp.StatusCode, apiResp.Description)
	}
	if out != nil && len(apiResp.Result) > 0 {
		if err := json.Unmarshal(apiResp.Result, out); err != nil {
			return fmt.Errorf("decode %s result: %w", method, err)
		}
	}
	return nil
}
