package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Notifier delivers a text alert.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// Noop drops every alert. Used when Telegram is not configured.
type Noop struct{}

func (Noop) Send(context.Context, string) error { return nil }

const defaultTelegramAPI = "https://api.telegram.org"

// TelegramNotifier sends messages via the Telegram Bot API.
type TelegramNotifier struct {
	BotToken   string
	ChatID     string
	BaseURL    string
	Client     *http.Client
	MaxRetries uint64
	// InitialInterval is the first backoff pause.
	InitialInterval time.Duration
	logger          *zap.Logger
}

// NewTelegramNotifier creates a notifier with optional proxy support.
func NewTelegramNotifier(botToken, chatID, proxyURL string, logger *zap.Logger) *TelegramNotifier {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &TelegramNotifier{
		BotToken: botToken,
		ChatID:   chatID,
		BaseURL:  defaultTelegramAPI,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		MaxRetries:      3,
		InitialInterval: time.Second,
		logger:          logger,
	}
}

// Send posts text to the configured chat, retrying transient failures with
// exponential backoff. Client errors are not retried.
func (t *TelegramNotifier) Send(ctx context.Context, text string) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = t.InitialInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(b, t.MaxRetries), ctx)

	notify := func(err error, wait time.Duration) {
		t.logger.Warn("telegram send failed, retrying", zap.Error(err), zap.Duration("wait", wait))
	}
	return backoff.RetryNotify(func() error { return t.send(ctx, text) }, policy, notify)
}

func (t *TelegramNotifier) send(ctx context.Context, text string) error {
	apiURL := fmt.Sprintf("%s/bot%s/sendMessage", t.BaseURL, t.BotToken)
	payload := map[string]string{
		"chat_id":    t.ChatID,
		"text":       text,
		"parse_mode": "HTML",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("marshal payload: %w", err))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(body))
	if err != nil {
		return backoff.Permanent(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.Client.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	respBody, _ := io.ReadAll(resp.Body)
	apiErr := fmt.Errorf("telegram API error: status %d, body: %s", resp.StatusCode, string(respBody))
	if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
		return backoff.Permanent(apiErr)
	}
	return apiErr
}
