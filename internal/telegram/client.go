// Package telegram provides a client for the Telegram Bot API.
package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"
)

type Client struct {
	httpClient       *resty.Client
	chatID           string
	maxRetryAttempts uint
}

func NewClient(token, chatID string, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL("https://api.telegram.org/bot" + token)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient:       client,
		chatID:           chatID,
		maxRetryAttempts: retryAttempts,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// SendMessageParams holds the options for sending one message.
type SendMessageParams struct {
	Text           string
	DisablePreview bool
	Keyboard       *InlineKeyboardMarkup
}

type sendMessageRequest struct {
	ChatID                string                `json:"chat_id"`
	Text                  string                `json:"text"`
	ParseMode             string                `json:"parse_mode"`
	DisableWebPagePreview bool                  `json:"disable_web_page_preview,omitempty"`
	ReplyMarkup           *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

// InlineKeyboardMarkup is the reply markup for inline buttons.
type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

type InlineKeyboardButton struct {
	Text         string `json:"text"`
	URL          string `json:"url,omitempty"`
	CallbackData string `json:"callback_data,omitempty"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}
	if strings.Contains(errStr, "response error 5") {
		return true
	}
	if strings.Contains(errStr, "response error 429") {
		return true
	}
	return false
}

func (client *Client) call(ctx context.Context, method string, body any) error {
	return retry.Do(
		func() error {
			response, err := client.httpClient.R().
				SetContext(ctx).
				SetBody(body).
				SetResult(&apiResponse{}).
				SetError(&apiResponse{}).
				Post("/" + method)
			if err != nil {
				err = fmt.Errorf("httpClient.Post(%s) > %w", method, err)
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			if response.IsError() {
				err := fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result := response.Result().(*apiResponse)
			if result == nil || !result.OK {
				description := ""
				if result != nil {
					description = result.Description
				}
				return retry.Unrecoverable(fmt.Errorf("telegram %s failed: %s", method, description))
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
		retry.MaxJitter(500*time.Millisecond),
	)
}

// SendMessage sends an HTML formatted message to the configured chat.
func (client *Client) SendMessage(ctx context.Context, params SendMessageParams) error {
	return client.call(ctx, "sendMessage", sendMessageRequest{
		ChatID:                client.chatID,
		Text:                  params.Text,
		ParseMode:             "HTML",
		DisableWebPagePreview: params.DisablePreview,
		ReplyMarkup:           params.Keyboard,
	})
}

// AnswerCallbackQuery acknowledges an inline button press.
func (client *Client) AnswerCallbackQuery(ctx context.Context, callbackQueryID, text string) error {
	return client.call(ctx, "answerCallbackQuery", map[string]string{
		"callback_query_id": callbackQueryID,
		"text":              text,
	})
}

// SetWebhook registers the webhook URL for update delivery.
func (client *Client) SetWebhook(ctx context.Context, webhookURL string) error {
	return client.call(ctx, "setWebhook", map[string]string{
		"url": webhookURL,
	})
}

// DeleteWebhook unregisters the webhook.
func (client *Client) DeleteWebhook(ctx context.Context) error {
	return client.call(ctx, "deleteWebhook", map[string]string{})
}
