// Package chatapi provides an inference client for OpenAI-compatible chat APIs.
package chatapi

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/vocanews/vocanews/internal/inference"
)

const (
	GroqBaseURL = "https://api.groq.com/openai/v1"
	XAIBaseURL  = "https://api.x.ai/v1"
)

type Client struct {
	httpClient       *resty.Client
	name             string
	model            string
	maxRetryAttempts uint
}

func NewClient(name, baseURL, apiKey, model string, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient:       client,
		name:             name,
		model:            model,
		maxRetryAttempts: retryAttempts,
	}
}

// NewGroqClient creates a client for the Groq chat completion API.
func NewGroqClient(apiKey, model string, retryAttempts uint) *Client {
	return NewClient("groq", GroqBaseURL, apiKey, model, retryAttempts)
}

// NewXAIClient creates a client for the xAI chat completion API.
func NewXAIClient(apiKey, model string, retryAttempts uint) *Client {
	return NewClient("xai", XAIBaseURL, apiKey, model, retryAttempts)
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// Name returns the provider name configured for this client.
func (client *Client) Name() string {
	return client.name
}

type ChatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float32         `json:"temperature,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// ResponseFormat constrains the completion output format.
type ResponseFormat struct {
	Type string `json:"type"`
}

func jsonResponseFormat() *ResponseFormat {
	return &ResponseFormat{Type: "json_object"}
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type ChoiceMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Retry on JSON parsing errors as they might be due to incomplete responses
	errStr := err.Error()
	if strings.Contains(errStr, "json.Unmarshal") || strings.Contains(errStr, "unexpected end of JSON input") {
		return true
	}

	// Retry on network-related errors
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// Retry on 5xx errors (server errors)
	if strings.Contains(errStr, "response error 5") {
		return true
	}

	// Retry on rate limiting (429)
	if strings.Contains(errStr, "response error 429") || strings.Contains(errStr, "rate_limit") {
		return true
	}

	return false
}

func (client *Client) withRetry(ctx context.Context, call func() error) error {
	return retry.Do(
		func() error {
			if err := call(); err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
		retry.MaxJitter(500*time.Millisecond),
	)
}

func (client *Client) complete(ctx context.Context, requestBody ChatCompletionRequest) (string, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&ChatCompletionResponse{}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return "", fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	responseBody := response.Result().(*ChatCompletionResponse)
	if responseBody == nil || len(responseBody.Choices) == 0 {
		return "", fmt.Errorf("empty response body or choices: %s", response.String())
	}

	content := responseBody.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty response content: %s", response.String())
	}
	slog.Default().Debug("chat completion response",
		"provider", client.name,
		"model", requestBody.Model,
		"usage", responseBody.Usage,
	)
	return content, nil
}

// CurateNews implements the inference.Client interface
func (client *Client) CurateNews(
	ctx context.Context,
	params inference.CurateNewsRequest,
) (inference.CurateNewsResponse, error) {
	if len(params.Articles) == 0 {
		return inference.CurateNewsResponse{}, nil
	}

	userPrompt, err := inference.CurateNewsUserPrompt(params)
	if err != nil {
		return inference.CurateNewsResponse{}, fmt.Errorf("CurateNewsUserPrompt > %w", err)
	}
	requestBody := ChatCompletionRequest{
		Model:          client.model,
		Temperature:    0.3,
		ResponseFormat: jsonResponseFormat(),
		Messages: []Message{
			{Role: RoleSystem, Content: inference.CurateNewsSystemPrompt},
			{Role: RoleUser, Content: userPrompt},
		},
	}

	var result inference.CurateNewsResponse
	if err := client.withRetry(ctx, func() error {
		content, err := client.complete(ctx, requestBody)
		if err != nil {
			return err
		}
		articles, err := decodeCuratedArticles(content)
		if err != nil {
			return err
		}
		result = inference.CurateNewsResponse{Articles: articles}
		return nil
	}); err != nil {
		return inference.CurateNewsResponse{}, err
	}
	return result, nil
}

// GenerateVocabCards implements the inference.Client interface
func (client *Client) GenerateVocabCards(
	ctx context.Context,
	params inference.GenerateVocabCardsRequest,
) (inference.GenerateVocabCardsResponse, error) {
	requestBody := ChatCompletionRequest{
		Model:          client.model,
		Temperature:    0.3,
		ResponseFormat: jsonResponseFormat(),
		Messages: []Message{
			{Role: RoleSystem, Content: inference.VocabCardsSystemPrompt},
			{Role: RoleUser, Content: inference.VocabCardsUserPrompt(params)},
		},
	}

	var result inference.GenerateVocabCardsResponse
	if err := client.withRetry(ctx, func() error {
		content, err := client.complete(ctx, requestBody)
		if err != nil {
			return err
		}
		cards, err := decodeVocabCards(content)
		if err != nil {
			return err
		}
		result = inference.GenerateVocabCardsResponse{Cards: cards}
		return nil
	}); err != nil {
		return inference.GenerateVocabCardsResponse{}, err
	}
	return result, nil
}

// EvaluateSentence implements the inference.Client interface
func (client *Client) EvaluateSentence(
	ctx context.Context,
	params inference.EvaluateSentenceRequest,
) (inference.EvaluateSentenceResponse, error) {
	requestBody := ChatCompletionRequest{
		Model:          client.model,
		Temperature:    0.1,
		ResponseFormat: jsonResponseFormat(),
		Messages: []Message{
			{Role: RoleSystem, Content: inference.EvaluateSentenceSystemPrompt},
			{Role: RoleUser, Content: inference.EvaluateSentenceUserPrompt(params)},
		},
	}

	var result inference.EvaluateSentenceResponse
	if err := client.withRetry(ctx, func() error {
		content, err := client.complete(ctx, requestBody)
		if err != nil {
			return err
		}
		var decoded inference.EvaluateSentenceResponse
		if err := inference.DecodeResponse(content, &decoded); err != nil {
			return err
		}
		result = decoded
		return nil
	}); err != nil {
		return inference.EvaluateSentenceResponse{}, err
	}
	return result, nil
}

// decodeCuratedArticles accepts either a bare JSON array or an object
// wrapping it under "articles".
func decodeCuratedArticles(content string) ([]inference.CuratedArticle, error) {
	var articles []inference.CuratedArticle
	if err := inference.DecodeResponse(content, &articles); err == nil {
		return articles, nil
	}
	var wrapped struct {
		Articles []inference.CuratedArticle `json:"articles"`
	}
	if err := inference.DecodeResponse(content, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Articles, nil
}

// decodeVocabCards accepts either a bare JSON array or an object
// wrapping it under "words".
func decodeVocabCards(content string) ([]inference.VocabCard, error) {
	var cards []inference.VocabCard
	if err := inference.DecodeResponse(content, &cards); err == nil {
		return cards, nil
	}
	var wrapped struct {
		Words []inference.VocabCard `json:"words"`
	}
	if err := inference.DecodeResponse(content, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Words, nil
}
