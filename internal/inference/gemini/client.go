// Package gemini provides an inference client for the Google Gemini API.
package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/vocanews/vocanews/internal/inference"
)

type Client struct {
	apiKey           string
	model            string
	maxRetryAttempts uint
}

func NewClient(apiKey, model string, retryAttempts uint) *Client {
	return &Client{
		apiKey:           apiKey,
		model:            model,
		maxRetryAttempts: retryAttempts,
	}
}

// Name returns the provider name configured for this client.
func (client *Client) Name() string {
	return "gemini"
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	if strings.Contains(errStr, "json.Unmarshal") || strings.Contains(errStr, "unexpected end of JSON input") {
		return true
	}
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}
	// Quota and server errors from the API surface as googleapi status codes.
	if strings.Contains(errStr, "429") || strings.Contains(errStr, "500") ||
		strings.Contains(errStr, "503") || strings.Contains(errStr, "RESOURCE_EXHAUSTED") {
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

// generate sends one prompt and returns the concatenated text parts of the answer.
func (client *Client) generate(ctx context.Context, prompt string) (string, error) {
	genaiClient, err := genai.NewClient(ctx, option.WithAPIKey(client.apiKey))
	if err != nil {
		return "", fmt.Errorf("genai.NewClient > %w", err)
	}
	defer genaiClient.Close()

	model := genaiClient.GenerativeModel(client.model)
	response, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("model.GenerateContent > %w", err)
	}
	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response candidates")
	}

	var builder strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			builder.WriteString(string(text))
		}
	}
	content := builder.String()
	if content == "" {
		return "", fmt.Errorf("empty response content")
	}
	slog.Default().Debug("gemini response", "model", client.model, "length", len(content))
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
	prompt := inference.CurateNewsSystemPrompt + "\n\n" + userPrompt

	var result inference.CurateNewsResponse
	if err := client.withRetry(ctx, func() error {
		content, err := client.generate(ctx, prompt)
		if err != nil {
			return err
		}
		var articles []inference.CuratedArticle
		if err := inference.DecodeResponse(content, &articles); err != nil {
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
	prompt := inference.VocabCardsSystemPrompt + "\n\n" + inference.VocabCardsUserPrompt(params)

	var result inference.GenerateVocabCardsResponse
	if err := client.withRetry(ctx, func() error {
		content, err := client.generate(ctx, prompt)
		if err != nil {
			return err
		}
		var cards []inference.VocabCard
		if err := inference.DecodeResponse(content, &cards); err != nil {
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
	prompt := inference.EvaluateSentenceSystemPrompt + "\n\n" + inference.EvaluateSentenceUserPrompt(params)

	var result inference.EvaluateSentenceResponse
	if err := client.withRetry(ctx, func() error {
		content, err := client.generate(ctx, prompt)
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
