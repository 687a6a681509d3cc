package inference

import (
	"context"
	"fmt"
	"log/slog"
)

// Router tries each configured provider in order until one succeeds.
type Router struct {
	clients []Client
}

func NewRouter(clients ...Client) *Router {
	return &Router{clients: clients}
}

// Name returns the provider name.
func (r *Router) Name() string {
	return "router"
}

// CurateNews implements the Client interface
func (r *Router) CurateNews(ctx context.Context, params CurateNewsRequest) (CurateNewsResponse, error) {
	var result CurateNewsResponse
	err := r.fallback(ctx, "CurateNews", func(client Client) error {
		response, err := client.CurateNews(ctx, params)
		if err != nil {
			return err
		}
		result = response
		return nil
	})
	return result, err
}

// GenerateVocabCards implements the Client interface
func (r *Router) GenerateVocabCards(ctx context.Context, params GenerateVocabCardsRequest) (GenerateVocabCardsResponse, error) {
	var result GenerateVocabCardsResponse
	err := r.fallback(ctx, "GenerateVocabCards", func(client Client) error {
		response, err := client.GenerateVocabCards(ctx, params)
		if err != nil {
			return err
		}
		result = response
		return nil
	})
	return result, err
}

// EvaluateSentence implements the Client interface
func (r *Router) EvaluateSentence(ctx context.Context, params EvaluateSentenceRequest) (EvaluateSentenceResponse, error) {
	var result EvaluateSentenceResponse
	err := r.fallback(ctx, "EvaluateSentence", func(client Client) error {
		response, err := client.EvaluateSentence(ctx, params)
		if err != nil {
			return err
		}
		result = response
		return nil
	})
	return result, err
}

func (r *Router) fallback(ctx context.Context, operation string, call func(client Client) error) error {
	if len(r.clients) == 0 {
		return fmt.Errorf("no inference providers configured")
	}

	var lastErr error
	for _, client := range r.clients {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err := call(client)
		if err == nil {
			return nil
		}
		lastErr = err
		slog.Default().Warn("inference provider failed, falling back",
			"operation", operation,
			"provider", client.Name(),
			"error", err)
	}
	return fmt.Errorf("all inference providers failed > %w", lastErr)
}
