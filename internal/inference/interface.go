package inference

import (
	"context"
)

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_client.go -package=mock_inference

// Client interface defines the methods for AI inference operations
type Client interface {
	Name() string
	CurateNews(ctx context.Context, params CurateNewsRequest) (CurateNewsResponse, error)
	GenerateVocabCards(ctx context.Context, params GenerateVocabCardsRequest) (GenerateVocabCardsResponse, error)
	EvaluateSentence(ctx context.Context, params EvaluateSentenceRequest) (EvaluateSentenceResponse, error)
}

// RawArticle is a feed item before curation.
type RawArticle struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	URL     string `json:"url"`
}

// CurateNewsRequest holds feed items of one category for selection and summarization.
type CurateNewsRequest struct {
	Category string       `json:"category"`
	Limit    int          `json:"limit"`
	Articles []RawArticle `json:"articles"`
}

// CuratedArticle is a selected article with a rewritten summary.
type CuratedArticle struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	URL     string `json:"url"`
}

type CurateNewsResponse struct {
	Articles []CuratedArticle
}

// GenerateVocabCardsRequest asks for vocabulary extracted from a text.
type GenerateVocabCardsRequest struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

// VocabCard is a single extracted vocabulary entry.
type VocabCard struct {
	Word     string `json:"word"`
	Meaning  string `json:"meaning"`
	Grammar  string `json:"grammar"`
	Sentence string `json:"sentence"`
	Example  string `json:"example"`
}

type GenerateVocabCardsResponse struct {
	Cards []VocabCard
}

// EvaluateSentenceRequest asks whether a user sentence uses a word correctly.
type EvaluateSentenceRequest struct {
	Word     string `json:"word"`
	Meaning  string `json:"meaning"`
	Sentence string `json:"sentence"`
}

// EvaluateSentenceResponse is the judgement for a user sentence.
type EvaluateSentenceResponse struct {
	Correct   bool   `json:"correct"`
	Feedback  string `json:"feedback"`
	Corrected string `json:"corrected"`
}

const (
	DefaultMaxRetryAttempts = 3
)
