package inference

import (
	"encoding/json"
	"fmt"
)

// System prompts shared by every provider backend.
const (
	CurateNewsSystemPrompt = `You are a news curator for a busy reader.

You receive a category and a JSON array of feed items, each with "title", "summary" and "url".
Select the most newsworthy items, up to the requested limit, and rewrite each summary
in at most 3 short plain sentences a non-native English reader can follow.

Return ONLY a JSON array:
[{"title": "...", "summary": "...", "url": "..."}]

Keep each "url" exactly as given. No text outside the JSON.`

	VocabCardsSystemPrompt = `You are an English vocabulary coach.

From the given text, pick advanced words or idioms worth learning, up to the requested count.
For each one return:
- "word": the base form
- "meaning": a concise definition
- "grammar": part of speech and usage notes
- "sentence": the sentence from the text it appeared in, or an empty string
- "example": one new example sentence you write

Return ONLY a JSON array:
[{"word": "...", "meaning": "...", "grammar": "...", "sentence": "...", "example": "..."}]

No text outside the JSON.`

	EvaluateSentenceSystemPrompt = `You are an English writing tutor grading a practice sentence.

The user was asked to write a sentence using a given word with a given meaning.
Judge whether the sentence uses the word correctly and naturally.

Return ONLY a JSON object:
{"correct": true|false, "feedback": "<one or two sentences of feedback>", "corrected": "<a corrected version, or the original sentence if already correct>"}

No text outside the JSON.`
)

// CurateNewsUserPrompt renders the user message for news curation.
func CurateNewsUserPrompt(params CurateNewsRequest) (string, error) {
	articles, err := json.Marshal(params.Articles)
	if err != nil {
		return "", fmt.Errorf("json.Marshal(articles) > %w", err)
	}
	return fmt.Sprintf("Category: %s\nLimit: %d\nArticles: %s", params.Category, params.Limit, articles), nil
}

// VocabCardsUserPrompt renders the user message for vocabulary extraction.
func VocabCardsUserPrompt(params GenerateVocabCardsRequest) string {
	return fmt.Sprintf("Count: %d\nText:\n%s", params.Count, params.Text)
}

// EvaluateSentenceUserPrompt renders the user message for sentence evaluation.
func EvaluateSentenceUserPrompt(params EvaluateSentenceRequest) string {
	return fmt.Sprintf("Word: %s\nMeaning: %s\nUser's sentence: %s", params.Word, params.Meaning, params.Sentence)
}
