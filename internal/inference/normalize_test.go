package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResponse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []CuratedArticle
		wantErr bool
	}{
		{
			name:    "plain JSON array",
			content: `[{"title": "A", "summary": "S", "url": "https://example.com/a"}]`,
			want:    []CuratedArticle{{Title: "A", Summary: "S", URL: "https://example.com/a"}},
		},
		{
			name: "json code fence",
			content: "Here you go:\n```json\n" +
				`[{"title": "A", "summary": "S", "url": "https://example.com/a"}]` +
				"\n```\nLet me know if you need more.",
			want: []CuratedArticle{{Title: "A", Summary: "S", URL: "https://example.com/a"}},
		},
		{
			name: "bare code fence without language tag",
			content: "```\n" +
				`[{"title": "A", "summary": "S", "url": "https://example.com/a"}]` +
				"\n```",
			want: []CuratedArticle{{Title: "A", Summary: "S", URL: "https://example.com/a"}},
		},
		{
			name:    "array embedded in prose",
			content: `Sure! The result is [{"title": "A", "summary": "S", "url": "https://example.com/a"}] as requested.`,
			want:    []CuratedArticle{{Title: "A", Summary: "S", URL: "https://example.com/a"}},
		},
		{
			name:    "brackets inside strings are ignored",
			content: `[{"title": "A [draft]", "summary": "uses ] inside", "url": "https://example.com/a"}]`,
			want:    []CuratedArticle{{Title: "A [draft]", Summary: "uses ] inside", URL: "https://example.com/a"}},
		},
		{
			name:    "no JSON at all",
			content: "I could not produce a result.",
			wantErr: true,
		},
		{
			name:    "truncated JSON",
			content: `[{"title": "A", "summary":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []CuratedArticle
			err := DecodeResponse(tt.content, &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeResponse_Object(t *testing.T) {
	var got EvaluateSentenceResponse
	content := "```json\n" +
		`{"correct": false, "feedback": "Wrong tense.", "corrected": "She weathered the storm."}` +
		"\n```"
	require.NoError(t, DecodeResponse(content, &got))
	assert.False(t, got.Correct)
	assert.Equal(t, "Wrong tense.", got.Feedback)
	assert.Equal(t, "She weathered the storm.", got.Corrected)
}
