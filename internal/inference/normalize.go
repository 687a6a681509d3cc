package inference

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeResponse parses a model response that should contain JSON, tolerating
// markdown code fences and surrounding prose.
func DecodeResponse(content string, v any) error {
	var lastErr error
	seen := map[string]bool{}
	for _, candidate := range []string{
		strings.TrimSpace(content),
		extractFenced(content),
		extractBalanced(content),
	} {
		if candidate == "" || seen[candidate] {
			continue
		}
		seen[candidate] = true
		if err := json.Unmarshal([]byte(candidate), v); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no JSON found")
	}
	return fmt.Errorf("json.Unmarshal(%s) > %w", content, lastErr)
}

// extractFenced returns the body of the first markdown code fence, or an empty string.
func extractFenced(content string) string {
	start := strings.Index(content, "```")
	if start == -1 {
		return ""
	}
	rest := content[start+3:]
	if newline := strings.Index(rest, "\n"); newline != -1 {
		// Skip a language tag like "json" on the fence line.
		rest = rest[newline+1:]
	}
	end := strings.Index(rest, "```")
	if end == -1 {
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(rest[:end])
}

// extractBalanced returns the first balanced JSON object or array in content,
// ignoring braces and brackets inside strings.
func extractBalanced(content string) string {
	var open, closing rune
	first := -1
	for i, ch := range content {
		if ch == '{' || ch == '[' {
			first = i
			open = ch
			closing = '}'
			if ch == '[' {
				closing = ']'
			}
			break
		}
	}
	if first == -1 {
		return ""
	}

	depth := 0
	inString := false
	escapeNext := false
	for i, ch := range content[first:] {
		if escapeNext {
			escapeNext = false
			continue
		}
		if ch == '\\' && inString {
			escapeNext = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		switch ch {
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return content[first : first+i+1]
			}
		}
	}
	return ""
}
