// Package pdf exports wordbooks as PDF files.
package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mandolyte/mdtopdf"

	"github.com/vocanews/vocanews/internal/vocab"
)

// WordbookMarkdown renders a wordbook as a markdown document.
func WordbookMarkdown(book string, words []vocab.Word) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("# Wordbook: %s\n", book))
	builder.WriteString(fmt.Sprintf("\n%d words\n", len(words)))

	for _, word := range words {
		builder.WriteString(fmt.Sprintf("\n## %s\n\n", word.Word))
		builder.WriteString(fmt.Sprintf("- Meaning: %s\n", word.Meaning))
		if word.Grammar != "" {
			builder.WriteString(fmt.Sprintf("- Grammar: %s\n", word.Grammar))
		}
		if word.Sentence != "" {
			builder.WriteString(fmt.Sprintf("- Seen in: %s\n", word.Sentence))
		}
		if word.Example != "" {
			builder.WriteString(fmt.Sprintf("- Example: %s\n", word.Example))
		}
		builder.WriteString(fmt.Sprintf("- Status: %s\n", word.Status))
	}
	return builder.String()
}

// ExportWordbook writes the wordbook as markdown next to the generated PDF
// and returns the absolute PDF path.
func ExportWordbook(book string, words []vocab.Word, outputDir string) (string, error) {
	if len(words) == 0 {
		return "", fmt.Errorf("wordbook %q has no words", book)
	}

	markdownPath := filepath.Join(outputDir, book+".md")
	if err := os.WriteFile(markdownPath, []byte(WordbookMarkdown(book, words)), 0644); err != nil {
		return "", fmt.Errorf("os.WriteFile(%s) > %w", markdownPath, err)
	}

	return convertMarkdownToPDF(markdownPath)
}

// convertMarkdownToPDF converts a markdown file to a PDF in the same directory.
func convertMarkdownToPDF(markdownPath string) (string, error) {
	content, err := os.ReadFile(markdownPath)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s) > %w", markdownPath, err)
	}

	pdfPath := strings.TrimSuffix(markdownPath, ".md") + ".pdf"

	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process(content); err != nil {
		return "", fmt.Errorf("renderer.Process() > %w", err)
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return pdfPath, nil
	}

	return absPath, nil
}
