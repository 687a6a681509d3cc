// Package cli implements the interactive quiz sessions.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"

	"github.com/vocanews/vocanews/internal/inference"
	"github.com/vocanews/vocanews/internal/vocab"
)

var errEnd = errors.New("end of quiz")

//go:generate mockgen -source=sentence_quiz.go -destination=../mocks/cli/mock_session.go -package=mock_cli Session

type Session interface {
	Session(context context.Context) error
}

// SentenceQuizCLI runs the writing practice quiz: the user composes a
// sentence for a random active word and the AI grades it.
type SentenceQuizCLI struct {
	vocabRepo       vocab.VocabRepository
	inferenceClient inference.Client
	stdinReader     *bufio.Reader
	stdoutWriter    io.Writer
	bold            *color.Color
	italic          *color.Color
}

func NewSentenceQuizCLI(vocabRepo vocab.VocabRepository, inferenceClient inference.Client) *SentenceQuizCLI {
	return &SentenceQuizCLI{
		vocabRepo:       vocabRepo,
		inferenceClient: inferenceClient,
		stdinReader:     bufio.NewReader(os.Stdin),
		stdoutWriter:    os.Stdout,
		bold:            color.New(color.Bold),
		italic:          color.New(color.Italic),
	}
}

func (cli *SentenceQuizCLI) Run(ctx context.Context, session Session) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	errCh := make(chan error)
	go func() {
		defer close(errCh)

	LOOP:
		for {
			select {
			case <-ctx.Done():
				break LOOP
			default:
			}

			if err := session.Session(ctx); err != nil {
				if errors.Is(err, errEnd) {
					break
				}
				errCh <- err
				break
			}
		}
	}()
	select {
	case <-ctx.Done():
		fmt.Println("Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

// Session runs one round of the sentence quiz.
func (cli *SentenceQuizCLI) Session(ctx context.Context) error {
	word, err := cli.vocabRepo.RandomQuizWord(ctx)
	if err != nil {
		return fmt.Errorf("vocabRepo.RandomQuizWord > %w", err)
	}
	if word == nil {
		fmt.Fprintln(cli.stdoutWriter, "No active words to practice. Add words first.")
		return errEnd
	}

	fmt.Fprintf(cli.stdoutWriter, "\nWord: %s\n", cli.bold.Sprint(word.Word))
	fmt.Fprintf(cli.stdoutWriter, "Meaning: %s\n", word.Meaning)

	fmt.Fprint(cli.stdoutWriter, "Write a sentence using this word (empty to skip, 'quit' to stop): ")
	line, err := cli.stdinReader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return errEnd
		}
		return fmt.Errorf("stdinReader.ReadString > %w", err)
	}
	sentence := strings.TrimSpace(line)
	switch sentence {
	case "":
		return nil
	case "quit", "q", "exit":
		return errEnd
	}

	evaluation, err := cli.inferenceClient.EvaluateSentence(ctx, inference.EvaluateSentenceRequest{
		Word:     word.Word,
		Meaning:  word.Meaning,
		Sentence: sentence,
	})
	if err != nil {
		return fmt.Errorf("inferenceClient.EvaluateSentence > %w", err)
	}

	if evaluation.Correct {
		fmt.Fprintf(cli.stdoutWriter, "%s %s\n", cli.bold.Sprint("Correct!"), evaluation.Feedback)
	} else {
		fmt.Fprintf(cli.stdoutWriter, "%s %s\n", cli.bold.Sprint("Not quite."), evaluation.Feedback)
		if evaluation.Corrected != "" {
			fmt.Fprintf(cli.stdoutWriter, "Suggested: %s\n", cli.italic.Sprint(evaluation.Corrected))
		}
	}

	if err := cli.vocabRepo.LogQuizResult(ctx, word.ID, evaluation.Correct); err != nil {
		return fmt.Errorf("vocabRepo.LogQuizResult > %w", err)
	}
	return nil
}
