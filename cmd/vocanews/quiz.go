package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vocanews/vocanews/internal/cli"
	"github.com/vocanews/vocanews/internal/vocab"
)

func newQuizCommand() *cobra.Command {
	command := cobra.Command{
		Use:   "quiz",
		Short: "Practice vocabulary and review quiz statistics",
	}
	command.AddCommand(
		newQuizSentenceCommand(),
		newQuizStatsCommand(),
	)
	return &command
}

func newQuizSentenceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sentence",
		Short: "Write sentences for random words and get AI feedback",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			inferenceClient, cleanup, err := newInferenceClient(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			quizCLI := cli.NewSentenceQuizCLI(vocab.NewDBVocabRepository(db), inferenceClient)
			return quizCLI.Run(cmd.Context(), quizCLI)
		},
	}
}

func newQuizStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show quiz answer statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			stats, err := vocab.NewDBVocabRepository(db).Stats(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Total answers: %d (%d correct)\n", stats.Total, stats.TotalCorrect)
			fmt.Printf("Today:         %d (%d correct)\n", stats.Today, stats.TodayCorrect)
			fmt.Printf("Last 7 days:   %d (%d correct)\n", stats.Week, stats.WeekCorrect)
			fmt.Printf("Accuracy:      %.1f%%\n", stats.Accuracy)
			return nil
		},
	}
}
