package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vocanews/vocanews/internal/news"
)

func newNewsCommand() *cobra.Command {
	command := cobra.Command{
		Use:   "news",
		Short: "Fetch, browse and deliver curated news articles",
	}
	command.AddCommand(
		newNewsFetchCommand(),
		newNewsSendCommand(),
		newNewsListCommand(),
		newNewsSaveCommand(),
		newNewsNoteCommand(),
	)
	return &command
}

func newNewsFetchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Pull the configured feeds and store AI curated articles",
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

			service, err := newBriefingService(cfg, db, inferenceClient, nil)
			if err != nil {
				return err
			}
			count, err := service.FetchNews(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Stored %d new articles\n", count)
			return nil
		},
	}
}

func newNewsSendCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "send",
		Short: "Deliver the unsent articles to Telegram",
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

			telegramClient, err := newTelegramClient(cfg)
			if err != nil {
				return err
			}
			defer telegramClient.Close()

			// Delivering already-curated rows needs no AI provider.
			service, err := newBriefingService(cfg, db, nil, telegramClient)
			if err != nil {
				return err
			}
			count, err := service.SendNews(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Sent %d articles\n", count)
			return nil
		},
	}
}

func newNewsListCommand() *cobra.Command {
	var category string
	var date string
	var limit int
	var savedOnly bool

	command := cobra.Command{
		Use:   "list",
		Short: "List stored articles",
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

			repository := news.NewDBNewsRepository(db)
			var articles []news.Article
			if savedOnly {
				articles, err = repository.FindSaved(cmd.Context())
			} else {
				articles, err = repository.Find(cmd.Context(), news.Filter{
					Category: category,
					Date:     date,
					Limit:    limit,
				})
			}
			if err != nil {
				return err
			}

			if len(articles) == 0 {
				fmt.Println("No articles found")
				return nil
			}
			for _, article := range articles {
				marker := " "
				if article.IsSaved {
					marker = "*"
				}
				fmt.Printf("%s %4d  %s  [%s] %s\n", marker, article.ID, article.Date, article.Category, article.Title)
				if article.UserNote != "" {
					fmt.Printf("         note: %s\n", article.UserNote)
				}
			}
			return nil
		},
	}
	command.Flags().StringVar(&category, "category", "", "filter by category")
	command.Flags().StringVar(&date, "date", "", "filter by date (YYYY-MM-DD)")
	command.Flags().IntVar(&limit, "limit", 0, "maximum number of articles")
	command.Flags().BoolVar(&savedOnly, "saved", false, "list only saved articles")
	return &command
}

func newNewsSaveCommand() *cobra.Command {
	var remove bool

	command := cobra.Command{
		Use:   "save [article id]",
		Short: "Save an article for later, or unsave it with --remove",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid article id %q: %w", args[0], err)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := news.NewDBNewsRepository(db).SetSaved(cmd.Context(), id, !remove); err != nil {
				return err
			}
			if remove {
				fmt.Printf("Unsaved article %d\n", id)
			} else {
				fmt.Printf("Saved article %d\n", id)
			}
			return nil
		},
	}
	command.Flags().BoolVar(&remove, "remove", false, "remove the article from saved")
	return &command
}

func newNewsNoteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "note [article id] [note]",
		Short: "Attach a note to an article",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid article id %q: %w", args[0], err)
			}
			note := strings.Join(args[1:], " ")

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := news.NewDBNewsRepository(db).UpdateNote(cmd.Context(), id, note); err != nil {
				return err
			}
			fmt.Printf("Updated note on article %d\n", id)
			return nil
		},
	}
}
