package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vocanews/vocanews/internal/pdf"
	"github.com/vocanews/vocanews/internal/vocab"
)

func newVocabCommand() *cobra.Command {
	command := cobra.Command{
		Use:   "vocab",
		Short: "Manage wordbooks and vocabulary cards",
	}
	command.AddCommand(
		newVocabAddCommand(),
		newVocabListCommand(),
		newVocabBooksCommand(),
		newVocabExportCommand(),
		newVocabSendCommand(),
		newVocabMemorizeCommand(),
		newVocabDeleteCommand(),
		newVocabRenameBookCommand(),
		newVocabDeleteBookCommand(),
	)
	return &command
}

func newVocabAddCommand() *cobra.Command {
	var book string
	var count int

	command := cobra.Command{
		Use:   "add [text]",
		Short: "Extract vocabulary cards from a text with AI and store them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")

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
			inserted, err := service.ExtractVocab(cmd.Context(), book, text, count)
			if err != nil {
				return err
			}
			fmt.Printf("Added %d words to book %q\n", inserted, book)
			return nil
		},
	}
	command.Flags().StringVar(&book, "book", "news", "wordbook to add the words to")
	command.Flags().IntVar(&count, "count", 5, "number of words to extract")
	return &command
}

func newVocabListCommand() *cobra.Command {
	var book string
	var status string
	var search string

	command := cobra.Command{
		Use:   "list",
		Short: "List stored words",
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

			words, err := vocab.NewDBVocabRepository(db).Find(cmd.Context(), vocab.Filter{
				Book:   book,
				Status: status,
				Search: search,
			})
			if err != nil {
				return err
			}

			if len(words) == 0 {
				fmt.Println("No words found")
				return nil
			}
			for _, word := range words {
				fmt.Printf("%4d  [%s] %s (%s): %s\n", word.ID, word.Book, word.Word, word.Status, word.Meaning)
			}
			return nil
		},
	}
	command.Flags().StringVar(&book, "book", "", "filter by wordbook")
	command.Flags().StringVar(&status, "status", "", "filter by status (active or memorized)")
	command.Flags().StringVar(&search, "search", "", "search in word and meaning")
	return &command
}

func newVocabBooksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "books",
		Short: "List the wordbook names",
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

			books, err := vocab.NewDBVocabRepository(db).Books(cmd.Context())
			if err != nil {
				return err
			}
			for _, book := range books {
				fmt.Println(book)
			}
			return nil
		},
	}
}

func newVocabExportCommand() *cobra.Command {
	var outputDir string

	command := cobra.Command{
		Use:   "export [book]",
		Short: "Export a wordbook as a PDF file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book := args[0]

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			words, err := vocab.NewDBVocabRepository(db).Find(cmd.Context(), vocab.Filter{Book: book})
			if err != nil {
				return err
			}

			pdfPath, err := pdf.ExportWordbook(book, words, outputDir)
			if err != nil {
				return err
			}
			fmt.Printf("Exported %d words to %s\n", len(words), pdfPath)
			return nil
		},
	}
	command.Flags().StringVar(&outputDir, "output", ".", "directory to write the PDF to")
	return &command
}

func newVocabSendCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "send",
		Short: "Deliver random vocabulary cards to Telegram",
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

			// Sending stored words needs no AI provider.
			service, err := newBriefingService(cfg, db, nil, telegramClient)
			if err != nil {
				return err
			}
			count, err := service.SendVocabCards(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Sent %d words\n", count)
			return nil
		},
	}
}

func newVocabMemorizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "memorize [word ids]",
		Short: "Mark words as memorized",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseWordIDs(args)
			if err != nil {
				return err
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

			if err := vocab.NewDBVocabRepository(db).UpdateStatusBulk(cmd.Context(), ids, vocab.StatusMemorized); err != nil {
				return err
			}
			fmt.Printf("Marked %d words as memorized\n", len(ids))
			return nil
		},
	}
}

func newVocabDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [word ids]",
		Short: "Delete words",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseWordIDs(args)
			if err != nil {
				return err
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

			if err := vocab.NewDBVocabRepository(db).DeleteBulk(cmd.Context(), ids); err != nil {
				return err
			}
			fmt.Printf("Deleted %d words\n", len(ids))
			return nil
		},
	}
}

func newVocabRenameBookCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename-book [from] [to]",
		Short: "Rename a wordbook",
		Args:  cobra.ExactArgs(2),
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

			if err := vocab.NewDBVocabRepository(db).RenameBook(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Renamed book %q to %q\n", args[0], args[1])
			return nil
		},
	}
}

func newVocabDeleteBookCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-book [book]",
		Short: "Delete a wordbook and all of its words",
		Args:  cobra.ExactArgs(1),
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

			if err := vocab.NewDBVocabRepository(db).DeleteBook(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted book %q\n", args[0])
			return nil
		},
	}
}

func parseWordIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid word id %q: %w", arg, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
