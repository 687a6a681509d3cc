package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vocanews/vocanews/internal/scheduler"
)

func newScheduleCommand() *cobra.Command {
	command := cobra.Command{
		Use:   "schedule",
		Short: "Run the recurring fetch and delivery jobs",
	}
	command.AddCommand(newScheduleRunCommand())
	return &command
}

func newScheduleRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the scheduler until interrupted",
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

			telegramClient, err := newTelegramClient(cfg)
			if err != nil {
				return err
			}
			defer telegramClient.Close()

			service, err := newBriefingService(cfg, db, inferenceClient, telegramClient)
			if err != nil {
				return err
			}
			location, err := cfg.Schedule.Location()
			if err != nil {
				return err
			}
			jobScheduler, err := scheduler.New(service, cfg.Schedule, location)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			jobScheduler.Run(ctx)
			return nil
		},
	}
}
