package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vocanews/vocanews/internal/server"
)

func newWebhookCommand() *cobra.Command {
	command := cobra.Command{
		Use:   "webhook",
		Short: "Serve and manage the Telegram webhook",
	}
	command.AddCommand(
		newWebhookServeCommand(),
		newWebhookSetCommand(),
		newWebhookDeleteCommand(),
	)
	return &command
}

func newWebhookServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the webhook endpoint until interrupted",
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

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			webhookServer := server.New(cfg.Telegram.Token, service, telegramClient)
			return webhookServer.Run(ctx, cfg.Telegram.ListenAddress)
		},
	}
}

func newWebhookSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set",
		Short: "Register the webhook URL with Telegram",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Telegram.WebhookURL == "" {
				return fmt.Errorf("WEBHOOK_URL environment variable is required")
			}

			telegramClient, err := newTelegramClient(cfg)
			if err != nil {
				return err
			}
			defer telegramClient.Close()

			url := strings.TrimSuffix(cfg.Telegram.WebhookURL, "/") + "/webhook/" + cfg.Telegram.Token
			if err := telegramClient.SetWebhook(cmd.Context(), url); err != nil {
				return err
			}
			fmt.Println("Webhook registered")
			return nil
		},
	}
}

func newWebhookDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Unregister the webhook from Telegram",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			telegramClient, err := newTelegramClient(cfg)
			if err != nil {
				return err
			}
			defer telegramClient.Close()

			if err := telegramClient.DeleteWebhook(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Webhook deleted")
			return nil
		},
	}
}
