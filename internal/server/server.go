// Package server serves the Telegram webhook and health endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vocanews/vocanews/internal/telegram"
)

// Briefing triggers the vocabulary card workflow.
type Briefing interface {
	SendVocabCards(ctx context.Context) (int, error)
}

// Bot acknowledges inline button presses.
type Bot interface {
	AnswerCallbackQuery(ctx context.Context, callbackQueryID, text string) error
}

type Server struct {
	engine   *gin.Engine
	token    string
	briefing Briefing
	bot      Bot
}

// New builds the HTTP routes. The bot token doubles as the webhook path
// secret, matching how the webhook URL is registered.
func New(token string, briefing Briefing, bot Bot) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine:   engine,
		token:    token,
		briefing: briefing,
		bot:      bot,
	}
	engine.GET("/healthz", s.handleHealth)
	engine.POST("/webhook/:token", s.handleWebhook)
	return s
}

// Handler exposes the routes for testing.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the context is canceled.
func (s *Server) Run(ctx context.Context, address string) error {
	httpServer := &http.Server{
		Addr:              address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	slog.Default().Info("webhook server listening", "address", address)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("httpServer.ListenAndServe > %w", err)
	}
	return nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleWebhook(c *gin.Context) {
	if c.Param("token") != s.token {
		c.JSON(http.StatusForbidden, gin.H{"error": "invalid token"})
		return
	}

	var update telegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update"})
		return
	}

	if update.CallbackQuery != nil && update.CallbackQuery.Data == telegram.CallbackDataVocabRefresh {
		if err := s.bot.AnswerCallbackQuery(c.Request.Context(), update.CallbackQuery.ID, "Sending new cards"); err != nil {
			slog.Default().Error("failed to answer callback query", "error", err)
		}
		if _, err := s.briefing.SendVocabCards(c.Request.Context()); err != nil {
			slog.Default().Error("failed to send vocab cards", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send cards"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
