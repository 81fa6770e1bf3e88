package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/gigamasta/diabetes-manager/internal/bot/handlers"
	"github.com/gigamasta/diabetes-manager/internal/bot/state"
	apperrors "github.com/gigamasta/diabetes-manager/internal/errors"
	"github.com/gigamasta/diabetes-manager/internal/logger"
)

// Bot runs the Telegram long-polling loop.
type Bot struct {
	api    *tgbotapi.BotAPI
	router *handlers.UpdateRouter
}

// NewBot authenticates against the Telegram API and wires the handlers.
func NewBot(token string, deps handlers.Dependencies, stateManager state.StateManager) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, apperrors.NewExternalAPIError(err, "telegram")
	}
	logger.Info("Authorized on Telegram", "username", api.Self.UserName)

	return &Bot{
		api:    api,
		router: handlers.NewUpdateRouter(api, deps, stateManager),
	}, nil
}

// Start polls for updates until the context is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := b.api.GetUpdatesChan(updateConfig)
	logger.Info("Bot started, listening for updates")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			logger.Info("Bot stopped")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.router.Route(ctx, update)
		}
	}
}
