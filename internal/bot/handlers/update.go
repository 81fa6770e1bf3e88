package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/gigamasta/diabetes-manager/internal/bot/state"
	"github.com/gigamasta/diabetes-manager/internal/logger"
)

// UpdateRouter dispatches incoming updates to the right handler.
type UpdateRouter struct {
	commands  *CommandHandler
	callbacks *CallbackHandler
	texts     *TextHandler
}

// NewUpdateRouter wires the handlers for a bot instance.
func NewUpdateRouter(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *UpdateRouter {
	return &UpdateRouter{
		commands:  NewCommandHandler(api, deps, stateManager),
		callbacks: NewCallbackHandler(api, deps, stateManager),
		texts:     NewTextHandler(api, deps, stateManager),
	}
}

// Route handles one update. Errors are logged, not returned: a failed
// update must not take down the polling loop.
func (r *UpdateRouter) Route(ctx context.Context, update tgbotapi.Update) {
	var err error
	switch {
	case update.CallbackQuery != nil:
		err = r.callbacks.Handle(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		err = r.commands.Handle(ctx, update.Message)
	case update.Message != nil && update.Message.Text != "":
		err = r.texts.Handle(ctx, update.Message)
	default:
		return
	}
	if err != nil {
		logger.Error("Update handling failed", "error", err, "update_id", update.UpdateID)
	}
}
