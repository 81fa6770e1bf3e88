package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/gigamasta/diabetes-manager/internal/bot/menus"
	"github.com/gigamasta/diabetes-manager/internal/bot/state"
	"github.com/gigamasta/diabetes-manager/internal/logger"
)

// CommandHandler handles bot commands.
type CommandHandler struct {
	api          *tgbotapi.BotAPI
	deps         Dependencies
	stateManager state.StateManager
}

// NewCommandHandler creates a new command handler.
func NewCommandHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *CommandHandler {
	return &CommandHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a command message.
func (h *CommandHandler) Handle(ctx context.Context, message *tgbotapi.Message) error {
	userID := message.From.ID
	logger.Infof("Handling command %s from user %d", message.Command(), userID)

	switch message.Command() {
	case "start":
		h.stateManager.SetUserState(userID, state.None)
		h.stateManager.ClearTempData(userID)
		if h.deps.SeedSamples {
			if err := h.deps.Catalog.SeedDefaults(ctx, userID); err != nil {
				logger.Error("Failed to seed sample catalog", "error", err, "user_id", userID)
			}
		}
		return menus.SendMainMenu(h.api, message.Chat.ID)
	case "menu":
		h.stateManager.SetUserState(userID, state.None)
		return menus.SendMainMenu(h.api, message.Chat.ID)
	case "cancel":
		h.stateManager.SetUserState(userID, state.None)
		h.stateManager.ClearTempData(userID)
		return sendText(h.api, message.Chat.ID, "Cancelled. Use /menu to start over.")
	case "help":
		return h.handleHelp(message.Chat.ID)
	default:
		return sendText(h.api, message.Chat.ID, "Unknown command. Use /help to see available commands.")
	}
}

func (h *CommandHandler) handleHelp(chatID int64) error {
	text := `Available commands:
/start - Show the main menu
/menu - Show the main menu
/cancel - Abort the current input
/help - Show this message

How a calculation works:
1. Open the bolus calculator and add products to the meal
2. Press "Calculate bolus" and enter the current glucose reading in mg/dL
3. Optionally add manual carbohydrate exchange units (1 WW = 10g)
4. The bot shows the meal dose, the correction dose and the total, and records it in the history`

	return sendText(h.api, chatID, text)
}
