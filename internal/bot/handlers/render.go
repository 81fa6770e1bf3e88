package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/gigamasta/diabetes-manager/internal/bot/menus"
	"github.com/gigamasta/diabetes-manager/internal/domain"
)

// renderCalculator shows the calculator with the user's current meal.
func renderCalculator(ctx context.Context, api *tgbotapi.BotAPI, deps Dependencies, chatID, userID int64) error {
	lines, err := deps.Meal.ResolvedEntries(ctx, userID)
	if err != nil {
		return sendError(api, chatID)
	}
	var total float64
	for _, line := range lines {
		total += line.Carbs
	}
	return menus.SendCalculatorMenu(api, chatID, lines, total, deps.AI != nil)
}

// renderProducts shows the catalog using the given filter and sort.
func renderProducts(ctx context.Context, api *tgbotapi.BotAPI, deps Dependencies, chatID, userID int64, filter domain.ProductFilter, sortBy domain.ProductSort) error {
	products, err := deps.Catalog.List(ctx, userID, filter, sortBy)
	if err != nil {
		return sendError(api, chatID)
	}
	return menus.SendProductsMenu(api, chatID, products)
}

// renderSettings shows the current dosing parameters.
func renderSettings(ctx context.Context, api *tgbotapi.BotAPI, deps Dependencies, chatID, userID int64) error {
	params, err := deps.Dosing.Get(ctx, userID)
	if err != nil {
		return sendError(api, chatID)
	}
	return menus.SendSettingsMenu(api, chatID, params)
}

func sendText(api *tgbotapi.BotAPI, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := api.Send(msg)
	return err
}

func sendError(api *tgbotapi.BotAPI, chatID int64) error {
	return sendText(api, chatID, "Something went wrong. Please try again.")
}
