package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/gigamasta/diabetes-manager/internal/bot/keyboards"
	"github.com/gigamasta/diabetes-manager/internal/bot/menus"
	"github.com/gigamasta/diabetes-manager/internal/bot/state"
	"github.com/gigamasta/diabetes-manager/internal/domain"
	apperrors "github.com/gigamasta/diabetes-manager/internal/errors"
	"github.com/gigamasta/diabetes-manager/internal/guide"
	"github.com/gigamasta/diabetes-manager/internal/logger"
	"github.com/gigamasta/diabetes-manager/internal/services"
)

// CallbackHandler handles inline keyboard button presses.
type CallbackHandler struct {
	api          *tgbotapi.BotAPI
	deps         Dependencies
	stateManager state.StateManager
}

// NewCallbackHandler creates a new callback handler.
func NewCallbackHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *CallbackHandler {
	return &CallbackHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a callback query.
func (h *CallbackHandler) Handle(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	// Answer immediately to remove the loading state.
	if _, err := h.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		logger.Warn("Failed to answer callback query", "error", err)
	}

	userID := query.From.ID
	chatID := query.Message.Chat.ID
	data := query.Data

	action, arg := data, ""
	if idx := strings.Index(data, ":"); idx >= 0 {
		action, arg = data[:idx], data[idx+1:]
	}

	switch action {
	case "main_menu":
		h.stateManager.SetUserState(userID, state.None)
		return menus.SendMainMenu(h.api, chatID)

	case "menu_calculator":
		h.stateManager.SetUserState(userID, state.None)
		return renderCalculator(ctx, h.api, h.deps, chatID, userID)
	case "calc_add_product":
		return h.handleAddProductPick(ctx, chatID, userID)
	case "pick":
		h.deps.Meal.AddEntry(userID, arg, services.DefaultQuantity)
		return renderCalculator(ctx, h.api, h.deps, chatID, userID)
	case "meal_inc":
		return h.handleMealAdjust(ctx, chatID, userID, arg, 10)
	case "meal_dec":
		return h.handleMealAdjust(ctx, chatID, userID, arg, -10)
	case "meal_rm":
		return h.handleMealRemove(ctx, chatID, userID, arg)
	case "meal_qty":
		index, err := strconv.Atoi(arg)
		if err != nil {
			return sendError(h.api, chatID)
		}
		h.stateManager.SetTempData(userID, "entry_index", float64(index))
		h.stateManager.SetUserState(userID, state.WaitingForQuantity)
		return sendText(h.api, chatID, "Enter the new quantity (in the product's unit):")
	case "calc_clear":
		h.deps.Meal.Clear(userID)
		return renderCalculator(ctx, h.api, h.deps, chatID, userID)
	case "calc_glucose":
		h.stateManager.SetUserState(userID, state.WaitingForGlucose)
		return sendText(h.api, chatID, "Enter the current glucose reading in mg/dL:")
	case "calc_history":
		calcs, err := h.deps.History.List(ctx, userID)
		if err != nil {
			return sendError(h.api, chatID)
		}
		return menus.SendHistory(h.api, chatID, calcs)
	case "ai_estimate":
		if h.deps.AI == nil {
			return sendText(h.api, chatID, "AI estimation is not configured.")
		}
		h.stateManager.SetUserState(userID, state.WaitingForMealDesc)
		return sendText(h.api, chatID, "Describe the meal (e.g. \"two slices of toast with jam and a glass of apple juice\"):")

	case "menu_products":
		h.stateManager.SetUserState(userID, state.None)
		return renderProducts(ctx, h.api, h.deps, chatID, userID, domain.ProductFilter{}, h.currentSort(userID))
	case "prod_sort":
		h.stateManager.SetTempData(userID, "product_sort", arg)
		return renderProducts(ctx, h.api, h.deps, chatID, userID, domain.ProductFilter{}, domain.ProductSort(arg))
	case "prod_search":
		h.stateManager.SetUserState(userID, state.WaitingForProductSearch)
		return sendText(h.api, chatID, "Enter part of a product name:")
	case "prod_add":
		h.stateManager.ClearTempData(userID)
		h.stateManager.SetUserState(userID, state.WaitingForProductName)
		return sendText(h.api, chatID, "Enter the product name:")
	case "prod_edit":
		h.stateManager.SetTempData(userID, "edit_id", arg)
		h.stateManager.SetUserState(userID, state.WaitingForProductName)
		return sendText(h.api, chatID, "Enter the new product name:")
	case "prod_del":
		return h.handleProductDelete(ctx, chatID, userID, arg)

	case "scan_start":
		h.stateManager.SetUserState(userID, state.WaitingForBarcode)
		return sendText(h.api, chatID, "Type the barcode digits (EAN) printed on the package:")
	case "scan_add":
		return h.handleScanAdd(ctx, chatID, userID)

	case "menu_guide":
		return menus.SendGuideMenu(h.api, chatID)
	case "guide":
		section, ok := guide.Get(arg)
		if !ok {
			return sendError(h.api, chatID)
		}
		msg := tgbotapi.NewMessage(chatID, section.Body)
		msg.ParseMode = "Markdown"
		msg.ReplyMarkup = keyboards.GuideMenu()
		_, err := h.api.Send(msg)
		return err

	case "menu_settings":
		h.stateManager.SetUserState(userID, state.None)
		return renderSettings(ctx, h.api, h.deps, chatID, userID)
	case "set_target":
		h.stateManager.SetUserState(userID, state.WaitingForTargetGlucose)
		return sendText(h.api, chatID, "Enter the target glucose in mg/dL:")
	case "set_icr":
		h.stateManager.SetUserState(userID, state.WaitingForICR)
		return sendText(h.api, chatID, "Enter the ICR (grams of carbohydrate covered by 1 unit of insulin):")
	case "set_isf":
		h.stateManager.SetUserState(userID, state.WaitingForISF)
		return sendText(h.api, chatID, "Enter the ISF (mg/dL glucose drop per 1 unit of insulin):")
	case "set_duration":
		h.stateManager.SetUserState(userID, state.WaitingForInsulinDuration)
		return sendText(h.api, chatID, "Enter the insulin action duration in minutes:")

	default:
		logger.Warn("Unknown callback action", "action", action, "user_id", userID)
		return nil
	}
}

func (h *CallbackHandler) currentSort(userID int64) domain.ProductSort {
	if value, ok := h.stateManager.GetTempData(userID, "product_sort"); ok {
		if s, ok := value.(string); ok {
			return domain.ProductSort(s)
		}
	}
	return domain.SortCreatedDesc
}

func (h *CallbackHandler) handleAddProductPick(ctx context.Context, chatID, userID int64) error {
	products, err := h.deps.Catalog.List(ctx, userID, domain.ProductFilter{}, domain.SortNameAsc)
	if err != nil {
		return sendError(h.api, chatID)
	}
	if len(products) == 0 {
		return sendText(h.api, chatID, "The catalog is empty. Add a product first.")
	}
	msg := tgbotapi.NewMessage(chatID, "Pick a product to add to the meal:")
	msg.ReplyMarkup = keyboards.ProductPickList(products)
	_, err = h.api.Send(msg)
	return err
}

func (h *CallbackHandler) handleMealAdjust(ctx context.Context, chatID, userID int64, arg string, delta float64) error {
	index, err := strconv.Atoi(arg)
	if err != nil {
		return sendError(h.api, chatID)
	}
	if err := h.deps.Meal.AdjustQuantity(userID, index, delta); err != nil {
		if apperrors.IsNotFound(err) {
			return renderCalculator(ctx, h.api, h.deps, chatID, userID)
		}
		return sendError(h.api, chatID)
	}
	return renderCalculator(ctx, h.api, h.deps, chatID, userID)
}

func (h *CallbackHandler) handleMealRemove(ctx context.Context, chatID, userID int64, arg string) error {
	index, err := strconv.Atoi(arg)
	if err != nil {
		return sendError(h.api, chatID)
	}
	if err := h.deps.Meal.RemoveEntry(userID, index); err != nil && !apperrors.IsNotFound(err) {
		return sendError(h.api, chatID)
	}
	return renderCalculator(ctx, h.api, h.deps, chatID, userID)
}

func (h *CallbackHandler) handleProductDelete(ctx context.Context, chatID, userID int64, id string) error {
	if err := h.deps.Catalog.RemoveProduct(ctx, userID, id); err != nil {
		if !apperrors.IsNotFound(err) {
			return sendError(h.api, chatID)
		}
		// already gone, just re-render
	}
	return renderProducts(ctx, h.api, h.deps, chatID, userID, domain.ProductFilter{}, h.currentSort(userID))
}

func (h *CallbackHandler) handleScanAdd(ctx context.Context, chatID, userID int64) error {
	raw, ok := h.stateManager.GetTempData(userID, "scanned")
	if !ok {
		return sendText(h.api, chatID, "Nothing scanned yet. Use \"Scan barcode\" first.")
	}
	encoded, ok := raw.(string)
	if !ok {
		return sendError(h.api, chatID)
	}

	var rec domain.NutritionRecord
	if err := json.Unmarshal([]byte(encoded), &rec); err != nil {
		return sendError(h.api, chatID)
	}

	product, err := h.deps.Catalog.AddFromNutritionRecord(ctx, userID, rec)
	if err != nil {
		logger.Error("Failed to add scanned product", "error", err, "user_id", userID)
		return sendError(h.api, chatID)
	}
	h.stateManager.ClearTempData(userID)

	if err := sendText(h.api, chatID, fmt.Sprintf("✅ %s added to the catalog.", product.Name)); err != nil {
		return err
	}
	return renderProducts(ctx, h.api, h.deps, chatID, userID, domain.ProductFilter{}, domain.SortCreatedDesc)
}
