package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/gigamasta/diabetes-manager/internal/bot/keyboards"
	"github.com/gigamasta/diabetes-manager/internal/bot/state"
	"github.com/gigamasta/diabetes-manager/internal/domain"
	apperrors "github.com/gigamasta/diabetes-manager/internal/errors"
	"github.com/gigamasta/diabetes-manager/internal/logger"
	"github.com/gigamasta/diabetes-manager/internal/utils"
)

// TextHandler handles free-form text messages driven by conversation state.
type TextHandler struct {
	api          *tgbotapi.BotAPI
	deps         Dependencies
	stateManager state.StateManager
}

// NewTextHandler creates a new text handler.
func NewTextHandler(api *tgbotapi.BotAPI, deps Dependencies, stateManager state.StateManager) *TextHandler {
	return &TextHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a text message according to the user's current state.
func (h *TextHandler) Handle(ctx context.Context, message *tgbotapi.Message) error {
	userID := message.From.ID
	chatID := message.Chat.ID
	text := strings.TrimSpace(message.Text)

	switch h.stateManager.GetUserState(userID) {
	case state.WaitingForGlucose:
		return h.handleGlucose(chatID, userID, text)
	case state.WaitingForManualWW:
		return h.handleManualWW(ctx, chatID, userID, text)
	case state.WaitingForQuantity:
		return h.handleQuantity(ctx, chatID, userID, text)
	case state.WaitingForBarcode:
		return h.handleBarcode(ctx, chatID, userID, text)
	case state.WaitingForProductName:
		return h.handleProductName(chatID, userID, text)
	case state.WaitingForProductCarbs:
		return h.handleProductCarbs(ctx, chatID, userID, text)
	case state.WaitingForProductSearch:
		h.stateManager.SetUserState(userID, state.None)
		return renderProducts(ctx, h.api, h.deps, chatID, userID, domain.ProductFilter{Name: text}, domain.SortNameAsc)
	case state.WaitingForMealDesc:
		return h.handleMealDescription(ctx, chatID, userID, text)
	case state.WaitingForTargetGlucose:
		return h.handleDosingValue(ctx, chatID, userID, text, func(v float64, u *domain.DosingUpdate) { u.TargetGlucose = &v })
	case state.WaitingForICR:
		return h.handleDosingValue(ctx, chatID, userID, text, func(v float64, u *domain.DosingUpdate) { u.ICR = &v })
	case state.WaitingForISF:
		return h.handleDosingValue(ctx, chatID, userID, text, func(v float64, u *domain.DosingUpdate) { u.ISF = &v })
	case state.WaitingForInsulinDuration:
		return h.handleInsulinDuration(ctx, chatID, userID, text)
	default:
		return sendText(h.api, chatID, "Use /menu to open the main menu.")
	}
}

func (h *TextHandler) handleGlucose(chatID, userID int64, text string) error {
	glucose, err := parseNumber(text)
	if err != nil || glucose <= 0 {
		return sendText(h.api, chatID, "That doesn't look like a glucose reading. Enter a positive number in mg/dL:")
	}
	h.stateManager.SetTempData(userID, "glucose", glucose)
	h.stateManager.SetUserState(userID, state.WaitingForManualWW)
	return sendText(h.api, chatID, "Enter extra carb exchanges not in the meal list (1 WW = 10 g), or 0 if none:")
}

func (h *TextHandler) handleManualWW(ctx context.Context, chatID, userID int64, text string) error {
	manualWW, err := parseNumber(text)
	if err != nil || manualWW < 0 {
		return sendText(h.api, chatID, "Enter the number of exchange units as a non-negative number, or 0:")
	}

	raw, ok := h.stateManager.GetTempData(userID, "glucose")
	if !ok {
		h.stateManager.SetUserState(userID, state.WaitingForGlucose)
		return sendText(h.api, chatID, "Let's start over. Enter the current glucose reading in mg/dL:")
	}
	glucose, ok := tempFloat(raw)
	if !ok {
		h.stateManager.SetUserState(userID, state.WaitingForGlucose)
		return sendText(h.api, chatID, "Let's start over. Enter the current glucose reading in mg/dL:")
	}

	result, err := h.deps.Bolus.CalculateAndRecord(ctx, userID, glucose, manualWW)
	if err != nil {
		logger.Error("Bolus calculation failed", "error", err, "user_id", userID)
		if apperrors.IsValidation(err) {
			h.stateManager.SetUserState(userID, state.WaitingForGlucose)
			return sendText(h.api, chatID, "Those values can't be used for a dose. Enter the glucose reading again:")
		}
		return sendError(h.api, chatID)
	}

	h.stateManager.SetUserState(userID, state.None)
	h.stateManager.ClearTempData(userID)
	h.deps.Meal.Clear(userID)

	var b strings.Builder
	b.WriteString("💉 *Bolus calculation*\n\n")
	fmt.Fprintf(&b, "Glucose: %.0f mg/dL\n", result.Glucose)
	fmt.Fprintf(&b, "Carbohydrates: %s g\n\n", utils.FormatCarbs(result.Carbs))
	fmt.Fprintf(&b, "Meal dose: %s units\n", utils.FormatDose(result.MealDose))
	fmt.Fprintf(&b, "Correction dose: %s units\n", utils.FormatDose(result.CorrectionDose))
	fmt.Fprintf(&b, "*Total dose: %s units*\n\n", utils.FormatDose(result.TotalDose))
	b.WriteString("_Always confirm doses with your care team. This is not medical advice._")

	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(keyboards.BackRow())
	_, err = h.api.Send(msg)
	return err
}

func (h *TextHandler) handleQuantity(ctx context.Context, chatID, userID int64, text string) error {
	value, err := parseNumber(text)
	if err != nil || value < 0 {
		return sendText(h.api, chatID, "Enter the quantity as a non-negative number:")
	}

	raw, ok := h.stateManager.GetTempData(userID, "entry_index")
	if !ok {
		h.stateManager.SetUserState(userID, state.None)
		return renderCalculator(ctx, h.api, h.deps, chatID, userID)
	}
	indexFloat, ok := tempFloat(raw)
	if !ok {
		h.stateManager.SetUserState(userID, state.None)
		return renderCalculator(ctx, h.api, h.deps, chatID, userID)
	}

	if err := h.deps.Meal.SetQuantity(userID, int(indexFloat), value); err != nil && !apperrors.IsNotFound(err) {
		return sendError(h.api, chatID)
	}
	h.stateManager.SetUserState(userID, state.None)
	h.stateManager.ClearTempData(userID)
	return renderCalculator(ctx, h.api, h.deps, chatID, userID)
}

func (h *TextHandler) handleBarcode(ctx context.Context, chatID, userID int64, text string) error {
	code := strings.TrimSpace(text)
	if code == "" || !isDigits(code) {
		return sendText(h.api, chatID, "A barcode is digits only. Try again:")
	}

	rec, err := h.deps.Resolver.ResolveByBarcode(ctx, code)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return sendText(h.api, chatID, "That barcode isn't in the food database. You can add the product manually from the Products menu.")
		}
		logger.Error("Barcode lookup failed", "error", err, "user_id", userID)
		return sendText(h.api, chatID, "The food database didn't respond. Try again in a minute.")
	}

	encoded, err := json.Marshal(rec)
	if err != nil {
		return sendError(h.api, chatID)
	}
	h.stateManager.SetTempData(userID, "scanned", string(encoded))
	h.stateManager.SetUserState(userID, state.None)

	var b strings.Builder
	fmt.Fprintf(&b, "🔎 *%s*\n\n", rec.Name)
	fmt.Fprintf(&b, "Carbohydrates: %s g per 100 %s\n", utils.FormatCarbs(rec.CarbsPer100), rec.Unit)
	if rec.ProteinPer100 != nil {
		fmt.Fprintf(&b, "Protein: %s g\n", utils.FormatCarbs(*rec.ProteinPer100))
	}
	if rec.FatPer100 != nil {
		fmt.Fprintf(&b, "Fat: %s g\n", utils.FormatCarbs(*rec.FatPer100))
	}
	if rec.CaloriesPer100 != nil {
		fmt.Fprintf(&b, "Calories: %.0f kcal\n", *rec.CaloriesPer100)
	}

	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboards.ScanResultMenu()
	_, err = h.api.Send(msg)
	return err
}

func (h *TextHandler) handleProductName(chatID, userID int64, text string) error {
	if text == "" {
		return sendText(h.api, chatID, "The name can't be empty. Enter the product name:")
	}
	h.stateManager.SetTempData(userID, "product_name", text)
	h.stateManager.SetUserState(userID, state.WaitingForProductCarbs)
	return sendText(h.api, chatID, "Enter the carbohydrates per 100 g/ml:")
}

func (h *TextHandler) handleProductCarbs(ctx context.Context, chatID, userID int64, text string) error {
	carbs, err := parseNumber(text)
	if err != nil || carbs < 0 {
		return sendText(h.api, chatID, "Enter carbohydrates per 100 g/ml as a non-negative number:")
	}

	nameRaw, ok := h.stateManager.GetTempData(userID, "product_name")
	if !ok {
		h.stateManager.SetUserState(userID, state.None)
		return sendError(h.api, chatID)
	}
	name, _ := nameRaw.(string)

	input := domain.ProductInput{Name: name, CarbsPer100: carbs}

	var product *domain.Product
	if raw, editing := h.stateManager.GetTempData(userID, "edit_id"); editing {
		id, _ := raw.(string)
		existing, findErr := h.deps.Catalog.Find(ctx, userID, id)
		if findErr == nil {
			input.Barcode = existing.Barcode
			input.Unit = existing.Unit
			input.Category = existing.Category
			input.Notes = existing.Notes
			input.ProteinPer100 = existing.ProteinPer100
			input.FatPer100 = existing.FatPer100
			input.CaloriesPer100 = existing.CaloriesPer100
		}
		product, err = h.deps.Catalog.UpdateProduct(ctx, userID, id, input)
	} else {
		product, err = h.deps.Catalog.AddProduct(ctx, userID, input)
	}
	if err != nil {
		logger.Error("Failed to save product", "error", err, "user_id", userID)
		if apperrors.IsNotFound(err) {
			return sendText(h.api, chatID, "That product no longer exists.")
		}
		return sendError(h.api, chatID)
	}

	h.stateManager.SetUserState(userID, state.None)
	h.stateManager.ClearTempData(userID)
	if err := sendText(h.api, chatID, fmt.Sprintf("✅ %s saved.", product.Name)); err != nil {
		return err
	}
	return renderProducts(ctx, h.api, h.deps, chatID, userID, domain.ProductFilter{}, domain.SortCreatedDesc)
}

func (h *TextHandler) handleMealDescription(ctx context.Context, chatID, userID int64, text string) error {
	if h.deps.AI == nil {
		h.stateManager.SetUserState(userID, state.None)
		return sendText(h.api, chatID, "AI estimation is not configured.")
	}
	if text == "" {
		return sendText(h.api, chatID, "Describe the meal in a sentence or two:")
	}

	if err := sendText(h.api, chatID, "⏳ Estimating carbohydrates…"); err != nil {
		return err
	}

	estimate, err := h.deps.AI.EstimateCarbs(ctx, text, false)
	if err != nil {
		logger.Error("AI carb estimation failed", "error", err, "user_id", userID)
		h.stateManager.SetUserState(userID, state.None)
		return sendText(h.api, chatID, "Couldn't estimate this meal. Try describing it differently, or add products manually.")
	}

	h.stateManager.SetUserState(userID, state.None)

	var b strings.Builder
	b.WriteString("🤖 *Carb estimate*\n\n")
	if len(estimate.FoodItems) > 0 {
		fmt.Fprintf(&b, "Recognized: %s\n", strings.Join(estimate.FoodItems, ", "))
	}
	fmt.Fprintf(&b, "Carbohydrates: ~%s g (%s WW)\n", utils.FormatCarbs(estimate.Carbs), utils.FormatCarbs(estimate.Carbs/10))
	if estimate.Confidence != "" {
		fmt.Fprintf(&b, "Confidence: %s\n", estimate.Confidence)
	}
	if estimate.AnalysisText != "" {
		fmt.Fprintf(&b, "\n%s\n", estimate.AnalysisText)
	}
	b.WriteString("\nEnter the estimate as manual exchange units when calculating a dose.")

	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(keyboards.BackRow())
	_, err = h.api.Send(msg)
	return err
}

func (h *TextHandler) handleDosingValue(ctx context.Context, chatID, userID int64, text string, apply func(float64, *domain.DosingUpdate)) error {
	value, err := parseNumber(text)
	if err != nil || value <= 0 {
		return sendText(h.api, chatID, "Enter a positive number:")
	}
	var update domain.DosingUpdate
	apply(value, &update)
	if _, err := h.deps.Dosing.Set(ctx, userID, update); err != nil {
		if apperrors.IsValidation(err) {
			return sendText(h.api, chatID, "That value is out of range. Enter a positive number:")
		}
		return sendError(h.api, chatID)
	}
	h.stateManager.SetUserState(userID, state.None)
	return renderSettings(ctx, h.api, h.deps, chatID, userID)
}

func (h *TextHandler) handleInsulinDuration(ctx context.Context, chatID, userID int64, text string) error {
	minutes, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || minutes <= 0 {
		return sendText(h.api, chatID, "Enter the duration as a whole number of minutes:")
	}
	update := domain.DosingUpdate{InsulinDuration: &minutes}
	if _, err := h.deps.Dosing.Set(ctx, userID, update); err != nil {
		if apperrors.IsValidation(err) {
			return sendText(h.api, chatID, "That value is out of range. Enter a positive number of minutes:")
		}
		return sendError(h.api, chatID)
	}
	h.stateManager.SetUserState(userID, state.None)
	return renderSettings(ctx, h.api, h.deps, chatID, userID)
}

// parseNumber accepts both dot and comma decimal separators.
func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	return strconv.ParseFloat(s, 64)
}

// tempFloat normalizes temp-data numbers. The Redis-backed state manager
// round-trips them through JSON, so they may come back as float64 regardless
// of how they were stored.
func tempFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
