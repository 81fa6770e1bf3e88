package menus

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/gigamasta/diabetes-manager/internal/bot/keyboards"
	"github.com/gigamasta/diabetes-manager/internal/domain"
	"github.com/gigamasta/diabetes-manager/internal/services"
	"github.com/gigamasta/diabetes-manager/internal/utils"
)

// SendMainMenu sends the main menu to a chat.
func SendMainMenu(api *tgbotapi.BotAPI, chatID int64) error {
	text := `🤖 *Diabetes Manager* — a caregiver's dosing assistant

💉 Compose a meal from your product catalog and I will:
• Total its carbohydrates
• Calculate the meal and correction bolus
• Keep your last calculations on record

📷 Scan packaged foods by barcode, 📖 read the emergency guide, ⚙️ tune your clinical parameters.

⚠️ *Important:* this is reference information, always consult your diabetes team!

Choose an action:`

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboards.MainMenu()
	_, err := api.Send(msg)
	return err
}

// SendCalculatorMenu shows the current meal composition with line controls.
func SendCalculatorMenu(api *tgbotapi.BotAPI, chatID int64, lines []services.ResolvedMealEntry, totalCarbs float64, hasAI bool) error {
	var b strings.Builder
	b.WriteString("💉 *Bolus calculator*\n\n")
	if len(lines) == 0 {
		b.WriteString("No products selected yet. Add products or calculate with manual exchange units only.\n")
	} else {
		for i, line := range lines {
			name := "⚠️ deleted product"
			unit := domain.UnitGrams
			if line.Product != nil {
				name = line.Product.Name
				unit = line.Product.Unit
			}
			fmt.Fprintf(&b, "%d. %s — %.0f%s (%sg carbs)\n",
				i+1, name, line.Entry.Quantity, unit, utils.FormatCarbs(line.Carbs))
		}
		fmt.Fprintf(&b, "\n*Total:* %sg carbohydrates\n", utils.FormatCarbs(totalCarbs))
	}

	keyboard := keyboards.CalculatorMenu(len(lines) > 0, hasAI)
	var rows [][]tgbotapi.InlineKeyboardButton
	for i := range lines {
		rows = append(rows, keyboards.MealEntryRow(i))
	}
	keyboard.InlineKeyboard = append(rows, keyboard.InlineKeyboard...)

	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboard
	_, err := api.Send(msg)
	return err
}

// SendProductsMenu shows the catalog with management buttons.
func SendProductsMenu(api *tgbotapi.BotAPI, chatID int64, products []domain.Product) error {
	var b strings.Builder
	b.WriteString("🍎 *Product catalog*\n\n")
	if len(products) == 0 {
		b.WriteString("No products yet. Add one manually or scan a barcode.")
	} else {
		for _, p := range products {
			fmt.Fprintf(&b, "• *%s* (%s) — %.1fg carbs/100%s", p.Name, p.Category, p.CarbsPer100, p.Unit)
			if p.Barcode != "" {
				fmt.Fprintf(&b, ", EAN %s", p.Barcode)
			}
			b.WriteString("\n")
		}
	}

	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboards.ProductsMenu(products)
	_, err := api.Send(msg)
	return err
}

// SendGuideMenu shows the emergency guide chapters.
func SendGuideMenu(api *tgbotapi.BotAPI, chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, "📖 *Emergency guide*\n\nPick a chapter:")
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboards.GuideMenu()
	_, err := api.Send(msg)
	return err
}

// SendSettingsMenu shows the current dosing parameters.
func SendSettingsMenu(api *tgbotapi.BotAPI, chatID int64, params *domain.DosingParameters) error {
	text := fmt.Sprintf(`⚙️ *Dosing parameters*

🎯 Target glucose: %.0f mg/dL
🍞 ICR: 1 unit per %.1fg carbohydrates
💧 ISF: 1 unit lowers glucose by %.1f mg/dL
⏱️ Insulin action: %d minutes

Pick a parameter to change:`,
		params.TargetGlucose, params.ICR, params.ISF, params.InsulinDuration)

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboards.SettingsMenu()
	_, err := api.Send(msg)
	return err
}

// SendHistory shows the dose history ledger, most recent first.
func SendHistory(api *tgbotapi.BotAPI, chatID int64, calcs []domain.BolusCalculation) error {
	var b strings.Builder
	b.WriteString("📜 *Dose history*\n\n")
	if len(calcs) == 0 {
		b.WriteString("No calculations yet.")
	} else {
		for _, c := range calcs {
			fmt.Fprintf(&b, "🕐 %s\nGlucose: %.0f mg/dL, carbs: %sg\nMeal: %s • correction: %s • *total: %s units*\n\n",
				utils.FormatTimestamp(c.CreatedAt), c.Glucose, utils.FormatCarbs(c.Carbs),
				utils.FormatDose(c.MealDose), utils.FormatDose(c.CorrectionDose), utils.FormatDose(c.TotalDose))
		}
	}

	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Calculator", "menu_calculator"),
		),
	)
	_, err := api.Send(msg)
	return err
}
