package keyboards

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/gigamasta/diabetes-manager/internal/domain"
	"github.com/gigamasta/diabetes-manager/internal/guide"
)

// MainMenu creates the main menu keyboard.
func MainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💉 Bolus calculator", "menu_calculator"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🍎 Products", "menu_products"),
			tgbotapi.NewInlineKeyboardButtonData("📷 Scan barcode", "scan_start"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📖 Emergency guide", "menu_guide"),
			tgbotapi.NewInlineKeyboardButtonData("⚙️ Settings", "menu_settings"),
		),
	)
}

// CalculatorMenu creates the calculator keyboard. Meal line controls are
// rendered per entry above it.
func CalculatorMenu(hasEntries, hasAI bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		{
			tgbotapi.NewInlineKeyboardButtonData("➕ Add product", "calc_add_product"),
		},
		{
			tgbotapi.NewInlineKeyboardButtonData("🧮 Calculate bolus", "calc_glucose"),
			tgbotapi.NewInlineKeyboardButtonData("📜 History", "calc_history"),
		},
	}
	if hasAI {
		rows[0] = append(rows[0],
			tgbotapi.NewInlineKeyboardButtonData("🤖 Estimate carbs", "ai_estimate"))
	}
	if hasEntries {
		rows = append(rows, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("🗑️ Clear meal", "calc_clear"),
		})
	}
	rows = append(rows, BackRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// MealEntryRow creates the quantity controls for one meal line.
func MealEntryRow(index int) []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("➖10", fmt.Sprintf("meal_dec:%d", index)),
		tgbotapi.NewInlineKeyboardButtonData("➕10", fmt.Sprintf("meal_inc:%d", index)),
		tgbotapi.NewInlineKeyboardButtonData("✏️", fmt.Sprintf("meal_qty:%d", index)),
		tgbotapi.NewInlineKeyboardButtonData("✕", fmt.Sprintf("meal_rm:%d", index)),
	)
}

// ProductPickList creates a keyboard of products to add to the meal.
func ProductPickList(products []domain.Product) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(products)+1)
	for _, p := range products {
		label := fmt.Sprintf("%s (%.1fg/100%s)", p.Name, p.CarbsPer100, p.Unit)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "pick:"+p.ID),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("◀️ Back", "menu_calculator"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// ProductsMenu creates the catalog management keyboard.
func ProductsMenu(products []domain.Product) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(products)+3)
	for _, p := range products {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ "+p.Name, "prod_edit:"+p.ID),
			tgbotapi.NewInlineKeyboardButtonData("🗑️", "prod_del:"+p.ID),
		))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Add product", "prod_add"),
			tgbotapi.NewInlineKeyboardButtonData("🔍 Search", "prod_search"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Name ↑", "prod_sort:name-asc"),
			tgbotapi.NewInlineKeyboardButtonData("Name ↓", "prod_sort:name-desc"),
			tgbotapi.NewInlineKeyboardButtonData("Newest", "prod_sort:date-desc"),
			tgbotapi.NewInlineKeyboardButtonData("Oldest", "prod_sort:date-asc"),
		),
		BackRow(),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// ScanResultMenu creates the keyboard shown under a resolved barcode.
func ScanResultMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Add to catalog", "scan_add"),
			tgbotapi.NewInlineKeyboardButtonData("🔄 Scan again", "scan_start"),
		),
		BackRow(),
	)
}

// GuideMenu creates the guide section keyboard.
func GuideMenu() tgbotapi.InlineKeyboardMarkup {
	sections := guide.Sections()
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(sections)+1)
	for _, s := range sections {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(s.Title, "guide:"+s.ID),
		))
	}
	rows = append(rows, BackRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// SettingsMenu creates the dosing parameters keyboard.
func SettingsMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Target glucose", "set_target"),
			tgbotapi.NewInlineKeyboardButtonData("🍞 ICR", "set_icr"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💧 ISF", "set_isf"),
			tgbotapi.NewInlineKeyboardButtonData("⏱️ Insulin duration", "set_duration"),
		),
		BackRow(),
	)
}

// BackRow creates a single row returning to the main menu.
func BackRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", "main_menu"),
	)
}
