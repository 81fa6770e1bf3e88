package utils

import (
	"fmt"
	"time"
)

// FormatDose renders an insulin dose in units with two decimals.
func FormatDose(units float64) string {
	return fmt.Sprintf("%.2f", units)
}

// FormatCarbs renders a carbohydrate amount in grams with one decimal.
func FormatCarbs(grams float64) string {
	return fmt.Sprintf("%.1f", grams)
}

// FormatTimestamp renders a history timestamp.
func FormatTimestamp(t time.Time) string {
	return t.Format("02.01.2006 15:04")
}
