package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const examplePrefix = "example:"

// GetExampleButtons returns one button row per example prompt.
func GetExampleButtons(examples []string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(examples))
	for i, e := range examples {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💡 "+e, fmt.Sprintf("%s%d", examplePrefix, i)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
