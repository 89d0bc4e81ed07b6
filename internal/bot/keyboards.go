package bot

import (
	"fmt"

	"telegram_tasks/internal/botapi"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Main menu button labels. Message routing matches on them, so they are
// shared constants rather than inline strings.
const (
	btnNewTask    = "➕ Новая задача"
	btnListTasks  = "📋 Мои задачи"
	btnTags       = "🏷 Теги"
	btnArchive    = "📦 Архив"
	btnDeleteTask = "🗑 Удалить задачу"
	btnNewTag     = "➕ Новый тег"
)

func mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnNewTask),
			tgbotapi.NewKeyboardButton(btnListTasks),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnTags),
			tgbotapi.NewKeyboardButton(btnArchive),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnDeleteTask),
			tgbotapi.NewKeyboardButton(btnNewTag),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

// notifyKeyboard offers the reminder delays in minutes.
func notifyKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏰ 1 минута", "notify_1"),
			tgbotapi.NewInlineKeyboardButtonData("⏰ 2 минуты", "notify_2"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏰ 5 минут", "notify_5"),
			tgbotapi.NewInlineKeyboardButtonData("⏰ 10 минут", "notify_10"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏰ 1 час", "notify_60"),
		),
	)
}

func tagSelectKeyboard(tags []botapi.Tag) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, t := range tags {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏷 "+t.Name, fmt.Sprintf("tag_%d", t.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⏭ Пропустить", "tags_skip"),
	))
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✅ Готово", "tags_done"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func taskPickerKeyboard(tasks []botapi.Task) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, t := range tasks {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t.Title, fmt.Sprintf("del_task_%d", t.ID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func tagPickerKeyboard(tags []botapi.Tag) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, t := range tags {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t.Name, fmt.Sprintf("del_tag_%d", t.ID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func tagListKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Создать тег", "create_tag_ask"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Удалить тег", "delete_tag_list"),
		),
	)
}
