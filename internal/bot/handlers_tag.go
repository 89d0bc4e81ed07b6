package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const maxTagsPerUser = 4

func (b *Bot) listTags(ctx context.Context, chatID, userID int64) {
	tags, err := b.client.Tags(ctx, userID)
	if err != nil {
		b.sendError(chatID, err)
		return
	}

	if len(tags) == 0 {
		b.sendWithKeyboard(chatID, "🏷 Нет тегов", mainKeyboard())
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🏷 Теги (%d/%d):\n\n", len(tags), maxTagsPerUser)
	for _, t := range tags {
		sb.WriteString("• " + t.Name + "\n")
	}
	b.sendWithKeyboard(chatID, sb.String(), tagListKeyboard())
}

func (b *Bot) startTagFlow(ctx context.Context, chatID int64) {
	if err := b.sessions.Set(ctx, chatID, &Session{State: stateTagName}); err != nil {
		b.log.Error("save session", "chat_id", chatID, "error", err)
		return
	}
	b.send(chatID, "Введите название тега:")
}

// cmdTag handles "/tag название" for quick tag creation.
func (b *Bot) cmdTag(ctx context.Context, chatID, userID int64, args string) {
	name := strings.TrimSpace(args)
	if name == "" {
		b.sendWithKeyboard(chatID, "Использование: /tag название", mainKeyboard())
		return
	}
	b.createTag(ctx, chatID, userID, name)
}

func (b *Bot) handleTagName(ctx context.Context, chatID, userID int64, text string) {
	name := strings.TrimSpace(text)
	if name == "" {
		b.send(chatID, "❌ Название не может быть пустым")
		return
	}
	b.createTag(ctx, chatID, userID, name)
	if err := b.sessions.Clear(ctx, chatID); err != nil {
		b.log.Error("clear session", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) createTag(ctx context.Context, chatID, userID int64, name string) {
	if _, err := b.client.CreateTag(ctx, userID, name); err != nil {
		b.sendError(chatID, err)
		return
	}
	b.sendWithKeyboard(chatID, "✅ Тег создан: "+name, mainKeyboard())
}

func (b *Bot) deleteTagPicker(ctx context.Context, chatID, userID int64) {
	tags, err := b.client.Tags(ctx, userID)
	if err != nil {
		b.sendError(chatID, err)
		return
	}

	if len(tags) == 0 {
		b.sendWithKeyboard(chatID, "Нет тегов для удаления", mainKeyboard())
		return
	}
	b.sendWithKeyboard(chatID, "Выберите тег для удаления:", tagPickerKeyboard(tags))
}

func (b *Bot) handleDeleteTagCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID

	tagID, err := strconv.ParseInt(strings.TrimPrefix(cb.Data, "del_tag_"), 10, 64)
	if err != nil {
		b.answerCallback(cb, "")
		return
	}

	if err := b.client.DeleteTag(ctx, cb.From.ID, tagID); err != nil {
		b.sendError(chatID, err)
		b.answerCallback(cb, "")
		return
	}

	b.sendWithKeyboard(chatID, "✅ Тег удалён", mainKeyboard())
	del := tgbotapi.NewDeleteMessage(chatID, cb.Message.MessageID)
	if _, err := b.api.Request(del); err != nil {
		b.log.Debug("delete picker message", "error", err)
	}
	b.answerCallback(cb, "")
}

func (b *Bot) handleCreateTagAsk(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	if err := b.sessions.Set(ctx, chatID, &Session{State: stateTagName}); err != nil {
		b.log.Error("save session", "chat_id", chatID, "error", err)
	}
	b.send(chatID, "Введите название тега")
	b.answerCallback(cb, "")
}

func (b *Bot) handleDeleteTagList(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	b.deleteTagPicker(ctx, cb.Message.Chat.ID, cb.From.ID)
	b.answerCallback(cb, "")
}
