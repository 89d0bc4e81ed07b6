package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	maxTagsPerTask    = 4
	maxPendingTasks   = 6
	archiveViewLimit  = 5
	dueDateSendFormat = "2006-01-02 15:04:05"
)

func (b *Bot) startTaskFlow(ctx context.Context, chatID int64) {
	if err := b.sessions.Set(ctx, chatID, &Session{State: stateTaskTitle}); err != nil {
		b.log.Error("save session", "chat_id", chatID, "error", err)
		return
	}
	b.send(chatID, "Введите название задачи:")
}

func (b *Bot) handleTaskTitle(ctx context.Context, chatID int64, text string, sess *Session) {
	title := strings.TrimSpace(text)
	if title == "" {
		b.send(chatID, "❌ Название не может быть пустым")
		return
	}

	sess.Title = title
	sess.State = "" // next step is a callback, not free text
	if err := b.sessions.Set(ctx, chatID, sess); err != nil {
		b.log.Error("save session", "chat_id", chatID, "error", err)
		return
	}
	b.sendWithKeyboard(chatID, "Когда напомнить?", notifyKeyboard())
}

func (b *Bot) handleNotifyCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	userID := cb.From.ID

	minutes, err := strconv.Atoi(strings.TrimPrefix(cb.Data, "notify_"))
	if err != nil {
		b.answerCallback(cb, "")
		return
	}

	sess, err := b.sessions.Get(ctx, chatID)
	if err != nil || sess == nil || sess.Title == "" {
		b.answerCallback(cb, "")
		return
	}

	sess.DueDate = time.Now().UTC().Add(time.Duration(minutes) * time.Minute).Format(dueDateSendFormat)

	tags, err := b.client.Tags(ctx, userID)
	if err != nil {
		b.sendError(chatID, err)
		b.answerCallback(cb, "")
		return
	}

	if len(tags) == 0 {
		b.send(chatID, "У вас нет тегов. Создаётся без тегов...")
		b.finalizeTask(ctx, chatID, userID, sess)
		b.answerCallback(cb, "")
		return
	}

	sess.State = stateTaskTags
	sess.SelectedTags = []int64{}
	if err := b.sessions.Set(ctx, chatID, sess); err != nil {
		b.log.Error("save session", "chat_id", chatID, "error", err)
		return
	}

	b.sendWithKeyboard(chatID, fmt.Sprintf("Выберите теги (макс. %d):", maxTagsPerTask), tagSelectKeyboard(tags))
	b.answerCallback(cb, "")
}

func (b *Bot) handleTagToggle(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID

	tagID, err := strconv.ParseInt(strings.TrimPrefix(cb.Data, "tag_"), 10, 64)
	if err != nil {
		b.answerCallback(cb, "")
		return
	}

	sess, err := b.sessions.Get(ctx, chatID)
	if err != nil || sess == nil || sess.State != stateTaskTags {
		b.answerCallback(cb, "")
		return
	}

	_, ok := sess.toggleTag(tagID, maxTagsPerTask)
	if !ok {
		b.alertCallback(cb, fmt.Sprintf("Максимум %d тега!", maxTagsPerTask))
		return
	}

	if err := b.sessions.Set(ctx, chatID, sess); err != nil {
		b.log.Error("save session", "chat_id", chatID, "error", err)
		return
	}
	b.answerCallback(cb, fmt.Sprintf("Выбрано: %d", len(sess.SelectedTags)))
}

func (b *Bot) handleTagsDone(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	sess, err := b.sessions.Get(ctx, chatID)
	if err != nil || sess == nil {
		b.answerCallback(cb, "")
		return
	}
	b.finalizeTask(ctx, chatID, cb.From.ID, sess)
	b.answerCallback(cb, "")
}

func (b *Bot) handleTagsSkip(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	sess, err := b.sessions.Get(ctx, chatID)
	if err != nil || sess == nil {
		b.answerCallback(cb, "")
		return
	}
	sess.SelectedTags = nil
	b.finalizeTask(ctx, chatID, cb.From.ID, sess)
	b.answerCallback(cb, "")
}

// finalizeTask resolves the selected tag ids to names and creates the
// task through the API.
func (b *Bot) finalizeTask(ctx context.Context, chatID, userID int64, sess *Session) {
	defer func() {
		if err := b.sessions.Clear(ctx, chatID); err != nil {
			b.log.Error("clear session", "chat_id", chatID, "error", err)
		}
	}()

	var tagNames []string
	if len(sess.SelectedTags) > 0 {
		tags, err := b.client.Tags(ctx, userID)
		if err != nil {
			b.sendError(chatID, err)
			return
		}
		selected := make(map[int64]bool, len(sess.SelectedTags))
		for _, id := range sess.SelectedTags {
			selected[id] = true
		}
		for _, t := range tags {
			if selected[t.ID] {
				tagNames = append(tagNames, t.Name)
			}
		}
	}

	if _, err := b.client.CreateTask(ctx, userID, sess.Title, sess.DueDate, tagNames); err != nil {
		b.sendError(chatID, err)
		return
	}
	b.sendWithKeyboard(chatID, "✅ Задача создана: "+sess.Title, mainKeyboard())
}

func (b *Bot) listTasks(ctx context.Context, chatID, userID int64) {
	tasks, err := b.client.Tasks(ctx, userID)
	if err != nil {
		b.sendError(chatID, err)
		return
	}

	if len(tasks) == 0 {
		b.sendWithKeyboard(chatID, "📋 Нет активных задач", mainKeyboard())
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 Задачи (%d/%d):\n\n", len(tasks), maxPendingTasks)
	for _, t := range tasks {
		sb.WriteString("• " + t.Title)
		if len(t.Tags) > 0 {
			sb.WriteString(" [" + strings.Join(t.Tags, ", ") + "]")
		}
		sb.WriteString("\n  📅 " + t.CreatedAt)
		if t.DueDate != nil {
			sb.WriteString("\n  ⏰ " + *t.DueDate)
		}
		sb.WriteString("\n\n")
	}
	b.sendWithKeyboard(chatID, sb.String(), mainKeyboard())
}

func (b *Bot) showArchive(ctx context.Context, chatID, userID int64) {
	tasks, err := b.client.Archive(ctx, userID)
	if err != nil {
		b.sendError(chatID, err)
		return
	}

	if len(tasks) == 0 {
		b.sendWithKeyboard(chatID, "📦 Архив пуст", mainKeyboard())
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📦 Архив (последние %d):\n\n", archiveViewLimit)
	for _, t := range tasks {
		marker := "🗑"
		if t.Status == "completed" {
			marker = "✅"
		}
		sb.WriteString(marker + " " + t.Title)
		if len(t.Tags) > 0 {
			sb.WriteString(" [" + strings.Join(t.Tags, ", ") + "]")
		}
		sb.WriteString("\n  📅 " + t.CreatedAt + "\n\n")
	}
	b.sendWithKeyboard(chatID, sb.String(), mainKeyboard())
}

func (b *Bot) deleteTaskPicker(ctx context.Context, chatID, userID int64) {
	tasks, err := b.client.Tasks(ctx, userID)
	if err != nil {
		b.sendError(chatID, err)
		return
	}

	if len(tasks) == 0 {
		b.sendWithKeyboard(chatID, "Нет задач для удаления", mainKeyboard())
		return
	}
	b.sendWithKeyboard(chatID, "Выберите задачу для удаления:", taskPickerKeyboard(tasks))
}

func (b *Bot) handleDeleteTaskCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID

	taskID, err := strconv.ParseInt(strings.TrimPrefix(cb.Data, "del_task_"), 10, 64)
	if err != nil {
		b.answerCallback(cb, "")
		return
	}

	if err := b.client.DeleteTask(ctx, cb.From.ID, taskID); err != nil {
		b.sendError(chatID, err)
		b.answerCallback(cb, "")
		return
	}

	b.sendWithKeyboard(chatID, "✅ Задача удалена", mainKeyboard())
	del := tgbotapi.NewDeleteMessage(chatID, cb.Message.MessageID)
	if _, err := b.api.Request(del); err != nil {
		b.log.Debug("delete picker message", "error", err)
	}
	b.answerCallback(cb, "")
}
