package bot

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"telegram_tasks/internal/botapi"
	"telegram_tasks/internal/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot is the conversational front-end. It drives the task API over HTTP
// like any other client; all state it keeps between messages lives in the
// session store.
type Bot struct {
	api      *tgbotapi.BotAPI
	client   *botapi.Client
	sessions SessionStore
	stopCh   chan struct{}
	wg       sync.WaitGroup
	log      *slog.Logger
}

func New(token string, client *botapi.Client, sessions SessionStore) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log := logger.With("component", "bot")
	log.Info("bot authorized", "username", api.Self.UserName)

	return &Bot{
		api:      api,
		client:   client,
		sessions: sessions,
		stopCh:   make(chan struct{}),
		log:      log,
	}, nil
}

// Start runs the long-polling update loop until Stop is called.
func (b *Bot) Start() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	b.log.Info("starting bot update loop")

	for {
		select {
		case <-b.stopCh:
			b.log.Info("stopping bot update loop")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}

			switch {
			case update.Message != nil:
				msg := update.Message
				b.wg.Add(1)
				go func() {
					defer b.wg.Done()
					b.handleMessage(msg)
				}()
			case update.CallbackQuery != nil:
				cb := update.CallbackQuery
				b.wg.Add(1)
				go func() {
					defer b.wg.Done()
					b.handleCallback(cb)
				}()
			}
		}
	}
}

// Stop shuts the bot down, waiting for in-flight handlers.
func (b *Bot) Stop() {
	close(b.stopCh)
	b.api.StopReceivingUpdates()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		b.log.Info("bot stopped")
	case <-time.After(10 * time.Second):
		b.log.Warn("bot shutdown timeout, some handlers may not have completed")
	}
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userID := msg.From.ID
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			b.cmdStart(ctx, msg)
		case "new":
			b.startTaskFlow(ctx, chatID)
		case "list":
			b.listTasks(ctx, chatID, userID)
		case "archive":
			b.showArchive(ctx, chatID, userID)
		case "tags":
			b.listTags(ctx, chatID, userID)
		case "tag":
			b.cmdTag(ctx, chatID, userID, msg.CommandArguments())
		case "delete_task":
			b.deleteTaskPicker(ctx, chatID, userID)
		case "delete_tag":
			b.deleteTagPicker(ctx, chatID, userID)
		}
		return
	}

	switch msg.Text {
	case btnNewTask:
		b.startTaskFlow(ctx, chatID)
		return
	case btnListTasks:
		b.listTasks(ctx, chatID, userID)
		return
	case btnArchive:
		b.showArchive(ctx, chatID, userID)
		return
	case btnTags:
		b.listTags(ctx, chatID, userID)
		return
	case btnDeleteTask:
		b.deleteTaskPicker(ctx, chatID, userID)
		return
	case btnNewTag:
		b.startTagFlow(ctx, chatID)
		return
	}

	// free text is only meaningful inside a creation dialog
	sess, err := b.sessions.Get(ctx, chatID)
	if err != nil {
		b.log.Error("load session", "chat_id", chatID, "error", err)
		return
	}
	if sess == nil {
		return
	}

	switch sess.State {
	case stateTaskTitle:
		b.handleTaskTitle(ctx, chatID, msg.Text, sess)
	case stateTagName:
		b.handleTagName(ctx, chatID, userID, msg.Text)
	}
}

func (b *Bot) handleCallback(cb *tgbotapi.CallbackQuery) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	data := cb.Data
	switch {
	case strings.HasPrefix(data, "notify_"):
		b.handleNotifyCallback(ctx, cb)
	case strings.HasPrefix(data, "tag_"):
		b.handleTagToggle(ctx, cb)
	case data == "tags_done":
		b.handleTagsDone(ctx, cb)
	case data == "tags_skip":
		b.handleTagsSkip(ctx, cb)
	case strings.HasPrefix(data, "del_task_"):
		b.handleDeleteTaskCallback(ctx, cb)
	case strings.HasPrefix(data, "del_tag_"):
		b.handleDeleteTagCallback(ctx, cb)
	case data == "create_tag_ask":
		b.handleCreateTagAsk(ctx, cb)
	case data == "delete_tag_list":
		b.handleDeleteTagList(ctx, cb)
	default:
		b.answerCallback(cb, "")
	}
}

func (b *Bot) cmdStart(ctx context.Context, msg *tgbotapi.Message) {
	username := ""
	if msg.From.UserName != "" {
		username = msg.From.UserName
	}
	if err := b.client.Register(ctx, msg.From.ID, username); err != nil {
		b.log.Error("register user", "user_id", msg.From.ID, "error", err)
	}

	text := "🤖 Бот управления задачами\n\n" +
		"➕ Новая задача - создать с уведомлением (1мин, 2мин, 5мин, 10мин, 1час)\n" +
		"📋 Мои задачи - активные задачи (макс. 6)\n" +
		"🏷 Теги - управление тегами (макс. 4)\n" +
		"📦 Архив - последние 5 завершённых\n" +
		"🗑 Удалить задачу\n" +
		"➕ Новый тег - быстрое создание"
	b.sendWithKeyboard(msg.Chat.ID, text, mainKeyboard())
}

// send helpers

func (b *Bot) send(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.log.Error("send message", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) sendWithKeyboard(chatID int64, text string, keyboard any) {
	m := tgbotapi.NewMessage(chatID, text)
	m.ReplyMarkup = keyboard
	if _, err := b.api.Send(m); err != nil {
		b.log.Error("send message", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) answerCallback(cb *tgbotapi.CallbackQuery, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, text)); err != nil {
		b.log.Error("answer callback", "error", err)
	}
}

func (b *Bot) alertCallback(cb *tgbotapi.CallbackQuery, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallbackWithAlert(cb.ID, text)); err != nil {
		b.log.Error("answer callback", "error", err)
	}
}

// sendError renders an API failure the way users expect: the backend's
// message behind a failure marker. No retries.
func (b *Bot) sendError(chatID int64, err error) {
	var apiErr *botapi.APIError
	if errors.As(err, &apiErr) {
		b.sendWithKeyboard(chatID, "❌ "+apiErr.Message, mainKeyboard())
		return
	}
	b.log.Error("api call failed", "chat_id", chatID, "error", err)
	b.sendWithKeyboard(chatID, "❌ Ошибка соединения", mainKeyboard())
}
