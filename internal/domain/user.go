package domain

// User is keyed by the Telegram numeric id. Users are created on first
// contact and never deleted.
type User struct {
	TelegramID int64  `db:"telegram_id" json:"telegram_id"`
	Username   string `db:"username" json:"username"`
}
