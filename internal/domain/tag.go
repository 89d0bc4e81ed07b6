package domain

type Tag struct {
	ID     int64  `db:"id" json:"id"`
	UserID int64  `db:"user_id" json:"-"`
	Name   string `db:"name" json:"name"`
}
