package content

import "time"

// Content is the remote mirror of a user's document, one record per user,
// created lazily on first authenticated fetch.
type Content struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"uniqueIndex;size:190;not null"`
	Content   string `gorm:"type:text"`
	Columns   int    `gorm:"default:2"`
	FontSize  int    `gorm:"default:14"`
	UpdatedAt time.Time
}
