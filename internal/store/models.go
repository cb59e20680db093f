package store

import "time"

// GORM models used for persistence. The session table holds a single row.
type SessionModel struct {
	ID     uint   `gorm:"primaryKey"`
	Token  string `gorm:"not null;default:''"`
	UserID string `gorm:"not null;default:''"`
	Email  string `gorm:"not null;default:''"`
}

type MessageModel struct {
	ID         string    `gorm:"primaryKey"`
	DocumentID string    `gorm:"not null;index"`
	Message    string    `gorm:"not null"`
	Response   string    `gorm:"not null"`
	Timestamp  string    `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null;index"`
}

type PreferenceModel struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"not null"`
}
