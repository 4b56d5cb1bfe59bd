package entity

import (
	"time"
)

// Chat представляет личную переписку двух пользователей.
// Пара участников нормализована: UserOneID всегда меньше UserTwoID,
// что обеспечивает единственность чата для пары.
type Chat struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserOneID     uint      `gorm:"not null;index;uniqueIndex:idx_chat_pair" json:"user_one_id"`
	UserTwoID     uint      `gorm:"not null;uniqueIndex:idx_chat_pair" json:"user_two_id"`
	LastMessageAt time.Time `gorm:"not null;index" json:"last_message_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Chat) TableName() string {
	return "chats"
}

// HasParticipant проверяет, является ли пользователь участником чата
func (c *Chat) HasParticipant(userID uint) bool {
	return c.UserOneID == userID || c.UserTwoID == userID
}

// OtherParticipant возвращает ID собеседника для данного пользователя
func (c *Chat) OtherParticipant(userID uint) uint {
	if c.UserOneID == userID {
		return c.UserTwoID
	}
	return c.UserOneID
}

// NormalizeChatPair упорядочивает пару участников для уникального индекса
func NormalizeChatPair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

// Message представляет сообщение в чате
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ChatID    uint      `gorm:"not null;index" json:"chat_id"`
	SenderID  uint      `gorm:"not null" json:"sender_id"`
	Text      string    `gorm:"size:2000;not null" json:"text"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Message) TableName() string {
	return "messages"
}
