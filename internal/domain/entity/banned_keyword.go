package entity

import (
	"time"
)

// BannedKeyword представляет запрещенное слово из каталога модерации.
// Слово хранится в нижнем регистре, уникальность обеспечивается по этой
// нормализованной форме.
type BannedKeyword struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Word      string    `gorm:"size:100;not null;uniqueIndex" json:"word"`
	AddedBy   uint      `gorm:"not null;default:0" json:"added_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (BannedKeyword) TableName() string {
	return "banned_keywords"
}
