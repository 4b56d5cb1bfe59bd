package entity

import (
	"time"
)

// Category представляет категорию викторин
type Category struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description  string    `gorm:"size:255;not null;default:''" json:"description"`
	IsPredefined bool      `gorm:"not null;default:false" json:"is_predefined"`
	CreatedBy    uint      `gorm:"not null;default:0" json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Category) TableName() string {
	return "categories"
}

// CategoryFollow представляет подписку пользователя на категорию
type CategoryFollow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index;uniqueIndex:idx_user_category" json:"user_id"`
	CategoryID uint      `gorm:"not null;uniqueIndex:idx_user_category" json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (CategoryFollow) TableName() string {
	return "category_follows"
}
