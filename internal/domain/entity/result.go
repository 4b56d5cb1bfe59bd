package entity

import (
	"time"
)

// Result представляет результат одной попытки прохождения викторины.
// История результатов пользователя — входные данные для движка бейджей,
// записи никогда не изменяются после создания.
type Result struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	QuizID       uint      `gorm:"not null;index" json:"quiz_id"`
	Username     string    `gorm:"size:50;not null" json:"username"`
	Score        int       `gorm:"not null;default:0" json:"score"`
	Total        int       `gorm:"not null;default:0" json:"total"`
	TimeTakenSec int       `gorm:"not null;default:0" json:"time_taken_sec"`
	AttemptedAt  time.Time `gorm:"not null;index" json:"attempted_at"`
}

// TableName определяет имя таблицы для GORM
func (Result) TableName() string {
	return "results"
}

// PercentScore возвращает результат в процентах
func (r *Result) PercentScore() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Score) / float64(r.Total) * 100
}
