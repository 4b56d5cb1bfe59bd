package entity

import (
	"time"
)

// Типы критериев выдачи бейджей. Тип category_expert определён в каталоге,
// но движком никогда не выдается: в данных нет связи викторины с категорией
// на момент оценки. Удалять его нельзя — каталог в админке ссылается на него по имени.
const (
	CriteriaFirstQuiz      = "first_quiz"
	CriteriaPerfectScore   = "perfect_score"
	CriteriaQuizMaster     = "quiz_master"
	CriteriaSpeedDemon     = "speed_demon"
	CriteriaCategoryExpert = "category_expert"
	CriteriaStreakMaster   = "streak_master"
)

// Badge представляет достижение из каталога бейджей.
// Каталог управляется администраторами и практически неизменен во время работы.
type Badge struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string `gorm:"size:255;not null;default:''" json:"description"`
	Icon        string `gorm:"size:50;not null;default:''" json:"icon"`

	// CriteriaType — один из Criteria*-констант, CriteriaValue — числовой порог
	// правила (количество викторин, секунды, дни). 0 означает "порог не задан",
	// движок подставит значение по умолчанию.
	CriteriaType  string `gorm:"size:30;not null" json:"criteria_type"`
	CriteriaValue int    `gorm:"not null;default:0" json:"criteria_value"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Badge) TableName() string {
	return "badges"
}

// UserBadge представляет выданный пользователю бейдж.
// Пара (user_id, badge_id) уникальна: выданный бейдж не выдается повторно
// и никогда не отзывается.
type UserBadge struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_badge" json:"user_id"`
	BadgeID   uint      `gorm:"not null;uniqueIndex:idx_user_badge" json:"badge_id"`
	AwardedAt time.Time `gorm:"not null" json:"awarded_at"`
}

// TableName определяет имя таблицы для GORM
func (UserBadge) TableName() string {
	return "user_badges"
}
