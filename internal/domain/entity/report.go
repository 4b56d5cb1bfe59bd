package entity

import (
	"time"
)

// Статусы жалоб на вопросы
const (
	ReportStatusPending = "pending"
	ReportStatusIgnored = "ignored"
	ReportStatusFixed   = "fixed"
	ReportStatusDeleted = "deleted"
)

// Срок, по истечении которого нерассмотренная жалоба автоматически закрывается
const ReportExpiryDays = 10

// Report представляет жалобу пользователя на вопрос
type Report struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	QuestionID uint       `gorm:"not null;index" json:"question_id"`
	ReportedBy uint       `gorm:"not null;index" json:"reported_by"`
	Reason     string     `gorm:"size:500;not null" json:"reason"`
	Status     string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ResolvedAt *time.Time `gorm:"type:timestamp" json:"resolved_at,omitempty"`
	ExpiresAt  time.Time  `gorm:"not null;index" json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Report) TableName() string {
	return "reports"
}

// IsPending проверяет, ожидает ли жалоба рассмотрения
func (r *Report) IsPending() bool {
	return r.Status == ReportStatusPending
}

// IsExpired проверяет, истек ли срок рассмотрения жалобы
func (r *Report) IsExpired(now time.Time) bool {
	return r.Status == ReportStatusPending && now.After(r.ExpiresAt)
}
