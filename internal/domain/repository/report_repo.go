package repository

import (
	"time"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
)

// ReportRepository определяет методы для работы с жалобами на вопросы
type ReportRepository interface {
	Create(report *entity.Report) error
	GetByID(id uint) (*entity.Report, error)
	// HasPending проверяет, есть ли у пользователя нерассмотренная жалоба на вопрос
	HasPending(questionID, reportedBy uint) (bool, error)
	// ListForCreator возвращает жалобы на вопросы из викторин данного автора,
	// опционально отфильтрованные по статусу, от новых к старым
	ListForCreator(creatorID uint, status string) ([]entity.Report, error)
	Update(report *entity.Report) error
	// CountByStatusForQuiz возвращает количество жалоб на вопросы викторины
	// в разрезе статусов
	CountByStatusForQuiz(quizID uint) (map[string]int64, error)
	// ExpireOverdue переводит просроченные pending-жалобы в ignored
	// и возвращает количество закрытых записей
	ExpireOverdue(now time.Time) (int64, error)
}
