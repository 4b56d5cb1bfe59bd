package repository

import (
	"github.com/yourusername/quizhub-api/internal/domain/entity"
)

// ResultRepository определяет методы для работы с результатами
type ResultRepository interface {
	Save(result *entity.Result) error
	// GetUserResults возвращает всю историю попыток пользователя.
	// Это входные данные движка бейджей: записи только читаются.
	GetUserResults(userID uint) ([]entity.Result, error)
	// GetUserResultsPage возвращает попытки пользователя от новых к старым
	GetUserResultsPage(userID uint, limit, offset int) ([]entity.Result, error)
	// GetQuizResults возвращает все результаты викторины от старых к новым
	GetQuizResults(quizID uint) ([]entity.Result, error)
	CountByUser(userID uint) (int64, error)
}
