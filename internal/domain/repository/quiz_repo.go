package repository

import (
	"github.com/yourusername/quizhub-api/internal/domain/entity"
)

// QuizRepository определяет методы для работы с викторинами
type QuizRepository interface {
	Create(quiz *entity.Quiz) error
	GetByID(id uint) (*entity.Quiz, error)
	GetWithQuestions(id uint) (*entity.Quiz, error)
	Update(quiz *entity.Quiz) error
	// List возвращает викторины с пагинацией и общим количеством
	List(limit, offset int) ([]entity.Quiz, int64, error)
	// ListByCreator возвращает все викторины, созданные пользователем
	ListByCreator(creatorID uint) ([]entity.Quiz, error)
	Delete(id uint) error
}
