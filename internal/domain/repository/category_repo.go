package repository

import (
	"github.com/yourusername/quizhub-api/internal/domain/entity"
)

// CategoryRepository определяет методы для работы с категориями
type CategoryRepository interface {
	// List возвращает все категории, отсортированные по имени
	List() ([]entity.Category, error)
	GetByID(id uint) (*entity.Category, error)
	// GetByName ищет категорию по имени без учета регистра
	GetByName(name string) (*entity.Category, error)
	Create(category *entity.Category) error
	// UpsertByName используется при сидировании предустановленных категорий
	UpsertByName(category *entity.Category) error
	IsFollowing(userID, categoryID uint) (bool, error)
	Follow(userID, categoryID uint) error
	Unfollow(userID, categoryID uint) error
	ListFollowed(userID uint) ([]entity.Category, error)
}
