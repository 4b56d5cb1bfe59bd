package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizhub-api/internal/pkg/errors"
)

// CategoryRepo реализует repository.CategoryRepository
type CategoryRepo struct {
	db *gorm.DB
}

// NewCategoryRepo создает новый репозиторий категорий
func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// List возвращает все категории, отсортированные по имени
func (r *CategoryRepo) List() ([]entity.Category, error) {
	var categories []entity.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

// GetByID возвращает категорию по ID
func (r *CategoryRepo) GetByID(id uint) (*entity.Category, error) {
	var category entity.Category
	err := r.db.First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// GetByName ищет категорию по имени без учета регистра
func (r *CategoryRepo) GetByName(name string) (*entity.Category, error) {
	var category entity.Category
	err := r.db.Where("LOWER(name) = LOWER(?)", name).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// Create создает новую категорию
func (r *CategoryRepo) Create(category *entity.Category) error {
	err := r.db.Create(category).Error
	if err != nil {
		// Гонка одновременного создания одноименной категории
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: category name already exists", apperrors.ErrConflict)
		}
		return err
	}
	return nil
}

// UpsertByName создает категорию, если категории с таким именем еще нет.
// Используется при сидировании предустановленного набора.
func (r *CategoryRepo) UpsertByName(category *entity.Category) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(category).Error
	if err != nil {
		return err
	}
	// При конфликте ID не заполняется, перечитываем существующую запись
	if category.ID == 0 {
		existing, err := r.GetByName(category.Name)
		if err != nil {
			return err
		}
		*category = *existing
	}
	return nil
}

// IsFollowing проверяет, подписан ли пользователь на категорию
func (r *CategoryRepo) IsFollowing(userID, categoryID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entity.CategoryFollow{}).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Count(&count).Error
	return count > 0, err
}

// Follow подписывает пользователя на категорию (идемпотентно)
func (r *CategoryRepo) Follow(userID, categoryID uint) error {
	follow := entity.CategoryFollow{UserID: userID, CategoryID: categoryID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow).Error
}

// Unfollow отписывает пользователя от категории
func (r *CategoryRepo) Unfollow(userID, categoryID uint) error {
	return r.db.Where("user_id = ? AND category_id = ?", userID, categoryID).
		Delete(&entity.CategoryFollow{}).Error
}

// ListFollowed возвращает категории, на которые подписан пользователь
func (r *CategoryRepo) ListFollowed(userID uint) ([]entity.Category, error) {
	var categories []entity.Category
	err := r.db.
		Joins("JOIN category_follows ON category_follows.category_id = categories.id").
		Where("category_follows.user_id = ?", userID).
		Order("categories.name ASC").
		Find(&categories).Error
	return categories, err
}
