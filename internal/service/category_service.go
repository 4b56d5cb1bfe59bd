package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
	"github.com/yourusername/quizhub-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizhub-api/internal/pkg/errors"
)

// CategoryService предоставляет методы для работы с категориями викторин
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	keywords     *KeywordService
}

// NewCategoryService создает новый сервис категорий
func NewCategoryService(categoryRepo repository.CategoryRepository, keywords *KeywordService) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		keywords:     keywords,
	}
}

// ListCategories возвращает все категории
func (s *CategoryService) ListCategories() ([]entity.Category, error) {
	return s.categoryRepo.List()
}

// CreateCategory создает пользовательскую категорию. Имя проходит
// фильтрацию запрещенных слов, дубликаты по имени отклоняются.
func (s *CategoryService) CreateCategory(name, description string, createdBy uint) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", apperrors.ErrValidation)
	}

	if _, err := s.categoryRepo.GetByName(name); err == nil {
		return nil, fmt.Errorf("%w: category already exists", apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	category := &entity.Category{
		Name:        s.keywords.FilterText(name),
		Description: s.keywords.FilterText(strings.TrimSpace(description)),
		CreatedBy:   createdBy,
	}

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

// FollowCategory подписывает пользователя на категорию
func (s *CategoryService) FollowCategory(userID, categoryID uint) error {
	if _, err := s.categoryRepo.GetByID(categoryID); err != nil {
		return err
	}
	return s.categoryRepo.Follow(userID, categoryID)
}

// UnfollowCategory отписывает пользователя от категории
func (s *CategoryService) UnfollowCategory(userID, categoryID uint) error {
	return s.categoryRepo.Unfollow(userID, categoryID)
}

// ListFollowedCategories возвращает категории, на которые подписан пользователь
func (s *CategoryService) ListFollowedCategories(userID uint) ([]entity.Category, error) {
	return s.categoryRepo.ListFollowed(userID)
}

// SeedDefaultCategories наполняет каталог предустановленными категориями.
// Существующие записи не перетираются.
func (s *CategoryService) SeedDefaultCategories() error {
	defaults := []entity.Category{
		{Name: "General Knowledge", Description: "A bit of everything", IsPredefined: true},
		{Name: "Science", Description: "Physics, chemistry and biology", IsPredefined: true},
		{Name: "History", Description: "From ancient times to modern day", IsPredefined: true},
		{Name: "Geography", Description: "Countries, capitals and maps", IsPredefined: true},
		{Name: "Sports", Description: "Games, records and athletes", IsPredefined: true},
		{Name: "Technology", Description: "Computers, gadgets and the internet", IsPredefined: true},
		{Name: "Movies", Description: "Cinema and television", IsPredefined: true},
		{Name: "Music", Description: "Artists, albums and genres", IsPredefined: true},
	}

	for i := range defaults {
		if err := s.categoryRepo.UpsertByName(&defaults[i]); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", defaults[i].Name, err)
		}
	}

	log.Printf("[CategoryService] Каталог категорий инициализирован: %d записей", len(defaults))
	return nil
}
