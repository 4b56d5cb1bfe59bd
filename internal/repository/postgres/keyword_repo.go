package postgres

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizhub-api/internal/pkg/errors"
)

// KeywordRepo реализует repository.KeywordRepository
type KeywordRepo struct {
	db *gorm.DB
}

// NewKeywordRepo создает новый репозиторий запрещенных слов
func NewKeywordRepo(db *gorm.DB) *KeywordRepo {
	return &KeywordRepo{db: db}
}

// List возвращает все запрещенные слова, отсортированные по алфавиту
func (r *KeywordRepo) List() ([]entity.BannedKeyword, error) {
	var keywords []entity.BannedKeyword
	err := r.db.Order("word ASC").Find(&keywords).Error
	return keywords, err
}

// Words возвращает только сами слова в алфавитном порядке.
// Порядок стабилен: фильтрация детерминирована для фиксированного каталога.
func (r *KeywordRepo) Words() ([]string, error) {
	var words []string
	err := r.db.Model(&entity.BannedKeyword{}).
		Order("word ASC").
		Pluck("word", &words).Error
	return words, err
}

// Upsert добавляет слово в нижнем регистре; повторное добавление
// возвращает существующую запись
func (r *KeywordRepo) Upsert(word string, addedBy uint) (*entity.BannedKeyword, error) {
	normalized := strings.ToLower(strings.TrimSpace(word))

	keyword := entity.BannedKeyword{Word: normalized, AddedBy: addedBy}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "word"}},
		DoNothing: true,
	}).Create(&keyword).Error
	if err != nil {
		return nil, err
	}

	// При конфликте Create не заполняет ID — перечитываем запись
	if keyword.ID == 0 {
		if err := r.db.Where("word = ?", normalized).First(&keyword).Error; err != nil {
			return nil, err
		}
	}

	return &keyword, nil
}

// Delete удаляет слово из каталога
func (r *KeywordRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.BannedKeyword{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
