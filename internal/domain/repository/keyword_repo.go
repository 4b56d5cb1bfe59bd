package repository

import (
	"github.com/yourusername/quizhub-api/internal/domain/entity"
)

// KeywordRepository определяет методы для работы с каталогом запрещенных слов
type KeywordRepository interface {
	// List возвращает все слова, отсортированные по алфавиту
	List() ([]entity.BannedKeyword, error)
	// Words возвращает только сами слова в стабильном (алфавитном) порядке
	Words() ([]string, error)
	// Upsert добавляет слово (в нижнем регистре) или возвращает существующую запись
	Upsert(word string, addedBy uint) (*entity.BannedKeyword, error)
	Delete(id uint) error
}
