package repository

import (
	"time"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
)

// BadgeRepository определяет методы для работы с каталогом бейджей
// и выданными пользователям бейджами
type BadgeRepository interface {
	// List возвращает весь каталог в стабильном порядке (по ID)
	List() ([]entity.Badge, error)
	GetByID(id uint) (*entity.Badge, error)
	// UpsertByName создает бейдж или дополняет существующий, не перетирая
	// правки администраторов (используется при сидировании каталога)
	UpsertByName(badge *entity.Badge) error
	GetUserBadges(userID uint) ([]entity.Badge, error)
	GetUserBadgeIDs(userID uint) ([]uint, error)
	// Award записывает выданные бейджи одной пакетной вставкой
	Award(userID uint, badgeIDs []uint, awardedAt time.Time) error
}
