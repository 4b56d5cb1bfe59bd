package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizhub-api/internal/pkg/errors"
)

// BadgeRepo реализует repository.BadgeRepository
type BadgeRepo struct {
	db *gorm.DB
}

// NewBadgeRepo создает новый репозиторий бейджей
func NewBadgeRepo(db *gorm.DB) *BadgeRepo {
	return &BadgeRepo{db: db}
}

// List возвращает весь каталог бейджей в стабильном порядке
func (r *BadgeRepo) List() ([]entity.Badge, error) {
	var badges []entity.Badge
	err := r.db.Order("id ASC").Find(&badges).Error
	return badges, err
}

// GetByID возвращает бейдж по ID
func (r *BadgeRepo) GetByID(id uint) (*entity.Badge, error) {
	var badge entity.Badge
	err := r.db.First(&badge, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &badge, nil
}

// UpsertByName создает бейдж, если его еще нет. Существующая запись
// не перетирается: правки администраторов переживают рестарт.
func (r *BadgeRepo) UpsertByName(badge *entity.Badge) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(badge).Error
}

// GetUserBadges возвращает выданные пользователю бейджи в порядке выдачи
func (r *BadgeRepo) GetUserBadges(userID uint) ([]entity.Badge, error) {
	var badges []entity.Badge
	err := r.db.Model(&entity.Badge{}).
		Joins("JOIN user_badges ON user_badges.badge_id = badges.id").
		Where("user_badges.user_id = ?", userID).
		Order("user_badges.awarded_at ASC").
		Find(&badges).Error
	return badges, err
}

// GetUserBadgeIDs возвращает ID выданных пользователю бейджей
func (r *BadgeRepo) GetUserBadgeIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&entity.UserBadge{}).
		Where("user_id = ?", userID).
		Pluck("badge_id", &ids).Error
	return ids, err
}

// Award записывает выданные бейджи одной пакетной вставкой.
// Конфликт по уникальной паре (user_id, badge_id) игнорируется:
// выданный бейдж не выдается повторно.
func (r *BadgeRepo) Award(userID uint, badgeIDs []uint, awardedAt time.Time) error {
	if len(badgeIDs) == 0 {
		return nil
	}

	records := make([]entity.UserBadge, len(badgeIDs))
	for i, badgeID := range badgeIDs {
		records[i] = entity.UserBadge{
			UserID:    userID,
			BadgeID:   badgeID,
			AwardedAt: awardedAt,
		}
	}

	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&records).Error
}
