package postgres

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizhub-api/internal/pkg/errors"
)

// FollowRepo реализует repository.FollowRepository
type FollowRepo struct {
	db *gorm.DB
}

// NewFollowRepo создает новый репозиторий подписок
func NewFollowRepo(db *gorm.DB) *FollowRepo {
	return &FollowRepo{db: db}
}

// Follow добавляет подписку; повторная подписка не является ошибкой
func (r *FollowRepo) Follow(followerID, followeeID uint) error {
	follow := entity.Follow{FollowerID: followerID, FolloweeID: followeeID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow).Error
}

// Unfollow удаляет подписку
func (r *FollowRepo) Unfollow(followerID, followeeID uint) error {
	result := r.db.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&entity.Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// IsFollowing проверяет, подписан ли follower на followee
func (r *FollowRepo) IsFollowing(followerID, followeeID uint) (bool, error) {
	var follow entity.Follow
	err := r.db.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		First(&follow).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// IsMutual проверяет взаимную подписку двух пользователей
func (r *FollowRepo) IsMutual(userA, userB uint) (bool, error) {
	var count int64
	err := r.db.Model(&entity.Follow{}).
		Where("(follower_id = ? AND followee_id = ?) OR (follower_id = ? AND followee_id = ?)",
			userA, userB, userB, userA).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == 2, nil
}

// GetFollowers возвращает подписчиков пользователя
func (r *FollowRepo) GetFollowers(userID uint) ([]entity.User, error) {
	var users []entity.User
	err := r.db.Model(&entity.User{}).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followee_id = ?", userID).
		Order("users.username").
		Find(&users).Error
	return users, err
}

// GetFollowing возвращает пользователей, на которых подписан данный
func (r *FollowRepo) GetFollowing(userID uint) ([]entity.User, error) {
	var users []entity.User
	err := r.db.Model(&entity.User{}).
		Joins("JOIN follows ON follows.followee_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("users.username").
		Find(&users).Error
	return users, err
}

// CountFollowers возвращает количество подписчиков
func (r *FollowRepo) CountFollowers(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.Follow{}).Where("followee_id = ?", userID).Count(&count).Error
	return count, err
}

// CountFollowing возвращает количество подписок
func (r *FollowRepo) CountFollowing(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}

// GetFollowingIDs возвращает ID пользователей, на которых подписан данный
func (r *FollowRepo) GetFollowingIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&entity.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("followee_id", &ids).Error
	return ids, err
}
