package repository

import (
	"github.com/yourusername/quizhub-api/internal/domain/entity"
)

// FollowRepository определяет методы для работы с подписками пользователей
type FollowRepository interface {
	Follow(followerID, followeeID uint) error
	Unfollow(followerID, followeeID uint) error
	IsFollowing(followerID, followeeID uint) (bool, error)
	// IsMutual проверяет взаимную подписку двух пользователей
	IsMutual(userA, userB uint) (bool, error)
	GetFollowers(userID uint) ([]entity.User, error)
	GetFollowing(userID uint) ([]entity.User, error)
	CountFollowers(userID uint) (int64, error)
	CountFollowing(userID uint) (int64, error)
	// GetFollowingIDs возвращает множество ID, на которые подписан пользователь
	GetFollowingIDs(userID uint) ([]uint, error)
}
