package repository

import (
	"time"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
)

// UserSearchFilters определяет фильтры для поиска пользователей
type UserSearchFilters struct {
	Search string // Поиск по имени/email
	SortBy string // "followers", "name" или "recent"
	Limit  int
}

// LeaderboardRow представляет строку лидерборда с агрегатами по бейджам
type LeaderboardRow struct {
	UserID     uint   `json:"user_id"`
	Username   string `json:"username"`
	Avatar     string `json:"avatar"`
	BadgeCount int64  `json:"badge_count"`
	QuizStreak int    `json:"quiz_streak"`
}

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	Update(user *entity.User) error
	// UpdateProfile обновляет только указанные поля профиля, не затрагивая пароль
	UpdateProfile(userID uint, updates map[string]interface{}) error
	// UpdateStreak точечно обновляет серию активности без full Save
	UpdateStreak(userID uint, streak int, lastQuizDate time.Time) error
	List(limit, offset int) ([]entity.User, error)
	// Search возвращает пользователей для экрана поиска, исключая excludeID
	Search(excludeID uint, filters UserSearchFilters) ([]entity.User, error)
	// GetLeaderboard возвращает строки лидерборда с пагинацией и общим количеством
	GetLeaderboard(limit, offset int) ([]LeaderboardRow, int64, error)
}
