package service

import (
	"fmt"
	"strings"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
	"github.com/yourusername/quizhub-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizhub-api/internal/pkg/errors"
)

// ProfileStats содержит агрегаты профиля пользователя
type ProfileStats struct {
	QuizzesTaken   int64           `json:"quizzes_taken"`
	QuizzesCreated int             `json:"quizzes_created"`
	AveragePercent float64         `json:"average_percent"`
	BadgeCount     int             `json:"badge_count"`
	Followers      int64           `json:"followers"`
	Following      int64           `json:"following"`
	QuizStreak     int             `json:"quiz_streak"`
	RecentResults  []entity.Result `json:"recent_results"`
}

// Количество последних результатов в профиле
const recentResultsLimit = 5

// UserService предоставляет методы для работы с профилями и подписками
type UserService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	resultRepo repository.ResultRepository
	quizRepo   repository.QuizRepository
	badgeRepo  repository.BadgeRepository
	keywords   *KeywordService
}

// NewUserService создает новый сервис пользователей
func NewUserService(
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	resultRepo repository.ResultRepository,
	quizRepo repository.QuizRepository,
	badgeRepo repository.BadgeRepository,
	keywords *KeywordService,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		followRepo: followRepo,
		resultRepo: resultRepo,
		quizRepo:   quizRepo,
		badgeRepo:  badgeRepo,
		keywords:   keywords,
	}
}

// GetUserByID возвращает пользователя по ID
func (s *UserService) GetUserByID(id uint) (*entity.User, error) {
	return s.userRepo.GetByID(id)
}

// GetProfileStats возвращает агрегаты профиля
func (s *UserService) GetProfileStats(userID uint) (*ProfileStats, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	history, err := s.resultRepo.GetUserResults(userID)
	if err != nil {
		return nil, err
	}

	// Средний процент считается по всей истории попыток
	var percentSum float64
	for i := range history {
		percentSum = percentSum + history[i].PercentScore()
	}
	var avgPercent float64
	if len(history) > 0 {
		avgPercent = percentSum / float64(len(history))
	}

	recent, err := s.resultRepo.GetUserResultsPage(userID, recentResultsLimit, 0)
	if err != nil {
		return nil, err
	}

	created, err := s.quizRepo.ListByCreator(userID)
	if err != nil {
		return nil, err
	}

	badgeIDs, err := s.badgeRepo.GetUserBadgeIDs(userID)
	if err != nil {
		return nil, err
	}

	followers, err := s.followRepo.CountFollowers(userID)
	if err != nil {
		return nil, err
	}

	following, err := s.followRepo.CountFollowing(userID)
	if err != nil {
		return nil, err
	}

	return &ProfileStats{
		QuizzesTaken:   int64(len(history)),
		QuizzesCreated: len(created),
		AveragePercent: avgPercent,
		BadgeCount:     len(badgeIDs),
		Followers:      followers,
		Following:      following,
		QuizStreak:     user.QuizStreak,
		RecentResults:  recent,
	}, nil
}

// UpdateProfile обновляет поля профиля пользователя.
// Имя пользователя и биография проходят фильтрацию запрещенных слов.
func (s *UserService) UpdateProfile(userID uint, updates map[string]interface{}) (*entity.User, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, err
	}

	// Разрешенные к изменению поля
	allowed := map[string]bool{"username": true, "avatar": true, "bio": true}
	sanitized := make(map[string]interface{}, len(updates))
	for k, v := range updates {
		if allowed[k] {
			sanitized[k] = v
		}
	}
	if len(sanitized) == 0 {
		return nil, apperrors.ErrValidation
	}

	if username, ok := sanitized["username"].(string); ok {
		username = strings.TrimSpace(username)
		if username == "" {
			return nil, apperrors.ErrValidation
		}
		sanitized["username"] = username
	}

	// Текстовые поля профиля фильтруются до записи
	sanitized = s.keywords.FilterFields(sanitized, []string{"username", "bio"})

	if err := s.userRepo.UpdateProfile(userID, sanitized); err != nil {
		return nil, fmt.Errorf("failed to update profile for user %d: %w", userID, err)
	}

	return s.userRepo.GetByID(userID)
}

// Follow подписывает пользователя на другого пользователя
func (s *UserService) Follow(followerID, followeeID uint) error {
	if followerID == followeeID {
		return fmt.Errorf("%w: cannot follow yourself", apperrors.ErrValidation)
	}
	if _, err := s.userRepo.GetByID(followeeID); err != nil {
		return err
	}
	return s.followRepo.Follow(followerID, followeeID)
}

// Unfollow отписывает пользователя
func (s *UserService) Unfollow(followerID, followeeID uint) error {
	return s.followRepo.Unfollow(followerID, followeeID)
}

// RemoveFollower удаляет подписчика пользователя
func (s *UserService) RemoveFollower(userID, followerID uint) error {
	return s.followRepo.Unfollow(followerID, userID)
}

// GetFollowers возвращает подписчиков пользователя
func (s *UserService) GetFollowers(userID uint) ([]entity.User, error) {
	return s.followRepo.GetFollowers(userID)
}

// GetFollowing возвращает подписки пользователя
func (s *UserService) GetFollowing(userID uint) ([]entity.User, error) {
	return s.followRepo.GetFollowing(userID)
}

// IsMutualFollow проверяет взаимную подписку
func (s *UserService) IsMutualFollow(userA, userB uint) (bool, error) {
	return s.followRepo.IsMutual(userA, userB)
}

// DiscoverUserRow представляет пользователя на экране поиска с флагом подписки
type DiscoverUserRow struct {
	User        entity.User `json:"user"`
	IsFollowing bool        `json:"is_following"`
}

// DiscoverUsers возвращает пользователей для экрана поиска, исключая
// самого искателя, с отметкой уже существующих подписок
func (s *UserService) DiscoverUsers(searcherID uint, filters repository.UserSearchFilters) ([]DiscoverUserRow, error) {
	users, err := s.userRepo.Search(searcherID, filters)
	if err != nil {
		return nil, err
	}

	followingIDs, err := s.followRepo.GetFollowingIDs(searcherID)
	if err != nil {
		return nil, err
	}
	following := make(map[uint]bool, len(followingIDs))
	for _, id := range followingIDs {
		following[id] = true
	}

	rows := make([]DiscoverUserRow, len(users))
	for i, u := range users {
		rows[i] = DiscoverUserRow{User: u, IsFollowing: following[u.ID]}
	}
	return rows, nil
}

// GetLeaderboard возвращает строки лидерборда с пагинацией
func (s *UserService) GetLeaderboard(limit, offset int) ([]repository.LeaderboardRow, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.userRepo.GetLeaderboard(limit, offset)
}
