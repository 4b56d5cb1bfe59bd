package postgres

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/yourusername/quizhub-api/internal/domain/entity"
	"github.com/yourusername/quizhub-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizhub-api/internal/pkg/errors"
)

// UserRepo реализует repository.UserRepository
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo создает новый репозиторий пользователей
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create создает нового пользователя
func (r *UserRepo) Create(user *entity.User) error {
	err := r.db.Create(user).Error
	if err != nil {
		// Гонка одновременных регистраций доходит до уникального индекса
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email or username already taken", apperrors.ErrConflict)
		}
		return err
	}
	return nil
}

// isUniqueViolation проверяет Postgres unique violation (23505) для pgconn и lib/pq драйверов
func isUniqueViolation(err error) bool {
	// pgx/v5 driver (pgconn.PgError)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// lib/pq driver
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return false
}

// GetByID возвращает пользователя по ID
func (r *UserRepo) GetByID(id uint) (*entity.User, error) {
	var user entity.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail возвращает пользователя по email
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	var user entity.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByUsername возвращает пользователя по имени пользователя
func (r *UserRepo) GetByUsername(username string) (*entity.User, error) {
	var user entity.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Update обновляет информацию о пользователе
func (r *UserRepo) Update(user *entity.User) error {
	return r.db.Save(user).Error
}

// UpdateProfile обновляет профиль пользователя без изменения пароля
// Этот метод обновляет только указанные поля, не затрагивая пароль
func (r *UserRepo) UpdateProfile(userID uint, updates map[string]interface{}) error {
	// Проверяем, что не пытаемся обновить пароль через этот метод
	delete(updates, "password")

	// Устанавливаем время обновления
	updates["updated_at"] = time.Now()

	err := r.db.Model(&entity.User{}).Where("id = ?", userID).Updates(updates).Error
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username already taken", apperrors.ErrConflict)
		}
		return err
	}
	return nil
}

// UpdateStreak точечно обновляет серию активности пользователя
func (r *UserRepo) UpdateStreak(userID uint, streak int, lastQuizDate time.Time) error {
	result := r.db.Model(&entity.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"quiz_streak":    streak,
			"last_quiz_date": lastQuizDate,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// List возвращает список пользователей с пагинацией
func (r *UserRepo) List(limit, offset int) ([]entity.User, error) {
	var users []entity.User
	err := r.db.Limit(limit).Offset(offset).Order("id").Find(&users).Error
	return users, err
}

// Search возвращает пользователей для экрана поиска, исключая excludeID.
// Сортировка: по количеству подписчиков, имени или дате регистрации.
func (r *UserRepo) Search(excludeID uint, filters repository.UserSearchFilters) ([]entity.User, error) {
	query := r.db.Model(&entity.User{}).Where("id <> ?", excludeID)

	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where("username ILIKE ? OR email ILIKE ?", pattern, pattern)
	}

	switch filters.SortBy {
	case "name":
		query = query.Order("username ASC")
	case "recent":
		query = query.Order("created_at DESC")
	default:
		// По умолчанию — по популярности (количеству подписчиков)
		query = query.
			Joins("LEFT JOIN follows ON follows.followee_id = users.id").
			Group("users.id").
			Order("COUNT(follows.id) DESC, users.id ASC")
	}

	limit := filters.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var users []entity.User
	err := query.Limit(limit).Find(&users).Error
	return users, err
}

// GetLeaderboard возвращает строки лидерборда с пагинацией и общим количеством,
// отсортированные по числу бейджей, затем по длине серии.
func (r *UserRepo) GetLeaderboard(limit, offset int) ([]repository.LeaderboardRow, int64, error) {
	var rows []repository.LeaderboardRow
	var total int64

	// Используем транзакцию для согласованности чтения данных и общего количества
	tx := r.db.Begin()
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
		}
	}()
	if tx.Error != nil {
		return nil, 0, tx.Error
	}

	if err := tx.Model(&entity.User{}).Count(&total).Error; err != nil {
		tx.Rollback()
		return nil, 0, err
	}

	err := tx.Model(&entity.User{}).
		Select("users.id AS user_id, users.username, users.avatar, COUNT(user_badges.id) AS badge_count, users.quiz_streak").
		Joins("LEFT JOIN user_badges ON user_badges.user_id = users.id").
		Group("users.id").
		Order("badge_count DESC, users.quiz_streak DESC, users.id ASC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		tx.Rollback()
		return nil, 0, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}
