package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
)

// ResultRepo реализует repository.ResultRepository
type ResultRepo struct {
	db *gorm.DB
}

// NewResultRepo создает новый репозиторий результатов
func NewResultRepo(db *gorm.DB) *ResultRepo {
	return &ResultRepo{db: db}
}

// Save сохраняет результат прохождения викторины
func (r *ResultRepo) Save(result *entity.Result) error {
	return r.db.Create(result).Error
}

// GetUserResults возвращает всю историю попыток пользователя
func (r *ResultRepo) GetUserResults(userID uint) ([]entity.Result, error) {
	var results []entity.Result
	err := r.db.Where("user_id = ?", userID).
		Order("attempted_at ASC").
		Find(&results).Error
	return results, err
}

// GetUserResultsPage возвращает страницу попыток пользователя от новых к старым
func (r *ResultRepo) GetUserResultsPage(userID uint, limit, offset int) ([]entity.Result, error) {
	var results []entity.Result
	err := r.db.Where("user_id = ?", userID).
		Order("attempted_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&results).Error
	return results, err
}

// GetQuizResults возвращает все результаты викторины от старых к новым
func (r *ResultRepo) GetQuizResults(quizID uint) ([]entity.Result, error) {
	var results []entity.Result
	err := r.db.Where("quiz_id = ?", quizID).
		Order("attempted_at ASC").
		Find(&results).Error
	return results, err
}

// CountByUser возвращает количество попыток пользователя
func (r *ResultRepo) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.Result{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
