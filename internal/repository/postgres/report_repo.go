package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizhub-api/internal/pkg/errors"
)

// ReportRepo реализует repository.ReportRepository
type ReportRepo struct {
	db *gorm.DB
}

// NewReportRepo создает новый репозиторий жалоб
func NewReportRepo(db *gorm.DB) *ReportRepo {
	return &ReportRepo{db: db}
}

// Create создает новую жалобу
func (r *ReportRepo) Create(report *entity.Report) error {
	return r.db.Create(report).Error
}

// GetByID возвращает жалобу по ID
func (r *ReportRepo) GetByID(id uint) (*entity.Report, error) {
	var report entity.Report
	err := r.db.First(&report, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

// HasPending проверяет, есть ли у пользователя нерассмотренная жалоба на вопрос
func (r *ReportRepo) HasPending(questionID, reportedBy uint) (bool, error) {
	var count int64
	err := r.db.Model(&entity.Report{}).
		Where("question_id = ? AND reported_by = ? AND status = ?",
			questionID, reportedBy, entity.ReportStatusPending).
		Count(&count).Error
	return count > 0, err
}

// ListForCreator возвращает жалобы на вопросы из викторин данного автора.
// Пустой status означает все статусы.
func (r *ReportRepo) ListForCreator(creatorID uint, status string) ([]entity.Report, error) {
	var reports []entity.Report
	query := r.db.Model(&entity.Report{}).
		Joins("JOIN questions ON questions.id = reports.question_id").
		Joins("JOIN quizzes ON quizzes.id = questions.quiz_id").
		Where("quizzes.created_by = ?", creatorID)
	if status != "" {
		query = query.Where("reports.status = ?", status)
	}
	err := query.Order("reports.created_at DESC").Find(&reports).Error
	return reports, err
}

// Update обновляет жалобу
func (r *ReportRepo) Update(report *entity.Report) error {
	return r.db.Save(report).Error
}

// CountByStatusForQuiz возвращает количество жалоб на вопросы викторины
// в разрезе статусов
func (r *ReportRepo) CountByStatusForQuiz(quizID uint) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var rows []statusCount
	err := r.db.Model(&entity.Report{}).
		Select("reports.status, COUNT(*) as count").
		Joins("JOIN questions ON questions.id = reports.question_id").
		Where("questions.quiz_id = ?", quizID).
		Group("reports.status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// ExpireOverdue переводит просроченные pending-жалобы в ignored
// и возвращает количество закрытых записей
func (r *ReportRepo) ExpireOverdue(now time.Time) (int64, error) {
	result := r.db.Model(&entity.Report{}).
		Where("status = ? AND expires_at < ?", entity.ReportStatusPending, now).
		Updates(map[string]interface{}{
			"status":      entity.ReportStatusIgnored,
			"resolved_at": now,
		})
	return result.RowsAffected, result.Error
}
