package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
	"github.com/yourusername/quizhub-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizhub-api/internal/pkg/errors"
)

// ReportService предоставляет методы для жалоб на вопросы и их рассмотрения
// авторами викторин
type ReportService struct {
	reportRepo   repository.ReportRepository
	questionRepo repository.QuestionRepository
	quizRepo     repository.QuizRepository
	keywords     *KeywordService
}

// NewReportService создает новый сервис жалоб
func NewReportService(
	reportRepo repository.ReportRepository,
	questionRepo repository.QuestionRepository,
	quizRepo repository.QuizRepository,
	keywords *KeywordService,
) *ReportService {
	return &ReportService{
		reportRepo:   reportRepo,
		questionRepo: questionRepo,
		quizRepo:     quizRepo,
		keywords:     keywords,
	}
}

// CreateReport создает жалобу на вопрос. Повторная нерассмотренная жалоба
// того же пользователя на тот же вопрос отклоняется.
func (s *ReportService) CreateReport(questionID, reportedBy uint, reason string) (*entity.Report, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", apperrors.ErrValidation)
	}

	if _, err := s.questionRepo.GetByID(questionID); err != nil {
		return nil, err
	}

	pending, err := s.reportRepo.HasPending(questionID, reportedBy)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, fmt.Errorf("%w: report already pending for this question", apperrors.ErrConflict)
	}

	now := time.Now()
	report := &entity.Report{
		QuestionID: questionID,
		ReportedBy: reportedBy,
		Reason:     reason,
		Status:     entity.ReportStatusPending,
		ExpiresAt:  now.AddDate(0, 0, entity.ReportExpiryDays),
	}

	if err := s.reportRepo.Create(report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	if err := s.questionRepo.IncrementReportCount(questionID); err != nil {
		log.Printf("[ReportService] Не удалось увеличить счетчик жалоб вопроса %d: %v", questionID, err)
	}

	return report, nil
}

// ListReports возвращает жалобы на вопросы из викторин данного автора
func (s *ReportService) ListReports(creatorID uint, status string) ([]entity.Report, error) {
	switch status {
	case "", entity.ReportStatusPending, entity.ReportStatusIgnored,
		entity.ReportStatusFixed, entity.ReportStatusDeleted:
	default:
		return nil, fmt.Errorf("%w: unknown report status %q", apperrors.ErrValidation, status)
	}
	return s.reportRepo.ListForCreator(creatorID, status)
}

// FixQuestion заменяет текст вопроса по жалобе и закрывает ее со статусом
// fixed. Новый текст проходит фильтрацию запрещенных слов. Доступно только
// автору викторины.
func (s *ReportService) FixQuestion(reportID, requesterID uint, newText string) (*entity.Report, error) {
	newText = strings.TrimSpace(newText)
	if newText == "" {
		return nil, fmt.Errorf("%w: replacement text is required", apperrors.ErrValidation)
	}

	report, question, err := s.loadPendingReport(reportID, requesterID)
	if err != nil {
		return nil, err
	}

	question.Text = s.keywords.FilterText(newText)
	question.OriginalText = newText
	if err := s.questionRepo.Update(question); err != nil {
		return nil, fmt.Errorf("failed to update question %d: %w", question.ID, err)
	}

	return s.resolve(report, entity.ReportStatusFixed)
}

// IgnoreReport закрывает жалобу без изменений вопроса
func (s *ReportService) IgnoreReport(reportID, requesterID uint) (*entity.Report, error) {
	report, _, err := s.loadPendingReport(reportID, requesterID)
	if err != nil {
		return nil, err
	}
	return s.resolve(report, entity.ReportStatusIgnored)
}

// DeleteQuestion удаляет вопрос по жалобе и закрывает ее со статусом deleted
func (s *ReportService) DeleteQuestion(reportID, requesterID uint) (*entity.Report, error) {
	report, question, err := s.loadPendingReport(reportID, requesterID)
	if err != nil {
		return nil, err
	}

	if err := s.questionRepo.Delete(question.ID); err != nil {
		return nil, fmt.Errorf("failed to delete question %d: %w", question.ID, err)
	}

	return s.resolve(report, entity.ReportStatusDeleted)
}

// ExpireOverdue закрывает просроченные нерассмотренные жалобы.
// Вызывается фоновой горутиной по расписанию.
func (s *ReportService) ExpireOverdue() (int64, error) {
	expired, err := s.reportRepo.ExpireOverdue(time.Now())
	if err != nil {
		return 0, err
	}
	if expired > 0 {
		log.Printf("[ReportService] Автоматически закрыто просроченных жалоб: %d", expired)
	}
	return expired, nil
}

// loadPendingReport загружает жалобу и вопрос, проверяя статус жалобы
// и право автора викторины на рассмотрение
func (s *ReportService) loadPendingReport(reportID, requesterID uint) (*entity.Report, *entity.Question, error) {
	report, err := s.reportRepo.GetByID(reportID)
	if err != nil {
		return nil, nil, err
	}
	if !report.IsPending() {
		return nil, nil, fmt.Errorf("%w: report is already resolved", apperrors.ErrConflict)
	}

	question, err := s.questionRepo.GetByID(report.QuestionID)
	if err != nil {
		return nil, nil, err
	}

	quiz, err := s.quizRepo.GetByID(question.QuizID)
	if err != nil {
		return nil, nil, err
	}
	if quiz.CreatedBy != requesterID {
		return nil, nil, apperrors.ErrForbidden
	}

	return report, question, nil
}

// resolve закрывает жалобу с указанным статусом
func (s *ReportService) resolve(report *entity.Report, status string) (*entity.Report, error) {
	now := time.Now()
	report.Status = status
	report.ResolvedAt = &now
	if err := s.reportRepo.Update(report); err != nil {
		return nil, fmt.Errorf("failed to update report %d: %w", report.ID, err)
	}
	return report, nil
}
