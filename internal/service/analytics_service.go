package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
	"github.com/yourusername/quizhub-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizhub-api/internal/pkg/errors"
)

// QuizStats содержит агрегаты по одной викторине
type QuizStats struct {
	QuizID         uint             `json:"quiz_id"`
	Participants   int              `json:"participants"`
	Attempts       int              `json:"attempts"`
	AveragePercent float64          `json:"average_percent"`
	ReportCounts   map[string]int64 `json:"report_counts"`
}

// TimePoint представляет значение метрики на календарный день
type TimePoint struct {
	Day   string `json:"day"` // формат YYYY-MM-DD
	Value int    `json:"value"`
}

// AnalyticsService предоставляет агрегаты по викторинам для их авторов
type AnalyticsService struct {
	resultRepo repository.ResultRepository
	quizRepo   repository.QuizRepository
	reportRepo repository.ReportRepository
}

// NewAnalyticsService создает новый сервис аналитики
func NewAnalyticsService(
	resultRepo repository.ResultRepository,
	quizRepo repository.QuizRepository,
	reportRepo repository.ReportRepository,
) *AnalyticsService {
	return &AnalyticsService{
		resultRepo: resultRepo,
		quizRepo:   quizRepo,
		reportRepo: reportRepo,
	}
}

// GetQuizStats возвращает агрегаты викторины. Доступно только автору.
func (s *AnalyticsService) GetQuizStats(quizID, requesterID uint) (*QuizStats, error) {
	results, err := s.loadOwnResults(quizID, requesterID)
	if err != nil {
		return nil, err
	}

	participants := make(map[uint]bool, len(results))
	var percentSum float64
	for i := range results {
		participants[results[i].UserID] = true
		percentSum = percentSum + results[i].PercentScore()
	}

	var avgPercent float64
	if len(results) > 0 {
		avgPercent = percentSum / float64(len(results))
	}

	reportCounts, err := s.reportRepo.CountByStatusForQuiz(quizID)
	if err != nil {
		return nil, err
	}

	return &QuizStats{
		QuizID:         quizID,
		Participants:   len(participants),
		Attempts:       len(results),
		AveragePercent: avgPercent,
		ReportCounts:   reportCounts,
	}, nil
}

// GetParticipantGrowth возвращает накопительное число различных участников
// по дням. Доступно только автору викторины.
func (s *AnalyticsService) GetParticipantGrowth(quizID, requesterID uint) ([]TimePoint, error) {
	results, err := s.loadOwnResults(quizID, requesterID)
	if err != nil {
		return nil, err
	}

	// Первая попытка каждого участника определяет его день появления
	firstSeen := make(map[uint]string, len(results))
	for i := range results {
		userID := results[i].UserID
		day := results[i].AttemptedAt.Format("2006-01-02")
		if existing, ok := firstSeen[userID]; !ok || day < existing {
			firstSeen[userID] = day
		}
	}

	newPerDay := make(map[string]int, len(firstSeen))
	for _, day := range firstSeen {
		newPerDay[day]++
	}

	points := sortedPoints(newPerDay)
	cumulative := 0
	for i := range points {
		cumulative += points[i].Value
		points[i].Value = cumulative
	}
	return points, nil
}

// GetAttemptsOverTime возвращает количество попыток по дням.
// Доступно только автору викторины.
func (s *AnalyticsService) GetAttemptsOverTime(quizID, requesterID uint) ([]TimePoint, error) {
	results, err := s.loadOwnResults(quizID, requesterID)
	if err != nil {
		return nil, err
	}

	perDay := make(map[string]int, len(results))
	for i := range results {
		perDay[results[i].AttemptedAt.Format("2006-01-02")]++
	}
	return sortedPoints(perDay), nil
}

// ExportQuizResults формирует XLSX-отчет с результатами викторины.
// Доступно автору викторины и администраторам.
func (s *AnalyticsService) ExportQuizResults(quizID uint, requester *entity.User) (*excelize.File, error) {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return nil, err
	}
	if quiz.CreatedBy != requester.ID && !requester.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	results, err := s.resultRepo.GetQuizResults(quizID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{"User ID", "Username", "Score", "Total", "Percent", "Time (sec)", "Attempted At"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for rowIdx := range results {
		r := &results[rowIdx]
		values := []interface{}{
			r.UserID,
			r.Username,
			r.Score,
			r.Total,
			fmt.Sprintf("%.1f%%", r.PercentScore()),
			r.TimeTakenSec,
			r.AttemptedAt.Format(time.RFC3339),
		}
		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("failed to build cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	return f, nil
}

// loadOwnResults загружает результаты викторины с проверкой авторства
func (s *AnalyticsService) loadOwnResults(quizID, requesterID uint) ([]entity.Result, error) {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return nil, err
	}
	if quiz.CreatedBy != requesterID {
		return nil, apperrors.ErrForbidden
	}
	return s.resultRepo.GetQuizResults(quizID)
}

// sortedPoints превращает карту день→значение в отсортированный ряд
func sortedPoints(perDay map[string]int) []TimePoint {
	points := make([]TimePoint, 0, len(perDay))
	for day, value := range perDay {
		points = append(points, TimePoint{Day: day, Value: value})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Day < points[j].Day })
	return points
}
