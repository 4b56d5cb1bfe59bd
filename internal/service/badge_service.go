package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
	"github.com/yourusername/quizhub-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizhub-api/internal/pkg/errors"
	"github.com/yourusername/quizhub-api/internal/service/gamification"
)

// BadgeService оборачивает движок геймификации: загружает состояние
// пользователя, прогоняет движок и сохраняет результат
type BadgeService struct {
	badgeRepo  repository.BadgeRepository
	userRepo   repository.UserRepository
	resultRepo repository.ResultRepository
}

// NewBadgeService создает новый сервис бейджей
func NewBadgeService(
	badgeRepo repository.BadgeRepository,
	userRepo repository.UserRepository,
	resultRepo repository.ResultRepository,
) *BadgeService {
	return &BadgeService{
		badgeRepo:  badgeRepo,
		userRepo:   userRepo,
		resultRepo: resultRepo,
	}
}

// ListBadges возвращает весь каталог бейджей
func (s *BadgeService) ListBadges() ([]entity.Badge, error) {
	return s.badgeRepo.List()
}

// GetUserBadges возвращает бейджи пользователя
func (s *BadgeService) GetUserBadges(userID uint) ([]entity.Badge, error) {
	return s.badgeRepo.GetUserBadges(userID)
}

// ProcessQuizCompletion обновляет серию активности и выдает заслуженные
// бейджи после записанной попытки. Несуществующий пользователь — no-op.
// Возвращает список выданных бейджей в порядке каталога.
func (s *BadgeService) ProcessQuizCompletion(userID uint, result *entity.Result, now time.Time) ([]entity.Badge, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Пользователь удален между попыткой и обработкой: тихий no-op
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}

	// Обновляем серию активности
	newStreak, lastDay := gamification.UpdateStreak(user.QuizStreak, user.LastQuizDate, now)
	if err := s.userRepo.UpdateStreak(userID, newStreak, lastDay); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update streak for user %d: %w", userID, err)
	}

	// Собираем входные данные движка
	catalog, err := s.badgeRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to load badge catalog: %w", err)
	}

	earnedIDs, err := s.badgeRepo.GetUserBadgeIDs(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load earned badges for user %d: %w", userID, err)
	}

	history, err := s.resultRepo.GetUserResults(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load result history for user %d: %w", userID, err)
	}

	awarded := gamification.EvaluateBadges(gamification.EvaluationInput{
		QuizID:         result.QuizID,
		Score:          result.Score,
		Total:          result.Total,
		TimeTakenSec:   result.TimeTakenSec,
		QuizStreak:     newStreak,
		EarnedBadgeIDs: earnedIDs,
		Catalog:        catalog,
		History:        history,
	})

	if len(awarded) == 0 {
		return nil, nil
	}

	// Сохраняем выдачу одной пакетной записью
	badgeIDs := make([]uint, len(awarded))
	for i, b := range awarded {
		badgeIDs[i] = b.ID
	}
	if err := s.badgeRepo.Award(userID, badgeIDs, now); err != nil {
		return nil, fmt.Errorf("failed to award badges for user %d: %w", userID, err)
	}

	log.Printf("[BadgeService] Пользователю %d выдано бейджей: %d", userID, len(awarded))
	return awarded, nil
}

// SeedDefaultBadges наполняет каталог предустановленным набором бейджей.
// Существующие записи не перетираются.
func (s *BadgeService) SeedDefaultBadges() error {
	defaults := []entity.Badge{
		{
			Name:         "First Quiz",
			Description:  "Completed your very first quiz",
			Icon:         "🎯",
			CriteriaType: entity.CriteriaFirstQuiz,
		},
		{
			Name:         "Perfect Score",
			Description:  "Answered every question correctly",
			Icon:         "💯",
			CriteriaType: entity.CriteriaPerfectScore,
		},
		{
			Name:          "Quiz Master",
			Description:   "Completed 10 different quizzes",
			Icon:          "🏆",
			CriteriaType:  entity.CriteriaQuizMaster,
			CriteriaValue: gamification.DefaultQuizMasterThreshold,
		},
		{
			Name:          "Speed Demon",
			Description:   "Finished a quiz in under 5 minutes",
			Icon:          "⚡",
			CriteriaType:  entity.CriteriaSpeedDemon,
			CriteriaValue: gamification.DefaultSpeedDemonMaxSec,
		},
		{
			Name:          "Streak Master",
			Description:   "Played quizzes 7 days in a row",
			Icon:          "🔥",
			CriteriaType:  entity.CriteriaStreakMaster,
			CriteriaValue: gamification.DefaultStreakMasterDays,
		},
	}

	for i := range defaults {
		if err := s.badgeRepo.UpsertByName(&defaults[i]); err != nil {
			return fmt.Errorf("failed to seed badge %q: %w", defaults[i].Name, err)
		}
	}

	log.Printf("[BadgeService] Каталог бейджей инициализирован: %d записей", len(defaults))
	return nil
}
