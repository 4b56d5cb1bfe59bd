package service

import (
	"fmt"
	"log"
	"time"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
	"github.com/yourusername/quizhub-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizhub-api/internal/pkg/errors"
)

// SubmissionOutcome содержит результат прохождения и выданные бейджи
type SubmissionOutcome struct {
	Result        *entity.Result `json:"result"`
	AwardedBadges []entity.Badge `json:"awarded_badges"`
}

// ResultService предоставляет методы для прохождения викторин и чтения
// истории результатов
type ResultService struct {
	resultRepo   repository.ResultRepository
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	userRepo     repository.UserRepository
	badgeService *BadgeService
}

// NewResultService создает новый сервис результатов
func NewResultService(
	resultRepo repository.ResultRepository,
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	userRepo repository.UserRepository,
	badgeService *BadgeService,
) *ResultService {
	return &ResultService{
		resultRepo:   resultRepo,
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		userRepo:     userRepo,
		badgeService: badgeService,
	}
}

// SubmitQuiz принимает ответы пользователя, считает балл на сервере,
// сохраняет результат и запускает обновление серии и выдачу бейджей.
// Сбой геймификации не блокирует сохранение результата: клиент получает
// результат с пустым списком бейджей.
func (s *ResultService) SubmitQuiz(userID, quizID uint, answers []int, timeTakenSec int) (*SubmissionOutcome, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if _, err := s.quizRepo.GetByID(quizID); err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.GetByQuizID(quizID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: quiz has no questions", apperrors.ErrValidation)
	}
	if len(answers) != len(questions) {
		return nil, fmt.Errorf("%w: expected %d answers, got %d", apperrors.ErrValidation, len(questions), len(answers))
	}
	if timeTakenSec < 0 {
		return nil, fmt.Errorf("%w: time taken cannot be negative", apperrors.ErrValidation)
	}

	// Балл считается только на сервере, ответы клиента не доверяются
	score := 0
	for i := range questions {
		if questions[i].IsCorrect(answers[i]) {
			score++
		}
	}

	now := time.Now()
	result := &entity.Result{
		UserID:       userID,
		QuizID:       quizID,
		Username:     user.Username,
		Score:        score,
		Total:        len(questions),
		TimeTakenSec: timeTakenSec,
		AttemptedAt:  now,
	}

	if err := s.resultRepo.Save(result); err != nil {
		return nil, fmt.Errorf("failed to save result: %w", err)
	}

	// Геймификация работает в режиме best-effort
	awarded, err := s.badgeService.ProcessQuizCompletion(userID, result, now)
	if err != nil {
		log.Printf("[ResultService] Геймификация недоступна для пользователя %d: %v", userID, err)
		awarded = nil
	}
	if awarded == nil {
		awarded = []entity.Badge{}
	}

	return &SubmissionOutcome{
		Result:        result,
		AwardedBadges: awarded,
	}, nil
}

// GetUserResults возвращает страницу попыток пользователя от новых к старым
func (s *ResultService) GetUserResults(userID uint, limit, offset int) ([]entity.Result, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.resultRepo.GetUserResultsPage(userID, limit, offset)
}

// GetQuizResults возвращает все результаты викторины
func (s *ResultService) GetQuizResults(quizID uint) ([]entity.Result, error) {
	if _, err := s.quizRepo.GetByID(quizID); err != nil {
		return nil, err
	}
	return s.resultRepo.GetQuizResults(quizID)
}
