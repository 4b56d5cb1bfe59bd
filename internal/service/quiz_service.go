package service

import (
	"fmt"
	"strings"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
	"github.com/yourusername/quizhub-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizhub-api/internal/pkg/errors"
)

// QuizService предоставляет методы для создания и чтения викторин
type QuizService struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	keywords     *KeywordService
}

// NewQuizService создает новый сервис викторин
func NewQuizService(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	keywords *KeywordService,
) *QuizService {
	return &QuizService{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		keywords:     keywords,
	}
}

// CreateQuiz создает новую викторину. Название и описание проходят
// фильтрацию запрещенных слов.
func (s *QuizService) CreateQuiz(creatorID uint, title, description string) (*entity.Quiz, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	}

	quiz := &entity.Quiz{
		Title:       s.keywords.FilterText(title),
		Description: s.keywords.FilterText(strings.TrimSpace(description)),
		CreatedBy:   creatorID,
	}

	if err := s.quizRepo.Create(quiz); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	return quiz, nil
}

// GetQuizByID возвращает викторину по ID
func (s *QuizService) GetQuizByID(quizID uint) (*entity.Quiz, error) {
	return s.quizRepo.GetByID(quizID)
}

// GetQuizWithQuestions возвращает викторину вместе с вопросами.
// Для всех, кроме автора, правильные ответы скрываются.
func (s *QuizService) GetQuizWithQuestions(quizID, requesterID uint) (*entity.Quiz, error) {
	quiz, err := s.quizRepo.GetWithQuestions(quizID)
	if err != nil {
		return nil, err
	}

	if quiz.CreatedBy != requesterID {
		for i := range quiz.Questions {
			quiz.Questions[i].Options = hideCorrectFlags(quiz.Questions[i].Options)
		}
	}

	return quiz, nil
}

// hideCorrectFlags сбрасывает флаги правильности, не изменяя исходный срез
func hideCorrectFlags(options entity.OptionArray) entity.OptionArray {
	hidden := make(entity.OptionArray, len(options))
	for i, opt := range options {
		hidden[i] = opt
		hidden[i].IsCorrect = false
	}
	return hidden
}

// ListQuizzes возвращает викторины с пагинацией
func (s *QuizService) ListQuizzes(limit, offset int) ([]entity.Quiz, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.quizRepo.List(limit, offset)
}

// ListByCreator возвращает викторины, созданные пользователем
func (s *QuizService) ListByCreator(creatorID uint) ([]entity.Quiz, error) {
	return s.quizRepo.ListByCreator(creatorID)
}

// AddQuestion добавляет вопрос к викторине. Текст вопроса и варианты
// ответов фильтруются, исходный текст сохраняется для модерации.
// Добавлять вопросы может только автор викторины.
func (s *QuizService) AddQuestion(quizID, requesterID uint, text string, options []entity.QuestionOption) (*entity.Question, error) {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return nil, err
	}
	if quiz.CreatedBy != requesterID {
		return nil, apperrors.ErrForbidden
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: question text is required", apperrors.ErrValidation)
	}
	if len(options) < 2 {
		return nil, fmt.Errorf("%w: at least two options are required", apperrors.ErrValidation)
	}

	correctCount := 0
	for _, opt := range options {
		if strings.TrimSpace(opt.OptionText) == "" {
			return nil, fmt.Errorf("%w: option text cannot be empty", apperrors.ErrValidation)
		}
		if opt.IsCorrect {
			correctCount++
		}
	}
	if correctCount != 1 {
		return nil, fmt.Errorf("%w: exactly one option must be correct", apperrors.ErrValidation)
	}

	question := &entity.Question{
		QuizID:       quizID,
		Text:         s.keywords.FilterText(text),
		OriginalText: text,
		Options:      entity.OptionArray(s.keywords.FilterOptions(options)),
	}

	if err := s.questionRepo.Create(question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	return question, nil
}

// GetQuestions возвращает вопросы викторины.
// Для всех, кроме автора, правильные ответы скрываются.
func (s *QuizService) GetQuestions(quizID, requesterID uint) ([]entity.Question, error) {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.GetByQuizID(quizID)
	if err != nil {
		return nil, err
	}

	if quiz.CreatedBy != requesterID {
		for i := range questions {
			questions[i].Options = hideCorrectFlags(questions[i].Options)
		}
	}

	return questions, nil
}

// DeleteQuiz удаляет викторину. Удалять может только автор или администратор.
func (s *QuizService) DeleteQuiz(quizID uint, requester *entity.User) error {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return err
	}
	if quiz.CreatedBy != requester.ID && !requester.IsAdmin() {
		return apperrors.ErrForbidden
	}
	return s.quizRepo.Delete(quizID)
}
