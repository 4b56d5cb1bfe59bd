package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizhub-api/internal/pkg/errors"
)

// ============================================================================
// Моки для ResultService
// ============================================================================

// MockQuizRepoForResultService реализует repository.QuizRepository
type MockQuizRepoForResultService struct {
	mock.Mock
}

func (m *MockQuizRepoForResultService) Create(quiz *entity.Quiz) error {
	args := m.Called(quiz)
	return args.Error(0)
}

func (m *MockQuizRepoForResultService) GetByID(id uint) (*entity.Quiz, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepoForResultService) GetWithQuestions(id uint) (*entity.Quiz, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepoForResultService) Update(quiz *entity.Quiz) error {
	args := m.Called(quiz)
	return args.Error(0)
}

func (m *MockQuizRepoForResultService) List(limit, offset int) ([]entity.Quiz, int64, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Quiz), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuizRepoForResultService) ListByCreator(creatorID uint) ([]entity.Quiz, error) {
	args := m.Called(creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Quiz), args.Error(1)
}

func (m *MockQuizRepoForResultService) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockQuestionRepoForResultService реализует repository.QuestionRepository
type MockQuestionRepoForResultService struct {
	mock.Mock
}

func (m *MockQuestionRepoForResultService) Create(question *entity.Question) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockQuestionRepoForResultService) GetByID(id uint) (*entity.Question, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepoForResultService) GetByQuizID(quizID uint) ([]entity.Question, error) {
	args := m.Called(quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepoForResultService) Update(question *entity.Question) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockQuestionRepoForResultService) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockQuestionRepoForResultService) IncrementReportCount(questionID uint) error {
	args := m.Called(questionID)
	return args.Error(0)
}

// testQuestions возвращает два вопроса с правильными ответами 0 и 1
func testQuestions() []entity.Question {
	return []entity.Question{
		{
			ID:     1,
			QuizID: 7,
			Text:   "2+2?",
			Options: entity.OptionArray{
				{OptionText: "4", IsCorrect: true},
				{OptionText: "5", IsCorrect: false},
			},
		},
		{
			ID:     2,
			QuizID: 7,
			Text:   "Capital of France?",
			Options: entity.OptionArray{
				{OptionText: "Berlin", IsCorrect: false},
				{OptionText: "Paris", IsCorrect: true},
			},
		},
	}
}

// ============================================================================
// Тесты для ResultService
// ============================================================================

func TestResultService_SubmitQuiz_ServerSideScoring(t *testing.T) {
	// Arrange
	mockResultRepo := new(MockResultRepoForBadgeService)
	mockQuizRepo := new(MockQuizRepoForResultService)
	mockQuestionRepo := new(MockQuestionRepoForResultService)
	mockUserRepo := new(MockUserRepoForBadgeService)
	mockBadgeRepo := new(MockBadgeRepo)

	user := &entity.User{ID: 42, Username: "player"}
	quiz := &entity.Quiz{ID: 7, Title: "Math", CreatedBy: 1}

	mockUserRepo.On("GetByID", uint(42)).Return(user, nil)
	mockQuizRepo.On("GetByID", uint(7)).Return(quiz, nil)
	mockQuestionRepo.On("GetByQuizID", uint(7)).Return(testQuestions(), nil)
	mockResultRepo.On("Save", mock.AnythingOfType("*entity.Result")).Return(nil)
	// Серия и каталог для геймификации
	mockUserRepo.On("UpdateStreak", uint(42), 1, mock.AnythingOfType("time.Time")).Return(nil)
	mockBadgeRepo.On("List").Return([]entity.Badge{}, nil)
	mockBadgeRepo.On("GetUserBadgeIDs", uint(42)).Return([]uint{}, nil)
	mockResultRepo.On("GetUserResults", uint(42)).Return([]entity.Result{}, nil)

	badgeService := NewBadgeService(mockBadgeRepo, mockUserRepo, mockResultRepo)
	resultService := NewResultService(mockResultRepo, mockQuizRepo, mockQuestionRepo, mockUserRepo, badgeService)

	// Act: первый ответ верный (индекс 0), второй неверный (индекс 0)
	outcome, err := resultService.SubmitQuiz(42, 7, []int{0, 0}, 90)

	// Assert
	require.NoError(t, err, "Прохождение должно быть успешным")
	assert.Equal(t, 1, outcome.Result.Score, "Балл считается на сервере")
	assert.Equal(t, 2, outcome.Result.Total)
	assert.Equal(t, "player", outcome.Result.Username)
	assert.NotNil(t, outcome.AwardedBadges)
	mockResultRepo.AssertExpectations(t)
}

func TestResultService_SubmitQuiz_AnswerCountMismatch(t *testing.T) {
	// Arrange
	mockResultRepo := new(MockResultRepoForBadgeService)
	mockQuizRepo := new(MockQuizRepoForResultService)
	mockQuestionRepo := new(MockQuestionRepoForResultService)
	mockUserRepo := new(MockUserRepoForBadgeService)

	mockUserRepo.On("GetByID", uint(42)).Return(&entity.User{ID: 42}, nil)
	mockQuizRepo.On("GetByID", uint(7)).Return(&entity.Quiz{ID: 7}, nil)
	mockQuestionRepo.On("GetByQuizID", uint(7)).Return(testQuestions(), nil)

	resultService := NewResultService(mockResultRepo, mockQuizRepo, mockQuestionRepo, mockUserRepo, nil)

	// Act: один ответ на два вопроса
	_, err := resultService.SubmitQuiz(42, 7, []int{0}, 90)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	mockResultRepo.AssertNotCalled(t, "Save", mock.Anything)
}

func TestResultService_SubmitQuiz_GamificationFailure_DoesNotBlock(t *testing.T) {
	// Тест: сбой геймификации не блокирует сохранение результата
	mockResultRepo := new(MockResultRepoForBadgeService)
	mockQuizRepo := new(MockQuizRepoForResultService)
	mockQuestionRepo := new(MockQuestionRepoForResultService)
	mockUserRepo := new(MockUserRepoForBadgeService)
	mockBadgeRepo := new(MockBadgeRepo)

	user := &entity.User{ID: 42, Username: "player"}
	mockUserRepo.On("GetByID", uint(42)).Return(user, nil)
	mockQuizRepo.On("GetByID", uint(7)).Return(&entity.Quiz{ID: 7}, nil)
	mockQuestionRepo.On("GetByQuizID", uint(7)).Return(testQuestions(), nil)
	mockResultRepo.On("Save", mock.AnythingOfType("*entity.Result")).Return(nil)
	mockUserRepo.On("UpdateStreak", uint(42), 1, mock.AnythingOfType("time.Time")).Return(nil)
	// Каталог бейджей недоступен
	mockBadgeRepo.On("List").Return(nil, errors.New("db down"))

	badgeService := NewBadgeService(mockBadgeRepo, mockUserRepo, mockResultRepo)
	resultService := NewResultService(mockResultRepo, mockQuizRepo, mockQuestionRepo, mockUserRepo, badgeService)

	// Act
	outcome, err := resultService.SubmitQuiz(42, 7, []int{0, 1}, 45)

	// Assert
	require.NoError(t, err, "Результат должен сохраниться несмотря на сбой геймификации")
	assert.Equal(t, 2, outcome.Result.Score)
	assert.Empty(t, outcome.AwardedBadges, "Список бейджей пуст при сбое")
	mockResultRepo.AssertExpectations(t)
}

func TestResultService_SubmitQuiz_NegativeTime(t *testing.T) {
	mockResultRepo := new(MockResultRepoForBadgeService)
	mockQuizRepo := new(MockQuizRepoForResultService)
	mockQuestionRepo := new(MockQuestionRepoForResultService)
	mockUserRepo := new(MockUserRepoForBadgeService)

	mockUserRepo.On("GetByID", uint(42)).Return(&entity.User{ID: 42}, nil)
	mockQuizRepo.On("GetByID", uint(7)).Return(&entity.Quiz{ID: 7}, nil)
	mockQuestionRepo.On("GetByQuizID", uint(7)).Return(testQuestions(), nil)

	resultService := NewResultService(mockResultRepo, mockQuizRepo, mockQuestionRepo, mockUserRepo, nil)

	_, err := resultService.SubmitQuiz(42, 7, []int{0, 1}, -5)

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestResultService_GetUserResults_PaginationDefaults(t *testing.T) {
	// Тест: невалидные параметры пагинации корректируются
	mockResultRepo := new(MockResultRepoForBadgeService)

	expected := []entity.Result{
		{ID: 1, UserID: 42, QuizID: 7, Score: 3, Total: 5, AttemptedAt: time.Now()},
	}
	mockResultRepo.On("GetUserResultsPage", uint(42), 20, 0).Return(expected, nil)

	resultService := NewResultService(mockResultRepo, nil, nil, nil, nil)

	// Act: limit=0 и offset=-1 корректируются до 20 и 0
	results, err := resultService.GetUserResults(42, 0, -1)

	// Assert
	require.NoError(t, err)
	assert.Len(t, results, 1)
	mockResultRepo.AssertExpectations(t)
}
