package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
	"github.com/yourusername/quizhub-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizhub-api/internal/pkg/errors"
)

// ============================================================================
// Моки для BadgeService
// ============================================================================

// MockBadgeRepo реализует repository.BadgeRepository
type MockBadgeRepo struct {
	mock.Mock
}

func (m *MockBadgeRepo) List() ([]entity.Badge, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Badge), args.Error(1)
}

func (m *MockBadgeRepo) GetByID(id uint) (*entity.Badge, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Badge), args.Error(1)
}

func (m *MockBadgeRepo) UpsertByName(badge *entity.Badge) error {
	args := m.Called(badge)
	return args.Error(0)
}

func (m *MockBadgeRepo) GetUserBadges(userID uint) ([]entity.Badge, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Badge), args.Error(1)
}

func (m *MockBadgeRepo) GetUserBadgeIDs(userID uint) ([]uint, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockBadgeRepo) Award(userID uint, badgeIDs []uint, awardedAt time.Time) error {
	args := m.Called(userID, badgeIDs, awardedAt)
	return args.Error(0)
}

// MockUserRepoForBadgeService реализует repository.UserRepository
type MockUserRepoForBadgeService struct {
	mock.Mock
}

func (m *MockUserRepoForBadgeService) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepoForBadgeService) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepoForBadgeService) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepoForBadgeService) GetByUsername(username string) (*entity.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepoForBadgeService) Update(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepoForBadgeService) UpdateProfile(userID uint, updates map[string]interface{}) error {
	args := m.Called(userID, updates)
	return args.Error(0)
}

func (m *MockUserRepoForBadgeService) UpdateStreak(userID uint, streak int, lastQuizDate time.Time) error {
	args := m.Called(userID, streak, lastQuizDate)
	return args.Error(0)
}

func (m *MockUserRepoForBadgeService) List(limit, offset int) ([]entity.User, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *MockUserRepoForBadgeService) Search(excludeID uint, filters repository.UserSearchFilters) ([]entity.User, error) {
	args := m.Called(excludeID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *MockUserRepoForBadgeService) GetLeaderboard(limit, offset int) ([]repository.LeaderboardRow, int64, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]repository.LeaderboardRow), args.Get(1).(int64), args.Error(2)
}

// MockResultRepoForBadgeService реализует repository.ResultRepository
type MockResultRepoForBadgeService struct {
	mock.Mock
}

func (m *MockResultRepoForBadgeService) Save(result *entity.Result) error {
	args := m.Called(result)
	return args.Error(0)
}

func (m *MockResultRepoForBadgeService) GetUserResults(userID uint) ([]entity.Result, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Result), args.Error(1)
}

func (m *MockResultRepoForBadgeService) GetUserResultsPage(userID uint, limit, offset int) ([]entity.Result, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Result), args.Error(1)
}

func (m *MockResultRepoForBadgeService) GetQuizResults(quizID uint) ([]entity.Result, error) {
	args := m.Called(quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Result), args.Error(1)
}

func (m *MockResultRepoForBadgeService) CountByUser(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

// ============================================================================
// Тесты для BadgeService
// ============================================================================

func TestBadgeService_ProcessQuizCompletion_FirstQuizAwarded(t *testing.T) {
	// Arrange
	mockBadgeRepo := new(MockBadgeRepo)
	mockUserRepo := new(MockUserRepoForBadgeService)
	mockResultRepo := new(MockResultRepoForBadgeService)

	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	user := &entity.User{ID: 42, Username: "player", QuizStreak: 0, LastQuizDate: nil}
	result := &entity.Result{UserID: 42, QuizID: 7, Score: 3, Total: 5, TimeTakenSec: 120, AttemptedAt: now}

	catalog := []entity.Badge{
		{ID: 1, Name: "First Quiz", CriteriaType: entity.CriteriaFirstQuiz},
		{ID: 2, Name: "Perfect Score", CriteriaType: entity.CriteriaPerfectScore},
	}

	mockUserRepo.On("GetByID", uint(42)).Return(user, nil)
	// Первая активность: серия становится 1
	mockUserRepo.On("UpdateStreak", uint(42), 1, mock.AnythingOfType("time.Time")).Return(nil)
	mockBadgeRepo.On("List").Return(catalog, nil)
	mockBadgeRepo.On("GetUserBadgeIDs", uint(42)).Return([]uint{}, nil)
	mockResultRepo.On("GetUserResults", uint(42)).Return([]entity.Result{*result}, nil)
	mockBadgeRepo.On("Award", uint(42), []uint{1}, now).Return(nil)

	badgeService := NewBadgeService(mockBadgeRepo, mockUserRepo, mockResultRepo)

	// Act
	awarded, err := badgeService.ProcessQuizCompletion(42, result, now)

	// Assert
	require.NoError(t, err, "Обработка попытки должна быть успешной")
	require.Len(t, awarded, 1, "Должен быть выдан один бейдж")
	assert.Equal(t, "First Quiz", awarded[0].Name)
	mockBadgeRepo.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
}

func TestBadgeService_ProcessQuizCompletion_UserNotFound_NoOp(t *testing.T) {
	// Тест: удаленный пользователь — тихий no-op без ошибки
	mockBadgeRepo := new(MockBadgeRepo)
	mockUserRepo := new(MockUserRepoForBadgeService)
	mockResultRepo := new(MockResultRepoForBadgeService)

	mockUserRepo.On("GetByID", uint(99)).Return(nil, apperrors.ErrNotFound)

	badgeService := NewBadgeService(mockBadgeRepo, mockUserRepo, mockResultRepo)

	// Act
	awarded, err := badgeService.ProcessQuizCompletion(99, &entity.Result{UserID: 99}, time.Now())

	// Assert
	require.NoError(t, err)
	assert.Empty(t, awarded)
	mockBadgeRepo.AssertNotCalled(t, "Award", mock.Anything, mock.Anything, mock.Anything)
	mockUserRepo.AssertNotCalled(t, "UpdateStreak", mock.Anything, mock.Anything, mock.Anything)
}

func TestBadgeService_ProcessQuizCompletion_NoAwards_NoWrite(t *testing.T) {
	// Тест: если критерии не выполнены, пакетная запись не происходит
	mockBadgeRepo := new(MockBadgeRepo)
	mockUserRepo := new(MockUserRepoForBadgeService)
	mockResultRepo := new(MockResultRepoForBadgeService)

	now := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
	lastDay := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	user := &entity.User{ID: 42, QuizStreak: 2, LastQuizDate: &lastDay}
	result := &entity.Result{UserID: 42, QuizID: 7, Score: 2, Total: 5, TimeTakenSec: 400}

	// Все бейджи каталога уже выданы
	catalog := []entity.Badge{
		{ID: 1, Name: "First Quiz", CriteriaType: entity.CriteriaFirstQuiz},
	}
	history := []entity.Result{
		{QuizID: 3}, {QuizID: 7},
	}

	mockUserRepo.On("GetByID", uint(42)).Return(user, nil)
	// Следующий день подряд: серия растет с 2 до 3
	mockUserRepo.On("UpdateStreak", uint(42), 3, mock.AnythingOfType("time.Time")).Return(nil)
	mockBadgeRepo.On("List").Return(catalog, nil)
	mockBadgeRepo.On("GetUserBadgeIDs", uint(42)).Return([]uint{1}, nil)
	mockResultRepo.On("GetUserResults", uint(42)).Return(history, nil)

	badgeService := NewBadgeService(mockBadgeRepo, mockUserRepo, mockResultRepo)

	// Act
	awarded, err := badgeService.ProcessQuizCompletion(42, result, now)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, awarded)
	mockBadgeRepo.AssertNotCalled(t, "Award", mock.Anything, mock.Anything, mock.Anything)
	mockUserRepo.AssertExpectations(t)
}

func TestBadgeService_ProcessQuizCompletion_CatalogFailure(t *testing.T) {
	// Тест: сбой загрузки каталога возвращает ошибку, выдача не происходит
	mockBadgeRepo := new(MockBadgeRepo)
	mockUserRepo := new(MockUserRepoForBadgeService)
	mockResultRepo := new(MockResultRepoForBadgeService)

	now := time.Now()
	user := &entity.User{ID: 42, QuizStreak: 0}

	mockUserRepo.On("GetByID", uint(42)).Return(user, nil)
	mockUserRepo.On("UpdateStreak", uint(42), 1, mock.AnythingOfType("time.Time")).Return(nil)
	mockBadgeRepo.On("List").Return(nil, errors.New("db down"))

	badgeService := NewBadgeService(mockBadgeRepo, mockUserRepo, mockResultRepo)

	// Act
	awarded, err := badgeService.ProcessQuizCompletion(42, &entity.Result{UserID: 42}, now)

	// Assert
	require.Error(t, err)
	assert.Empty(t, awarded)
	mockBadgeRepo.AssertNotCalled(t, "Award", mock.Anything, mock.Anything, mock.Anything)
}

func TestBadgeService_SeedDefaultBadges(t *testing.T) {
	// Arrange
	mockBadgeRepo := new(MockBadgeRepo)
	mockBadgeRepo.On("UpsertByName", mock.AnythingOfType("*entity.Badge")).Return(nil)

	badgeService := NewBadgeService(mockBadgeRepo, nil, nil)

	// Act
	err := badgeService.SeedDefaultBadges()

	// Assert: сидируется пять заслуживаемых бейджей
	require.NoError(t, err)
	mockBadgeRepo.AssertNumberOfCalls(t, "UpsertByName", 5)
}
