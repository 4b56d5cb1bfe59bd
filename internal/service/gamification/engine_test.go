package gamification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
)

// ============================================================================
// Вспомогательные функции
// ============================================================================

// defaultCatalog возвращает каталог бейджей, аналогичный сидируемому при старте
func defaultCatalog() []entity.Badge {
	return []entity.Badge{
		{ID: 1, Name: "First Quiz", CriteriaType: entity.CriteriaFirstQuiz},
		{ID: 2, Name: "Perfect Score", CriteriaType: entity.CriteriaPerfectScore},
		{ID: 3, Name: "Quiz Master", CriteriaType: entity.CriteriaQuizMaster, CriteriaValue: 10},
		{ID: 4, Name: "Speed Demon", CriteriaType: entity.CriteriaSpeedDemon, CriteriaValue: 300},
		{ID: 5, Name: "Streak Master", CriteriaType: entity.CriteriaStreakMaster, CriteriaValue: 7},
	}
}

func badgeNames(badges []entity.Badge) []string {
	names := make([]string, len(badges))
	for i, b := range badges {
		names[i] = b.Name
	}
	return names
}

func day(yyyy int, mm time.Month, dd int) time.Time {
	return time.Date(yyyy, mm, dd, 0, 0, 0, 0, time.UTC)
}

// ============================================================================
// Тесты UpdateStreak
// ============================================================================

func TestUpdateStreak_FirstActivity(t *testing.T) {
	// Arrange: lastQuizDate не установлена
	now := time.Date(2025, time.March, 10, 15, 30, 0, 0, time.UTC)

	// Act
	streak, lastDate := UpdateStreak(0, nil, now)

	// Assert: серия начинается с 1, дата усечена до полуночи
	assert.Equal(t, 1, streak, "Первая активность должна начинать серию с 1")
	assert.Equal(t, day(2025, time.March, 10), lastDate, "Дата должна быть усечена до календарного дня")
}

func TestUpdateStreak_SameDayNoOp(t *testing.T) {
	// Arrange: вторая попытка в тот же день
	last := day(2025, time.March, 10)
	now := time.Date(2025, time.March, 10, 23, 59, 0, 0, time.UTC)

	// Act
	streak, lastDate := UpdateStreak(3, &last, now)

	// Assert: состояние не меняется
	assert.Equal(t, 3, streak, "Попытка в тот же день не должна менять серию")
	assert.Equal(t, last, lastDate, "Дата последней активности не должна меняться")
}

func TestUpdateStreak_ConsecutiveDays(t *testing.T) {
	// Arrange: попытки на день 1, день 2, день 3 подряд
	streak := 0
	var lastDate *time.Time

	for i := 1; i <= 3; i++ {
		now := time.Date(2025, time.March, i, 12, 0, 0, 0, time.UTC)

		// Act
		var newDate time.Time
		streak, newDate = UpdateStreak(streak, lastDate, now)
		lastDate = &newDate
	}

	// Assert
	assert.Equal(t, 3, streak, "Три последовательных дня должны дать серию 3")
}

func TestUpdateStreak_GapResetsToOne(t *testing.T) {
	// Arrange: попытка на день 1, следующая на день 4
	last := day(2025, time.March, 1)
	now := time.Date(2025, time.March, 4, 9, 0, 0, 0, time.UTC)

	// Act
	streak, lastDate := UpdateStreak(5, &last, now)

	// Assert: разрыв >= 2 дней сбрасывает серию
	assert.Equal(t, 1, streak, "Разрыв в серии должен сбрасывать счетчик до 1")
	assert.Equal(t, day(2025, time.March, 4), lastDate)
}

func TestUpdateStreak_ClockSkewResetsToOne(t *testing.T) {
	// Arrange: lastQuizDate в будущем (перевод часов назад)
	last := day(2025, time.March, 10)
	now := time.Date(2025, time.March, 8, 12, 0, 0, 0, time.UTC)

	// Act
	streak, lastDate := UpdateStreak(4, &last, now)

	// Assert: отрицательная разница дней трактуется как разрыв
	assert.Equal(t, 1, streak, "Отрицательная разница дней должна сбрасывать серию")
	assert.Equal(t, day(2025, time.March, 8), lastDate)
}

func TestUpdateStreak_TimeOfDayIgnored(t *testing.T) {
	// Arrange: вчера поздно вечером, сегодня рано утром — всё равно последовательные дни
	last := time.Date(2025, time.March, 1, 23, 50, 0, 0, time.UTC)
	lastTruncated := TruncateToDay(last)
	now := time.Date(2025, time.March, 2, 0, 10, 0, 0, time.UTC)

	// Act
	streak, _ := UpdateStreak(1, &lastTruncated, now)

	// Assert
	assert.Equal(t, 2, streak, "Разница считается в календарных днях, а не в часах")
}

func TestUpdateStreak_NextDayAcrossTimeZones(t *testing.T) {
	// Arrange: дата из колонки DATE приходит как полночь UTC,
	// сервер работает в поясе с положительным смещением
	last := day(2025, time.March, 1)
	msk := time.FixedZone("MSK", 3*60*60)
	now := time.Date(2025, time.March, 2, 9, 0, 0, 0, msk)

	// Act
	streak, lastDate := UpdateStreak(1, &last, now)

	// Assert: следующий календарный день, смещение пояса не съедает сутки
	assert.Equal(t, 2, streak, "Следующий календарный день должен продолжать серию независимо от пояса")
	assert.Equal(t, time.Date(2025, time.March, 2, 0, 0, 0, 0, msk), lastDate)
}

func TestUpdateStreak_SameDayAcrossTimeZones(t *testing.T) {
	// Arrange: полночь UTC из базы, сервер в поясе с отрицательным смещением
	last := day(2025, time.March, 1)
	est := time.FixedZone("EST", -5*60*60)
	now := time.Date(2025, time.March, 1, 18, 0, 0, 0, est)

	// Act
	streak, lastDate := UpdateStreak(3, &last, now)

	// Assert: та же календарная дата — состояние не меняется
	assert.Equal(t, 3, streak, "Совпадение календарной даты не должно менять серию")
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, est), lastDate)
}

// ============================================================================
// Тесты EvaluateBadges
// ============================================================================

func TestEvaluateBadges_FirstQuizAwardedOnce(t *testing.T) {
	// Arrange: первая попытка пользователя, небыстрая и неидеальная
	in := EvaluationInput{
		QuizID:       1,
		Score:        3,
		Total:        5,
		TimeTakenSec: 600,
		QuizStreak:   1,
		Catalog:      defaultCatalog(),
		History: []entity.Result{
			{QuizID: 1, Score: 3, Total: 5},
		},
	}

	// Act
	awarded := EvaluateBadges(in)

	// Assert: только First Quiz — пороги остальных не достигнуты
	require.Len(t, awarded, 1, "Должен быть выдан ровно один бейдж")
	assert.Equal(t, "First Quiz", awarded[0].Name)
}

func TestEvaluateBadges_NoDoubleAward(t *testing.T) {
	// Arrange: повторный вызов с теми же входными данными, бейдж уже выдан
	in := EvaluationInput{
		QuizID:         1,
		Score:          3,
		Total:          5,
		TimeTakenSec:   600,
		QuizStreak:     1,
		EarnedBadgeIDs: []uint{1},
		Catalog:        defaultCatalog(),
		History: []entity.Result{
			{QuizID: 1, Score: 3, Total: 5},
		},
	}

	// Act
	awarded := EvaluateBadges(in)

	// Assert: повторная оценка ничего не выдает
	assert.Empty(t, awarded, "Уже выданный бейдж не должен выдаваться повторно")
}

func TestEvaluateBadges_PerfectScore(t *testing.T) {
	// Arrange: вторая попытка с идеальным результатом
	in := EvaluationInput{
		QuizID:         2,
		Score:          5,
		Total:          5,
		TimeTakenSec:   400,
		QuizStreak:     1,
		EarnedBadgeIDs: []uint{1},
		Catalog:        defaultCatalog(),
		History: []entity.Result{
			{QuizID: 1, Score: 3, Total: 5},
			{QuizID: 2, Score: 5, Total: 5},
		},
	}

	// Act
	awarded := EvaluateBadges(in)

	// Assert
	require.Len(t, awarded, 1)
	assert.Equal(t, "Perfect Score", awarded[0].Name)
}

func TestEvaluateBadges_PerfectScoreZeroTotalNotAwarded(t *testing.T) {
	// Arrange: вырожденный случай score=0, total=0 (0 == 0, но бейдж не положен)
	in := EvaluationInput{
		QuizID:       1,
		Score:        0,
		Total:        0,
		TimeTakenSec: 600,
		QuizStreak:   1,
		// First Quiz исключаем из каталога, чтобы проверить именно Perfect Score
		EarnedBadgeIDs: []uint{1},
		Catalog:        defaultCatalog(),
		History: []entity.Result{
			{QuizID: 1, Score: 0, Total: 0},
		},
	}

	// Act
	awarded := EvaluateBadges(in)

	// Assert
	assert.Empty(t, awarded, "Perfect Score не должен выдаваться при total == 0")
}

func TestEvaluateBadges_QuizMasterCountsDistinctQuizzes(t *testing.T) {
	// Arrange: 10 попыток одной и той же викторины
	samequiz := make([]entity.Result, 10)
	for i := range samequiz {
		samequiz[i] = entity.Result{QuizID: 7, Score: 1, Total: 5}
	}

	inSame := EvaluationInput{
		QuizID:         7,
		Score:          1,
		Total:          5,
		TimeTakenSec:   600,
		QuizStreak:     1,
		EarnedBadgeIDs: []uint{1},
		Catalog:        defaultCatalog(),
		History:        samequiz,
	}

	// Act & Assert: одна и та же викторина порог не закрывает
	assert.Empty(t, EvaluateBadges(inSame), "10 попыток одной викторины не дают Quiz Master")

	// Arrange: 10 различных викторин
	distinct := make([]entity.Result, 10)
	for i := range distinct {
		distinct[i] = entity.Result{QuizID: uint(i + 1), Score: 1, Total: 5}
	}

	inDistinct := EvaluationInput{
		QuizID:         10,
		Score:          1,
		Total:          5,
		TimeTakenSec:   600,
		QuizStreak:     1,
		EarnedBadgeIDs: []uint{1},
		Catalog:        defaultCatalog(),
		History:        distinct,
	}

	// Act
	awarded := EvaluateBadges(inDistinct)

	// Assert
	require.Len(t, awarded, 1)
	assert.Equal(t, "Quiz Master", awarded[0].Name)
}

func TestEvaluateBadges_SpeedDemon(t *testing.T) {
	// Arrange: попытка быстрее порога
	in := EvaluationInput{
		QuizID:         3,
		Score:          2,
		Total:          5,
		TimeTakenSec:   120,
		QuizStreak:     1,
		EarnedBadgeIDs: []uint{1},
		Catalog:        defaultCatalog(),
		History: []entity.Result{
			{QuizID: 1}, {QuizID: 3},
		},
	}

	// Act
	awarded := EvaluateBadges(in)

	// Assert
	require.Len(t, awarded, 1)
	assert.Equal(t, "Speed Demon", awarded[0].Name)
}

func TestEvaluateBadges_SpeedDemonZeroTimeNotAwarded(t *testing.T) {
	// Arrange: timeTaken не передан (0) — защита от ложной выдачи
	in := EvaluationInput{
		QuizID:         3,
		Score:          2,
		Total:          5,
		TimeTakenSec:   0,
		QuizStreak:     1,
		EarnedBadgeIDs: []uint{1},
		Catalog:        defaultCatalog(),
		History:        []entity.Result{{QuizID: 1}, {QuizID: 3}},
	}

	// Act & Assert
	assert.Empty(t, EvaluateBadges(in), "Speed Demon не должен выдаваться при нулевом времени")
}

func TestEvaluateBadges_StreakMaster(t *testing.T) {
	// Arrange: серия достигла порога
	in := EvaluationInput{
		QuizID:         4,
		Score:          1,
		Total:          5,
		TimeTakenSec:   600,
		QuizStreak:     7,
		EarnedBadgeIDs: []uint{1},
		Catalog:        defaultCatalog(),
		History:        []entity.Result{{QuizID: 1}, {QuizID: 4}},
	}

	// Act
	awarded := EvaluateBadges(in)

	// Assert
	require.Len(t, awarded, 1)
	assert.Equal(t, "Streak Master", awarded[0].Name)
}

func TestEvaluateBadges_CategoryExpertNeverAwarded(t *testing.T) {
	// Arrange: каталог только с неактивным вариантом, заведомо "идеальная" попытка
	in := EvaluationInput{
		QuizID:       1,
		Score:        5,
		Total:        5,
		TimeTakenSec: 10,
		QuizStreak:   100,
		Catalog: []entity.Badge{
			{ID: 9, Name: "Category Expert", CriteriaType: entity.CriteriaCategoryExpert, CriteriaValue: 1},
		},
		History: []entity.Result{{QuizID: 1, Score: 5, Total: 5}},
	}

	// Act & Assert: вариант определен, но никогда не срабатывает
	assert.Empty(t, EvaluateBadges(in), "Category Expert не должен выдаваться")
}

func TestEvaluateBadges_MultipleAwardsInCatalogOrder(t *testing.T) {
	// Arrange: первая попытка, идеальная и быстрая — сразу три бейджа
	in := EvaluationInput{
		QuizID:       1,
		Score:        5,
		Total:        5,
		TimeTakenSec: 60,
		QuizStreak:   1,
		Catalog:      defaultCatalog(),
		History:      []entity.Result{{QuizID: 1, Score: 5, Total: 5}},
	}

	// Act
	awarded := EvaluateBadges(in)

	// Assert: порядок соответствует порядку каталога
	assert.Equal(t, []string{"First Quiz", "Perfect Score", "Speed Demon"}, badgeNames(awarded))
}

func TestEvaluateBadges_DefaultThresholds(t *testing.T) {
	// Arrange: criteria_value не задан — движок подставляет значения по умолчанию
	catalog := []entity.Badge{
		{ID: 3, Name: "Quiz Master", CriteriaType: entity.CriteriaQuizMaster},
		{ID: 4, Name: "Speed Demon", CriteriaType: entity.CriteriaSpeedDemon},
		{ID: 5, Name: "Streak Master", CriteriaType: entity.CriteriaStreakMaster},
	}

	history := make([]entity.Result, DefaultQuizMasterThreshold)
	for i := range history {
		history[i] = entity.Result{QuizID: uint(i + 1)}
	}

	in := EvaluationInput{
		QuizID:       1,
		Score:        1,
		Total:        5,
		TimeTakenSec: DefaultSpeedDemonMaxSec,
		QuizStreak:   DefaultStreakMasterDays,
		Catalog:      catalog,
		History:      history,
	}

	// Act
	awarded := EvaluateBadges(in)

	// Assert: все три правила срабатывают на граничных значениях по умолчанию
	assert.Equal(t, []string{"Quiz Master", "Speed Demon", "Streak Master"}, badgeNames(awarded))
}

func TestEvaluateBadges_EmptyCatalog(t *testing.T) {
	// Arrange
	in := EvaluationInput{
		QuizID:  1,
		Score:   5,
		Total:   5,
		History: []entity.Result{{QuizID: 1}},
	}

	// Act & Assert
	assert.Empty(t, EvaluateBadges(in), "Пустой каталог не должен давать бейджей")
}
