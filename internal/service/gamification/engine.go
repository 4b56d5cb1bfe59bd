// Package gamification реализует чистый движок бейджей и серий активности.
// Движок не владеет подключением к базе: каталог бейджей, история попыток
// и текущее состояние пользователя передаются извне, результат сохраняет
// вызывающая сторона.
package gamification

import (
	"time"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
)

// Пороговые значения по умолчанию, если в каталоге не задан criteria_value
const (
	DefaultQuizMasterThreshold = 10
	DefaultSpeedDemonMaxSec    = 300
	DefaultStreakMasterDays    = 7
)

// TruncateToDay обнуляет время, оставляя календарный день
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// UpdateStreak вычисляет новое состояние серии активности после попытки,
// совершенной в момент now. Возвращает новую длину серии и день последней
// активности. Повторные попытки в тот же календарный день состояние не меняют.
func UpdateStreak(streak int, lastQuizDate *time.Time, now time.Time) (int, time.Time) {
	today := TruncateToDay(now)

	// Первая активность пользователя
	if lastQuizDate == nil {
		return 1, today
	}

	// Колонка DATE читается из базы как полночь UTC; сравниваются календарные
	// компоненты даты в часовом поясе now, иначе смещение пояса съедает день
	y, m, d := lastQuizDate.Date()
	lastDay := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	switch {
	case today.Equal(lastDay):
		// Тот же день: без изменений
		return streak, lastDay
	case today.Equal(lastDay.AddDate(0, 0, 1)):
		// Следующий день подряд
		return streak + 1, today
	default:
		// Разрыв серии (>= 2 дней) либо перевод часов назад
		return 1, today
	}
}

// EvaluationInput содержит все факты, необходимые для оценки бейджей
// после одной попытки прохождения викторины
type EvaluationInput struct {
	QuizID       uint
	Score        int
	Total        int
	TimeTakenSec int

	// QuizStreak — длина серии после обновления UpdateStreak
	QuizStreak int

	// EarnedBadgeIDs — уже выданные бейджи: повторно не оцениваются и не выдаются
	EarnedBadgeIDs []uint

	// Catalog — каталог бейджей, оценивается в порядке следования
	Catalog []entity.Badge

	// History — полная история попыток пользователя, включая только что
	// записанную. Порядок записей не важен.
	History []entity.Result
}

// EvaluateBadges возвращает бейджи, заслуженные данной попыткой, в порядке
// каталога. Оценка детерминирована и не имеет побочных эффектов: вызывающая
// сторона сохраняет выданные бейджи одной пакетной записью.
func EvaluateBadges(in EvaluationInput) []entity.Badge {
	earned := make(map[uint]bool, len(in.EarnedBadgeIDs))
	for _, id := range in.EarnedBadgeIDs {
		earned[id] = true
	}

	var awarded []entity.Badge
	for _, badge := range in.Catalog {
		if earned[badge.ID] {
			continue
		}

		if meetsCriteria(badge, in) {
			awarded = append(awarded, badge)
		}
	}

	return awarded
}

// meetsCriteria проверяет одно правило каталога против фактов попытки
func meetsCriteria(badge entity.Badge, in EvaluationInput) bool {
	switch badge.CriteriaType {
	case entity.CriteriaFirstQuiz:
		// Самая первая попытка в истории
		return len(in.History) == 1

	case entity.CriteriaPerfectScore:
		// Стопроцентный результат; total == 0 не считается идеальным
		return in.Total > 0 && in.Score == in.Total

	case entity.CriteriaQuizMaster:
		// Порог по количеству различных викторин, а не попыток
		threshold := badge.CriteriaValue
		if threshold <= 0 {
			threshold = DefaultQuizMasterThreshold
		}
		return distinctQuizzes(in.History) >= threshold

	case entity.CriteriaSpeedDemon:
		maxSec := badge.CriteriaValue
		if maxSec <= 0 {
			maxSec = DefaultSpeedDemonMaxSec
		}
		return in.TimeTakenSec > 0 && in.TimeTakenSec <= maxSec

	case entity.CriteriaStreakMaster:
		days := badge.CriteriaValue
		if days <= 0 {
			days = DefaultStreakMasterDays
		}
		return in.QuizStreak >= days

	case entity.CriteriaCategoryExpert:
		// Неактивный вариант: связь викторины с категорией на момент
		// оценки недоступна, бейдж никогда не выдается
		return false

	default:
		return false
	}
}

// distinctQuizzes возвращает количество различных викторин в истории
func distinctQuizzes(history []entity.Result) int {
	seen := make(map[uint]bool, len(history))
	for _, r := range history {
		seen[r.QuizID] = true
	}
	return len(seen)
}
