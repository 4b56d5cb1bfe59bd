package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestion_IsCorrect_CorrectAnswer(t *testing.T) {
	// Arrange
	question := &Question{
		ID:     1,
		QuizID: 1,
		Text:   "Какой язык используется в Go?",
		Options: OptionArray{
			{OptionText: "Python"},
			{OptionText: "Go", IsCorrect: true},
			{OptionText: "Java"},
			{OptionText: "Rust"},
		},
	}

	// Act & Assert
	assert.True(t, question.IsCorrect(1), "IsCorrect должен вернуть true для правильного ответа")
}

func TestQuestion_IsCorrect_IncorrectAnswer(t *testing.T) {
	// Arrange
	question := &Question{
		Options: OptionArray{
			{OptionText: "A"},
			{OptionText: "B"},
			{OptionText: "C", IsCorrect: true},
			{OptionText: "D"},
		},
	}

	// Act & Assert
	assert.False(t, question.IsCorrect(0), "IsCorrect должен вернуть false для неправильного ответа")
	assert.False(t, question.IsCorrect(1), "IsCorrect должен вернуть false для неправильного ответа")
	assert.False(t, question.IsCorrect(3), "IsCorrect должен вернуть false для неправильного ответа")
	// Индекс вне диапазона не должен приводить к панике
	assert.False(t, question.IsCorrect(10), "IsCorrect должен вернуть false для индекса вне диапазона")
	assert.False(t, question.IsCorrect(-1), "IsCorrect должен вернуть false для отрицательного индекса")
}

func TestQuestion_IsValidOption(t *testing.T) {
	// Arrange
	question := &Question{
		Options: OptionArray{
			{OptionText: "A"}, {OptionText: "B"}, {OptionText: "C"}, {OptionText: "D"},
		},
	}

	// Act & Assert: валидные опции
	assert.True(t, question.IsValidOption(0), "Индекс 0 должен быть валидным")
	assert.True(t, question.IsValidOption(3), "Индекс 3 должен быть валидным")

	// Assert: невалидные опции
	assert.False(t, question.IsValidOption(-1), "Отрицательный индекс должен быть невалидным")
	assert.False(t, question.IsValidOption(4), "Индекс вне диапазона должен быть невалидным")
}

func TestQuestion_CorrectOption(t *testing.T) {
	// Arrange
	withCorrect := &Question{
		Options: OptionArray{
			{OptionText: "A"},
			{OptionText: "B", IsCorrect: true},
		},
	}
	withoutCorrect := &Question{
		Options: OptionArray{{OptionText: "A"}, {OptionText: "B"}},
	}

	// Act & Assert
	assert.Equal(t, 1, withCorrect.CorrectOption(), "CorrectOption должен вернуть индекс правильного варианта")
	assert.Equal(t, -1, withoutCorrect.CorrectOption(), "CorrectOption должен вернуть -1 если правильный вариант не задан")
}

func TestOptionArray_ScanAndValue(t *testing.T) {
	// Arrange
	original := OptionArray{
		{OptionText: "Вариант 1", IsCorrect: false},
		{OptionText: "Вариант 2", IsCorrect: true},
	}

	// Act: сериализуем и читаем обратно
	value, err := original.Value()
	require.NoError(t, err, "Value не должен возвращать ошибку")

	var restored OptionArray
	err = restored.Scan(value)
	require.NoError(t, err, "Scan не должен возвращать ошибку")

	// Assert
	assert.Equal(t, original, restored, "Данные должны сохраниться после цикла Value/Scan")
}

func TestOptionArray_ScanNil(t *testing.T) {
	// Arrange
	var options OptionArray

	// Act: NULL из базы данных
	err := options.Scan(nil)

	// Assert: пустой массив, не ошибка
	require.NoError(t, err, "Scan(nil) не должен возвращать ошибку")
	assert.Empty(t, options, "NULL должен превращаться в пустой массив")
}

func TestOptionArray_ValueEmpty(t *testing.T) {
	// Arrange
	var options OptionArray

	// Act
	value, err := options.Value()

	// Assert: пустой JSON массив вместо null
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), value, "Пустой массив должен сериализоваться в '[]'")
}

func TestOptionArray_Texts(t *testing.T) {
	// Arrange
	options := OptionArray{
		{OptionText: "A", IsCorrect: true},
		{OptionText: "B"},
	}

	// Act & Assert: ответы не должны попадать в выдачу
	assert.Equal(t, []string{"A", "B"}, options.Texts())
}
