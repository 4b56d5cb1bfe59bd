package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// QuestionOption представляет один вариант ответа на вопрос
type QuestionOption struct {
	OptionText string `json:"option_text"`
	IsCorrect  bool   `json:"is_correct"`
}

// OptionArray - пользовательский тип для работы с JSONB
type OptionArray []QuestionOption

// Scan реализует интерфейс sql.Scanner для OptionArray
// Используется GORM для чтения JSONB данных из базы
func (o *OptionArray) Scan(value interface{}) error {
	// Обработка NULL значений из базы данных
	if value == nil {
		*o = OptionArray{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*o = OptionArray{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value реализует интерфейс driver.Valuer для OptionArray
// Используется GORM для записи OptionArray в JSONB в базе
func (o OptionArray) Value() (driver.Value, error) {
	if len(o) == 0 {
		return []byte("[]"), nil // Возвращаем пустой JSON массив вместо null
	}
	return json.Marshal(o)
}

// Texts возвращает только тексты вариантов (для выдачи клиенту без ответов)
func (o OptionArray) Texts() []string {
	texts := make([]string, len(o))
	for i, opt := range o {
		texts[i] = opt.OptionText
	}
	return texts
}

// Question представляет вопрос в викторине
type Question struct {
	ID      uint        `gorm:"primaryKey" json:"id"`
	QuizID  uint        `gorm:"not null;index" json:"quiz_id"`
	Text    string      `gorm:"size:500;not null" json:"text"`
	Options OptionArray `gorm:"type:jsonb;not null" json:"options"`

	// Текст до фильтрации запрещенных слов, сохраняется для админских правок
	OriginalText string `gorm:"size:500;not null;default:''" json:"-"`

	// Количество жалоб на вопрос
	ReportCount int `gorm:"not null;default:0" json:"report_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// CorrectOption возвращает индекс правильного варианта или -1, если он не задан
func (q *Question) CorrectOption() int {
	for i, opt := range q.Options {
		if opt.IsCorrect {
			return i
		}
	}
	return -1
}

// IsCorrect проверяет, является ли выбранный вариант правильным
func (q *Question) IsCorrect(selectedOption int) bool {
	return q.IsValidOption(selectedOption) && q.Options[selectedOption].IsCorrect
}

// IsValidOption проверяет, является ли выбранный вариант допустимым
func (q *Question) IsValidOption(selectedOption int) bool {
	return selectedOption >= 0 && selectedOption < len(q.Options)
}

// OptionsCount возвращает количество вариантов ответа
func (q *Question) OptionsCount() int {
	return len(q.Options)
}
