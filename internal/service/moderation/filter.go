// Package moderation реализует чистый фильтр запрещенных слов.
// Набор слов передается извне: пакет не ходит в базу и не кеширует.
package moderation

import (
	"regexp"
	"strings"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
)

// RedactionMarker — литерал, которым заменяются запрещенные слова
const RedactionMarker = "***"

// Поле вариантов ответа, фильтруемое внутри элементов-объектов списка
const optionTextField = "option_text"

// FilterText заменяет каждое вхождение запрещенного слова (целиком, без учета
// регистра) на RedactionMarker. Слова применяются в порядке следования набора,
// за один проход: маркер повторно не сканируется. Пустой набор возвращает
// текст без изменений. Операция идемпотентна: "***" не содержит слов.
func FilterText(text string, words []string) string {
	if text == "" || len(words) == 0 {
		return text
	}

	filtered := text
	for _, word := range words {
		if word == "" {
			continue
		}
		re, err := wordPattern(word)
		if err != nil {
			// Некорректное слово в каталоге не должно ломать фильтрацию остальных
			continue
		}
		filtered = re.ReplaceAllString(filtered, RedactionMarker)
	}

	return filtered
}

// wordPattern строит регулярное выражение для целого слова без учета регистра
func wordPattern(word string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
}

// ContainsBanned проверяет наличие запрещенного слова как подстроки
// (намеренно шире, чем замена по границам слов). Возвращает true на первом
// совпадении.
func ContainsBanned(text string, words []string) bool {
	if text == "" || len(words) == 0 {
		return false
	}

	lower := strings.ToLower(text)
	for _, word := range words {
		if word == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(word)) {
			return true
		}
	}

	return false
}

// FilterOptions фильтрует текст вариантов ответа, не изменяя исходный срез.
// Флаг правильности ответа не затрагивается.
func FilterOptions(options []entity.QuestionOption, words []string) []entity.QuestionOption {
	out := make([]entity.QuestionOption, len(options))
	for i, opt := range options {
		out[i] = opt
		out[i].OptionText = FilterText(opt.OptionText, words)
	}
	return out
}

// FilterFields применяет FilterText к перечисленным полям записи и возвращает
// новую запись, не изменяя исходную. Поля-списки фильтруются поэлементно:
// элемент-строка фильтруется целиком, элемент-объект с полем option_text —
// только по этому подполю. Отсутствующие поля и значения других типов
// пропускаются без изменений.
func FilterFields(record map[string]interface{}, fields []string, words []string) map[string]interface{} {
	filtered := make(map[string]interface{}, len(record))
	for k, v := range record {
		filtered[k] = v
	}

	for _, field := range fields {
		value, ok := filtered[field]
		if !ok || value == nil {
			continue
		}

		switch v := value.(type) {
		case string:
			filtered[field] = FilterText(v, words)
		case []interface{}:
			filtered[field] = filterList(v, words)
		}
	}

	return filtered
}

// filterList фильтрует элементы списка, не изменяя исходный срез
func filterList(items []interface{}, words []string) []interface{} {
	out := make([]interface{}, len(items))
	for i, item := range items {
		switch it := item.(type) {
		case string:
			out[i] = FilterText(it, words)
		case map[string]interface{}:
			out[i] = filterOptionObject(it, words)
		default:
			out[i] = item
		}
	}
	return out
}

// filterOptionObject фильтрует подполе option_text, остальное не трогает
func filterOptionObject(obj map[string]interface{}, words []string) map[string]interface{} {
	text, ok := obj[optionTextField].(string)
	if !ok {
		return obj
	}

	out := make(map[string]interface{}, len(obj))
	for k, v := range obj {
		out[k] = v
	}
	out[optionTextField] = FilterText(text, words)
	return out
}
