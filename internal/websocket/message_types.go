package websocket

import (
	"encoding/json"
	"time"
)

// Типы событий, которыми обмениваются клиент и сервер
const (
	// EventChatMessage — новое сообщение в чате (в обе стороны)
	EventChatMessage = "chat:message"

	// EventError — ошибка обработки клиентского события
	EventError = "error"
)

// Event представляет конверт события с типом и полезной нагрузкой
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ChatMessagePayload — полезная нагрузка события chat:message
type ChatMessagePayload struct {
	ChatID    uint      `json:"chat_id"`
	MessageID uint      `json:"message_id,omitempty"`
	SenderID  uint      `json:"sender_id,omitempty"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// ErrorPayload — полезная нагрузка события error
type ErrorPayload struct {
	Message string `json:"message"`
}

// NewEvent сериализует полезную нагрузку в конверт события
func NewEvent(eventType string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{Type: eventType, Data: data})
}
