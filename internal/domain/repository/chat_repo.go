package repository

import (
	"time"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
)

// ChatRepository определяет методы для работы с чатами и сообщениями
type ChatRepository interface {
	// GetByPair возвращает чат для нормализованной пары участников
	GetByPair(userOneID, userTwoID uint) (*entity.Chat, error)
	Create(chat *entity.Chat) error
	GetByID(id uint) (*entity.Chat, error)
	// ListByUser возвращает чаты пользователя от недавних к старым
	ListByUser(userID uint) ([]entity.Chat, error)
	SaveMessage(message *entity.Message) error
	// GetMessages возвращает сообщения чата от старых к новым
	GetMessages(chatID uint) ([]entity.Message, error)
	// GetLastMessage возвращает последнее сообщение чата для превью
	GetLastMessage(chatID uint) (*entity.Message, error)
	UpdateLastMessageAt(chatID uint, at time.Time) error
}
