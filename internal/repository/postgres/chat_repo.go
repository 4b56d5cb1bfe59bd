package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizhub-api/internal/pkg/errors"
)

// ChatRepo реализует repository.ChatRepository
type ChatRepo struct {
	db *gorm.DB
}

// NewChatRepo создает новый репозиторий чатов
func NewChatRepo(db *gorm.DB) *ChatRepo {
	return &ChatRepo{db: db}
}

// GetByPair возвращает чат для нормализованной пары участников
func (r *ChatRepo) GetByPair(userOneID, userTwoID uint) (*entity.Chat, error) {
	one, two := entity.NormalizeChatPair(userOneID, userTwoID)
	var chat entity.Chat
	err := r.db.Where("user_one_id = ? AND user_two_id = ?", one, two).
		First(&chat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &chat, nil
}

// Create создает новый чат
func (r *ChatRepo) Create(chat *entity.Chat) error {
	chat.UserOneID, chat.UserTwoID = entity.NormalizeChatPair(chat.UserOneID, chat.UserTwoID)
	return r.db.Create(chat).Error
}

// GetByID возвращает чат по ID
func (r *ChatRepo) GetByID(id uint) (*entity.Chat, error) {
	var chat entity.Chat
	err := r.db.First(&chat, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &chat, nil
}

// ListByUser возвращает чаты пользователя от недавних к старым
func (r *ChatRepo) ListByUser(userID uint) ([]entity.Chat, error) {
	var chats []entity.Chat
	err := r.db.Where("user_one_id = ? OR user_two_id = ?", userID, userID).
		Order("last_message_at DESC").
		Find(&chats).Error
	return chats, err
}

// SaveMessage сохраняет сообщение
func (r *ChatRepo) SaveMessage(message *entity.Message) error {
	return r.db.Create(message).Error
}

// GetMessages возвращает сообщения чата от старых к новым
func (r *ChatRepo) GetMessages(chatID uint) ([]entity.Message, error) {
	var messages []entity.Message
	err := r.db.Where("chat_id = ?", chatID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

// GetLastMessage возвращает последнее сообщение чата для превью
func (r *ChatRepo) GetLastMessage(chatID uint) (*entity.Message, error) {
	var message entity.Message
	err := r.db.Where("chat_id = ?", chatID).
		Order("created_at DESC").
		First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &message, nil
}

// UpdateLastMessageAt обновляет время последнего сообщения чата
func (r *ChatRepo) UpdateLastMessageAt(chatID uint, at time.Time) error {
	return r.db.Model(&entity.Chat{}).
		Where("id = ?", chatID).
		Update("last_message_at", at).Error
}
