package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
	"github.com/yourusername/quizhub-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizhub-api/internal/pkg/errors"
)

// ChatPreview представляет чат в списке с собеседником и последним сообщением
type ChatPreview struct {
	Chat        entity.Chat     `json:"chat"`
	Participant entity.User     `json:"participant"`
	LastMessage *entity.Message `json:"last_message,omitempty"`
}

// ChatService предоставляет методы для личных переписок.
// Переписка доступна только взаимно подписанным пользователям.
type ChatService struct {
	chatRepo   repository.ChatRepository
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	keywords   *KeywordService
}

// NewChatService создает новый сервис чатов
func NewChatService(
	chatRepo repository.ChatRepository,
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	keywords *KeywordService,
) *ChatService {
	return &ChatService{
		chatRepo:   chatRepo,
		followRepo: followRepo,
		userRepo:   userRepo,
		keywords:   keywords,
	}
}

// OpenChat возвращает существующий чат пары или создает новый.
// Требуется взаимная подписка участников.
func (s *ChatService) OpenChat(userID, otherID uint) (*entity.Chat, error) {
	if userID == otherID {
		return nil, fmt.Errorf("%w: cannot chat with yourself", apperrors.ErrValidation)
	}

	if _, err := s.userRepo.GetByID(otherID); err != nil {
		return nil, err
	}

	mutual, err := s.followRepo.IsMutual(userID, otherID)
	if err != nil {
		return nil, err
	}
	if !mutual {
		return nil, fmt.Errorf("%w: chat requires mutual follow", apperrors.ErrForbidden)
	}

	chat, err := s.chatRepo.GetByPair(userID, otherID)
	if err == nil {
		return chat, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	chat = &entity.Chat{
		UserOneID:     userID,
		UserTwoID:     otherID,
		LastMessageAt: time.Now(),
	}
	if err := s.chatRepo.Create(chat); err != nil {
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}
	return chat, nil
}

// ListChats возвращает чаты пользователя с собеседником и последним сообщением
func (s *ChatService) ListChats(userID uint) ([]ChatPreview, error) {
	chats, err := s.chatRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	previews := make([]ChatPreview, 0, len(chats))
	for _, chat := range chats {
		participant, err := s.userRepo.GetByID(chat.OtherParticipant(userID))
		if err != nil {
			// Удаленный собеседник: чат пропускается из списка
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, err
		}

		preview := ChatPreview{Chat: chat, Participant: *participant}
		last, err := s.chatRepo.GetLastMessage(chat.ID)
		if err == nil {
			preview.LastMessage = last
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}

		previews = append(previews, preview)
	}

	return previews, nil
}

// SendMessage отправляет сообщение в чат. Текст проходит фильтрацию
// запрещенных слов.
func (s *ChatService) SendMessage(chatID, senderID uint, text string) (*entity.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: message text is required", apperrors.ErrValidation)
	}

	chat, err := s.chatRepo.GetByID(chatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(senderID) {
		return nil, apperrors.ErrForbidden
	}

	message := &entity.Message{
		ChatID:    chatID,
		SenderID:  senderID,
		Text:      s.keywords.FilterText(text),
		CreatedAt: time.Now(),
	}

	if err := s.chatRepo.SaveMessage(message); err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}

	if err := s.chatRepo.UpdateLastMessageAt(chatID, message.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to update chat timestamp: %w", err)
	}

	return message, nil
}

// GetMessages возвращает сообщения чата. Доступно только участникам.
func (s *ChatService) GetMessages(chatID, requesterID uint) ([]entity.Message, error) {
	chat, err := s.chatRepo.GetByID(chatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(requesterID) {
		return nil, apperrors.ErrForbidden
	}
	return s.chatRepo.GetMessages(chatID)
}
