package service

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
	"github.com/yourusername/quizhub-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizhub-api/internal/pkg/errors"
	"github.com/yourusername/quizhub-api/internal/service/moderation"
)

// Ключ кеша для списка запрещенных слов
const bannedWordsCacheKey = "moderation:banned_words"

// KeywordService предоставляет методы для работы с каталогом запрещенных слов
// и фильтрации пользовательского контента. Фильтрация работает в режиме
// best-effort: при недоступности каталога текст возвращается без изменений,
// чтобы модерация никогда не блокировала основной сценарий.
type KeywordService struct {
	keywordRepo repository.KeywordRepository
	cacheRepo   repository.CacheRepository
	cacheTTL    time.Duration
}

// NewKeywordService создает новый сервис запрещенных слов
func NewKeywordService(
	keywordRepo repository.KeywordRepository,
	cacheRepo repository.CacheRepository,
	cacheTTLSec int,
) *KeywordService {
	if cacheTTLSec <= 0 {
		cacheTTLSec = 300
	}
	return &KeywordService{
		keywordRepo: keywordRepo,
		cacheRepo:   cacheRepo,
		cacheTTL:    time.Duration(cacheTTLSec) * time.Second,
	}
}

// ListKeywords возвращает весь каталог запрещенных слов
func (s *KeywordService) ListKeywords() ([]entity.BannedKeyword, error) {
	return s.keywordRepo.List()
}

// AddKeyword добавляет слово в каталог и сбрасывает кеш
func (s *KeywordService) AddKeyword(word string, addedBy uint) (*entity.BannedKeyword, error) {
	normalized := strings.ToLower(strings.TrimSpace(word))
	if normalized == "" {
		return nil, apperrors.ErrValidation
	}

	keyword, err := s.keywordRepo.Upsert(normalized, addedBy)
	if err != nil {
		return nil, err
	}

	s.invalidateCache()
	return keyword, nil
}

// DeleteKeyword удаляет слово из каталога и сбрасывает кеш
func (s *KeywordService) DeleteKeyword(id uint) error {
	if err := s.keywordRepo.Delete(id); err != nil {
		return err
	}

	s.invalidateCache()
	return nil
}

// Words возвращает список запрещенных слов, используя кеш.
// Ошибка означает недоступность и кеша, и базы.
func (s *KeywordService) Words() ([]string, error) {
	var cached []string
	if err := s.cacheRepo.GetJSON(bannedWordsCacheKey, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		log.Printf("[KeywordService] Ошибка чтения кеша слов: %v", err)
	}

	words, err := s.keywordRepo.Words()
	if err != nil {
		return nil, err
	}

	if err := s.cacheRepo.SetJSON(bannedWordsCacheKey, words, s.cacheTTL); err != nil {
		log.Printf("[KeywordService] Ошибка записи кеша слов: %v", err)
	}

	return words, nil
}

// FilterText фильтрует текст по каталогу запрещенных слов.
// При недоступности каталога возвращает текст без изменений.
func (s *KeywordService) FilterText(text string) string {
	words, err := s.Words()
	if err != nil {
		log.Printf("[KeywordService] Каталог слов недоступен, текст пропущен без фильтрации: %v", err)
		return text
	}
	return moderation.FilterText(text, words)
}

// FilterFields фильтрует перечисленные поля записи по каталогу запрещенных
// слов. При недоступности каталога возвращает запись без изменений.
func (s *KeywordService) FilterFields(record map[string]interface{}, fields []string) map[string]interface{} {
	words, err := s.Words()
	if err != nil {
		log.Printf("[KeywordService] Каталог слов недоступен, запись пропущена без фильтрации: %v", err)
		return record
	}
	return moderation.FilterFields(record, fields, words)
}

// FilterOptions фильтрует текст вариантов ответа.
// При недоступности каталога возвращает варианты без изменений.
func (s *KeywordService) FilterOptions(options []entity.QuestionOption) []entity.QuestionOption {
	words, err := s.Words()
	if err != nil {
		log.Printf("[KeywordService] Каталог слов недоступен, варианты пропущены без фильтрации: %v", err)
		return options
	}
	return moderation.FilterOptions(options, words)
}

// ContainsBanned проверяет наличие запрещенного слова в тексте.
// При недоступности каталога возвращает false.
func (s *KeywordService) ContainsBanned(text string) bool {
	words, err := s.Words()
	if err != nil {
		log.Printf("[KeywordService] Каталог слов недоступен, проверка пропущена: %v", err)
		return false
	}
	return moderation.ContainsBanned(text, words)
}

// invalidateCache сбрасывает кеш списка слов после изменения каталога
func (s *KeywordService) invalidateCache() {
	if err := s.cacheRepo.Delete(bannedWordsCacheKey); err != nil {
		log.Printf("[KeywordService] Ошибка сброса кеша слов: %v", err)
	}
}
