package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizhub-api/internal/service"
)

// KeywordHandler обрабатывает административные запросы каталога
// запрещенных слов
type KeywordHandler struct {
	keywordService *service.KeywordService
}

// NewKeywordHandler создает новый обработчик запрещенных слов
func NewKeywordHandler(keywordService *service.KeywordService) *KeywordHandler {
	return &KeywordHandler{keywordService: keywordService}
}

// ListKeywords возвращает весь каталог
func (h *KeywordHandler) ListKeywords(c *gin.Context) {
	keywords, err := h.keywordService.ListKeywords()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"keywords": keywords})
}

// AddKeywordRequest представляет запрос на добавление слова
type AddKeywordRequest struct {
	Word string `json:"word" binding:"required,min=2,max=100"`
}

// AddKeyword добавляет слово в каталог
func (h *KeywordHandler) AddKeyword(c *gin.Context) {
	var req AddKeywordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	keyword, err := h.keywordService.AddKeyword(req.Word, currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, keyword)
}

// DeleteKeyword удаляет слово из каталога
func (h *KeywordHandler) DeleteKeyword(c *gin.Context) {
	keywordID := c.MustGet("keywordID").(uint)

	if err := h.keywordService.DeleteKeyword(keywordID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "keyword deleted"})
}
