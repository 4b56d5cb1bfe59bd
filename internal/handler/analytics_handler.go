package handler

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizhub-api/internal/service"
)

// AnalyticsHandler обрабатывает запросы аналитики викторин
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
	userService      *service.UserService
}

// NewAnalyticsHandler создает новый обработчик аналитики
func NewAnalyticsHandler(analyticsService *service.AnalyticsService, userService *service.UserService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		userService:      userService,
	}
}

// GetQuizStats возвращает агрегаты викторины
func (h *AnalyticsHandler) GetQuizStats(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	stats, err := h.analyticsService.GetQuizStats(quizID, currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetParticipantGrowth возвращает рост числа участников по дням
func (h *AnalyticsHandler) GetParticipantGrowth(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	points, err := h.analyticsService.GetParticipantGrowth(quizID, currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"points": points})
}

// GetAttemptsOverTime возвращает число попыток по дням
func (h *AnalyticsHandler) GetAttemptsOverTime(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	points, err := h.analyticsService.GetAttemptsOverTime(quizID, currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"points": points})
}

// ExportQuizResults отдает XLSX-отчет с результатами викторины
func (h *AnalyticsHandler) ExportQuizResults(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	requester, err := h.userService.GetUserByID(currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	f, err := h.analyticsService.ExportQuizResults(quizID, requester)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"quiz_%d_results.xlsx\"", quizID))

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[AnalyticsHandler] Ошибка записи Excel в response: %v", err)
	}
}
