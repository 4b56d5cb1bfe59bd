package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizhub-api/internal/service"
)

// ReportHandler обрабатывает жалобы на вопросы
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler создает новый обработчик жалоб
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// CreateReportRequest представляет запрос на жалобу
type CreateReportRequest struct {
	Reason string `json:"reason" binding:"required,min=3,max=500"`
}

// CreateReport создает жалобу на вопрос
func (h *ReportHandler) CreateReport(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint)

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reportService.CreateReport(questionID, currentUserID(c), req.Reason)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, report)
}

// ListReports возвращает жалобы на вопросы из викторин текущего пользователя
func (h *ReportHandler) ListReports(c *gin.Context) {
	reports, err := h.reportService.ListReports(currentUserID(c), c.Query("status"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// FixQuestionRequest представляет исправленный текст вопроса
type FixQuestionRequest struct {
	Text string `json:"text" binding:"required,min=3,max=500"`
}

// FixQuestion исправляет вопрос по жалобе
func (h *ReportHandler) FixQuestion(c *gin.Context) {
	reportID := c.MustGet("reportID").(uint)

	var req FixQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reportService.FixQuestion(reportID, currentUserID(c), req.Text)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// IgnoreReport закрывает жалобу без изменений
func (h *ReportHandler) IgnoreReport(c *gin.Context) {
	reportID := c.MustGet("reportID").(uint)

	report, err := h.reportService.IgnoreReport(reportID, currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// DeleteQuestion удаляет вопрос по жалобе
func (h *ReportHandler) DeleteQuestion(c *gin.Context) {
	reportID := c.MustGet("reportID").(uint)

	report, err := h.reportService.DeleteQuestion(reportID, currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
