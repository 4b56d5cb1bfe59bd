package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
	"github.com/yourusername/quizhub-api/internal/service"
)

// QuizHandler обрабатывает запросы, связанные с викторинами
type QuizHandler struct {
	quizService   *service.QuizService
	resultService *service.ResultService
	userService   *service.UserService
}

// NewQuizHandler создает новый обработчик викторин
func NewQuizHandler(
	quizService *service.QuizService,
	resultService *service.ResultService,
	userService *service.UserService,
) *QuizHandler {
	return &QuizHandler{
		quizService:   quizService,
		resultService: resultService,
		userService:   userService,
	}
}

// CreateQuizRequest представляет запрос на создание викторины
type CreateQuizRequest struct {
	Title       string `json:"title" binding:"required,min=3,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

// CreateQuiz обрабатывает запрос на создание викторины
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := h.quizService.CreateQuiz(currentUserID(c), req.Title, req.Description)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, quiz)
}

// ListQuizzes возвращает викторины с пагинацией
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	quizzes, total, err := h.quizService.ListQuizzes(limit, offset)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quizzes": quizzes,
		"total":   total,
	})
}

// GetQuiz возвращает викторину с вопросами.
// Правильные ответы видны только автору.
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	quiz, err := h.quizService.GetQuizWithQuestions(quizID, currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// AddQuestionRequest представляет запрос на добавление вопроса
type AddQuestionRequest struct {
	Text    string                  `json:"text" binding:"required,min=3,max=500"`
	Options []entity.QuestionOption `json:"options" binding:"required,min=2,max=6"`
}

// AddQuestion добавляет вопрос к викторине
func (h *QuizHandler) AddQuestion(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	var req AddQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.quizService.AddQuestion(quizID, currentUserID(c), req.Text, req.Options)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, question)
}

// GetQuestions возвращает вопросы викторины
func (h *QuizHandler) GetQuestions(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	questions, err := h.quizService.GetQuestions(quizID, currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

// DeleteQuiz удаляет викторину
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	requester, err := h.userService.GetUserByID(currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if err := h.quizService.DeleteQuiz(quizID, requester); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "quiz deleted"})
}

// SubmitQuizRequest представляет ответы на викторину
type SubmitQuizRequest struct {
	Answers      []int `json:"answers" binding:"required"`
	TimeTakenSec int   `json:"time_taken_sec" binding:"omitempty,min=0"`
}

// SubmitQuiz принимает прохождение викторины
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	var req SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.resultService.SubmitQuiz(currentUserID(c), quizID, req.Answers, req.TimeTakenSec)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// GetQuizResults возвращает результаты викторины
func (h *QuizHandler) GetQuizResults(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	results, err := h.resultService.GetQuizResults(quizID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// GetMyResults возвращает историю попыток текущего пользователя
func (h *QuizHandler) GetMyResults(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	results, err := h.resultService.GetUserResults(currentUserID(c), limit, offset)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}
