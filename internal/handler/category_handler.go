package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizhub-api/internal/service"
)

// CategoryHandler обрабатывает запросы категорий
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler создает новый обработчик категорий
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// ListCategories возвращает все категории
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateCategoryRequest представляет запрос на создание категории
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"omitempty,max=255"`
}

// CreateCategory создает пользовательскую категорию
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryService.CreateCategory(req.Name, req.Description, currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// FollowCategory подписывает текущего пользователя на категорию
func (h *CategoryHandler) FollowCategory(c *gin.Context) {
	categoryID := c.MustGet("categoryID").(uint)

	if err := h.categoryService.FollowCategory(currentUserID(c), categoryID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "category followed"})
}

// UnfollowCategory отписывает текущего пользователя от категории
func (h *CategoryHandler) UnfollowCategory(c *gin.Context) {
	categoryID := c.MustGet("categoryID").(uint)

	if err := h.categoryService.UnfollowCategory(currentUserID(c), categoryID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "category unfollowed"})
}

// ListFollowedCategories возвращает категории текущего пользователя
func (h *CategoryHandler) ListFollowedCategories(c *gin.Context) {
	categories, err := h.categoryService.ListFollowedCategories(currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
