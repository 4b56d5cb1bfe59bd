package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizhub-api/internal/domain/repository"
	"github.com/yourusername/quizhub-api/internal/handler/dto"
	"github.com/yourusername/quizhub-api/internal/service"
)

// UserHandler обрабатывает запросы профилей, подписок и лидерборда
type UserHandler struct {
	userService  *service.UserService
	badgeService *service.BadgeService
}

// NewUserHandler создает новый обработчик пользователей
func NewUserHandler(userService *service.UserService, badgeService *service.BadgeService) *UserHandler {
	return &UserHandler{
		userService:  userService,
		badgeService: badgeService,
	}
}

// GetProfile возвращает публичный профиль пользователя с агрегатами
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	stats, err := h.userService.GetProfileStats(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  dto.NewPublicUserResponse(user),
		"stats": stats,
	})
}

// UpdateProfileRequest представляет запрос на обновление профиля
type UpdateProfileRequest struct {
	Username *string `json:"username" binding:"omitempty,min=3,max=50"`
	Avatar   *string `json:"avatar" binding:"omitempty,max=255"`
	Bio      *string `json:"bio" binding:"omitempty,max=500"`
}

// UpdateProfile обновляет профиль текущего пользователя
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := make(map[string]interface{})
	if req.Username != nil {
		updates["username"] = *req.Username
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}

	user, err := h.userService.UpdateProfile(currentUserID(c), updates)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetUserBadges возвращает бейджи пользователя
func (h *UserHandler) GetUserBadges(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	badges, err := h.badgeService.GetUserBadges(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"badges": badges})
}

// ListBadgeCatalog возвращает весь каталог бейджей
func (h *UserHandler) ListBadgeCatalog(c *gin.Context) {
	badges, err := h.badgeService.ListBadges()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"badges": badges})
}

// Follow подписывает текущего пользователя на другого
func (h *UserHandler) Follow(c *gin.Context) {
	followeeID := c.MustGet("userID").(uint)

	if err := h.userService.Follow(currentUserID(c), followeeID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "followed"})
}

// Unfollow отписывает текущего пользователя
func (h *UserHandler) Unfollow(c *gin.Context) {
	followeeID := c.MustGet("userID").(uint)

	if err := h.userService.Unfollow(currentUserID(c), followeeID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "unfollowed"})
}

// RemoveFollower удаляет подписчика текущего пользователя
func (h *UserHandler) RemoveFollower(c *gin.Context) {
	followerID := c.MustGet("userID").(uint)

	if err := h.userService.RemoveFollower(currentUserID(c), followerID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "follower removed"})
}

// GetFollowers возвращает подписчиков пользователя
func (h *UserHandler) GetFollowers(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	users, err := h.userService.GetFollowers(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": dto.NewPublicUserList(users)})
}

// GetFollowing возвращает подписки пользователя
func (h *UserHandler) GetFollowing(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	users, err := h.userService.GetFollowing(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": dto.NewPublicUserList(users)})
}

// Discover возвращает пользователей для экрана поиска
func (h *UserHandler) Discover(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	filters := repository.UserSearchFilters{
		Search: c.Query("search"),
		SortBy: c.DefaultQuery("sort", "followers"),
		Limit:  limit,
	}

	rows, err := h.userService.DiscoverUsers(currentUserID(c), filters)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": rows})
}

// Leaderboard возвращает публичный лидерборд
func (h *UserHandler) Leaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	rows, total, err := h.userService.GetLeaderboard(limit, offset)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"leaderboard": rows,
		"total":       total,
	})
}
