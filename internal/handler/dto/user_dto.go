package dto

import (
	"time"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
)

// AuthResponse представляет ответ на регистрацию или вход
type AuthResponse struct {
	User        PublicUserResponse `json:"user"`
	AccessToken string             `json:"access_token"`
}

// PublicUserResponse представляет пользователя без приватных полей
type PublicUserResponse struct {
	ID         uint      `json:"id"`
	Username   string    `json:"username"`
	Avatar     string    `json:"avatar"`
	Bio        string    `json:"bio"`
	QuizStreak int       `json:"quiz_streak"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewAuthResponse создает DTO для ответа аутентификации
func NewAuthResponse(user *entity.User, token string) AuthResponse {
	return AuthResponse{
		User:        NewPublicUserResponse(user),
		AccessToken: token,
	}
}

// NewPublicUserResponse создает публичное представление пользователя
func NewPublicUserResponse(user *entity.User) PublicUserResponse {
	return PublicUserResponse{
		ID:         user.ID,
		Username:   user.Username,
		Avatar:     user.Avatar,
		Bio:        user.Bio,
		QuizStreak: user.QuizStreak,
		CreatedAt:  user.CreatedAt,
	}
}

// NewPublicUserList создает список публичных представлений
func NewPublicUserList(users []entity.User) []PublicUserResponse {
	out := make([]PublicUserResponse, len(users))
	for i := range users {
		out[i] = NewPublicUserResponse(&users[i])
	}
	return out
}
