package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
	"github.com/yourusername/quizhub-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizhub-api/internal/pkg/errors"
	"github.com/yourusername/quizhub-api/pkg/auth"
)

// AuthService предоставляет методы для регистрации и входа
type AuthService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register регистрирует нового пользователя и возвращает access-токен
func (s *AuthService) Register(username, email, password string) (*entity.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" || email == "" || len(password) < 6 {
		return nil, "", apperrors.ErrValidation
	}

	// Проверяем уникальность email и имени
	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, "", fmt.Errorf("%w: email already registered", apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, "", err
	}

	if _, err := s.userRepo.GetByUsername(username); err == nil {
		return nil, "", fmt.Errorf("%w: username already taken", apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, "", err
	}

	user := &entity.User{
		Username: username,
		Email:    email,
		Password: password, // Хешируется в BeforeSave
		Role:     entity.RoleUser,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}

	log.Printf("[AuthService] Зарегистрирован пользователь %d (%s)", user.ID, user.Username)
	return user, token, nil
}

// Login проверяет учетные данные и возвращает access-токен
func (s *AuthService) Login(email, password string) (*entity.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Не раскрываем, существует ли email
			return nil, "", apperrors.ErrUnauthorized
		}
		return nil, "", err
	}

	if !user.CheckPassword(password) {
		return nil, "", apperrors.ErrUnauthorized
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}
