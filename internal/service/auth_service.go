package service

import (
	"errors"
	"log"

	"github.com/yourusername/dailyquiz-api/internal/domain/entity"
	"github.com/yourusername/dailyquiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/dailyquiz-api/internal/pkg/errors"
	"github.com/yourusername/dailyquiz-api/pkg/auth"
)

// AuthService предоставляет методы для аутентификации пользователей
type AuthService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) (*AuthService, error) {
	if userRepo == nil {
		return nil, errors.New("UserRepository is required for AuthService")
	}
	if jwtService == nil {
		return nil, errors.New("JWTService is required for AuthService")
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}, nil
}

// Login проверяет пару логин/пароль и выдает JWT.
// Неизвестный логин и неверный пароль неразличимы для клиента.
func (s *AuthService) Login(username, password string) (string, *entity.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !user.CheckPassword(password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		log.Printf("[AuthService] Ошибка генерации токена для username=%s: %v", username, err)
		return "", nil, err
	}

	return token, user, nil
}

// GetUserByID возвращает пользователя по ID
func (s *AuthService) GetUserByID(userID uint) (*entity.User, error) {
	return s.userRepo.GetByID(userID)
}
