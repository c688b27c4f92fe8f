package service

import (
	"fmt"
	"strings"

	"github.com/yourusername/dailyquiz-api/internal/domain/entity"
	"github.com/yourusername/dailyquiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/dailyquiz-api/internal/pkg/errors"
)

// CreateUserInput содержит данные для создания пользователя администратором
type CreateUserInput struct {
	Username string
	Password string
	FullName string
	Role     string
	Class    string
}

// UserService предоставляет административные операции над пользователями
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService создает новый сервис пользователей
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUser создает пользователя. Роль - серверный тегированный вариант:
// проверяется здесь, а не скрывается в полях формы на клиенте.
func (s *UserService) CreateUser(input CreateUserInput) (*entity.User, error) {
	if !entity.IsValidRole(input.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, input.Role)
	}

	// Учебная группа имеет смысл только для студентов
	class := strings.TrimSpace(input.Class)
	if input.Role != entity.RoleStudent {
		class = ""
	}

	user := &entity.User{
		Username: strings.TrimSpace(input.Username),
		Password: input.Password,
		FullName: strings.TrimSpace(input.FullName),
		Role:     input.Role,
		Class:    class,
	}

	if user.Username == "" || input.Password == "" || user.FullName == "" {
		return nil, fmt.Errorf("%w: username, password and full name are required", apperrors.ErrValidation)
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser возвращает пользователя по ID
func (s *UserService) GetUser(id uint) (*entity.User, error) {
	return s.userRepo.GetByID(id)
}

// ListUsers возвращает список пользователей с пагинацией
func (s *UserService) ListUsers(limit, offset int) ([]entity.User, error) {
	return s.userRepo.List(normalizeLimit(limit), offset)
}

// DeleteUser удаляет пользователя
func (s *UserService) DeleteUser(id uint) error {
	return s.userRepo.Delete(id)
}
