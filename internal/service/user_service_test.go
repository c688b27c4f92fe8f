package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/dailyquiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/dailyquiz-api/internal/pkg/errors"
)

// Моки репозиториев объявлены в attempt_service_test.go

func TestUserService_CreateUser_Success(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("Create", mock.AnythingOfType("*entity.User")).Return(nil)

	svc := NewUserService(mockUserRepo)

	// Act
	user, err := svc.CreateUser(CreateUserInput{
		Username: "ivan",
		Password: "secret123",
		FullName: "Иван Петров",
		Role:     entity.RoleStudent,
		Class:    "10A",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "10A", user.Class)
	mockUserRepo.AssertExpectations(t)
}

func TestUserService_CreateUser_ClassClearedForNonStudents(t *testing.T) {
	// Arrange: учебная группа имеет смысл только для студентов
	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("Create", mock.AnythingOfType("*entity.User")).Return(nil)

	svc := NewUserService(mockUserRepo)

	// Act
	user, err := svc.CreateUser(CreateUserInput{
		Username: "prof",
		Password: "secret123",
		FullName: "Пётр Иванов",
		Role:     entity.RoleFaculty,
		Class:    "10A",
	})

	// Assert
	require.NoError(t, err)
	assert.Empty(t, user.Class, "Группа у преподавателя должна быть очищена")
}

func TestUserService_CreateUser_UnknownRole(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	svc := NewUserService(mockUserRepo)

	// Act
	user, err := svc.CreateUser(CreateUserInput{
		Username: "ivan",
		Password: "secret123",
		FullName: "Иван Петров",
		Role:     "superuser",
	})

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Nil(t, user)
	mockUserRepo.AssertNotCalled(t, "Create")
}

func TestUserService_CreateUser_MissingFields(t *testing.T) {
	// Arrange
	svc := NewUserService(new(MockUserRepository))

	// Act
	user, err := svc.CreateUser(CreateUserInput{
		Username: "  ",
		Password: "secret123",
		FullName: "Иван Петров",
		Role:     entity.RoleStudent,
	})

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Nil(t, user)
}
