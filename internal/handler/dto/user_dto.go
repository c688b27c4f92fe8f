package dto

import (
	"time"

	"github.com/yourusername/dailyquiz-api/internal/domain/entity"
)

// UserResponse представляет пользователя в формате для ответа клиенту
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Class     string    `json:"class,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse представляет ответ на успешный вход
type LoginResponse struct {
	Success bool          `json:"success"`
	Token   string        `json:"token"`
	User    *UserResponse `json:"user"`
}

// NewUserResponse создает DTO для пользователя
func NewUserResponse(user *entity.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		FullName:  user.FullName,
		Role:      user.Role,
		Class:     user.Class,
		CreatedAt: user.CreatedAt,
	}
}

// NewListUserResponse создает список DTO пользователей
func NewListUserResponse(users []entity.User) []*UserResponse {
	list := make([]*UserResponse, len(users))
	for i := range users {
		list[i] = NewUserResponse(&users[i])
	}
	return list
}
