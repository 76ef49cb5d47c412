package dto

import (
	"time"

	"buspass_backend/internal/models"
)

// RegisterRequest - запрос регистрации
type RegisterRequest struct {
	FullName string          `json:"fullName" binding:"required,min=2,max=100"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     models.UserRole `json:"role" binding:"omitempty,userrole"`
}

// LoginRequest - запрос входа
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse - ответ с токеном
type AuthResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// UserDTO - базовая информация о пользователе
type UserDTO struct {
	ID        string          `json:"id"`
	FullName  string          `json:"fullName"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role"`
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
}

// NewUserDTO строит UserDTO из модели
func NewUserDTO(user *models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		FullName:  user.FullName,
		Email:     user.Email,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}

// ListUsersRequest - фильтр списка пользователей для админа
type ListUsersRequest struct {
	Role models.UserRole `form:"role" binding:"omitempty,userrole"`
	PageRequest
}

// UserListResponse - постраничный список пользователей
type UserListResponse struct {
	Users      []UserDTO  `json:"users"`
	Pagination Pagination `json:"pagination"`
}
