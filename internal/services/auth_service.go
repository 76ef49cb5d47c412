package services

import (
	"buspass_backend/internal/auth"
	"buspass_backend/internal/logger"
	"buspass_backend/internal/models"
	"buspass_backend/internal/repositories"
	"buspass_backend/internal/services/dto"
	"buspass_backend/pkg/apperrors"
)

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
	CreateConductor(req *dto.RegisterRequest) (*dto.UserDTO, error)
	GetProfile(userID string) (*dto.UserDTO, error)
	ListUsers(req *dto.ListUsersRequest) (*dto.UserListResponse, error)
}

type AuthServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &AuthServiceImpl{userRepo: userRepo}
}

// Register - регистрация пассажира
func (s *AuthServiceImpl) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	role := req.Role
	if role == "" {
		role = models.UserRolePassenger
	}
	// Самостоятельно зарегистрироваться может только пассажир.
	// Кондукторов и админов заводит админ.
	if role != models.UserRolePassenger {
		return nil, apperrors.ErrInvalidUserRole
	}

	user, err := s.createUser(req, role)
	if err != nil {
		return nil, err
	}

	return s.buildAuthResponse(user)
}

// Login - аутентификация пользователя
func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.buildAuthResponse(user)
}

// CreateConductor - создание аккаунта кондуктора админом
func (s *AuthServiceImpl) CreateConductor(req *dto.RegisterRequest) (*dto.UserDTO, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	user, err := s.createUser(req, models.UserRoleConductor)
	if err != nil {
		return nil, err
	}

	userDTO := dto.NewUserDTO(user)
	return &userDTO, nil
}

func (s *AuthServiceImpl) GetProfile(userID string) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	userDTO := dto.NewUserDTO(user)
	return &userDTO, nil
}

// ListUsers - список пользователей для админ-панели
func (s *AuthServiceImpl) ListUsers(req *dto.ListUsersRequest) (*dto.UserListResponse, error) {
	req.Normalize()

	users, total, err := s.userRepo.FindByRole(req.Role, req.Limit, (req.Page-1)*req.Limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserDTO(&users[i]))
	}

	return &dto.UserListResponse{
		Users:      items,
		Pagination: dto.NewPagination(req.Page, req.Limit, total),
	}, nil
}

// --- Helpers ---

func (s *AuthServiceImpl) createUser(req *dto.RegisterRequest, role models.UserRole) (*models.User, error) {
	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hashedPassword,
		FullName:     req.FullName,
		Role:         role,
		IsActive:     true,
	}

	if err := s.userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	logger.Info("Пользователь создан", "user_id", user.ID, "role", user.Role)

	return user, nil
}

func (s *AuthServiceImpl) buildAuthResponse(user *models.User) (*dto.AuthResponse, error) {
	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		Token: token,
		User:  dto.NewUserDTO(user),
	}, nil
}
