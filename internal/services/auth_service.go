package services

import (
	"context"
	"errors"

	"floodguard_backend/internal/auth"
	"floodguard_backend/internal/logger"
	"floodguard_backend/internal/models"
	"floodguard_backend/internal/repositories"
	"floodguard_backend/internal/services/dto"
	"floodguard_backend/pkg/apperrors"
)

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	GetMe(userID string) (*dto.UserDTO, error)
}

type authService struct {
	userRepo       repositories.UserRepository
	profileService ProfileService
}

func NewAuthService(userRepo repositories.UserRepository, profileService ProfileService) AuthService {
	return &authService{
		userRepo:       userRepo,
		profileService: profileService,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.UserRoleUser,
		Status:       models.UserStatusActive,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, err
	}

	// The profile row is created best effort: signup must not fail when
	// the ensure flow exhausts its retries. The frontend re-triggers it
	// on the next dashboard load.
	result := s.profileService.EnsureProfile(ctx, user.ID, req.Name, "")
	if !result.Success {
		logger.CtxWarn(ctx, "profile creation deferred", "user_id", user.ID, "reason", result.Message)
	}

	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken: token,
		User:        dto.NewUserDTO(user),
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Status == models.UserStatusBlocked {
		return nil, apperrors.NewForbiddenError("account is blocked")
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "user logged in", "user_id", user.ID)

	return &dto.AuthResponse{
		AccessToken: token,
		User:        dto.NewUserDTO(user),
	}, nil
}

func (s *authService) GetMe(userID string) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	userDTO := dto.NewUserDTO(user)
	return &userDTO, nil
}
