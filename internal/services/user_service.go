package services

import (
	"floodguard_backend/internal/repositories"
)

type UserService interface {
	DeleteUser(userID string) error
}

type userService struct {
	userRepo         repositories.UserRepository
	profileRepo      repositories.ProfileRepository
	notificationRepo repositories.NotificationRepository
}

func NewUserService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	notificationRepo repositories.NotificationRepository,
) UserService {
	return &userService{
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		notificationRepo: notificationRepo,
	}
}

// DeleteUser removes the account and its dependent rows.
func (s *userService) DeleteUser(userID string) error {
	if err := s.notificationRepo.DeleteByUser(userID); err != nil {
		return err
	}
	if err := s.profileRepo.Delete(userID); err != nil {
		return err
	}
	return s.userRepo.Delete(userID)
}
