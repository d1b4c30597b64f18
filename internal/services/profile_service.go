package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"floodguard_backend/internal/logger"
	"floodguard_backend/internal/models"
	"floodguard_backend/internal/repositories"
	"floodguard_backend/internal/services/dto"

	"github.com/jonboulle/clockwork"
)

const ensureProfileMaxAttempts = 3

type ProfileService interface {
	// EnsureProfile creates the dashboard profile row for a user if it
	// does not exist yet, retrying transient failures with a linear
	// backoff. A profile that already exists is a success, not an error.
	EnsureProfile(ctx context.Context, userID, name, avatarURL string) *dto.EnsureProfileResult

	GetProfile(userID string) (*dto.ProfileResponse, error)
	UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
}

type profileService struct {
	profileRepo repositories.ProfileRepository
	userRepo    repositories.UserRepository
	clock       clockwork.Clock
}

func NewProfileService(
	profileRepo repositories.ProfileRepository,
	userRepo repositories.UserRepository,
	clock clockwork.Clock,
) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		clock:       clock,
	}
}

func (s *profileService) EnsureProfile(ctx context.Context, userID, name, avatarURL string) *dto.EnsureProfileResult {
	existing, err := s.profileRepo.FindByUserID(userID)
	if err != nil && !errors.Is(err, repositories.ErrProfileNotFound) {
		// Unexpected lookup failure. The create below will surface a
		// real problem, so log and keep going.
		logger.CtxWarn(ctx, "profile existence check failed", "error", err.Error(), "user_id", userID)
	}
	if existing != nil {
		return &dto.EnsureProfileResult{Success: true, Message: "Profile already exists"}
	}

	email := ""
	if user, err := s.userRepo.FindByID(userID); err == nil {
		email = user.Email
	}

	profile := &models.Profile{
		UserID:    userID,
		Name:      name,
		Email:     email,
		AvatarURL: avatarURL,
	}

	var lastErr error
	for attempt := 1; attempt <= ensureProfileMaxAttempts; attempt++ {
		if err := s.profileRepo.Create(profile); err == nil {
			return &dto.EnsureProfileResult{Success: true, Message: "Profile created successfully"}
		} else {
			lastErr = err
			logger.CtxWarn(ctx, "profile creation attempt failed",
				"error", err.Error(), "user_id", userID, "attempt", attempt)
		}

		if attempt == ensureProfileMaxAttempts {
			break
		}

		// Linear backoff: 1s, 2s, 3s.
		select {
		case <-ctx.Done():
			return &dto.EnsureProfileResult{Success: false, Message: ctx.Err().Error()}
		case <-s.clock.After(time.Duration(attempt) * time.Second):
		}
	}

	message := "Failed after multiple attempts"
	if lastErr != nil {
		message = lastErr.Error()
	}
	return &dto.EnsureProfileResult{Success: false, Message: message}
}

func (s *profileService) GetProfile(userID string) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	return dto.NewProfileResponse(profile), nil
}

func (s *profileService) UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("name cannot be empty")
		}
		profile.Name = *req.Name
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = *req.AvatarURL
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}

	if err := s.profileRepo.Update(profile); err != nil {
		return nil, err
	}
	return dto.NewProfileResponse(profile), nil
}
