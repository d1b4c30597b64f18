package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"floodguard_backend/internal/models"
	"floodguard_backend/internal/repositories"
	"floodguard_backend/internal/services/dto"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileFixture(profiles *fakeProfileRepo, clock clockwork.Clock) ProfileService {
	users := &fakeUserRepo{users: map[string]*models.User{
		"user-1": {BaseModel: models.BaseModel{ID: "user-1"}, Email: "user1@example.com", Status: models.UserStatusActive},
	}}
	return NewProfileService(profiles, users, clock)
}

func TestEnsureProfileShortCircuitsWhenExists(t *testing.T) {
	profiles := &fakeProfileRepo{profiles: map[string]*models.Profile{
		"user-1": {UserID: "user-1", Name: "Maria"},
	}}
	service := newProfileFixture(profiles, clockwork.NewFakeClock())

	result := service.EnsureProfile(context.Background(), "user-1", "Maria", "")

	assert.True(t, result.Success)
	assert.Equal(t, "Profile already exists", result.Message)
	assert.Zero(t, profiles.creates)
}

func TestEnsureProfileCreatesOnFirstAttempt(t *testing.T) {
	profiles := &fakeProfileRepo{profiles: map[string]*models.Profile{}}
	service := newProfileFixture(profiles, clockwork.NewFakeClock())

	result := service.EnsureProfile(context.Background(), "user-1", "Maria", "https://cdn.example.com/a.png")

	assert.True(t, result.Success)
	assert.Equal(t, "Profile created successfully", result.Message)
	assert.Equal(t, 1, profiles.creates)

	created := profiles.profiles["user-1"]
	require.NotNil(t, created)
	assert.Equal(t, "Maria", created.Name)
	// Email is filled in from the account.
	assert.Equal(t, "user1@example.com", created.Email)
}

func TestEnsureProfileRetriesWithLinearBackoff(t *testing.T) {
	profiles := &fakeProfileRepo{
		profiles:  map[string]*models.Profile{},
		createErr: []error{errors.New("deadlock"), errors.New("deadlock"), nil},
	}
	clock := clockwork.NewFakeClock()
	service := newProfileFixture(profiles, clock)

	ctx := context.Background()
	done := make(chan *dto.EnsureProfileResult, 1)
	go func() {
		done <- service.EnsureProfile(ctx, "user-1", "Maria", "")
	}()

	// First retry waits 1s, second waits 2s.
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(time.Second)
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(2 * time.Second)

	select {
	case result := <-done:
		assert.True(t, result.Success)
		assert.Equal(t, "Profile created successfully", result.Message)
		assert.Equal(t, 3, profiles.creates)
	case <-time.After(2 * time.Second):
		t.Fatal("EnsureProfile did not finish")
	}
}

func TestEnsureProfileGivesUpAfterThreeAttempts(t *testing.T) {
	profiles := &fakeProfileRepo{
		profiles:  map[string]*models.Profile{},
		createErr: []error{errors.New("boom 1"), errors.New("boom 2"), errors.New("boom 3")},
	}
	clock := clockwork.NewFakeClock()
	service := newProfileFixture(profiles, clock)

	ctx := context.Background()
	done := make(chan *dto.EnsureProfileResult, 1)
	go func() {
		done <- service.EnsureProfile(ctx, "user-1", "Maria", "")
	}()

	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(time.Second)
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(2 * time.Second)

	select {
	case result := <-done:
		assert.False(t, result.Success)
		// The last error wins over the generic message.
		assert.Equal(t, "boom 3", result.Message)
		assert.Equal(t, 3, profiles.creates)
	case <-time.After(2 * time.Second):
		t.Fatal("EnsureProfile did not finish")
	}
}

func TestEnsureProfileStopsOnCancelledContext(t *testing.T) {
	profiles := &fakeProfileRepo{
		profiles:  map[string]*models.Profile{},
		createErr: []error{errors.New("boom"), errors.New("boom"), errors.New("boom")},
	}
	clock := clockwork.NewFakeClock()
	service := newProfileFixture(profiles, clock)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan *dto.EnsureProfileResult, 1)
	go func() {
		done <- service.EnsureProfile(ctx, "user-1", "Maria", "")
	}()

	// Cancel while parked on the first backoff.
	require.NoError(t, clock.BlockUntilContext(context.Background(), 1))
	cancel()

	select {
	case result := <-done:
		assert.False(t, result.Success)
		assert.Equal(t, context.Canceled.Error(), result.Message)
		assert.Equal(t, 1, profiles.creates)
	case <-time.After(2 * time.Second):
		t.Fatal("EnsureProfile did not finish")
	}
}

func TestUpdateProfileRejectsEmptyName(t *testing.T) {
	profiles := &fakeProfileRepo{profiles: map[string]*models.Profile{
		"user-1": {UserID: "user-1", Name: "Maria"},
	}}
	service := newProfileFixture(profiles, clockwork.NewFakeClock())

	empty := ""
	_, err := service.UpdateProfile("user-1", &dto.UpdateProfileRequest{Name: &empty})
	assert.Error(t, err)
}

func TestGetProfileNotFound(t *testing.T) {
	profiles := &fakeProfileRepo{profiles: map[string]*models.Profile{}}
	service := newProfileFixture(profiles, clockwork.NewFakeClock())

	_, err := service.GetProfile("user-1")
	assert.ErrorIs(t, err, repositories.ErrProfileNotFound)
}
