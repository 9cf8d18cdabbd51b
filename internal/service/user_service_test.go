package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"homehero/internal/database"
	"homehero/internal/events"
	"homehero/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_SaveUser(t *testing.T) {
	repo := new(mockUserRepo)
	bus := new(mockEventBus)
	svc := NewUserService(repo, bus, nil)
	fixed := time.Date(2025, 11, 5, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	name := "Sadia"
	ctx := context.Background()
	expected := &models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}

	repo.On("UpsertUser", ctx, "sadia@example.com", map[string]any{
		"email":     "sadia@example.com",
		"name":      "Sadia",
		"lastLogin": fixed,
	}).Return(expected, nil)
	bus.On("PublishJSON", events.EventUserSaved, mock.MatchedBy(func(p events.DocumentEventPayload) bool {
		return p.Email == "sadia@example.com" && p.Collection == database.UsersCollection
	})).Return(nil)

	res, err := svc.SaveUser(ctx, "sadia@example.com", models.UserInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, expected, res)
	repo.AssertExpectations(t)
	bus.AssertExpectations(t)
}

func TestUserService_SaveUserStorageError(t *testing.T) {
	repo := new(mockUserRepo)
	bus := new(mockEventBus)
	svc := NewUserService(repo, bus, nil)

	repo.On("UpsertUser", mock.Anything, "x@example.com", mock.Anything).Return(nil, errors.New("timeout"))

	_, err := svc.SaveUser(context.Background(), "x@example.com", models.UserInput{})
	assert.Error(t, err)
	bus.AssertNotCalled(t, "PublishJSON", mock.Anything, mock.Anything)
}

func TestUserService_PublishFailureDoesNotFailSave(t *testing.T) {
	repo := new(mockUserRepo)
	bus := new(mockEventBus)
	svc := NewUserService(repo, bus, nil)

	repo.On("UpsertUser", mock.Anything, "x@example.com", mock.Anything).Return(&models.UpdateResult{Acknowledged: true}, nil)
	bus.On("PublishJSON", events.EventUserSaved, mock.Anything).Return(errors.New("bus down"))

	_, err := svc.SaveUser(context.Background(), "x@example.com", models.UserInput{})
	assert.NoError(t, err)
}

func TestUserService_GetUser(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewUserService(repo, nil, nil)
	ctx := context.Background()

	repo.On("GetUser", ctx, "ghost@example.com").Return(nil, database.ErrNotFound)
	repo.On("ListUsers", ctx).Return([]*models.User{{Email: "a@example.com"}}, nil)

	_, err := svc.GetUser(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, database.ErrNotFound)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
