package service

import (
	"context"
	"time"

	"homehero/internal/database"
	"homehero/internal/domain"
	"homehero/internal/events"
	"homehero/internal/models"

	"github.com/rs/zerolog"
)

type UserService struct {
	repo     domain.UserRepository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewUserService(repo domain.UserRepository, eventBus domain.EventPublisher, logger *zerolog.Logger) *UserService {
	return &UserService{
		repo:     repo,
		eventBus: eventBus,
		logger:   nopIfNil(logger),
		now:      time.Now,
	}
}

// SaveUser upserts by email and stamps lastLogin on every call.
func (s *UserService) SaveUser(ctx context.Context, email string, input models.UserInput) (*models.UpdateResult, error) {
	fields := input.Fields(email)
	fields[models.FieldLastLogin] = s.now()

	res, err := s.repo.UpsertUser(ctx, email, fields)
	if err != nil {
		return nil, err
	}

	publishEvent(s.eventBus, s.logger, events.EventUserSaved, events.DocumentEventPayload{
		Collection: database.UsersCollection,
		Email:      email,
		Fields:     fieldNames(fields),
	})
	return res, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *UserService) GetUser(ctx context.Context, email string) (*models.User, error) {
	return s.repo.GetUser(ctx, email)
}
