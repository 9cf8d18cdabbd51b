package service

import (
	"context"
	"encoding/json"
	"time"

	"homehero/internal/database"
	"homehero/internal/domain"
	"homehero/internal/events"
	"homehero/internal/models"
	"homehero/internal/repository"

	"github.com/rs/zerolog"
)

// CatalogService owns the services collection.
type CatalogService struct {
	repo     domain.ServiceRepository
	cache    domain.ListCache
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewCatalogService(repo domain.ServiceRepository, cache domain.ListCache, eventBus domain.EventPublisher, logger *zerolog.Logger) *CatalogService {
	if cache == nil {
		cache = repository.NopListCache{}
	}
	return &CatalogService{
		repo:     repo,
		cache:    cache,
		eventBus: eventBus,
		logger:   nopIfNil(logger),
		now:      time.Now,
	}
}

func (s *CatalogService) CreateService(ctx context.Context, req models.NewServiceRequest) (*models.InsertResult, error) {
	if err := models.Validate(req); err != nil {
		return nil, err
	}

	svc := req.Service(s.now())
	res, err := s.repo.CreateService(ctx, svc)
	if err != nil {
		return nil, err
	}

	publishEvent(s.eventBus, s.logger, events.EventServiceCreated, events.DocumentEventPayload{
		Collection: database.ServicesCollection,
		ID:         res.InsertedID,
		Email:      svc.ProviderEmail,
	})
	return res, nil
}

func (s *CatalogService) ListServices(ctx context.Context) ([]*models.Service, error) {
	return s.repo.ListServices(ctx, 0)
}

// HomeServices returns the newest services for the landing page, read through the cache.
func (s *CatalogService) HomeServices(ctx context.Context) ([]*models.Service, error) {
	if cached, ok := s.cachedHome(ctx); ok {
		return cached, nil
	}

	// Read the generation before the list: an invalidation in between makes Set a no-op.
	gen, genErr := s.cache.Generation(ctx, repository.HomeServicesKey)
	if genErr != nil {
		s.logger.Warn().Err(genErr).Msg("read home services cache generation")
	}

	services, err := s.repo.ListServices(ctx, models.HomeServicesLimit)
	if err != nil {
		return nil, err
	}
	if genErr != nil {
		return services, nil
	}

	if payload, err := json.Marshal(services); err == nil {
		stored, err := s.cache.Set(ctx, repository.HomeServicesKey, gen, payload)
		if err != nil {
			s.logger.Warn().Err(err).Msg("cache home services")
		} else if !stored {
			s.logger.Debug().Int64("generation", gen).Msg("home services changed while loading, not cached")
		}
	}
	return services, nil
}

func (s *CatalogService) cachedHome(ctx context.Context) ([]*models.Service, bool) {
	payload, ok, err := s.cache.Get(ctx, repository.HomeServicesKey)
	if err != nil {
		s.logger.Warn().Err(err).Msg("read home services cache")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	services := make([]*models.Service, 0, models.HomeServicesLimit)
	if err := json.Unmarshal(payload, &services); err != nil {
		s.logger.Warn().Err(err).Msg("decode home services cache")
		return nil, false
	}
	return services, true
}

func (s *CatalogService) GetService(ctx context.Context, id string) (*models.Service, error) {
	return s.repo.GetService(ctx, id)
}

// UpdateService sets only the supplied fields plus updated_at.
func (s *CatalogService) UpdateService(ctx context.Context, id string, patch models.ServicePatch) (*models.UpdateResult, error) {
	fields := patch.Fields()
	fields[models.FieldUpdatedAt] = s.now()

	res, err := s.repo.UpdateService(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	publishEvent(s.eventBus, s.logger, events.EventServiceUpdated, events.DocumentEventPayload{
		Collection: database.ServicesCollection,
		ID:         id,
		Fields:     fieldNames(fields),
	})
	return res, nil
}

func (s *CatalogService) DeleteService(ctx context.Context, id string) error {
	if err := s.repo.DeleteService(ctx, id); err != nil {
		return err
	}

	publishEvent(s.eventBus, s.logger, events.EventServiceDeleted, events.DocumentEventPayload{
		Collection: database.ServicesCollection,
		ID:         id,
	})
	return nil
}

// InvalidateHome drops the cached landing list. Subscribed to service events.
func (s *CatalogService) InvalidateHome(event *events.Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.cache.Invalidate(ctx, repository.HomeServicesKey); err != nil {
		s.logger.Warn().Err(err).Str("event_type", event.Type).Msg("invalidate home services cache")
		return err
	}
	return nil
}
