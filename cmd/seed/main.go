package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"homehero/internal/config"
	"homehero/internal/database"
	"homehero/internal/domain"
	"homehero/internal/events"
	"homehero/internal/models"
	"homehero/internal/repository"
	"homehero/internal/service"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

type seedService struct {
	Name          string  `yaml:"name"`
	Category      string  `yaml:"category"`
	Price         float64 `yaml:"price"`
	Description   string  `yaml:"description"`
	Image         string  `yaml:"image"`
	ProviderName  string  `yaml:"provider_name"`
	ProviderEmail string  `yaml:"provider_email"`
}

type seedFile struct {
	Services []seedService `yaml:"services"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	var (
		seedPath   = flag.String("services", "configs/services.yaml", "path to services.yaml")
		configPath = flag.String("config", "configs/config.yaml", "path to config.yaml")
	)
	flag.Parse()

	data, err := os.ReadFile(*seedPath)
	if err != nil {
		return fmt.Errorf("read services: %w", err)
	}
	var seed seedFile
	if err = yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("parse services: %w", err)
	}
	if len(seed.Services) == 0 {
		return fmt.Errorf("no services in yaml")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg.Database, &logger)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer (func() { _ = db.Close(context.Background()) })()

	// Seeded services must drop the home list a running API may have cached.
	var cache domain.ListCache
	if cfg.Redis.Address != "" {
		client := repository.NewRedisClient(cfg.Redis)
		defer (func() { _ = repository.Close(client) })()
		if err := repository.Ping(ctx, client); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		cache = repository.NewRedisListCache(client, cfg.Cache.HomeServicesTTL)
	}

	bus := events.NewEventBus()
	bus.OnError(func(event *events.Event, err error) {
		logger.Warn().Err(err).Str("event_type", event.Type).Msg("event handler failed")
	})
	catalog := service.NewCatalogService(db, cache, bus, &logger)
	bus.Subscribe(catalog.InvalidateHome, events.ServiceEvents...)

	existing, err := catalog.ListServices(ctx)
	if err != nil {
		return fmt.Errorf("list services: %w", err)
	}
	known := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		known[s.Name] = struct{}{}
	}

	created, skipped := 0, 0
	for _, s := range seed.Services {
		if _, ok := known[s.Name]; ok {
			skipped++
			continue
		}
		_, err = catalog.CreateService(ctx, models.NewServiceRequest{
			Name:          s.Name,
			Category:      s.Category,
			Price:         models.Amount(s.Price),
			Description:   s.Description,
			Image:         s.Image,
			ProviderName:  s.ProviderName,
			ProviderEmail: s.ProviderEmail,
		})
		if err != nil {
			return fmt.Errorf("create %s: %w", s.Name, err)
		}
		known[s.Name] = struct{}{}
		created++
	}

	fmt.Printf("done: created=%d skipped=%d\n", created, skipped)
	return nil
}
