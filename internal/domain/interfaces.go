package domain

import (
	"context"

	"homehero/internal/models"
)

type UserRepository interface {
	UpsertUser(ctx context.Context, email string, fields map[string]any) (*models.UpdateResult, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	GetUser(ctx context.Context, email string) (*models.User, error)
}

type ServiceRepository interface {
	CreateService(ctx context.Context, service *models.Service) (*models.InsertResult, error)
	// ListServices returns newest first; limit <= 0 means no limit.
	ListServices(ctx context.Context, limit int64) ([]*models.Service, error)
	GetService(ctx context.Context, id string) (*models.Service, error)
	UpdateService(ctx context.Context, id string, fields map[string]any) (*models.UpdateResult, error)
	DeleteService(ctx context.Context, id string) error
}

type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *models.Booking) (*models.InsertResult, error)
	ListBookings(ctx context.Context) ([]*models.Booking, error)
	ListBookingsByUser(ctx context.Context, email string) ([]*models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	UpdateBooking(ctx context.Context, id string, fields map[string]any) (*models.UpdateResult, error)
	DeleteBooking(ctx context.Context, id string) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type EventPublisher interface {
	PublishJSON(eventType string, payload any) error
}

// ListCache stores encoded list responses by key. Set only writes when the
// key is still at the generation read before the list was loaded.
type ListCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Generation(ctx context.Context, key string) (int64, error)
	Set(ctx context.Context, key string, gen int64, payload []byte) (bool, error)
	Invalidate(ctx context.Context, key string) error
}

type UserService interface {
	SaveUser(ctx context.Context, email string, input models.UserInput) (*models.UpdateResult, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	GetUser(ctx context.Context, email string) (*models.User, error)
}

type CatalogService interface {
	CreateService(ctx context.Context, req models.NewServiceRequest) (*models.InsertResult, error)
	ListServices(ctx context.Context) ([]*models.Service, error)
	HomeServices(ctx context.Context) ([]*models.Service, error)
	GetService(ctx context.Context, id string) (*models.Service, error)
	UpdateService(ctx context.Context, id string, patch models.ServicePatch) (*models.UpdateResult, error)
	DeleteService(ctx context.Context, id string) error
}

type BookingService interface {
	CreateBooking(ctx context.Context, req models.NewBookingRequest) (*models.InsertResult, error)
	ListBookings(ctx context.Context, userEmail string) ([]*models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	UpdateBooking(ctx context.Context, id string, patch models.BookingPatch) (*models.UpdateResult, error)
	DeleteBooking(ctx context.Context, id string) error
	ExportBookings(ctx context.Context) ([]byte, error)
}
